package email

import (
	"strings"
	"testing"
)

func TestBuildMessageTagsSubject(t *testing.T) {
	msg := string(buildMessage("no-reply@campus.edu", "staff@campus.edu", "Leave request approved", "Your CL request is now approved."))
	if !strings.Contains(msg, "Subject: [Campus Leave] Leave request approved\r\n") {
		t.Fatalf("subject line not tagged:\n%s", msg)
	}
	if !strings.HasSuffix(msg, "\r\nYour CL request is now approved.") {
		t.Fatalf("body not appended:\n%s", msg)
	}
}
