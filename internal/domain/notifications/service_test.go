package notifications

import (
	"context"
	"errors"
	"testing"
)

type fakeStore struct {
	created  []string
	email    string
	emailErr error
}

func (f *fakeStore) CreateNotification(_ context.Context, userID, ntype, _, _ string) error {
	f.created = append(f.created, userID+"/"+ntype)
	return nil
}

func (f *fakeStore) UserEmail(context.Context, string) (string, error) {
	return f.email, f.emailErr
}

func (f *fakeStore) ListNotifications(context.Context, string, int, int) ([]Notification, error) {
	return nil, nil
}

func (f *fakeStore) CountNotifications(context.Context, string, bool) (int, error) { return 0, nil }

func (f *fakeStore) MarkRead(context.Context, string, string) error { return nil }

type fakeMailer struct {
	sent    int
	sendErr error
}

func (m *fakeMailer) Send(context.Context, string, string, string, string) error {
	m.sent++
	return m.sendErr
}

func TestNotifyCreatesRowAndSendsEmail(t *testing.T) {
	store := &fakeStore{email: "hod@campus.edu"}
	mailer := &fakeMailer{}
	svc := New(store, mailer, "leave@campus.edu")

	if err := svc.Notify(context.Background(), "user-1", TypeLeaveSubmitted, "New leave request", "body"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(store.created) != 1 || store.created[0] != "user-1/leave_submitted" {
		t.Fatalf("created = %v", store.created)
	}
	if mailer.sent != 1 {
		t.Fatalf("emails sent = %d, want 1", mailer.sent)
	}
}

func TestNotifySwallowsEmailFailures(t *testing.T) {
	store := &fakeStore{email: "hod@campus.edu"}
	mailer := &fakeMailer{sendErr: errors.New("smtp down")}
	svc := New(store, mailer, "")

	if err := svc.Notify(context.Background(), "user-1", TypeLeaveApproved, "Approved", ""); err != nil {
		t.Fatalf("Notify surfaced a mail failure: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("in-app notification missing")
	}
}

func TestNotifySkipsEmptyRecipient(t *testing.T) {
	store := &fakeStore{}
	svc := New(store, nil, "")
	if err := svc.Notify(context.Background(), "", TypeLeaveReminder, "t", "b"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(store.created) != 0 {
		t.Fatalf("notification created for empty recipient")
	}
}
