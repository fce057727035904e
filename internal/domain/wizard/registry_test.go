package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"campusleave/internal/domain/leave"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	calls   int
	err     error
	started chan struct{}
	release chan struct{}
}

func (s *fakeSubmitter) Submit(context.Context, leave.SubmissionInput) (leave.CreateResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return leave.CreateResult{}, s.err
	}
	return leave.CreateResult{ID: "req-1", Status: leave.StatusPending}, nil
}

func (s *fakeSubmitter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func openReadyDraft(t *testing.T, r *Registry, userID string) {
	t.Helper()
	r.Open(userID, nonTeachingEmployee(), 10)
	err := r.With(userID, func(d *Draft) error {
		if err := d.SelectLeaveType(leave.KindCL); err != nil {
			return err
		}
		if err := d.SetDateRange(upcoming(7), upcoming(8)); err != nil {
			return err
		}
		d.SetReason("medical appointment")
		return nil
	})
	if err != nil {
		t.Fatalf("preparing draft: %v", err)
	}
}

func TestRegistrySubmitDiscardsDraft(t *testing.T) {
	r := NewRegistry()
	openReadyDraft(t, r, "user-1")

	submitter := &fakeSubmitter{}
	result, err := r.Submit(context.Background(), "user-1", submitter)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.ID != "req-1" {
		t.Fatalf("result = %+v", result)
	}
	if err := r.With("user-1", func(*Draft) error { return nil }); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("draft survived a successful submission: %v", err)
	}
}

func TestRegistrySubmitFailureKeepsDraft(t *testing.T) {
	r := NewRegistry()
	openReadyDraft(t, r, "user-1")

	wantErr := errors.New("request overlaps an approved leave")
	submitter := &fakeSubmitter{err: wantErr}
	if _, err := r.Submit(context.Background(), "user-1", submitter); !errors.Is(err, wantErr) {
		t.Fatalf("Submit error = %v, want the submitter's error verbatim", err)
	}
	if err := r.With("user-1", func(*Draft) error { return nil }); err != nil {
		t.Fatalf("draft gone after a failed submission: %v", err)
	}
	// A retry goes through.
	if _, err := r.Submit(context.Background(), "user-1", &fakeSubmitter{}); err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
}

func TestRegistrySingleFlightSubmit(t *testing.T) {
	r := NewRegistry()
	openReadyDraft(t, r, "user-1")

	slow := &fakeSubmitter{started: make(chan struct{}), release: make(chan struct{})}
	done := make(chan error, 1)
	go func() {
		_, err := r.Submit(context.Background(), "user-1", slow)
		done <- err
	}()
	<-slow.started

	if _, err := r.Submit(context.Background(), "user-1", slow); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("second Submit error = %v, want ErrSubmitInFlight", err)
	}
	if err := r.With("user-1", func(*Draft) error { return nil }); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("With during submission error = %v, want ErrSubmitInFlight", err)
	}

	close(slow.release)
	if err := <-done; err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if slow.callCount() != 1 {
		t.Fatalf("submitter called %d times, want 1", slow.callCount())
	}
}

func TestRegistrySubmitInvalidDraftWithoutNetworkCall(t *testing.T) {
	r := NewRegistry()
	r.Open("user-1", nonTeachingEmployee(), 10)

	submitter := &fakeSubmitter{}
	_, err := r.Submit(context.Background(), "user-1", submitter)
	var verr *leave.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Submit error = %v, want a validation error", err)
	}
	if submitter.callCount() != 0 {
		t.Fatalf("submitter called for an invalid draft")
	}
}

func TestRegistryOpenReplacesAndDiscardRemoves(t *testing.T) {
	r := NewRegistry()
	first := r.Open("user-1", nonTeachingEmployee(), 10)
	second := r.Open("user-1", nonTeachingEmployee(), 10)
	if first.ID == second.ID {
		t.Fatalf("Open did not mint a fresh draft")
	}
	r.Discard("user-1")
	if err := r.With("user-1", func(*Draft) error { return nil }); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("Discard left the draft behind: %v", err)
	}
}

func TestRegistryPruneIdle(t *testing.T) {
	r := NewRegistry()
	stale := r.Open("user-1", nonTeachingEmployee(), 10)
	stale.UpdatedAt = time.Now().Add(-48 * time.Hour)
	r.Open("user-2", nonTeachingEmployee(), 10)

	removed := r.PruneIdle(time.Now().Add(-24 * time.Hour))
	if removed != 1 {
		t.Fatalf("pruned %d drafts, want 1", removed)
	}
	if err := r.With("user-1", func(*Draft) error { return nil }); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("stale draft survived pruning")
	}
	if err := r.With("user-2", func(*Draft) error { return nil }); err != nil {
		t.Fatalf("fresh draft pruned: %v", err)
	}
}
