package wizard

import (
	"context"
	"sync"
	"time"

	"campusleave/internal/domain/leave"
)

// Submitter persists an assembled application.
type Submitter interface {
	Submit(ctx context.Context, in leave.SubmissionInput) (leave.CreateResult, error)
}

// Registry holds the active drafts, one per user. Drafts live only in
// memory; a successful submission or a cancel removes them, and idle
// ones are pruned by the background worker.
type Registry struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

func NewRegistry() *Registry {
	return &Registry{drafts: make(map[string]*Draft)}
}

// Open starts a fresh draft for a user, replacing any existing one.
func (r *Registry) Open(userID string, employee leave.EmployeeContext, cclBalance float64) *Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft := NewDraft(employee, cclBalance)
	r.drafts[userID] = draft
	return draft
}

// With runs fn against the user's draft under the registry lock. All
// draft mutations from request handlers go through here.
func (r *Registry) With(userID string, fn func(*Draft) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.drafts[userID]
	if !ok {
		return ErrNoDraft
	}
	if draft.submitting {
		return ErrSubmitInFlight
	}
	return fn(draft)
}

// Discard drops the user's draft, if any.
func (r *Registry) Discard(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, userID)
}

// Submit assembles the user's draft and sends it through the submitter.
// At most one submission per draft is in flight: a second call while
// the first is pending fails fast without building a payload. Failure
// keeps the draft so the user can fix and retry; success discards it.
func (r *Registry) Submit(ctx context.Context, userID string, submitter Submitter) (leave.CreateResult, error) {
	r.mu.Lock()
	draft, ok := r.drafts[userID]
	if !ok {
		r.mu.Unlock()
		return leave.CreateResult{}, ErrNoDraft
	}
	if draft.submitting {
		r.mu.Unlock()
		return leave.CreateResult{}, ErrSubmitInFlight
	}
	payload, err := draft.BuildPayload()
	if err != nil {
		r.mu.Unlock()
		return leave.CreateResult{}, err
	}
	draft.submitting = true
	r.mu.Unlock()

	result, err := submitter.Submit(ctx, payload)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		draft.submitting = false
		draft.touch()
		return leave.CreateResult{}, err
	}
	delete(r.drafts, userID)
	return result, nil
}

// PruneIdle drops drafts untouched since the cutoff and reports how
// many were removed.
func (r *Registry) PruneIdle(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for userID, draft := range r.drafts {
		if draft.UpdatedAt.Before(cutoff) && !draft.submitting {
			delete(r.drafts, userID)
			removed++
		}
	}
	return removed
}
