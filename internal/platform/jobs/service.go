package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"campusleave/internal/domain/leave"
	"campusleave/internal/domain/notifications"
	"campusleave/internal/domain/wizard"
	"campusleave/internal/platform/config"
	"campusleave/internal/platform/querier"
)

const (
	JobLeaveReminder = "leave_reminder"
	JobDraftPrune    = "draft_prune"
)

// Service runs background work: reminders for requests stuck in review
// and pruning of idle wizard drafts. Every run is recorded in job_runs.
type Service struct {
	DB       querier.Querier
	Cfg      config.Config
	Leave    *leave.Store
	Notifier *notifications.Service
	Drafts   *wizard.Registry
	queue    chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db querier.Querier, cfg config.Config, leaveStore *leave.Store, notifier *notifications.Service, drafts *wizard.Registry) *Service {
	return &Service{
		DB:       db,
		Cfg:      cfg,
		Leave:    leaveStore,
		Notifier: notifier,
		Drafts:   drafts,
		queue:    make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.ReminderInterval > 0 {
		go s.schedule(ctx, s.Cfg.ReminderInterval, JobLeaveReminder, s.runReminders)
	}
	if s.Cfg.DraftTTL > 0 {
		go s.schedule(ctx, s.Cfg.DraftTTL/2, JobDraftPrune, s.runDraftPrune)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1,$2)
    RETURNING id
  `, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) schedule(ctx context.Context, interval time.Duration, jobType string, run func(context.Context) (any, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(jobType, run)
		}
	}
}

// runReminders nudges owners of requests that have sat in review past
// the configured age.
func (s *Service) runReminders(ctx context.Context) (any, error) {
	cutoff := time.Now().Add(-s.Cfg.ReminderAfter)
	stuck, err := s.Leave.PendingOlderThan(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	reminded := 0
	for _, row := range stuck {
		if row.OwnerUserID == "" {
			continue
		}
		body := fmt.Sprintf("Your leave request from %s is still %s.",
			row.CreatedAt.Format("2006-01-02"), row.Status)
		if err := s.Notifier.Notify(ctx, row.OwnerUserID, notifications.TypeLeaveReminder, "Leave request still in review", body); err != nil {
			slog.Warn("reminder notify failed", "requestId", row.RequestID, "err", err)
			continue
		}
		reminded++
	}
	return map[string]any{"stuck": len(stuck), "reminded": reminded}, nil
}

func (s *Service) runDraftPrune(ctx context.Context) (any, error) {
	removed := s.Drafts.PruneIdle(time.Now().Add(-s.Cfg.DraftTTL))
	return map[string]any{"pruned": removed}, nil
}
