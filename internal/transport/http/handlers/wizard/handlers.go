package wizardhandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"campusleave/internal/domain/audit"
	"campusleave/internal/domain/auth"
	"campusleave/internal/domain/leave"
	"campusleave/internal/domain/notifications"
	"campusleave/internal/domain/wizard"
	"campusleave/internal/transport/http/api"
	"campusleave/internal/transport/http/middleware"
	"campusleave/internal/transport/http/shared"
)

// Handler exposes the application wizard as a server-held draft
// session, one active draft per user.
type Handler struct {
	Registry     *wizard.Registry
	Leave        *leave.Service
	Availability leave.AvailabilityChecker
	Perms        middleware.PermissionStore
	Notify       *notifications.Service
	Audit        *audit.Service
}

func NewHandler(registry *wizard.Registry, leaveSvc *leave.Service, availability leave.AvailabilityChecker, perms middleware.PermissionStore, notify *notifications.Service, auditSvc *audit.Service) *Handler {
	return &Handler{
		Registry:     registry,
		Leave:        leaveSvc,
		Availability: availability,
		Perms:        perms,
		Notify:       notify,
		Audit:        auditSvc,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave/wizard", func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.PermLeaveWrite, h.Perms))
		r.Post("/", h.handleOpen)
		r.Get("/", h.handleGet)
		r.Patch("/", h.handlePatch)
		r.Delete("/", h.handleCancel)
		r.Post("/advance", h.handleAdvance)
		r.Post("/back", h.handleBack)
		r.Post("/periods", h.handleAddPeriod)
		r.Delete("/periods/{periodNumber}", h.handleRemovePeriod)
		r.Post("/next-day", h.handleNextDay)
		r.Post("/prev-day", h.handlePrevDay)
		r.Post("/submit", h.handleSubmit)
	})
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	employeeID, err := h.Leave.Store.EmployeeIDByUser(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "no_employee_record", "user has no employee record", reqID)
		return
	}
	employee, err := h.Leave.Store.EmployeeContext(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "draft_open_failed", "failed to load employee", reqID)
		return
	}
	balance, err := h.Leave.CCLBalance(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "draft_open_failed", "failed to load balance", reqID)
		return
	}

	draft := h.Registry.Open(user.UserID, employee, balance)
	api.Created(w, draftView(draft), reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	h.withDraft(w, r, func(*wizard.Draft) error { return nil })
}

type patchRequest struct {
	LeaveType       *string  `json:"leaveType"`
	IsHalfDay       *bool    `json:"isHalfDay"`
	Session         string   `json:"session"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	Reason          *string  `json:"reason"`
	ODTimeType      *string  `json:"odTimeType"`
	ODStartTime     string   `json:"odStartTime"`
	ODEndTime       string   `json:"odEndTime"`
	SelectedCCLDays []string `json:"selectedCCLDays"`
}

func (h *Handler) handlePatch(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload patchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	h.withDraft(w, r, func(d *wizard.Draft) error {
		if payload.LeaveType != nil {
			if err := d.SelectLeaveType(*payload.LeaveType); err != nil {
				return err
			}
		}
		if payload.IsHalfDay != nil {
			if err := d.SetHalfDay(*payload.IsHalfDay, payload.Session); err != nil {
				return err
			}
		}
		if payload.StartDate != "" || payload.EndDate != "" {
			start, err := shared.ParseDate(payload.StartDate)
			if err != nil {
				return &leave.ValidationError{Field: "startDate", Reason: "must be a valid date"}
			}
			end, err := shared.ParseDate(payload.EndDate)
			if err != nil {
				return &leave.ValidationError{Field: "endDate", Reason: "must be a valid date"}
			}
			if end.IsZero() {
				end = start
			}
			if err := d.SetDateRange(start, end); err != nil {
				return err
			}
		}
		if payload.Reason != nil {
			d.SetReason(*payload.Reason)
		}
		if payload.ODTimeType != nil {
			if err := d.SetODTime(*payload.ODTimeType, payload.ODStartTime, payload.ODEndTime); err != nil {
				return err
			}
		}
		if payload.SelectedCCLDays != nil {
			if err := d.SelectCCLDays(payload.SelectedCCLDays); err != nil {
				return err
			}
		}
		return nil
	})
}

func (h *Handler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	h.withDraft(w, r, func(d *wizard.Draft) error { return d.AdvanceStep() })
}

func (h *Handler) handleBack(w http.ResponseWriter, r *http.Request) {
	h.withDraft(w, r, func(d *wizard.Draft) error {
		d.GoBack()
		return nil
	})
}

type addPeriodRequest struct {
	PeriodNumber      int    `json:"periodNumber"`
	SubstituteFaculty string `json:"substituteFaculty"`
	AssignedClass     string `json:"assignedClass"`
}

func (h *Handler) handleAddPeriod(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload addPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	h.withDraft(w, r, func(d *wizard.Draft) error {
		return d.AddPeriod(d.CurrentDay, leave.PeriodAssignment{
			PeriodNumber:  payload.PeriodNumber,
			SubstituteID:  payload.SubstituteFaculty,
			AssignedClass: payload.AssignedClass,
		})
	})
}

func (h *Handler) handleRemovePeriod(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	periodNumber, err := strconv.Atoi(chi.URLParam(r, "periodNumber"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "periodNumber must be a number", reqID)
		return
	}
	h.withDraft(w, r, func(d *wizard.Draft) error {
		return d.RemovePeriod(d.CurrentDay, periodNumber)
	})
}

func (h *Handler) handleNextDay(w http.ResponseWriter, r *http.Request) {
	h.withDraft(w, r, func(d *wizard.Draft) error {
		return d.NextDay(r.Context(), h.Availability)
	})
}

func (h *Handler) handlePrevDay(w http.ResponseWriter, r *http.Request) {
	h.withDraft(w, r, func(d *wizard.Draft) error { return d.PreviousDay() })
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	h.Registry.Discard(user.UserID)
	api.Success(w, map[string]string{"status": "discarded"}, reqID)
}

type serviceSubmitter struct {
	svc *leave.Service
}

func (s serviceSubmitter) Submit(ctx context.Context, in leave.SubmissionInput) (leave.CreateResult, error) {
	return s.svc.CreateRequest(ctx, in)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	result, err := h.Registry.Submit(r.Context(), user.UserID, serviceSubmitter{svc: h.Leave})
	if err != nil {
		failWizardError(w, err, reqID)
		return
	}

	if result.HODUserID != "" {
		body := fmt.Sprintf("%s submitted a leave request.", result.OwnerName)
		if err := h.Notify.Notify(r.Context(), result.HODUserID, notifications.TypeLeaveSubmitted, "New leave request", body); err != nil {
			slog.Warn("submit notification failed", "requestId", result.ID, "err", err)
		}
	}
	if err := h.Audit.Record(r.Context(), user.UserID, "leave.request.create", "leave_request", result.ID, reqID, shared.ClientIP(r), nil, map[string]string{"via": "wizard"}); err != nil {
		slog.Warn("audit wizard submit failed", "err", err)
	}
	api.Created(w, map[string]string{"id": result.ID, "status": result.Status}, reqID)
}

// withDraft runs the mutation against the caller's draft and responds
// with the refreshed draft view.
func (h *Handler) withDraft(w http.ResponseWriter, r *http.Request, fn func(*wizard.Draft) error) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var view map[string]any
	err := h.Registry.With(user.UserID, func(d *wizard.Draft) error {
		if err := fn(d); err != nil {
			return err
		}
		view = draftView(d)
		return nil
	})
	if err != nil {
		failWizardError(w, err, reqID)
		return
	}
	api.Success(w, view, reqID)
}

func draftView(d *wizard.Draft) map[string]any {
	view := map[string]any{
		"id":            d.ID,
		"employeeId":    d.Employee.EmployeeID,
		"employeeModel": d.Employee.Model,
		"cclBalance":    d.CCLBalance,
		"leaveType":     d.LeaveType,
		"isHalfDay":     d.IsHalfDay,
		"session":       d.Session,
		"reason":        d.Reason,
		"step":          int(d.Step),
		"canSubmit":     d.CanSubmit(),
	}
	if !d.StartDate.IsZero() {
		view["startDate"] = d.StartDate.Format("2006-01-02")
		view["endDate"] = d.EndDate.Format("2006-01-02")
	}
	if days, err := d.RequestedDays(); err == nil {
		view["numberOfDays"] = days
	}
	if d.ODTimeType != "" {
		view["odTimeType"] = d.ODTimeType
		view["odStartTime"] = d.ODStartTime
		view["odEndTime"] = d.ODEndTime
	}
	if len(d.SelectedCCLDays) > 0 {
		view["selectedCCLDays"] = d.SelectedCCLDays
	}
	if d.Step == wizard.StepSchedule {
		view["currentDay"] = d.CurrentDay
		view["schedule"] = d.Schedule
		if free, err := d.AvailablePeriods(d.CurrentDay); err == nil {
			view["availablePeriods"] = free
		}
	}
	return view
}

func failWizardError(w http.ResponseWriter, err error, reqID string) {
	var duplicate *wizard.DuplicatePeriodError
	var incomplete *wizard.IncompleteFieldsError
	var emptyDay *wizard.EmptyDayError
	var notSelectable *wizard.PeriodNotSelectableError
	var validation *leave.ValidationError
	var availability *leave.AvailabilityError

	switch {
	case errors.Is(err, wizard.ErrNoDraft):
		api.Fail(w, http.StatusNotFound, "no_draft", err.Error(), reqID)
	case errors.Is(err, wizard.ErrSubmitInFlight):
		api.Fail(w, http.StatusConflict, "submit_in_flight", err.Error(), reqID)
	case errors.Is(err, wizard.ErrNotTeaching),
		errors.Is(err, wizard.ErrLeaveTypeLocked),
		errors.Is(err, wizard.ErrNoSuchDay),
		errors.Is(err, wizard.ErrAlreadyLastDay):
		api.Fail(w, http.StatusConflict, "wizard_state", err.Error(), reqID)
	case errors.As(err, &duplicate):
		api.Fail(w, http.StatusConflict, "duplicate_period", err.Error(), reqID)
	case errors.As(err, &incomplete):
		api.Fail(w, http.StatusBadRequest, "incomplete_period", err.Error(), reqID)
	case errors.As(err, &emptyDay):
		api.Fail(w, http.StatusBadRequest, "empty_day", err.Error(), reqID)
	case errors.As(err, &notSelectable):
		api.Fail(w, http.StatusBadRequest, "period_not_selectable", err.Error(), reqID)
	case errors.As(err, &validation):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: validation.Field, Reason: validation.Reason}})
	case errors.As(err, &availability):
		api.FailWithDetails(w, http.StatusConflict, "substitute_unavailable", availability.Message,
			map[string]string{"facultyId": availability.FacultyID, "date": availability.Date.Format("2006-01-02")}, reqID)
	case errors.Is(err, leave.ErrInsufficientBalance):
		api.Fail(w, http.StatusUnprocessableEntity, "insufficient_balance", err.Error(), reqID)
	case errors.Is(err, leave.ErrUnknownKind),
		errors.Is(err, leave.ErrHalfDayNotAllowed),
		errors.Is(err, leave.ErrMissingTimeRange),
		errors.Is(err, leave.ErrWorkDayNotUsable),
		errors.Is(err, leave.ErrEndBeforeStart),
		errors.Is(err, leave.ErrStartTooEarly),
		errors.Is(err, leave.ErrRangeTooLong),
		errors.Is(err, leave.ErrHalfDayMultiDay),
		errors.Is(err, leave.ErrUnknownSession):
		api.Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "wizard_failed", "operation failed", reqID)
	}
}
