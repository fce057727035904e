package leavehandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"campusleave/internal/domain/audit"
	"campusleave/internal/domain/auth"
	"campusleave/internal/domain/leave"
	"campusleave/internal/domain/notifications"
	"campusleave/internal/transport/http/api"
	"campusleave/internal/transport/http/middleware"
	"campusleave/internal/transport/http/shared"
)

type Handler struct {
	Service     *leave.Service
	Perms       middleware.PermissionStore
	Notify      *notifications.Service
	Audit       *audit.Service
	Idempotency *middleware.IdempotencyStore
}

func NewHandler(service *leave.Service, perms middleware.PermissionStore, notify *notifications.Service, auditSvc *audit.Service, idem *middleware.IdempotencyStore) *Handler {
	return &Handler{Service: service, Perms: perms, Notify: notify, Audit: auditSvc, Idempotency: idem}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/types", h.handleListTypes)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/balances", h.handleListBalances)
		r.With(middleware.RequirePermission(auth.PermSystemAdmin, h.Perms)).Post("/balances/adjust", h.handleAdjustBalance)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/requests", h.handleListRequests)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/requests/{requestID}", h.handleGetRequest)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite, h.Perms)).Post("/requests", h.handleCreateRequest)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove, h.Perms)).Put("/requests/{requestID}/transition", h.handleTransition)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/requests/{requestID}/pdf", h.handleRequestPDF)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/workdays", h.handleListWorkDays)
		r.With(middleware.RequirePermission(auth.PermCCLRecord, h.Perms)).Post("/workdays", h.handleRecordWorkDay)
		r.With(middleware.RequirePermission(auth.PermCCLApprove, h.Perms)).Put("/workdays/{workDayID}/transition", h.handleWorkDayTransition)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/ccl/balance", h.handleCCLBalance)
	})
}

func (h *Handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	api.Success(w, leave.Kinds(), middleware.GetRequestID(r.Context()))
}

// actingEmployee maps the authenticated user to an employee record,
// honoring an explicit employeeId only for reviewer roles.
func (h *Handler) actingEmployee(r *http.Request, user auth.UserContext, requested string) (string, error) {
	own, err := h.Service.Store.EmployeeIDByUser(r.Context(), user.UserID)
	if err != nil && requested == "" {
		return "", err
	}
	if requested == "" || requested == own {
		return own, nil
	}
	switch user.RoleName {
	case auth.RoleHOD, auth.RolePrincipal, auth.RoleHR, auth.RoleSuperAdmin:
		return requested, nil
	}
	return "", leave.ErrForbidden
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	var payload leave.SubmissionInput
	if err := json.Unmarshal(raw, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	idemKey := r.Header.Get("Idempotency-Key")
	requestHash := middleware.RequestHash(raw)
	if idemKey != "" {
		stored, found, err := h.Idempotency.Check(r.Context(), user.UserID, "leave.requests.create", idemKey, requestHash)
		if err != nil {
			if errors.Is(err, middleware.ErrIdempotencyConflict) {
				api.Fail(w, http.StatusConflict, "idempotency_conflict", "key was already used with a different payload", reqID)
				return
			}
			api.Fail(w, http.StatusInternalServerError, "leave_operation_failed", "idempotency check failed", reqID)
			return
		}
		if found {
			var replay any
			_ = json.Unmarshal(stored, &replay)
			api.Success(w, replay, reqID)
			return
		}
	}

	employeeID, err := h.actingEmployee(r, user, payload.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot submit for another employee", reqID)
		return
	}
	payload.EmployeeID = employeeID

	result, err := h.Service.CreateRequest(r.Context(), payload)
	if err != nil {
		failLeaveError(w, err, reqID)
		return
	}
	if idemKey != "" {
		response, _ := json.Marshal(map[string]string{"id": result.ID, "status": result.Status})
		if err := h.Idempotency.Save(r.Context(), user.UserID, "leave.requests.create", idemKey, requestHash, response); err != nil {
			slog.Warn("idempotency save failed", "requestId", result.ID, "err", err)
		}
	}

	if result.HODUserID != "" {
		title := "New leave request"
		body := fmt.Sprintf("%s submitted a %s request.", result.OwnerName, payload.KindCode)
		if err := h.Notify.Notify(r.Context(), result.HODUserID, notifications.TypeLeaveSubmitted, title, body); err != nil {
			slog.Warn("submit notification failed", "requestId", result.ID, "err", err)
		}
	}
	if err := h.Audit.Record(r.Context(), user.UserID, "leave.request.create", "leave_request", result.ID, reqID, shared.ClientIP(r), nil, payload); err != nil {
		slog.Warn("audit leave.request.create failed", "err", err)
	}
	api.Created(w, map[string]string{"id": result.ID, "status": result.Status}, reqID)
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	page := shared.ParsePagination(r, 20, 100)
	filter := leave.RequestFilter{
		Status: r.URL.Query().Get("status"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}

	switch user.RoleName {
	case auth.RoleEmployee:
		own, err := h.Service.Store.EmployeeIDByUser(r.Context(), user.UserID)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to resolve employee", reqID)
			return
		}
		filter.EmployeeID = own
	case auth.RoleHOD:
		own, err := h.Service.Store.EmployeeIDByUser(r.Context(), user.UserID)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to resolve employee", reqID)
			return
		}
		ec, err := h.Service.Store.EmployeeContext(r.Context(), own)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to resolve department", reqID)
			return
		}
		filter.DepartmentID = ec.DepartmentID
	case auth.RolePrincipal, auth.RoleHR:
		filter.CampusID = user.CampusID
	case auth.RoleSuperAdmin:
		// No scoping.
	}

	requests, total, err := h.Service.ListRequests(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list requests", reqID)
		return
	}
	api.Success(w, map[string]any{"items": requests, "total": total}, reqID)
}

func (h *Handler) canSeeRequest(r *http.Request, user auth.UserContext, request leave.Request) bool {
	switch user.RoleName {
	case auth.RolePrincipal, auth.RoleHR:
		return request.CampusID == user.CampusID
	case auth.RoleSuperAdmin:
		return true
	}
	own, err := h.Service.Store.EmployeeIDByUser(r.Context(), user.UserID)
	if err != nil {
		return false
	}
	if request.EmployeeID == own {
		return true
	}
	if user.RoleName == auth.RoleHOD {
		ec, err := h.Service.Store.EmployeeContext(r.Context(), own)
		if err != nil {
			return false
		}
		return ec.DepartmentID != "" && ec.DepartmentID == request.DepartmentID
	}
	return false
}

// canDecide limits decisions to the actor's own span: a HOD to their
// department, principal and HR to their campus. Unlike canSeeRequest,
// owning the request grants nothing here.
func (h *Handler) canDecide(r *http.Request, user auth.UserContext, campusID, departmentID string) bool {
	switch user.RoleName {
	case auth.RoleSuperAdmin:
		return true
	case auth.RolePrincipal, auth.RoleHR:
		return campusID != "" && campusID == user.CampusID
	case auth.RoleHOD:
		own, err := h.Service.Store.EmployeeIDByUser(r.Context(), user.UserID)
		if err != nil {
			return false
		}
		ec, err := h.Service.Store.EmployeeContext(r.Context(), own)
		if err != nil {
			return false
		}
		return ec.DepartmentID != "" && ec.DepartmentID == departmentID
	}
	return false
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	request, err := h.Service.GetRequest(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "request not found", reqID)
		return
	}
	if !h.canSeeRequest(r, user, request) {
		api.Fail(w, http.StatusForbidden, "forbidden", "request is outside your scope", reqID)
		return
	}
	api.Success(w, request, reqID)
}

type transitionRequest struct {
	Action             string `json:"action"`
	Remarks            string `json:"remarks"`
	ApprovedStartDate  string `json:"approvedStartDate"`
	ApprovedEndDate    string `json:"approvedEndDate"`
	ModificationReason string `json:"modificationReason"`
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	requestID := chi.URLParam(r, "requestID")

	var payload transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	validator := shared.NewValidator()
	validator.Required("action", payload.Action, "action is required")
	validator.Enum("action", payload.Action, []string{leave.ActionApprove, leave.ActionReject, leave.ActionForward}, "must be approve, reject or forward")
	decision := leave.Decision{
		Action:             strings.ToLower(strings.TrimSpace(payload.Action)),
		Remarks:            payload.Remarks,
		ModificationReason: payload.ModificationReason,
	}
	if payload.ApprovedStartDate != "" {
		if parsed, ok := validator.Date("approvedStartDate", payload.ApprovedStartDate); ok {
			decision.ApprovedStart = &parsed
		}
	}
	if payload.ApprovedEndDate != "" {
		if parsed, ok := validator.Date("approvedEndDate", payload.ApprovedEndDate); ok {
			decision.ApprovedEnd = &parsed
		}
	}
	if validator.Reject(w, reqID) {
		return
	}

	before, err := h.Service.GetRequest(r.Context(), requestID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "request not found", reqID)
		return
	}
	if !h.canDecide(r, user, before.CampusID, before.DepartmentID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "request is outside your scope", reqID)
		return
	}

	result, err := h.Service.Transition(r.Context(), requestID, user.UserID, user.RoleName, decision)
	if err != nil {
		failLeaveError(w, err, reqID)
		return
	}

	h.notifyTransition(r, result, decision)
	if err := h.Audit.Record(r.Context(), user.UserID, "leave.request."+decision.Action, "leave_request", requestID, reqID, shared.ClientIP(r),
		map[string]string{"status": before.Status}, map[string]string{"status": result.Status}); err != nil {
		slog.Warn("audit leave.request.transition failed", "err", err)
	}
	api.Success(w, map[string]any{"id": requestID, "status": result.Status, "approvedNumberOfDays": result.ApprovedDays}, reqID)
}

func (h *Handler) notifyTransition(r *http.Request, result leave.TransitionResult, decision leave.Decision) {
	if result.OwnerUserID == "" {
		return
	}
	var ntype, title string
	switch result.Status {
	case leave.StatusApproved:
		ntype, title = notifications.TypeLeaveApproved, "Leave request approved"
	case leave.StatusRejected:
		ntype, title = notifications.TypeLeaveRejected, "Leave request rejected"
	default:
		ntype, title = notifications.TypeLeaveForwarded, "Leave request forwarded"
	}
	body := fmt.Sprintf("Your %s request is now %s.", result.KindCode, result.Status)
	if decision.Remarks != "" {
		body += " Remarks: " + decision.Remarks
	}
	if err := h.Notify.Notify(r.Context(), result.OwnerUserID, ntype, title, body); err != nil {
		slog.Warn("transition notification failed", "requestId", result.RequestID, "err", err)
	}
}

func (h *Handler) handleRequestPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	requestID := chi.URLParam(r, "requestID")

	request, err := h.Service.GetRequest(r.Context(), requestID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "request not found", reqID)
		return
	}
	if !h.canSeeRequest(r, user, request) {
		api.Fail(w, http.StatusForbidden, "forbidden", "request is outside your scope", reqID)
		return
	}

	pdf, err := h.Service.GenerateRequestPDF(r.Context(), requestID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdf_failed", "failed to render application", reqID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=leave-application-%s.pdf", requestID))
	_, _ = w.Write(pdf)
}

func (h *Handler) handleListBalances(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	employeeID, err := h.actingEmployee(r, user, r.URL.Query().Get("employeeId"))
	if err != nil {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot view another employee's balances", reqID)
		return
	}
	balances, err := h.Service.ListBalances(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "balances_failed", "failed to list balances", reqID)
		return
	}
	api.Success(w, balances, reqID)
}

type adjustBalanceRequest struct {
	EmployeeID string  `json:"employeeId"`
	LeaveType  string  `json:"leaveType"`
	Amount     float64 `json:"amount"`
}

func (h *Handler) handleAdjustBalance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload adjustBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.EmployeeID == "" || payload.Amount == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeId and a non-zero amount are required", reqID)
		return
	}
	if err := h.Service.AdjustBalance(r.Context(), payload.EmployeeID, payload.LeaveType, payload.Amount); err != nil {
		failLeaveError(w, err, reqID)
		return
	}
	if err := h.Audit.Record(r.Context(), user.UserID, "leave.balance.adjust", "leave_balance", payload.EmployeeID, reqID, shared.ClientIP(r), nil, payload); err != nil {
		slog.Warn("audit leave.balance.adjust failed", "err", err)
	}
	api.Success(w, map[string]string{"status": "adjusted"}, reqID)
}

func (h *Handler) handleListWorkDays(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	employeeID, err := h.actingEmployee(r, user, r.URL.Query().Get("employeeId"))
	if err != nil {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot view another employee's work-days", reqID)
		return
	}
	onlyUsable := r.URL.Query().Get("usable") == "true"
	workDays, err := h.Service.ListWorkDays(r.Context(), employeeID, onlyUsable)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "workdays_failed", "failed to list work-days", reqID)
		return
	}
	api.Success(w, workDays, reqID)
}

type recordWorkDayRequest struct {
	EmployeeID string `json:"employeeId"`
	WorkDate   string `json:"workDate"`
	Event      string `json:"event"`
}

func (h *Handler) handleRecordWorkDay(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload recordWorkDayRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	validator := shared.NewValidator()
	validator.Required("employeeId", payload.EmployeeID, "employeeId is required")
	workDate, dateOK := validator.Date("workDate", payload.WorkDate)
	if validator.Reject(w, reqID) || !dateOK {
		return
	}

	id, err := h.Service.RecordWorkDay(r.Context(), payload.EmployeeID, workDate, payload.Event)
	if err != nil {
		failLeaveError(w, err, reqID)
		return
	}
	if ec, err := h.Service.Store.EmployeeContext(r.Context(), payload.EmployeeID); err == nil && ec.UserID != "" {
		body := fmt.Sprintf("A compensatory work-day on %s was recorded for you.", workDate.Format(time.DateOnly))
		if err := h.Notify.Notify(r.Context(), ec.UserID, notifications.TypeWorkDayRecorded, "Work-day recorded", body); err != nil {
			slog.Warn("workday notification failed", "workDayId", id, "err", err)
		}
	}
	if err := h.Audit.Record(r.Context(), user.UserID, "ccl.workday.record", "ccl_work_day", id, reqID, shared.ClientIP(r), nil, payload); err != nil {
		slog.Warn("audit ccl.workday.record failed", "err", err)
	}
	api.Created(w, map[string]string{"id": id, "status": leave.StatusPending}, reqID)
}

type workDayTransitionRequest struct {
	Action  string `json:"action"`
	Remarks string `json:"remarks"`
}

func (h *Handler) handleWorkDayTransition(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	workDayID := chi.URLParam(r, "workDayID")

	var payload workDayTransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	before, err := h.Service.Store.GetWorkDay(r.Context(), workDayID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "work-day not found", reqID)
		return
	}
	ec, err := h.Service.Store.EmployeeContext(r.Context(), before.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "workdays_failed", "failed to resolve employee", reqID)
		return
	}
	if !h.canDecide(r, user, ec.CampusID, ec.DepartmentID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "work-day is outside your scope", reqID)
		return
	}

	workDay, err := h.Service.TransitionWorkDay(r.Context(), workDayID, user.RoleName, strings.ToLower(strings.TrimSpace(payload.Action)), payload.Remarks)
	if err != nil {
		failLeaveError(w, err, reqID)
		return
	}
	if ec.UserID != "" {
		ntype := notifications.TypeWorkDayForwarded
		if leave.IsTerminal(workDay.Status) {
			ntype = notifications.TypeWorkDayDecided
		}
		body := fmt.Sprintf("Your recorded work-day is now %s.", workDay.Status)
		if err := h.Notify.Notify(r.Context(), ec.UserID, ntype, "Work-day update", body); err != nil {
			slog.Warn("workday notification failed", "workDayId", workDayID, "err", err)
		}
	}
	if err := h.Audit.Record(r.Context(), user.UserID, "ccl.workday."+payload.Action, "ccl_work_day", workDayID, reqID, shared.ClientIP(r), nil, map[string]string{"status": workDay.Status}); err != nil {
		slog.Warn("audit ccl.workday.transition failed", "err", err)
	}
	api.Success(w, workDay, reqID)
}

func (h *Handler) handleCCLBalance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	employeeID, err := h.actingEmployee(r, user, r.URL.Query().Get("employeeId"))
	if err != nil {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot view another employee's balance", reqID)
		return
	}
	balance, err := h.Service.CCLBalance(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "ccl_balance_failed", "failed to fetch balance", reqID)
		return
	}
	api.Success(w, map[string]float64{"balance": balance}, reqID)
}

// failLeaveError maps domain errors onto the response envelope, keeping
// the domain's message so the client can show it verbatim.
func failLeaveError(w http.ResponseWriter, err error, reqID string) {
	var validation *leave.ValidationError
	var availability *leave.AvailabilityError

	switch {
	case errors.As(err, &validation):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: validation.Field, Reason: validation.Reason}})
	case errors.As(err, &availability):
		api.FailWithDetails(w, http.StatusConflict, "substitute_unavailable", availability.Message,
			map[string]string{"facultyId": availability.FacultyID, "date": availability.Date.Format(time.DateOnly)}, reqID)
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
	case errors.Is(err, leave.ErrRemarksRequired),
		errors.Is(err, leave.ErrModificationReasonRequired):
		api.Fail(w, http.StatusBadRequest, "decision_incomplete", err.Error(), reqID)
	case errors.Is(err, leave.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "invalid_transition", err.Error(), reqID)
	case errors.Is(err, leave.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), reqID)
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "leave_operation_failed", "operation failed", reqID)
	}
}
