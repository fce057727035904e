package corehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"campusleave/internal/domain/audit"
	"campusleave/internal/domain/auth"
	"campusleave/internal/domain/core"
	"campusleave/internal/transport/http/api"
	"campusleave/internal/transport/http/middleware"
	"campusleave/internal/transport/http/shared"
)

type Handler struct {
	Service *core.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *core.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/me", h.handleMe)
	r.Route("/campuses", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermCoreRead, h.Perms)).Get("/", h.handleListCampuses)
		r.With(middleware.RequirePermission(auth.PermSystemAdmin, h.Perms)).Post("/", h.handleCreateCampus)
	})
	r.Route("/departments", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermCoreRead, h.Perms)).Get("/", h.handleListDepartments)
		r.With(middleware.RequirePermission(auth.PermCoreWrite, h.Perms)).Post("/", h.handleCreateDepartment)
		r.With(middleware.RequirePermission(auth.PermCoreWrite, h.Perms)).Put("/{departmentID}/hod", h.handleAssignHOD)
	})
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermCoreRead, h.Perms)).Get("/", h.handleListEmployees)
		r.With(middleware.RequirePermission(auth.PermCoreWrite, h.Perms)).Post("/", h.handleCreateEmployee)
		r.With(middleware.RequirePermission(auth.PermCoreRead, h.Perms)).Get("/{employeeID}", h.handleGetEmployee)
		r.With(middleware.RequirePermission(auth.PermCoreWrite, h.Perms)).Put("/{employeeID}", h.handleUpdateEmployee)
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	emp, err := h.Service.GetEmployeeByUserID(r.Context(), user.UserID)
	if err != nil {
		emp = nil
	}
	api.Success(w, map[string]any{
		"user": map[string]string{
			"id":       user.UserID,
			"roleId":   user.RoleID,
			"role":     user.RoleName,
			"campusId": user.CampusID,
		},
		"employee": emp,
	}, reqID)
}

func (h *Handler) handleListCampuses(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	campuses, err := h.Service.ListCampuses(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "campus_list_failed", "failed to list campuses", reqID)
		return
	}
	api.Success(w, campuses, reqID)
}

type createCampusRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (h *Handler) handleCreateCampus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload createCampusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	v.Required("code", payload.Code, "is required")
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.CreateCampus(r.Context(), payload.Name, payload.Code)
	if err != nil {
		failCoreError(w, err, reqID)
		return
	}
	h.record(r, user.UserID, "core.campus.create", "campus", id, payload)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	departments, err := h.Service.ListDepartments(r.Context(), r.URL.Query().Get("campusId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_list_failed", "failed to list departments", reqID)
		return
	}
	api.Success(w, departments, reqID)
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload core.Department
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	id, err := h.Service.CreateDepartment(r.Context(), payload)
	if err != nil {
		failCoreError(w, err, reqID)
		return
	}
	h.record(r, user.UserID, "core.department.create", "department", id, payload)
	api.Created(w, map[string]string{"id": id}, reqID)
}

type assignHODRequest struct {
	EmployeeID string `json:"employeeId"`
}

func (h *Handler) handleAssignHOD(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	departmentID := chi.URLParam(r, "departmentID")

	var payload assignHODRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeId is required", reqID)
		return
	}

	if err := h.Service.AssignHOD(r.Context(), departmentID, payload.EmployeeID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "department or employee not found in that department", reqID)
			return
		}
		failCoreError(w, err, reqID)
		return
	}
	h.record(r, user.UserID, "core.department.assign_hod", "department", departmentID, payload)
	api.Success(w, map[string]string{"status": "assigned"}, reqID)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employees, err := h.Service.ListEmployees(r.Context(), r.URL.Query().Get("campusId"), r.URL.Query().Get("departmentId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", reqID)
		return
	}
	api.Success(w, employees, reqID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	emp, err := h.Service.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload core.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	id, err := h.Service.CreateEmployee(r.Context(), payload)
	if err != nil {
		failCoreError(w, err, reqID)
		return
	}
	h.record(r, user.UserID, "core.employee.create", "employee", id, payload)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	before, err := h.Service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}

	var payload core.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	if err := h.Service.UpdateEmployee(r.Context(), employeeID, payload); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		failCoreError(w, err, reqID)
		return
	}
	if err := h.Audit.Record(r.Context(), user.UserID, "core.employee.update", "employee", employeeID, reqID, shared.ClientIP(r), before, payload); err != nil {
		slog.Warn("audit core.employee.update failed", "err", err)
	}
	api.Success(w, map[string]string{"status": "updated"}, reqID)
}

func (h *Handler) record(r *http.Request, actorID, action, entityType, entityID string, after any) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Audit.Record(r.Context(), actorID, action, entityType, entityID, reqID, shared.ClientIP(r), nil, after); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}

func failCoreError(w http.ResponseWriter, err error, reqID string) {
	var fieldErr *core.FieldError
	var pgErr *pgconn.PgError

	switch {
	case errors.As(err, &fieldErr):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: fieldErr.Field, Reason: fieldErr.Reason}})
	case errors.As(err, &pgErr) && pgErr.Code == "23505":
		api.Fail(w, http.StatusConflict, "duplicate", "a record with those details already exists", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "core_operation_failed", "operation failed", reqID)
	}
}
