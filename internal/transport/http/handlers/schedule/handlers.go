package schedulehandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusleave/internal/domain/auth"
	"campusleave/internal/domain/schedule"
	"campusleave/internal/transport/http/api"
	"campusleave/internal/transport/http/middleware"
	"campusleave/internal/transport/http/shared"
)

type Handler struct {
	Service *schedule.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *schedule.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/schedule", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermScheduleCheck, h.Perms)).
			Post("/availability", h.handleCheckAvailability)
	})
}

type availabilityRequest struct {
	FacultyID string `json:"facultyId"`
	Date      string `json:"date"`
	Periods   []int  `json:"periods"`
}

func (h *Handler) handleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("facultyId", payload.FacultyID, "is required")
	date, _ := v.Date("date", payload.Date)
	if len(payload.Periods) == 0 {
		v.Add("periods", "at least one period is required")
	}
	for _, p := range payload.Periods {
		if p < 1 || p > 7 {
			v.Add("periods", "periods must be between 1 and 7")
			break
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	result, err := h.Service.CheckAvailability(r.Context(), payload.FacultyID, date, payload.Periods)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "availability_failed", "availability check failed", reqID)
		return
	}

	api.Success(w, map[string]any{
		"available": result.OK,
		"message":   result.Message,
	}, reqID)
}
