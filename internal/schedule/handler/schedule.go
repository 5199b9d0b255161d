package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"orsched/internal/schedule/store"
	apperrors "orsched/pkg/errors"
	httputil "orsched/pkg/http"
	"orsched/pkg/logger"
	"orsched/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ScheduleHandler struct {
	store *store.Store
	log   *logger.Logger
}

func NewScheduleHandler(store *store.Store, log *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		store: store,
		log:   log,
	}
}

func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	created, err := h.store.Create(r.Context(), booking)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ScheduleHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	booking, err := h.store.Get(id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	criteria, err := parseCriteria(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings := h.store.Query(criteria)
	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var patch model.BookingPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	updated, err := h.store.Update(r.Context(), id, patch)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, updated); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.store.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

type conflictCheckRequest struct {
	Booking   model.Booking `json:"booking"`
	ExcludeID string        `json:"exclude_id,omitempty"`
}

func (h *ScheduleHandler) CheckConflict(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req conflictCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CheckConflict", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	result := h.store.CheckConflict(req.Booking, req.ExcludeID)
	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckConflict", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) Doctors(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.store.Doctors()); err != nil {
		h.log.Error("failed to write success response", "handler", "Doctors", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) OperatingRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.store.OperatingRooms()); err != nil {
		h.log.Error("failed to write success response", "handler", "OperatingRooms", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) SurgeryTypes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.store.SurgeryTypes()); err != nil {
		h.log.Error("failed to write success response", "handler", "SurgeryTypes", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) Events(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	criteria, err := parseCriteria(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Events", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings := h.store.Query(criteria)
	events := make([]model.CalendarEvent, 0, len(bookings))
	for _, b := range bookings {
		events = append(events, model.ToCalendarEvent(b))
	}

	if err := httputil.WriteSuccess(w, events); err != nil {
		h.log.Error("failed to write success response", "handler", "Events", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) StatusOptions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, model.StatusOptions); err != nil {
		h.log.Error("failed to write success response", "handler", "StatusOptions", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) Import(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	records, ok := h.decodeBatch(w, r, "Import")
	if !ok {
		return
	}

	if err := h.store.ImportAll(r.Context(), records); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Import", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]int{"imported": len(records)}); err != nil {
		h.log.Error("failed to write success response", "handler", "Import", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) Append(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	records, ok := h.decodeBatch(w, r, "Append")
	if !ok {
		return
	}

	if err := h.store.AppendAll(r.Context(), records); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Append", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]int{"appended": len(records)}); err != nil {
		h.log.Error("failed to write success response", "handler", "Append", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) Clear(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.store.Clear(r.Context()); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Clear", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ScheduleHandler) decodeBatch(w http.ResponseWriter, r *http.Request, handlerName string) ([]model.Booking, bool) {
	var records []model.Booking
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body, expected a JSON array of bookings",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", handlerName, "operation", "WriteJSON", "error", writeErr)
		}
		return nil, false
	}
	return records, true
}

// parseCriteria builds filter criteria from query parameters. A request with
// no recognized parameters yields nil, which the store treats as "everything".
func parseCriteria(r *http.Request) (*model.FilterCriteria, error) {
	query := r.URL.Query()
	var criteria model.FilterCriteria

	if startStr := query.Get("start_date"); startStr != "" {
		parsed, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid start_date parameter: %s, must be RFC3339", startStr))
		}
		criteria.StartDate = &parsed
	}
	if endStr := query.Get("end_date"); endStr != "" {
		parsed, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid end_date parameter: %s, must be RFC3339", endStr))
		}
		criteria.EndDate = &parsed
	}

	criteria.Keyword = query.Get("keyword")
	criteria.Urgency = model.Urgency(query.Get("urgency"))
	criteria.DoctorName = query.Get("doctor")
	criteria.OperatingRoom = query.Get("room")
	criteria.SurgeryType = query.Get("surgery_type")

	if statusStr := query.Get("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				criteria.Status = append(criteria.Status, model.Status(part))
			}
		}
	}

	if criteria.IsZero() {
		return nil, nil
	}
	return &criteria, nil
}

func (h *ScheduleHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/schedules", h.Create)
	router.GET("/api/v1/schedules", h.GetAll)
	router.DELETE("/api/v1/schedules", h.Clear)
	router.GET("/api/v1/schedules/id/:id", h.GetByID)
	router.PATCH("/api/v1/schedules/id/:id", h.Update)
	router.DELETE("/api/v1/schedules/id/:id", h.Delete)
	router.POST("/api/v1/schedules/conflict-check", h.CheckConflict)
	router.GET("/api/v1/schedules/doctors", h.Doctors)
	router.GET("/api/v1/schedules/rooms", h.OperatingRooms)
	router.GET("/api/v1/schedules/surgery-types", h.SurgeryTypes)
	router.GET("/api/v1/schedules/events", h.Events)
	router.GET("/api/v1/schedules/status-options", h.StatusOptions)
	router.POST("/api/v1/schedules/import", h.Import)
	router.POST("/api/v1/schedules/append", h.Append)
}
