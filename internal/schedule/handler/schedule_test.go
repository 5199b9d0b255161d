package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"orsched/internal/schedule/store"
	"orsched/internal/schedule/validator"
	"orsched/internal/storage"
	httputil "orsched/pkg/http"
	"orsched/pkg/logger"
	"orsched/pkg/model"
)

// Throwaway snapshot backend for handler tests
type nopStorage struct{}

func (nopStorage) Load(ctx context.Context) ([]model.Booking, error) {
	return nil, storage.ErrNoSnapshot
}

func (nopStorage) Save(ctx context.Context, bookings []model.Booking) error { return nil }

func (nopStorage) Clear(ctx context.Context) error { return nil }

func newTestRouter(t *testing.T) (*httprouter.Router, *store.Store) {
	t.Helper()
	log := logger.Discard()
	s := store.New(nopStorage{}, validator.NewBookingValidator(log), log)

	router := httprouter.New()
	NewScheduleHandler(s, log).RegisterRoutes(router)
	return router, s
}

func bookingFixture(patient, room string, startHour int) model.Booking {
	start := time.Date(2026, 3, 10, startHour, 0, 0, 0, time.UTC)
	return model.Booking{
		PatientName:   patient,
		SurgeryType:   "Appendectomy",
		DoctorName:    "Dr. Zhang",
		OperatingRoom: room,
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		Status:        model.StatusScheduled,
		Urgency:       model.UrgencyElective,
	}
}

func doJSON(t *testing.T, router *httprouter.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBooking(t *testing.T, rec *httptest.ResponseRecorder) model.Booking {
	t.Helper()
	var resp struct {
		Data model.Booking `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.Data
}

func TestCreateEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/schedules", bookingFixture("Alice Wong", "OR-1", 9))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if created := decodeBooking(t, rec); created.ID == "" {
		t.Errorf("created booking must carry an id")
	}
}

func TestCreateEndpoint_InvalidBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed JSON, got %d", rec.Code)
	}
}

func TestCreateEndpoint_ValidationFailure(t *testing.T) {
	router, _ := newTestRouter(t)

	invalid := bookingFixture("", "OR-1", 9)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/schedules", invalid)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for invalid booking, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp httputil.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error == "" {
		t.Errorf("error response must carry a message")
	}
}

func TestGetByIDEndpoint(t *testing.T) {
	router, s := newTestRouter(t)

	created, err := s.Create(context.Background(), bookingFixture("Alice Wong", "OR-1", 9))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/schedules/id/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decodeBooking(t, rec); got.PatientName != "Alice Wong" {
		t.Errorf("unexpected booking in response: %+v", got)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/schedules/id/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", rec.Code)
	}
}

func TestGetAllEndpoint_WithFilters(t *testing.T) {
	router, s := newTestRouter(t)
	ctx := context.Background()

	b1 := bookingFixture("Alice Wong", "OR-1", 9)
	b2 := bookingFixture("Bob Chen", "OR-2", 11)
	b2.DoctorName = "Dr. Li"
	for _, b := range []model.Booking{b1, b2} {
		if _, err := s.Create(ctx, b); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/schedules?doctor=Dr.+Li", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []model.Booking `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].PatientName != "Bob Chen" {
		t.Errorf("expected only Dr. Li's booking, got %+v", resp.Data)
	}
}

func TestGetAllEndpoint_InvalidDate(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/schedules?start_date=yesterday", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a non-RFC3339 date, got %d", rec.Code)
	}
}

func TestUpdateEndpoint(t *testing.T) {
	router, s := newTestRouter(t)

	created, err := s.Create(context.Background(), bookingFixture("Alice Wong", "OR-1", 9))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rec := doJSON(t, router, http.MethodPatch, "/api/v1/schedules/id/"+created.ID,
		map[string]string{"operating_room": "OR-3"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeBooking(t, rec); got.OperatingRoom != "OR-3" || got.ID != created.ID {
		t.Errorf("patch not applied: %+v", got)
	}

	rec = doJSON(t, router, http.MethodPatch, "/api/v1/schedules/id/missing",
		map[string]string{"operating_room": "OR-3"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", rec.Code)
	}
}

func TestDeleteEndpoint(t *testing.T) {
	router, s := newTestRouter(t)

	created, err := s.Create(context.Background(), bookingFixture("Alice Wong", "OR-1", 9))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/schedules/id/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if _, err := s.Get(created.ID); err == nil {
		t.Errorf("booking must be gone after delete")
	}
}

func TestConflictCheckEndpoint(t *testing.T) {
	router, s := newTestRouter(t)

	if _, err := s.Create(context.Background(), bookingFixture("Alice Wong", "OR-1", 9)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	candidate := bookingFixture("Bob Chen", "OR-1", 9)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/schedules/conflict-check",
		map[string]any{"booking": candidate})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data model.ConflictResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Data.HasConflict || len(resp.Data.ConflictingSchedules) != 1 {
		t.Errorf("expected one conflict, got %+v", resp.Data)
	}
}

func TestListEndpoints(t *testing.T) {
	router, s := newTestRouter(t)

	b := bookingFixture("Alice Wong", "OR-2", 9)
	b.AssistantDoctors = []string{"Dr. Li"}
	if _, err := s.Create(context.Background(), b); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	tests := []struct {
		path string
		want []string
	}{
		{"/api/v1/schedules/doctors", []string{"Dr. Li", "Dr. Zhang"}},
		{"/api/v1/schedules/rooms", []string{"OR-2"}},
		{"/api/v1/schedules/surgery-types", []string{"Appendectomy"}},
	}
	for _, tt := range tests {
		rec := doJSON(t, router, http.MethodGet, tt.path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tt.path, rec.Code)
		}
		var resp struct {
			Data []string `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("%s: failed to decode response: %v", tt.path, err)
		}
		if len(resp.Data) != len(tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.path, tt.want, resp.Data)
			continue
		}
		for i := range tt.want {
			if resp.Data[i] != tt.want[i] {
				t.Errorf("%s: expected %v, got %v", tt.path, tt.want, resp.Data)
				break
			}
		}
	}
}

func TestEventsEndpoint(t *testing.T) {
	router, s := newTestRouter(t)

	if _, err := s.Create(context.Background(), bookingFixture("Alice Wong", "OR-1", 9)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/schedules/events", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []model.CalendarEvent `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected one event, got %d", len(resp.Data))
	}
	if resp.Data[0].Title == "" || resp.Data[0].BackgroundColor == "" {
		t.Errorf("event must carry a title and a status color: %+v", resp.Data[0])
	}
}

func TestImportAppendClearEndpoints(t *testing.T) {
	router, s := newTestRouter(t)

	batch := []model.Booking{
		{ID: "seed-1", PatientName: "Alice Wong"},
		{ID: "seed-2", PatientName: "Bob Chen"},
	}
	rec := doJSON(t, router, http.MethodPost, "/api/v1/schedules/import", batch)
	if rec.Code != http.StatusOK {
		t.Fatalf("import: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := len(s.Query(nil)); got != 2 {
		t.Fatalf("import must replace the set, got %d bookings", got)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/schedules/append",
		[]model.Booking{{ID: "seed-3", PatientName: "Carol Liu"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("append: expected 200, got %d", rec.Code)
	}
	if got := len(s.Query(nil)); got != 3 {
		t.Fatalf("append must union onto the set, got %d bookings", got)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/schedules", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("clear: expected 204, got %d", rec.Code)
	}
	if got := len(s.Query(nil)); got != 0 {
		t.Errorf("clear must empty the set, got %d bookings", got)
	}
}

func TestStatusOptionsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/schedules/status-options", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []model.StatusOption `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 5 {
		t.Errorf("expected 5 status options, got %d", len(resp.Data))
	}
}

func TestHealthEndpoints(t *testing.T) {
	log := logger.Discard()
	router := httprouter.New()
	NewHealthHandler(nil, log).RegisterRoutes(router)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", rec.Code)
	}

	// Without a database client readiness is liveness.
	rec = doJSON(t, router, http.MethodGet, "/ready", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("ready: expected 200, got %d", rec.Code)
	}
}
