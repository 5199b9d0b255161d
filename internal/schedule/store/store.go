// Package store owns the authoritative in-memory set of surgery bookings.
//
// All mutating operations are serialized behind one lock. Each mutation runs
// the same commit sequence: mutate the record set, persist a snapshot
// (best-effort), then broadcast the new full set to subscribers. Reads always
// observe a fully-committed snapshot, and every booking that leaves the store
// is a copy.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"orsched/internal/schedule/conflict"
	scherrors "orsched/internal/schedule/errors"
	"orsched/internal/schedule/filter"
	"orsched/internal/schedule/validator"
	"orsched/internal/storage"
	apperrors "orsched/pkg/errors"
	"orsched/pkg/logger"
	"orsched/pkg/model"
	"orsched/pkg/sanitizer"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	bookings []model.Booking
	closed   bool

	snapshots storage.SnapshotStorage
	validator *validator.BookingValidator
	log       *logger.Logger

	subs    map[uint64]*Subscription
	nextSub uint64
}

func New(snapshots storage.SnapshotStorage, v *validator.BookingValidator, log *logger.Logger) *Store {
	return &Store{
		snapshots: snapshots,
		validator: v,
		log:       log,
		subs:      make(map[uint64]*Subscription),
	}
}

// Load restores the booking set from persisted state. When no snapshot exists
// or it cannot be decoded, the seed set is imported instead (which persists
// it). Records coming off a snapshot are normalized for back-compatibility:
// absent urgency defaults to elective, absent status to unscheduled.
func (s *Store) Load(ctx context.Context, seed []model.Booking) error {
	loaded, err := s.snapshots.Load(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNoSnapshot) {
			s.log.Warn("Failed to load schedule snapshot, falling back to seed data", "error", err)
		}
		return s.ImportAll(ctx, seed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = make([]model.Booking, 0, len(loaded))
	for _, b := range loaded {
		s.bookings = append(s.bookings, normalize(b.Clone()))
	}
	s.publishLocked()

	s.log.Info("Schedule snapshot loaded", "bookings", len(s.bookings))
	return nil
}

// Create assigns a fresh id, appends the booking and commits. It does not
// check room-time conflicts; callers gate on CheckConflict first.
func (s *Store) Create(ctx context.Context, draft model.Booking) (model.Booking, error) {
	draft = normalize(draft.Clone())
	if err := s.validate(&draft); err != nil {
		return model.Booking{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft.ID = uuid.NewString()
	s.bookings = append(s.bookings, draft)
	s.commitLocked(ctx)

	s.log.Info("Booking created",
		"id", draft.ID,
		"operating_room", draft.OperatingRoom,
		"start_time", draft.StartTime,
	)
	return draft.Clone(), nil
}

// Get returns a copy of the booking with the given id.
func (s *Store) Get(id string) (model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.ID == id {
			return b.Clone(), nil
		}
	}
	return model.Booking{}, notFoundErr(id)
}

// Update merges the patch over the stored record and commits. The id is never
// overwritten. Fails with a not-found error for unknown ids, leaving the set
// unchanged.
func (s *Store) Update(ctx context.Context, id string, patch model.BookingPatch) (model.Booking, error) {
	if id == "" {
		return model.Booking{}, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if err := s.validator.ValidatePatch(&patch); err != nil {
		s.log.Warn("Booking patch validation failed", "id", id, "error", err)
		return model.Booking{}, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, b := range s.bookings {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.Booking{}, notFoundErr(id)
	}

	merged := patch.Apply(s.bookings[idx])
	if err := s.validate(&merged); err != nil {
		return model.Booking{}, err
	}

	s.bookings[idx] = merged
	s.commitLocked(ctx)

	s.log.Info("Booking updated", "id", id)
	return merged.Clone(), nil
}

// Delete removes the booking if present. A missing id is a no-op, not an
// error; the commit still runs either way.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.bookings[:0]
	removed := false
	for _, b := range s.bookings {
		if b.ID == id {
			removed = true
			continue
		}
		kept = append(kept, b)
	}
	s.bookings = kept
	s.commitLocked(ctx)

	if removed {
		s.log.Info("Booking deleted", "id", id)
	}
	return nil
}

// CheckConflict reports every existing booking occupying the candidate's room
// during an overlapping window. A conflict is data, not an error. excludeID
// lets an in-place update skip its own record.
func (s *Store) CheckConflict(candidate model.Booking, excludeID string) model.ConflictResult {
	s.mu.RLock()
	conflicting := conflict.Find(candidate, s.bookings, excludeID)
	s.mu.RUnlock()

	result := model.ConflictResult{
		HasConflict:          len(conflicting) > 0,
		ConflictingSchedules: make([]model.Booking, 0, len(conflicting)),
	}
	for _, b := range conflicting {
		result.ConflictingSchedules = append(result.ConflictingSchedules, b.Clone())
	}
	if result.HasConflict {
		result.Message = fmt.Sprintf("operating room %s already has a booking in that time slot", candidate.OperatingRoom)
	}
	return result
}

// Query returns the bookings matching the criteria, in insertion order. A nil
// criteria returns the full set.
func (s *Store) Query(criteria *model.FilterCriteria) []model.Booking {
	s.mu.RLock()
	snapshot := s.cloneAllLocked()
	s.mu.RUnlock()

	if criteria == nil {
		return snapshot
	}
	return filter.Apply(*criteria, snapshot)
}

// Doctors returns the distinct, sorted names of all primary and assistant
// doctors across the current bookings.
func (s *Store) Doctors() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, b := range s.bookings {
		seen[b.DoctorName] = struct{}{}
		for _, d := range b.AssistantDoctors {
			seen[d] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// OperatingRooms returns the distinct, sorted room names in use.
func (s *Store) OperatingRooms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, b := range s.bookings {
		seen[b.OperatingRoom] = struct{}{}
	}
	return sortedKeys(seen)
}

// SurgeryTypes returns the distinct, sorted surgery types in use.
func (s *Store) SurgeryTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, b := range s.bookings {
		seen[b.SurgeryType] = struct{}{}
	}
	return sortedKeys(seen)
}

// ImportAll unconditionally replaces the entire record set. Used for initial
// load; records bypass validation and conflict checking.
func (s *Store) ImportAll(ctx context.Context, records []model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = make([]model.Booking, 0, len(records))
	for _, b := range records {
		s.bookings = append(s.bookings, normalize(b.Clone()))
	}
	s.commitLocked(ctx)

	s.log.Info("Booking set imported", "bookings", len(s.bookings))
	return nil
}

// AppendAll unions a batch onto the existing set. Dedup is the caller's
// responsibility. An empty batch is a no-op.
func (s *Store) AppendAll(ctx context.Context, records []model.Booking) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range records {
		s.bookings = append(s.bookings, normalize(b.Clone()))
	}
	s.commitLocked(ctx)

	s.log.Info("Booking batch appended", "appended", len(records), "total", len(s.bookings))
	return nil
}

// Clear empties the record set and removes the persisted snapshot.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = nil
	if err := s.snapshots.Clear(ctx); err != nil {
		s.log.Error("Failed to clear persisted snapshot", "error", err)
	}
	s.publishLocked()

	s.log.Info("Booking set cleared")
	return nil
}

// Close shuts down all subscriptions. The store must not be mutated after.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for id, sub := range s.subs {
		delete(s.subs, id)
		close(sub.ch)
	}
}

// --- Helpers ---

// commitLocked persists the current set and broadcasts it. Persistence
// failures are logged and never roll back the in-memory mutation. Callers
// must hold the write lock.
func (s *Store) commitLocked(ctx context.Context) {
	if err := s.snapshots.Save(ctx, s.cloneAllLocked()); err != nil {
		s.log.Error("Failed to persist schedule snapshot", "error", err, "bookings", len(s.bookings))
	}
	s.publishLocked()
}

func (s *Store) cloneAllLocked() []model.Booking {
	snapshot := make([]model.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		snapshot = append(snapshot, b.Clone())
	}
	return snapshot
}

func (s *Store) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func normalize(b model.Booking) model.Booking {
	if b.Urgency == "" {
		b.Urgency = model.UrgencyElective
	}
	if b.Status == "" {
		b.Status = model.StatusUnscheduled
	}

	b.PatientName = sanitizer.TrimAndNormalize(b.PatientName)
	b.DoctorName = sanitizer.TrimAndNormalize(b.DoctorName)
	b.AnesthetistName = sanitizer.TrimAndNormalize(b.AnesthetistName)
	b.OperatingRoom = sanitizer.TrimAndNormalize(b.OperatingRoom)
	b.SurgeryType = sanitizer.TrimAndNormalize(b.SurgeryType)
	b.Dept = sanitizer.TrimAndNormalize(b.Dept)
	b.Ward = sanitizer.TrimAndNormalize(b.Ward)
	b.AssistantDoctors = sanitizer.NormalizeAll(b.AssistantDoctors)
	b.NurseNames = sanitizer.NormalizeAll(b.NurseNames)

	return b
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// notFoundErr builds the caller-facing not-found error while keeping the
// domain sentinel reachable through errors.Is.
func notFoundErr(id string) error {
	appErr := apperrors.NotFoundWithID("Booking", id)
	appErr.Err = scherrors.ErrNotFound
	return appErr
}
