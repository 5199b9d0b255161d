// Package storage persists the full booking set as an opaque snapshot blob.
package storage

import (
	"context"
	"errors"

	"orsched/pkg/model"
)

// ErrNoSnapshot is returned by Load when no snapshot has ever been saved.
// The store treats it as "no prior state" and falls back to seed data.
var ErrNoSnapshot = errors.New("no persisted snapshot")

// SnapshotStorage saves and restores the authoritative booking set in one
// piece. Implementations must round-trip timestamps.
type SnapshotStorage interface {
	Load(ctx context.Context) ([]model.Booking, error)
	Save(ctx context.Context, bookings []model.Booking) error
	Clear(ctx context.Context) error
}
