package item

import (
	"context"
	"time"

	"github.com/shareloop/shareloop-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound("item not found")
	ErrNotOwner            = apperror.NotFound("item owner not found")
	ErrDescriptionRequired = apperror.Validation("description must not be blank")
	ErrEmptyComment        = apperror.Validation("comment text must not be blank")
	ErrNeverRented         = apperror.Validation("item was never rented by this user")
)

// Item is a listing owned by a user. RequestID points at the item request
// the listing answers, when there is one.
type Item struct {
	ID          int64
	Name        string
	Description string
	OwnerID     int64
	Available   bool
	RequestID   *int64
}

// BookingInfo is the slice of a booking that item views need.
type BookingInfo struct {
	ID       int64
	BookerID int64
	Start    time.Time
	End      time.Time
}

// LastNext pairs an item's most recent past booking with its soonest
// upcoming one. Either side may be nil.
type LastNext struct {
	Last *BookingInfo
	Next *BookingInfo
}

// BookingProvider supplies booking projections for item views. Implemented
// by the booking package and wired in by the container, keeping this package
// free of a dependency on the booking core.
type BookingProvider interface {
	// LastAndNext resolves the last/next bookings of one item, scoped to the
	// viewer's ownership: a non-owner viewer gets empty results.
	LastAndNext(ctx context.Context, itemID, viewerID int64) (LastNext, error)
	// LastAndNextBatch resolves last/next for several items with one store
	// round-trip, keyed by item id.
	LastAndNextBatch(ctx context.Context, itemIDs []int64) (map[int64]LastNext, error)
	// CompletedCount counts the user's bookings of the item that ended
	// before the given instant.
	CompletedCount(ctx context.Context, itemID, userID int64, at time.Time) (int64, error)
}

// RequestResolver reports whether an item request exists.
type RequestResolver interface {
	Exists(ctx context.Context, requestID int64) error
}
