package booking

import (
	"time"

	"github.com/shareloop/shareloop-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.NotFound("booking not found")
	ErrOwnItem          = apperror.NotFound("item belongs to you")
	ErrNotItemOwner     = apperror.NotFound("you do not own this item")
	ErrNotParticipant   = apperror.NotFound("you did not book this item")
	ErrInvalidTimeRange = apperror.Validation("invalid booking time range")
	ErrItemUnavailable  = apperror.Validation("item is not available for booking")
	ErrAlreadyApproved  = apperror.Validation("booking already approved")
	ErrNoItems          = apperror.Validation("user has no items")
)

// Booking is a time-bounded reservation of an item by a booker, pending the
// owner's approval. Item and booker references are fixed at creation; only
// the status changes afterwards.
type Booking struct {
	ID          int64
	Start       time.Time
	End         time.Time
	Status      Status
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	BookerName  string
}
