package itemrequest

import (
	"time"

	"github.com/shareloop/shareloop-backend/internal/item"
	"github.com/shareloop/shareloop-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound("item request not found")
	ErrDescriptionRequired = apperror.Validation("request description must not be blank")
)

// ItemRequest is a user's ask for an item nobody has listed yet. Owners
// answer it by creating items that point back at the request.
type ItemRequest struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time
}

// View pairs a request with the items created in answer to it.
type View struct {
	Request *ItemRequest
	Items   []*item.Item
}
