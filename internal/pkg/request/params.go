package request

import "github.com/shareloop/shareloop-backend/internal/pkg/apperror"

// ErrBadPage is returned for out-of-range pagination parameters.
var ErrBadPage = apperror.Validation("invalid pagination parameters")

// ListParams carries the offset-style pagination of list endpoints:
// "from" is the index of the first element, "size" the page size.
type ListParams struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=10"`
}

// Validate rejects a negative offset or a non-positive page size.
func (p ListParams) Validate() error {
	if p.From < 0 || p.Size <= 0 {
		return ErrBadPage
	}
	return nil
}

// Offset returns the row offset of the page containing "from".
// The page index is from/size, so the offset snaps to a page boundary.
func (p ListParams) Offset() uint64 {
	return uint64(p.From/p.Size) * uint64(p.Size)
}

// Limit returns the page size as a query limit.
func (p ListParams) Limit() uint64 {
	return uint64(p.Size)
}
