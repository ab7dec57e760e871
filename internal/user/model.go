package user

import "github.com/shareloop/shareloop-backend/internal/pkg/apperror"

var (
	ErrNotFound     = apperror.NotFound("user not found")
	ErrEmailTaken   = apperror.Conflict("email already in use")
	ErrNameRequired = apperror.Validation("name must not be blank")
)

// User is an account that can own items and book other users' items.
type User struct {
	ID    int64
	Name  string
	Email string
}
