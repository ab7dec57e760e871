package booking

import (
	"strings"

	"github.com/shareloop/shareloop-backend/internal/pkg/apperror"
)

// Status is the approval state of a booking. WAITING is the only state a
// booking is created in; APPROVED and REJECTED are reached through the
// owner's decision. CANCELED completes the enumerated set but no operation
// currently produces it.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

// State is a listing filter token: either one of the four statuses or a
// temporal selector relative to the moment of the query.
type State string

const (
	StateAll     State = "ALL"
	StateCurrent State = "CURRENT"
	StatePast    State = "PAST"
	StateFuture  State = "FUTURE"
)

// ErrUnknownState is returned for a token outside the recognized set.
// The message text is part of the wire contract.
var ErrUnknownState = apperror.Validation("Unknown state: UNSUPPORTED_STATUS")

// ParseState parses a listing filter token, case-insensitively.
func ParseState(token string) (State, error) {
	switch State(strings.ToUpper(token)) {
	case StateAll:
		return StateAll, nil
	case StateCurrent:
		return StateCurrent, nil
	case StatePast:
		return StatePast, nil
	case StateFuture:
		return StateFuture, nil
	case State(StatusWaiting):
		return State(StatusWaiting), nil
	case State(StatusApproved):
		return State(StatusApproved), nil
	case State(StatusRejected):
		return State(StatusRejected), nil
	case State(StatusCanceled):
		return State(StatusCanceled), nil
	default:
		return "", ErrUnknownState
	}
}

// AsStatus returns the status a status-named state filters on.
func (s State) AsStatus() (Status, bool) {
	switch s {
	case State(StatusWaiting), State(StatusApproved), State(StatusRejected), State(StatusCanceled):
		return Status(s), true
	default:
		return "", false
	}
}
