package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shareloop/shareloop-backend/internal/item"
	"github.com/shareloop/shareloop-backend/internal/pkg/metrics"
	"github.com/shareloop/shareloop-backend/internal/pkg/request"
	"github.com/shareloop/shareloop-backend/internal/user"
)

// CreateRequest carries the fields of a booking creation call. Start and End
// are pointers so absent timestamps are distinguishable from zero values.
type CreateRequest struct {
	ItemID int64
	Start  *time.Time
	End    *time.Time
}

// Service owns the booking lifecycle: creation, the approval transition,
// lookup and the state-filtered listings.
type Service interface {
	Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error)
	Approve(ctx context.Context, userID, bookingID int64, approved bool) (*Booking, error)
	GetByID(ctx context.Context, userID, bookingID int64) (*Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state string, params request.ListParams) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state string, params request.ListParams) ([]*Booking, error)
}

type service struct {
	repo    Repository
	users   user.Service
	items   item.Service
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// NewService creates a new booking Service. metrics may be nil.
func NewService(repo Repository, users user.Service, items item.Service, log zerolog.Logger, m *metrics.Metrics) Service {
	return &service{
		repo:    repo,
		users:   users,
		items:   items,
		log:     log.With().Str("component", "booking").Logger(),
		metrics: m,
	}
}

func (s *service) Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error) {
	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID == booker.ID {
		return nil, ErrOwnItem
	}
	// start < end is the single necessary time-range check; a missing
	// timestamp or a start already in the past fails the same way.
	if req.Start == nil || req.End == nil ||
		!req.Start.Before(*req.End) ||
		req.Start.Before(time.Now()) {
		return nil, ErrInvalidTimeRange
	}
	if !it.Available {
		return nil, ErrItemUnavailable
	}

	b := &Booking{
		Start:       *req.Start,
		End:         *req.End,
		Status:      StatusWaiting,
		ItemID:      it.ID,
		ItemName:    it.Name,
		ItemOwnerID: it.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	s.log.Info().
		Int64("booking_id", b.ID).
		Int64("item_id", b.ItemID).
		Int64("booker_id", b.BookerID).
		Msg("booking created")
	return b, nil
}

func (s *service) Approve(ctx context.Context, userID, bookingID int64, approved bool) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	status := StatusRejected
	if approved {
		status = StatusApproved
	}
	b, err := s.repo.Decide(ctx, bookingID, status, func(b *Booking) error {
		if b.ItemOwnerID != userID {
			return ErrNotItemOwner
		}
		// Only an APPROVED booking blocks another decision; re-rejecting a
		// REJECTED booking passes through.
		if b.Status == StatusApproved {
			return ErrAlreadyApproved
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingStatusChanges.WithLabelValues(string(status)).Inc()
	}
	s.log.Info().
		Int64("booking_id", b.ID).
		Str("status", string(status)).
		Msg("booking decided")
	return b, nil
}

func (s *service) GetByID(ctx context.Context, userID, bookingID int64) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BookerID != userID && b.ItemOwnerID != userID {
		return nil, ErrNotParticipant
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID int64, state string, params request.ListParams) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, bookerID); err != nil {
		return nil, err
	}
	st, err := ParseState(state)
	if err != nil {
		return nil, err
	}

	page := ListPage{Limit: params.Limit(), Offset: params.Offset()}
	now := time.Now()

	if status, ok := st.AsStatus(); ok {
		return s.repo.ListByBookerAndStatus(ctx, bookerID, status, page)
	}
	switch st {
	case StateAll:
		return s.repo.ListByBooker(ctx, bookerID, page)
	case StatePast:
		return s.repo.ListByBookerPast(ctx, bookerID, now, page)
	case StateFuture:
		return s.repo.ListByBookerFuture(ctx, bookerID, now, page)
	default: // StateCurrent
		return s.repo.ListByBookerCurrent(ctx, bookerID, now, page)
	}
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, state string, params request.ListParams) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	st, err := ParseState(state)
	if err != nil {
		return nil, err
	}
	// Owning no items is its own failure mode, distinct from having no
	// bookings on the items one owns.
	count, err := s.items.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNoItems
	}

	page := ListPage{Limit: params.Limit(), Offset: params.Offset()}
	now := time.Now()

	if status, ok := st.AsStatus(); ok {
		return s.repo.ListByOwnerAndStatus(ctx, ownerID, status, page)
	}
	switch st {
	case StateAll:
		return s.repo.ListByOwner(ctx, ownerID, page)
	case StatePast:
		return s.repo.ListByOwnerPast(ctx, ownerID, now, page)
	case StateFuture:
		return s.repo.ListByOwnerFuture(ctx, ownerID, now, page)
	default: // StateCurrent
		return s.repo.ListByOwnerCurrent(ctx, ownerID, now, page)
	}
}
