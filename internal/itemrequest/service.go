package itemrequest

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shareloop/shareloop-backend/internal/item"
	"github.com/shareloop/shareloop-backend/internal/pkg/request"
	"github.com/shareloop/shareloop-backend/internal/user"
)

// Service owns the item request lifecycle and the assembly of requests with
// the items that answer them.
type Service interface {
	Create(ctx context.Context, requesterID int64, description string) (*ItemRequest, error)
	// ListOwn returns the requester's own requests with answers, newest first.
	ListOwn(ctx context.Context, requesterID int64) ([]*View, error)
	// ListOthers returns other users' requests with answers, newest first.
	ListOthers(ctx context.Context, userID int64, params request.ListParams) ([]*View, error)
	GetByID(ctx context.Context, userID, requestID int64) (*View, error)

	// Exists reports whether a request exists, for item creation checks.
	Exists(ctx context.Context, requestID int64) error
}

type service struct {
	repo  Repository
	users user.Service
	items item.Repository
	log   zerolog.Logger
}

// NewService creates a new item request Service.
func NewService(repo Repository, users user.Service, items item.Repository, log zerolog.Logger) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		log:   log.With().Str("component", "itemrequest").Logger(),
	}
}

func (s *service) Create(ctx context.Context, requesterID int64, description string) (*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}

	req := &ItemRequest{
		Description: description,
		RequesterID: requesterID,
		Created:     time.Now(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("request_id", req.ID).
		Int64("requester_id", requesterID).
		Msg("item request created")
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requesterID int64) ([]*View, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}
	requests, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, userID int64, params request.ListParams) ([]*View, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.ListByOthers(ctx, userID, params.Limit(), params.Offset())
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, requests)
}

func (s *service) GetByID(ctx context.Context, userID, requestID int64) (*View, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	views, err := s.assemble(ctx, []*ItemRequest{req})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *service) Exists(ctx context.Context, requestID int64) error {
	if _, err := s.repo.GetByID(ctx, requestID); err != nil {
		return err
	}
	return nil
}

// assemble attaches answering items to each request with one batched lookup.
func (s *service) assemble(ctx context.Context, requests []*ItemRequest) ([]*View, error) {
	ids := make([]int64, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
	}

	answers, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[int64][]*item.Item, len(requests))
	for _, it := range answers {
		if it.RequestID == nil {
			continue
		}
		byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
	}

	views := make([]*View, len(requests))
	for i, req := range requests {
		views[i] = &View{Request: req, Items: byRequest[req.ID]}
	}
	return views, nil
}
