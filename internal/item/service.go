package item

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shareloop/shareloop-backend/internal/comment"
	"github.com/shareloop/shareloop-backend/internal/pkg/request"
	"github.com/shareloop/shareloop-backend/internal/user"
)

// CreateRequest carries the fields of a listing call.
type CreateRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// UpdateRequest carries a partial update; nil fields stay unchanged.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// View is the display model of an item: the item itself, the owner-scoped
// last/next bookings and the item's comments.
type View struct {
	Item     *Item
	Bookings LastNext
	Comments []*comment.Comment
}

// Service defines business logic related to items, including the view
// assembly that combines an item with its booking projections and comments.
type Service interface {
	Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	GetView(ctx context.Context, viewerID, id int64) (*View, error)
	ListByOwner(ctx context.Context, ownerID int64, params request.ListParams) ([]*View, error)
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
	Search(ctx context.Context, text string, params request.ListParams) ([]*Item, error)
	Update(ctx context.Context, id, userID int64, req UpdateRequest) (*Item, error)
	Delete(ctx context.Context, id int64) error
	CreateComment(ctx context.Context, itemID, authorID int64, text string) (*comment.Comment, error)
}

type service struct {
	repo     Repository
	users    user.Service
	comments comment.Repository
	bookings BookingProvider
	requests RequestResolver
	log      zerolog.Logger
}

// NewService creates a new item Service.
func NewService(
	repo Repository,
	users user.Service,
	comments comment.Repository,
	bookings BookingProvider,
	requests RequestResolver,
	log zerolog.Logger,
) Service {
	return &service{
		repo:     repo,
		users:    users,
		comments: comments,
		bookings: bookings,
		requests: requests,
		log:      log.With().Str("component", "item").Logger(),
	}
}

func (s *service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if req.RequestID != nil {
		if err := s.requests.Exists(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}

	it := &Item{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
		Available:   req.Available,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	s.log.Info().Int64("item_id", it.ID).Int64("owner_id", ownerID).Msg("item created")
	return it, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetView(ctx context.Context, viewerID, id int64) (*View, error) {
	if _, err := s.users.GetByID(ctx, viewerID); err != nil {
		return nil, err
	}
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The projection query is owner-scoped, so a non-owner viewer gets an
	// empty pair without a separate ownership branch here.
	ln, err := s.bookings.LastAndNext(ctx, it.ID, viewerID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}

	return &View{Item: it, Bookings: ln, Comments: comments}, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, params request.ListParams) ([]*View, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByOwner(ctx, ownerID, params.Limit(), params.Offset())
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	projections, err := s.bookings.LastAndNextBatch(ctx, ids)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*View, len(items))
	for i, it := range items {
		views[i] = &View{
			Item:     it,
			Bookings: projections[it.ID],
			Comments: comments[it.ID],
		}
	}
	return views, nil
}

func (s *service) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	return s.repo.CountByOwner(ctx, ownerID)
}

func (s *service) Search(ctx context.Context, text string, params request.ListParams) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text, params.Limit(), params.Offset())
}

func (s *service) Update(ctx context.Context, id, userID int64, req UpdateRequest) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	// Reported as not-found rather than forbidden so ownership is not
	// leaked to probing callers.
	if it.OwnerID != userID {
		return nil, ErrNotOwner
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		it.Name = *req.Name
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}

	s.log.Info().Int64("item_id", it.ID).Msg("item updated")
	return it, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("item_id", id).Msg("item deleted")
	return nil
}

func (s *service) CreateComment(ctx context.Context, itemID, authorID int64, text string) (*comment.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	// Only a user with a completed rental of the item may comment on it.
	count, err := s.bookings.CompletedCount(ctx, it.ID, author.ID, time.Now())
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNeverRented
	}

	cm := &comment.Comment{
		Text:       text,
		ItemID:     it.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    time.Now(),
	}
	if err := s.comments.Create(ctx, cm); err != nil {
		return nil, err
	}

	s.log.Info().Int64("item_id", it.ID).Int64("author_id", author.ID).Msg("comment created")
	return cm, nil
}
