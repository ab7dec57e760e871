package item

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareloop/shareloop-backend/internal/comment"
	"github.com/shareloop/shareloop-backend/internal/pkg/apperror"
	"github.com/shareloop/shareloop-backend/internal/pkg/request"
	"github.com/shareloop/shareloop-backend/internal/user"
)

type memRepo struct {
	items  map[int64]*Item
	nextID int64
}

func newMemRepo(seed ...*Item) *memRepo {
	r := &memRepo{items: make(map[int64]*Item), nextID: 1}
	for _, it := range seed {
		cp := *it
		if cp.ID >= r.nextID {
			r.nextID = cp.ID + 1
		}
		r.items[cp.ID] = &cp
	}
	return r
}

func (r *memRepo) Create(_ context.Context, it *Item) error {
	it.ID = r.nextID
	r.nextID++
	cp := *it
	r.items[cp.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *memRepo) ListByOwner(_ context.Context, ownerID int64, limit, offset uint64) ([]*Item, error) {
	var out []*Item
	for id := int64(1); id < r.nextID; id++ {
		if it, ok := r.items[id]; ok && it.OwnerID == ownerID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRepo) CountByOwner(_ context.Context, ownerID int64) (int64, error) {
	var count int64
	for _, it := range r.items {
		if it.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (r *memRepo) Search(_ context.Context, text string, limit, offset uint64) ([]*Item, error) {
	needle := strings.ToLower(text)
	var out []*Item
	for id := int64(1); id < r.nextID; id++ {
		it, ok := r.items[id]
		if !ok || !it.Available {
			continue
		}
		if strings.Contains(strings.ToLower(it.Name), needle) ||
			strings.Contains(strings.ToLower(it.Description), needle) {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRepo) ListByRequestIDs(_ context.Context, requestIDs []int64) ([]*Item, error) {
	ids := make(map[int64]bool, len(requestIDs))
	for _, id := range requestIDs {
		ids[id] = true
	}
	var out []*Item
	for id := int64(1); id < r.nextID; id++ {
		if it, ok := r.items[id]; ok && it.RequestID != nil && ids[*it.RequestID] {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, it *Item) error {
	if _, ok := r.items[it.ID]; !ok {
		return ErrNotFound
	}
	cp := *it
	r.items[cp.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type memComments struct {
	comments []*comment.Comment
	nextID   int64
}

func (r *memComments) Create(_ context.Context, cm *comment.Comment) error {
	r.nextID++
	cm.ID = r.nextID
	cp := *cm
	r.comments = append(r.comments, &cp)
	return nil
}

func (r *memComments) ListByItem(_ context.Context, itemID int64) ([]*comment.Comment, error) {
	var out []*comment.Comment
	for _, cm := range r.comments {
		if cm.ItemID == itemID {
			out = append(out, cm)
		}
	}
	return out, nil
}

func (r *memComments) ListByItems(_ context.Context, itemIDs []int64) (map[int64][]*comment.Comment, error) {
	out := make(map[int64][]*comment.Comment)
	for _, id := range itemIDs {
		cms, _ := r.ListByItem(context.Background(), id)
		if len(cms) > 0 {
			out[id] = cms
		}
	}
	return out, nil
}

// stubBookings serves fixed projections and completed counts.
type stubBookings struct {
	projections map[int64]LastNext
	completed   map[[2]int64]int64
}

func (s *stubBookings) LastAndNext(_ context.Context, itemID, viewerID int64) (LastNext, error) {
	return s.projections[itemID], nil
}

func (s *stubBookings) LastAndNextBatch(_ context.Context, itemIDs []int64) (map[int64]LastNext, error) {
	out := make(map[int64]LastNext, len(itemIDs))
	for _, id := range itemIDs {
		out[id] = s.projections[id]
	}
	return out, nil
}

func (s *stubBookings) CompletedCount(_ context.Context, itemID, userID int64, _ time.Time) (int64, error) {
	return s.completed[[2]int64{itemID, userID}], nil
}

type stubUsers struct {
	users map[int64]*user.User
}

func newStubUsers(users ...*user.User) *stubUsers {
	s := &stubUsers{users: make(map[int64]*user.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (s *stubUsers) Create(context.Context, user.CreateRequest) (*user.User, error) { return nil, nil }
func (s *stubUsers) List(context.Context) ([]*user.User, error)                     { return nil, nil }
func (s *stubUsers) Update(context.Context, int64, user.UpdateRequest) (*user.User, error) {
	return nil, nil
}
func (s *stubUsers) Delete(context.Context, int64) error { return nil }

type stubResolver struct {
	known map[int64]bool
}

var errStubRequestNotFound = apperror.NotFound("item request not found")

func (s *stubResolver) Exists(_ context.Context, requestID int64) error {
	if !s.known[requestID] {
		return errStubRequestNotFound
	}
	return nil
}

func newTestService(repo Repository, users user.Service, comments comment.Repository, bookings BookingProvider, requests RequestResolver) Service {
	if comments == nil {
		comments = &memComments{}
	}
	if bookings == nil {
		bookings = &stubBookings{}
	}
	if requests == nil {
		requests = &stubResolver{}
	}
	return NewService(repo, users, comments, bookings, requests, zerolog.Nop())
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()
	owner := &user.User{ID: 1, Name: "owner"}

	t.Run("creates item", func(t *testing.T) {
		svc := newTestService(newMemRepo(), newStubUsers(owner), nil, nil, nil)

		it, err := svc.Create(ctx, owner.ID, CreateRequest{Name: "drill", Description: "cordless", Available: true})
		require.NoError(t, err)
		assert.NotZero(t, it.ID)
		assert.Equal(t, owner.ID, it.OwnerID)
		assert.True(t, it.Available)
	})

	t.Run("unknown owner", func(t *testing.T) {
		svc := newTestService(newMemRepo(), newStubUsers(), nil, nil, nil)

		_, err := svc.Create(ctx, 999, CreateRequest{Name: "drill", Description: "cordless", Available: true})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("blank description", func(t *testing.T) {
		svc := newTestService(newMemRepo(), newStubUsers(owner), nil, nil, nil)

		_, err := svc.Create(ctx, owner.ID, CreateRequest{Name: "drill", Description: "   ", Available: true})
		assert.ErrorIs(t, err, ErrDescriptionRequired)
	})

	t.Run("answering an existing request", func(t *testing.T) {
		reqID := int64(7)
		svc := newTestService(newMemRepo(), newStubUsers(owner), nil, nil, &stubResolver{known: map[int64]bool{reqID: true}})

		it, err := svc.Create(ctx, owner.ID, CreateRequest{Name: "drill", Description: "cordless", Available: true, RequestID: &reqID})
		require.NoError(t, err)
		require.NotNil(t, it.RequestID)
		assert.Equal(t, reqID, *it.RequestID)
	})

	t.Run("answering a missing request", func(t *testing.T) {
		reqID := int64(8)
		svc := newTestService(newMemRepo(), newStubUsers(owner), nil, nil, &stubResolver{})

		_, err := svc.Create(ctx, owner.ID, CreateRequest{Name: "drill", Description: "cordless", Available: true, RequestID: &reqID})
		assert.ErrorIs(t, err, errStubRequestNotFound)
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	owner := &user.User{ID: 1, Name: "owner"}
	other := &user.User{ID: 2, Name: "other"}
	drill := &Item{ID: 10, Name: "drill", Description: "cordless", OwnerID: owner.ID, Available: true}

	newName := "hammer drill"
	blank := "  "
	unavailable := false

	t.Run("owner updates fields", func(t *testing.T) {
		svc := newTestService(newMemRepo(drill), newStubUsers(owner, other), nil, nil, nil)

		it, err := svc.Update(ctx, drill.ID, owner.ID, UpdateRequest{Name: &newName, Available: &unavailable})
		require.NoError(t, err)
		assert.Equal(t, "hammer drill", it.Name)
		assert.Equal(t, "cordless", it.Description)
		assert.False(t, it.Available)
	})

	t.Run("blank fields are ignored", func(t *testing.T) {
		svc := newTestService(newMemRepo(drill), newStubUsers(owner), nil, nil, nil)

		it, err := svc.Update(ctx, drill.ID, owner.ID, UpdateRequest{Name: &blank, Description: &blank})
		require.NoError(t, err)
		assert.Equal(t, "drill", it.Name)
		assert.Equal(t, "cordless", it.Description)
	})

	t.Run("non-owner reads as not found", func(t *testing.T) {
		svc := newTestService(newMemRepo(drill), newStubUsers(owner, other), nil, nil, nil)

		_, err := svc.Update(ctx, drill.ID, other.ID, UpdateRequest{Name: &newName})
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc := newTestService(newMemRepo(), newStubUsers(owner), nil, nil, nil)

		_, err := svc.Update(ctx, 999, owner.ID, UpdateRequest{Name: &newName})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSearchItems(t *testing.T) {
	ctx := context.Background()
	owner := &user.User{ID: 1, Name: "owner"}

	drill := &Item{ID: 10, Name: "Drill", Description: "cordless tool", OwnerID: owner.ID, Available: true}
	saw := &Item{ID: 11, Name: "Saw", Description: "hand tool", OwnerID: owner.ID, Available: true}
	broken := &Item{ID: 12, Name: "Broken drill", Description: "parts only", OwnerID: owner.ID, Available: false}

	svc := newTestService(newMemRepo(drill, saw, broken), newStubUsers(owner), nil, nil, nil)

	t.Run("matches name and description, available only", func(t *testing.T) {
		found, err := svc.Search(ctx, "drill", request.ListParams{From: 0, Size: 10})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, drill.ID, found[0].ID)

		found, err = svc.Search(ctx, "tool", request.ListParams{From: 0, Size: 10})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("blank text returns empty list without hitting the store", func(t *testing.T) {
		found, err := svc.Search(ctx, "   ", request.ListParams{From: 0, Size: 10})
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestGetItemView(t *testing.T) {
	ctx := context.Background()
	owner := &user.User{ID: 1, Name: "owner"}
	viewer := &user.User{ID: 2, Name: "viewer"}
	drill := &Item{ID: 10, Name: "drill", Description: "cordless", OwnerID: owner.ID, Available: true}

	now := time.Now()
	bookings := &stubBookings{projections: map[int64]LastNext{
		drill.ID: {
			Last: &BookingInfo{ID: 1, BookerID: viewer.ID, Start: now.Add(-2 * time.Hour), End: now.Add(-time.Hour)},
			Next: &BookingInfo{ID: 2, BookerID: viewer.ID, Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)},
		},
	}}
	comments := &memComments{}
	comments.Create(ctx, &comment.Comment{Text: "solid", ItemID: drill.ID, AuthorID: viewer.ID, AuthorName: "viewer"})

	svc := newTestService(newMemRepo(drill), newStubUsers(owner, viewer), comments, bookings, nil)

	t.Run("assembles bookings and comments", func(t *testing.T) {
		view, err := svc.GetView(ctx, owner.ID, drill.ID)
		require.NoError(t, err)
		assert.Equal(t, drill.ID, view.Item.ID)
		require.NotNil(t, view.Bookings.Last)
		assert.Equal(t, int64(1), view.Bookings.Last.ID)
		require.Len(t, view.Comments, 1)
		assert.Equal(t, "solid", view.Comments[0].Text)
	})

	t.Run("unknown viewer", func(t *testing.T) {
		_, err := svc.GetView(ctx, 999, drill.ID)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := svc.GetView(ctx, owner.ID, 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListItemsByOwner(t *testing.T) {
	ctx := context.Background()
	owner := &user.User{ID: 1, Name: "owner"}
	drill := &Item{ID: 10, Name: "drill", Description: "cordless", OwnerID: owner.ID, Available: true}
	saw := &Item{ID: 11, Name: "saw", Description: "hand tool", OwnerID: owner.ID, Available: true}

	bookings := &stubBookings{projections: map[int64]LastNext{
		drill.ID: {Next: &BookingInfo{ID: 3, BookerID: 2}},
	}}

	svc := newTestService(newMemRepo(drill, saw), newStubUsers(owner), nil, bookings, nil)

	views, err := svc.ListByOwner(ctx, owner.ID, request.ListParams{From: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.NotNil(t, views[0].Bookings.Next)
	assert.Equal(t, int64(3), views[0].Bookings.Next.ID)
	assert.Nil(t, views[1].Bookings.Next)
}

func TestCreateComment(t *testing.T) {
	ctx := context.Background()
	owner := &user.User{ID: 1, Name: "owner"}
	renter := &user.User{ID: 2, Name: "renter"}
	drill := &Item{ID: 10, Name: "drill", Description: "cordless", OwnerID: owner.ID, Available: true}

	t.Run("past renter comments", func(t *testing.T) {
		bookings := &stubBookings{completed: map[[2]int64]int64{{drill.ID, renter.ID}: 1}}
		svc := newTestService(newMemRepo(drill), newStubUsers(owner, renter), nil, bookings, nil)

		cm, err := svc.CreateComment(ctx, drill.ID, renter.ID, "works great")
		require.NoError(t, err)
		assert.NotZero(t, cm.ID)
		assert.Equal(t, "renter", cm.AuthorName)
		assert.WithinDuration(t, time.Now(), cm.Created, time.Minute)
	})

	t.Run("blank text", func(t *testing.T) {
		svc := newTestService(newMemRepo(drill), newStubUsers(owner, renter), nil, nil, nil)

		_, err := svc.CreateComment(ctx, drill.ID, renter.ID, "  ")
		assert.ErrorIs(t, err, ErrEmptyComment)
	})

	t.Run("user who never rented", func(t *testing.T) {
		svc := newTestService(newMemRepo(drill), newStubUsers(owner, renter), nil, &stubBookings{}, nil)

		_, err := svc.CreateComment(ctx, drill.ID, renter.ID, "works great")
		assert.ErrorIs(t, err, ErrNeverRented)
	})
}
