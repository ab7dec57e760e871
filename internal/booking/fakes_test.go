package booking

import (
	"context"
	"sort"
	"time"

	"github.com/shareloop/shareloop-backend/internal/comment"
	"github.com/shareloop/shareloop-backend/internal/item"
	"github.com/shareloop/shareloop-backend/internal/pkg/request"
	"github.com/shareloop/shareloop-backend/internal/user"
)

// memRepo is an in-memory Repository used by the service and projector tests.
type memRepo struct {
	bookings []*Booking
	nextID   int64
}

func newMemRepo(seed ...*Booking) *memRepo {
	r := &memRepo{nextID: 1}
	for _, b := range seed {
		cp := *b
		if cp.ID == 0 {
			cp.ID = r.nextID
		}
		if cp.ID >= r.nextID {
			r.nextID = cp.ID + 1
		}
		r.bookings = append(r.bookings, &cp)
	}
	return r
}

func (r *memRepo) Create(_ context.Context, b *Booking) error {
	b.ID = r.nextID
	r.nextID++
	cp := *b
	r.bookings = append(r.bookings, &cp)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) Decide(_ context.Context, id int64, status Status, check func(*Booking) error) (*Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			if err := check(b); err != nil {
				return nil, err
			}
			b.Status = status
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) list(page ListPage, keep func(*Booking) bool) []*Booking {
	var out []*Booking
	for _, b := range r.bookings {
		if keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.After(out[j].Start) })
	if page.Offset >= uint64(len(out)) {
		return nil
	}
	out = out[page.Offset:]
	if page.Limit > 0 && uint64(len(out)) > page.Limit {
		out = out[:page.Limit]
	}
	return out
}

func (r *memRepo) ListByBooker(_ context.Context, bookerID int64, page ListPage) ([]*Booking, error) {
	return r.list(page, func(b *Booking) bool { return b.BookerID == bookerID }), nil
}

func (r *memRepo) ListByBookerAndStatus(_ context.Context, bookerID int64, status Status, page ListPage) ([]*Booking, error) {
	return r.list(page, func(b *Booking) bool { return b.BookerID == bookerID && b.Status == status }), nil
}

func (r *memRepo) ListByBookerPast(_ context.Context, bookerID int64, now time.Time, page ListPage) ([]*Booking, error) {
	return r.list(page, func(b *Booking) bool { return b.BookerID == bookerID && b.End.Before(now) }), nil
}

func (r *memRepo) ListByBookerFuture(_ context.Context, bookerID int64, now time.Time, page ListPage) ([]*Booking, error) {
	return r.list(page, func(b *Booking) bool { return b.BookerID == bookerID && b.Start.After(now) }), nil
}

func (r *memRepo) ListByBookerCurrent(_ context.Context, bookerID int64, now time.Time, page ListPage) ([]*Booking, error) {
	return r.list(page, func(b *Booking) bool {
		return b.BookerID == bookerID && b.Start.Before(now) && b.End.After(now)
	}), nil
}

func (r *memRepo) ListByOwner(_ context.Context, ownerID int64, page ListPage) ([]*Booking, error) {
	return r.list(page, func(b *Booking) bool { return b.ItemOwnerID == ownerID }), nil
}

func (r *memRepo) ListByOwnerAndStatus(_ context.Context, ownerID int64, status Status, page ListPage) ([]*Booking, error) {
	return r.list(page, func(b *Booking) bool { return b.ItemOwnerID == ownerID && b.Status == status }), nil
}

func (r *memRepo) ListByOwnerPast(_ context.Context, ownerID int64, now time.Time, page ListPage) ([]*Booking, error) {
	return r.list(page, func(b *Booking) bool { return b.ItemOwnerID == ownerID && b.End.Before(now) }), nil
}

func (r *memRepo) ListByOwnerFuture(_ context.Context, ownerID int64, now time.Time, page ListPage) ([]*Booking, error) {
	return r.list(page, func(b *Booking) bool { return b.ItemOwnerID == ownerID && b.Start.After(now) }), nil
}

func (r *memRepo) ListByOwnerCurrent(_ context.Context, ownerID int64, now time.Time, page ListPage) ([]*Booking, error) {
	return r.list(page, func(b *Booking) bool {
		return b.ItemOwnerID == ownerID && b.Start.Before(now) && b.End.After(now)
	}), nil
}

func (r *memRepo) CountCompleted(_ context.Context, itemID, bookerID int64, now time.Time) (int64, error) {
	var count int64
	for _, b := range r.bookings {
		if b.ItemID == itemID && b.BookerID == bookerID && b.Status == StatusApproved && b.End.Before(now) {
			count++
		}
	}
	return count, nil
}

func (r *memRepo) PastForItem(_ context.Context, itemID, ownerID int64, now time.Time) ([]*Booking, error) {
	out := r.list(ListPage{}, func(b *Booking) bool {
		return b.ItemID == itemID && b.ItemOwnerID == ownerID && b.Status != StatusRejected && b.Start.Before(now)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].End.After(out[j].End) })
	return out, nil
}

func (r *memRepo) FutureForItem(_ context.Context, itemID, ownerID int64, now time.Time) ([]*Booking, error) {
	out := r.list(ListPage{}, func(b *Booking) bool {
		return b.ItemID == itemID && b.ItemOwnerID == ownerID && b.Status != StatusRejected && b.Start.After(now)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (r *memRepo) ListForItems(_ context.Context, itemIDs []int64, exclude Status) ([]*Booking, error) {
	ids := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		ids[id] = true
	}
	return r.list(ListPage{}, func(b *Booking) bool {
		return ids[b.ItemID] && b.Status != exclude
	}), nil
}

// stubUsers serves GetByID from a fixed set; the other methods are unused
// by the booking service.
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

// stubItems serves GetByID and CountByOwner from a fixed set; the other
// methods are unused by the booking service.
type stubItems struct {
	items map[int64]*item.Item
}

func newStubItems(items ...*item.Item) *stubItems {
	s := &stubItems{items: make(map[int64]*item.Item)}
	for _, it := range items {
		s.items[it.ID] = it
	}
	return s
}

func (s *stubItems) GetByID(_ context.Context, id int64) (*item.Item, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, item.ErrNotFound
	}
	return it, nil
}

func (s *stubItems) CountByOwner(_ context.Context, ownerID int64) (int64, error) {
	var count int64
	for _, it := range s.items {
		if it.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (s *stubItems) Create(context.Context, int64, item.CreateRequest) (*item.Item, error) {
	return nil, nil
}
func (s *stubItems) GetView(context.Context, int64, int64) (*item.View, error) { return nil, nil }
func (s *stubItems) ListByOwner(context.Context, int64, request.ListParams) ([]*item.View, error) {
	return nil, nil
}
func (s *stubItems) Search(context.Context, string, request.ListParams) ([]*item.Item, error) {
	return nil, nil
}
func (s *stubItems) Update(context.Context, int64, int64, item.UpdateRequest) (*item.Item, error) {
	return nil, nil
}
func (s *stubItems) Delete(context.Context, int64) error { return nil }
func (s *stubItems) CreateComment(context.Context, int64, int64, string) (*comment.Comment, error) {
	return nil, nil
}
