package booking

import (
	"context"
	"time"

	"github.com/shareloop/shareloop-backend/internal/item"
)

// Projector derives last/next booking views for items. It implements
// item.BookingProvider on top of the booking store alone, so it can be wired
// into the item service before the booking service exists.
type Projector struct {
	repo Repository
}

func NewProjector(repo Repository) *Projector {
	return &Projector{repo: repo}
}

// LastAndNext resolves the projection for a single item with two ordered
// queries: the latest-ending past booking and the soonest-starting future
// one, both excluding REJECTED and scoped to the viewer's ownership.
func (p *Projector) LastAndNext(ctx context.Context, itemID, viewerID int64) (item.LastNext, error) {
	now := time.Now()

	past, err := p.repo.PastForItem(ctx, itemID, viewerID, now)
	if err != nil {
		return item.LastNext{}, err
	}
	future, err := p.repo.FutureForItem(ctx, itemID, viewerID, now)
	if err != nil {
		return item.LastNext{}, err
	}

	var ln item.LastNext
	if len(past) > 0 {
		ln.Last = toInfo(past[0])
	}
	if len(future) > 0 {
		ln.Next = toInfo(future[0])
	}
	return ln, nil
}

// LastAndNextBatch resolves the projection for a whole item list from one
// batched query, reducing in memory per item: last is the booking with the
// maximum end time among those started before now, next the one with the
// minimum start time among those starting after now. A booking starting
// exactly now lands on neither side.
func (p *Projector) LastAndNextBatch(ctx context.Context, itemIDs []int64) (map[int64]item.LastNext, error) {
	out := make(map[int64]item.LastNext, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	bookings, err := p.repo.ListForItems(ctx, itemIDs, StatusRejected)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	for _, id := range itemIDs {
		var last, next *Booking
		for _, b := range bookings {
			if b.ItemID != id {
				continue
			}
			switch {
			case b.Start.Before(now):
				if last == nil || b.End.After(last.End) {
					last = b
				}
			case b.Start.After(now):
				if next == nil || b.Start.Before(next.Start) {
					next = b
				}
			}
		}
		out[id] = item.LastNext{Last: toInfo(last), Next: toInfo(next)}
	}
	return out, nil
}

func (p *Projector) CompletedCount(ctx context.Context, itemID, userID int64, at time.Time) (int64, error) {
	return p.repo.CountCompleted(ctx, itemID, userID, at)
}

func toInfo(b *Booking) *item.BookingInfo {
	if b == nil {
		return nil
	}
	return &item.BookingInfo{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}
