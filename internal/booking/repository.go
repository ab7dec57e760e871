package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListPage is a limit/offset pair applied after filtering.
type ListPage struct {
	Limit  uint64
	Offset uint64
}

// Repository is the fixed query surface the booking core needs from its
// store. Every listing method returns bookings ordered by start time
// descending unless stated otherwise.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	// Decide re-reads the booking under a row lock, runs the check against
	// the current state and persists the new status, all in one transaction.
	Decide(ctx context.Context, id int64, status Status, check func(*Booking) error) (*Booking, error)

	ListByBooker(ctx context.Context, bookerID int64, page ListPage) ([]*Booking, error)
	ListByBookerAndStatus(ctx context.Context, bookerID int64, status Status, page ListPage) ([]*Booking, error)
	ListByBookerPast(ctx context.Context, bookerID int64, now time.Time, page ListPage) ([]*Booking, error)
	ListByBookerFuture(ctx context.Context, bookerID int64, now time.Time, page ListPage) ([]*Booking, error)
	ListByBookerCurrent(ctx context.Context, bookerID int64, now time.Time, page ListPage) ([]*Booking, error)

	ListByOwner(ctx context.Context, ownerID int64, page ListPage) ([]*Booking, error)
	ListByOwnerAndStatus(ctx context.Context, ownerID int64, status Status, page ListPage) ([]*Booking, error)
	ListByOwnerPast(ctx context.Context, ownerID int64, now time.Time, page ListPage) ([]*Booking, error)
	ListByOwnerFuture(ctx context.Context, ownerID int64, now time.Time, page ListPage) ([]*Booking, error)
	ListByOwnerCurrent(ctx context.Context, ownerID int64, now time.Time, page ListPage) ([]*Booking, error)

	// CountCompleted counts approved bookings of the item by the user that
	// ended before the given instant. Used as the comment precondition.
	CountCompleted(ctx context.Context, itemID, bookerID int64, now time.Time) (int64, error)
	// PastForItem lists non-rejected bookings of the item with start before
	// now, owner-scoped, ordered by end time descending.
	PastForItem(ctx context.Context, itemID, ownerID int64, now time.Time) ([]*Booking, error)
	// FutureForItem lists non-rejected bookings of the item with start after
	// now, owner-scoped, ordered by start time ascending.
	FutureForItem(ctx context.Context, itemID, ownerID int64, now time.Time) ([]*Booking, error)
	// ListForItems fetches every booking of the given items except those in
	// the excluded status, in one round-trip.
	ListForItems(ctx context.Context, itemIDs []int64, exclude Status) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository implementation backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func baseSelect() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"b.id", "b.start_time", "b.end_time", "b.status",
		"b.item_id", "i.name", "i.owner_id",
		"b.booker_id", "u.name",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("start_time", "end_time", "status", "item_id", "booker_id").
		Values(b.Start, b.End, b.Status, b.ItemID, b.BookerID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query, args, err := baseSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.Start, &b.End, &b.Status,
		&b.ItemID, &b.ItemName, &b.ItemOwnerID,
		&b.BookerID, &b.BookerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) Decide(ctx context.Context, id int64, status Status, check func(*Booking) error) (*Booking, error) {
	var b Booking
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		query, args, err := baseSelect().
			Where(squirrel.Eq{"b.id": id}).
			Suffix("FOR UPDATE OF b").
			ToSql()
		if err != nil {
			return fmt.Errorf("build decide booking query failed: %w", err)
		}

		err = tx.QueryRow(ctx, query, args...).Scan(
			&b.ID, &b.Start, &b.End, &b.Status,
			&b.ItemID, &b.ItemName, &b.ItemOwnerID,
			&b.BookerID, &b.BookerName,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("get booking for decision failed: %w", err)
		}
		if err := check(&b); err != nil {
			return err
		}

		psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
		update, updateArgs, err := psql.Update("public.bookings").
			Set("status", status).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update booking status query failed: %w", err)
		}
		if _, err := tx.Exec(ctx, update, updateArgs...); err != nil {
			return fmt.Errorf("update booking status failed: %w", err)
		}
		b.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) ListByBooker(ctx context.Context, bookerID int64, page ListPage) ([]*Booking, error) {
	builder := baseSelect().
		Where(squirrel.Eq{"b.booker_id": bookerID})
	return r.queryBookings(ctx, paged(builder, page), "list by booker")
}

func (r *pgxRepository) ListByBookerAndStatus(ctx context.Context, bookerID int64, status Status, page ListPage) ([]*Booking, error) {
	builder := baseSelect().
		Where(squirrel.Eq{"b.booker_id": bookerID, "b.status": status})
	return r.queryBookings(ctx, paged(builder, page), "list by booker and status")
}

func (r *pgxRepository) ListByBookerPast(ctx context.Context, bookerID int64, now time.Time, page ListPage) ([]*Booking, error) {
	builder := baseSelect().
		Where(squirrel.Eq{"b.booker_id": bookerID}).
		Where(squirrel.Lt{"b.end_time": now})
	return r.queryBookings(ctx, paged(builder, page), "list past by booker")
}

func (r *pgxRepository) ListByBookerFuture(ctx context.Context, bookerID int64, now time.Time, page ListPage) ([]*Booking, error) {
	builder := baseSelect().
		Where(squirrel.Eq{"b.booker_id": bookerID}).
		Where(squirrel.Gt{"b.start_time": now})
	return r.queryBookings(ctx, paged(builder, page), "list future by booker")
}

func (r *pgxRepository) ListByBookerCurrent(ctx context.Context, bookerID int64, now time.Time, page ListPage) ([]*Booking, error) {
	// Strict on both ends: a booking starting or ending exactly now is not
	// current.
	builder := baseSelect().
		Where(squirrel.Eq{"b.booker_id": bookerID}).
		Where(squirrel.Lt{"b.start_time": now}).
		Where(squirrel.Gt{"b.end_time": now})
	return r.queryBookings(ctx, paged(builder, page), "list current by booker")
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID int64, page ListPage) ([]*Booking, error) {
	builder := baseSelect().
		Where(squirrel.Eq{"i.owner_id": ownerID})
	return r.queryBookings(ctx, paged(builder, page), "list by owner")
}

func (r *pgxRepository) ListByOwnerAndStatus(ctx context.Context, ownerID int64, status Status, page ListPage) ([]*Booking, error) {
	builder := baseSelect().
		Where(squirrel.Eq{"i.owner_id": ownerID, "b.status": status})
	return r.queryBookings(ctx, paged(builder, page), "list by owner and status")
}

func (r *pgxRepository) ListByOwnerPast(ctx context.Context, ownerID int64, now time.Time, page ListPage) ([]*Booking, error) {
	builder := baseSelect().
		Where(squirrel.Eq{"i.owner_id": ownerID}).
		Where(squirrel.Lt{"b.end_time": now})
	return r.queryBookings(ctx, paged(builder, page), "list past by owner")
}

func (r *pgxRepository) ListByOwnerFuture(ctx context.Context, ownerID int64, now time.Time, page ListPage) ([]*Booking, error) {
	builder := baseSelect().
		Where(squirrel.Eq{"i.owner_id": ownerID}).
		Where(squirrel.Gt{"b.start_time": now})
	return r.queryBookings(ctx, paged(builder, page), "list future by owner")
}

func (r *pgxRepository) ListByOwnerCurrent(ctx context.Context, ownerID int64, now time.Time, page ListPage) ([]*Booking, error) {
	builder := baseSelect().
		Where(squirrel.Eq{"i.owner_id": ownerID}).
		Where(squirrel.Lt{"b.start_time": now}).
		Where(squirrel.Gt{"b.end_time": now})
	return r.queryBookings(ctx, paged(builder, page), "list current by owner")
}

func (r *pgxRepository) CountCompleted(ctx context.Context, itemID, bookerID int64, now time.Time) (int64, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("count(*)").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemID, "booker_id": bookerID, "status": StatusApproved}).
		Where(squirrel.Lt{"end_time": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count completed bookings query failed: %w", err)
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count completed bookings failed: %w", err)
	}
	return count, nil
}

func (r *pgxRepository) PastForItem(ctx context.Context, itemID, ownerID int64, now time.Time) ([]*Booking, error) {
	builder := baseSelect().
		Where(squirrel.Eq{"b.item_id": itemID, "i.owner_id": ownerID}).
		Where(squirrel.Lt{"b.start_time": now}).
		Where(squirrel.NotEq{"b.status": StatusRejected}).
		OrderBy("b.end_time DESC")
	return r.queryBookings(ctx, builder, "list past for item")
}

func (r *pgxRepository) FutureForItem(ctx context.Context, itemID, ownerID int64, now time.Time) ([]*Booking, error) {
	builder := baseSelect().
		Where(squirrel.Eq{"b.item_id": itemID, "i.owner_id": ownerID}).
		Where(squirrel.Gt{"b.start_time": now}).
		Where(squirrel.NotEq{"b.status": StatusRejected}).
		OrderBy("b.start_time ASC")
	return r.queryBookings(ctx, builder, "list future for item")
}

func (r *pgxRepository) ListForItems(ctx context.Context, itemIDs []int64, exclude Status) ([]*Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	builder := baseSelect().
		Where(squirrel.Eq{"b.item_id": itemIDs}).
		Where(squirrel.NotEq{"b.status": exclude}).
		OrderBy("b.start_time DESC")
	return r.queryBookings(ctx, builder, "list for items")
}

func paged(builder squirrel.SelectBuilder, page ListPage) squirrel.SelectBuilder {
	return builder.
		OrderBy("b.start_time DESC").
		Limit(page.Limit).
		Offset(page.Offset)
}

func (r *pgxRepository) queryBookings(ctx context.Context, builder squirrel.SelectBuilder, op string) ([]*Booking, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query failed: %w", op, err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", op, err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.Start, &b.End, &b.Status,
			&b.ItemID, &b.ItemName, &b.ItemOwnerID,
			&b.BookerID, &b.BookerName,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}
