package comment

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for storing and listing comments.
type Repository interface {
	Create(ctx context.Context, cm *Comment) error
	ListByItem(ctx context.Context, itemID int64) ([]*Comment, error)
	// ListByItems fetches comments for several items at once, keyed by item id.
	ListByItems(ctx context.Context, itemIDs []int64) (map[int64][]*Comment, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository implementation backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, cm *Comment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.comments").
		Columns("text", "item_id", "author_id", "created").
		Values(cm.Text, cm.ItemID, cm.AuthorID, cm.Created).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create comment query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&cm.ID); err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListByItem(ctx context.Context, itemID int64) ([]*Comment, error) {
	return r.list(ctx, squirrel.Eq{"c.item_id": itemID})
}

func (r *pgxRepository) ListByItems(ctx context.Context, itemIDs []int64) (map[int64][]*Comment, error) {
	out := make(map[int64][]*Comment, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	comments, err := r.list(ctx, squirrel.Eq{"c.item_id": itemIDs})
	if err != nil {
		return nil, err
	}
	for _, cm := range comments {
		out[cm.ItemID] = append(out[cm.ItemID], cm)
	}
	return out, nil
}

func (r *pgxRepository) list(ctx context.Context, where any) ([]*Comment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("c.id", "c.text", "c.item_id", "c.author_id", "u.name", "c.created").
		From("public.comments c").
		Join("public.users u ON c.author_id = u.id").
		Where(where).
		OrderBy("c.created ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list comments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		var cm Comment
		if err := rows.Scan(&cm.ID, &cm.Text, &cm.ItemID, &cm.AuthorID, &cm.AuthorName, &cm.Created); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		comments = append(comments, &cm)
	}
	return comments, rows.Err()
}
