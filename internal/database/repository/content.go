package repository

import (
	"context"
	"database/sql"

	"github.com/jask/marquee/internal/content"
)

// ContentRepo reads demo content.
type ContentRepo struct {
	db *sql.DB
}

func NewContentRepo(db *sql.DB) *ContentRepo {
	return &ContentRepo{db: db}
}

// Rows returns the rows of dataset ordered by position.
func (r *ContentRepo) Rows(ctx context.Context, dataset string) ([]ContentItem, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, dataset, position, type, content
	FROM content_items
	WHERE dataset = ?
	ORDER BY position`, dataset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ContentItem
	for rows.Next() {
		var c ContentItem
		if err := rows.Scan(&c.ID, &c.Dataset, &c.Position, &c.Type, &c.Content); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// List returns dataset as marquee input.
func (r *ContentRepo) List(ctx context.Context, dataset string) ([]content.Item, error) {
	rows, err := r.Rows(ctx, dataset)
	if err != nil {
		return nil, err
	}
	out := make([]content.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Item())
	}
	return out, nil
}
