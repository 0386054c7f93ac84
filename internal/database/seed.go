package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/marquee/internal/content"
)

var demoImages = []string{
	"https://d2w9rnfcy7mm78.cloudfront.net/2555261/original_a2dfbcad743cbe4ddf850fd40fa50dd5.jpg?1534275881?bc=1",
	"https://d2w9rnfcy7mm78.cloudfront.net/13061152/original_d6997c76b5355e55f669446b93d98979.jpg?1630804490?bc=0",
	"https://d2w9rnfcy7mm78.cloudfront.net/2671826/original_0a3c3852b56939cc4af27b56cde36421.png?1536432003?bc=1",
	"https://d2w9rnfcy7mm78.cloudfront.net/10858165/original_2254c255b62b66b8d042ede0d051ee4e.jpg?1613931688?bc=0",
	"https://d2w9rnfcy7mm78.cloudfront.net/6475034/original_f8744f85089e570ff95902e97b17562f.png?1584438463?bc=0",
	"https://d2w9rnfcy7mm78.cloudfront.net/17404855/original_edee54aacc7afce5f62ff25424b40ff9.jpg?1659119834?bc=0",
	"https://d2w9rnfcy7mm78.cloudfront.net/599840/original_ca99227b2b13e5d85543437bf1bb7343.jpg?1461545289?bc=1",
}

var demoText = []string{"foo", "bar", "baz", "qux", "foo", "bar", "baz", "qux"}

// DemoDatasets returns the seeded content keyed by dataset name. The mixed
// set alternates text and images.
func DemoDatasets() map[string][]content.Item {
	images := make([]content.Item, 0, len(demoImages))
	for _, src := range demoImages {
		images = append(images, content.Item{Type: content.TypeImage, Content: src})
	}
	text := make([]content.Item, 0, len(demoText))
	for _, s := range demoText {
		text = append(text, content.Item{Type: content.TypeText, Content: s})
	}
	var mixed []content.Item
	for i := 0; i < len(images) || i < len(text); i++ {
		if i < len(text) {
			mixed = append(mixed, text[i])
		}
		if i < len(images) {
			mixed = append(mixed, images[i])
		}
	}
	return map[string][]content.Item{
		"images": images,
		"text":   text,
		"mixed":  mixed,
	}
}

// SeedDemo ensures the demo datasets exist. It is idempotent and safe to run
// on every startup.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM datasets`).Scan(&n); err != nil {
		return fmt.Errorf("count datasets: %w", err)
	}
	if n > 0 {
		return nil
	}
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		for name, items := range DemoDatasets() {
			if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO datasets(name) VALUES (?)`, name); err != nil {
				return fmt.Errorf("insert dataset %s: %w", name, err)
			}
			for pos, it := range items {
				// Positions are part of the key so repeated entries get distinct ids.
				id := uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "%s:%d:%s", name, pos, it.Content)).String()
				if _, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO content_items(id, dataset, position, type, content)
				VALUES (?, ?, ?, ?, ?)`, id, name, pos, it.Type, it.Content); err != nil {
					return fmt.Errorf("insert item %s/%d: %w", name, pos, err)
				}
			}
		}
		return nil
	})
}
