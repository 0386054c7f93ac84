package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/marquee/internal/content"
	"github.com/jask/marquee/internal/database"
	"github.com/jask/marquee/internal/database/repository"
)

func seeded(t *testing.T) *repository.ContentRepo {
	t.Helper()
	path := filepath.Join(t.TempDir(), "marquee.db")
	require.NoError(t, database.RunMigrations(path))
	db, err := database.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.SeedDemo(context.Background(), db))
	return repository.NewContentRepo(db)
}

func TestContentRepoListKeepsOrder(t *testing.T) {
	repo := seeded(t)
	ctx := context.Background()

	text, err := repo.List(ctx, "text")
	require.NoError(t, err)
	require.Len(t, text, 8)
	for i, want := range []string{"foo", "bar", "baz", "qux", "foo", "bar", "baz", "qux"} {
		require.Equal(t, content.Item{Type: content.TypeText, Content: want}, text[i])
	}

	images, err := repo.List(ctx, "images")
	require.NoError(t, err)
	require.Len(t, images, 7)
	require.Contains(t, images[0].Content, "original_a2dfbcad743cbe4ddf850fd40fa50dd5.jpg")
	for _, it := range images {
		require.Equal(t, content.TypeImage, it.Type)
	}
}

func TestContentRepoRowsHaveDistinctIDs(t *testing.T) {
	repo := seeded(t)
	rows, err := repo.Rows(context.Background(), "text")
	require.NoError(t, err)

	seen := map[string]bool{}
	for i, r := range rows {
		require.Equal(t, i, r.Position)
		require.Equal(t, "text", r.Dataset)
		require.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
}

func TestContentRepoUnknownDataset(t *testing.T) {
	repo := seeded(t)
	items, err := repo.List(context.Background(), "videos")
	require.NoError(t, err)
	require.Empty(t, items)
}
