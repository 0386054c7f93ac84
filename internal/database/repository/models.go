package repository

import "github.com/jask/marquee/internal/content"

// ContentItem represents a content_items row.
type ContentItem struct {
	ID       string
	Dataset  string
	Position int
	Type     string
	Content  string
}

// Item converts the row to marquee input. Row ids stay in the database; the
// marquee assigns its own.
func (c ContentItem) Item() content.Item {
	return content.Item{Content: c.Content, Type: c.Type}
}
