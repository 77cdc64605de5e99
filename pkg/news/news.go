package news

import (
	"context"
	"errors"
	"strings"
	"time"
)

// DefaultCategory is used when a request does not name a category.
const DefaultCategory = "general"

// ErrNoAPIKey is returned by the HTTP client when no key is configured.
var ErrNoAPIKey = errors.New("news: api key not configured")

// Article is a single headline.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"`
}

// Feed is a list of headlines for a category.
type Feed struct {
	Category string    `json:"category"`
	Articles []Article `json:"articles"`
	Demo     bool      `json:"isDemo"`
	Error    string    `json:"error,omitempty"`
}

// Source returns top headlines for a category.
type Source interface {
	TopHeadlines(ctx context.Context, category string) (Feed, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, category string) (Feed, error)

// TopHeadlines implements Source.
func (f SourceFunc) TopHeadlines(ctx context.Context, category string) (Feed, error) {
	return f(ctx, category)
}

func normalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return DefaultCategory
	}
	return category
}
