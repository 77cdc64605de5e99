package news

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type mockArticle struct {
	title, description, url, source, category string
	hoursAgo                                  int
}

var mockArticles = []mockArticle{
	{"New AI Breakthrough in Medical Research", "Scientists develop revolutionary AI algorithm for early disease detection that could save millions of lives worldwide.", "https://example.com/ai-breakthrough", "Tech News Daily", "technology", 0},
	{"Global Climate Summit Reaches Historic Agreement", "World leaders commit to ambitious carbon reduction targets in unprecedented international cooperation.", "https://example.com/climate-summit", "World News Network", "politics", 2},
	{"Stock Market Reaches All-Time High", "Major indices surge amid positive economic indicators and strong corporate earnings reports.", "https://example.com/stock-market", "Financial Times", "business", 4},
	{"Breakthrough in Renewable Energy Storage", "New battery technology promises longer lifespan and significantly lower costs for solar energy systems.", "https://example.com/energy-storage", "Science Daily", "science", 6},
	{"Major Sports Championship Finals This Weekend", "Top athletes prepare for the ultimate showdown in the international championship finals.", "https://example.com/sports-finals", "Sports Central", "sports", 8},
	{"New Blockbuster Movie Breaks Box Office Records", "The highly anticipated film surpasses all expectations with record-breaking opening weekend numbers.", "https://example.com/box-office", "Entertainment Weekly", "entertainment", 10},
}

// DemoArticles returns the canned headlines, timestamped relative to now.
func DemoArticles(now time.Time) []Article {
	out := make([]Article, len(mockArticles))
	for i, m := range mockArticles {
		out[i] = Article{
			Title:       m.title,
			Description: m.description,
			URL:         m.url,
			Source:      m.source,
			Category:    m.category,
			PublishedAt: now.Add(-time.Duration(m.hoursAgo) * time.Hour),
		}
	}
	return out
}

// Static serves the canned headlines for every category.
type Static struct {
	Now func() time.Time
}

// NewStatic returns a source serving DemoArticles.
func NewStatic() Static {
	return Static{Now: time.Now}
}

// TopHeadlines implements Source.
func (s Static) TopHeadlines(_ context.Context, category string) (Feed, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return Feed{Category: normalizeCategory(category), Articles: DemoArticles(now().UTC())}, nil
}

type fallbackSource struct {
	primary  Source
	fallback Static
	logger   *zap.Logger
}

// WithFallback wraps primary so any error yields the demo feed flagged with Demo and Error.
func WithFallback(primary Source, logger *zap.Logger) Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return fallbackSource{primary: primary, fallback: NewStatic(), logger: logger}
}

func (s fallbackSource) TopHeadlines(ctx context.Context, category string) (Feed, error) {
	var cause error
	if s.primary != nil {
		feed, err := s.primary.TopHeadlines(ctx, category)
		if err == nil {
			return feed, nil
		}
		s.logger.Warn("news source failed, serving demo data", zap.String("category", category), zap.Error(err))
		cause = err
	}
	feed, _ := s.fallback.TopHeadlines(ctx, category)
	feed.Demo = true
	if cause != nil {
		feed.Error = cause.Error()
	}
	return feed, nil
}
