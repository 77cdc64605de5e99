package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-deskboard/pkg/news"
	"github.com/goliatone/go-deskboard/pkg/weather"
)

const (
	defaultWeatherCity  = weather.DefaultCity
	defaultNewsCategory = news.DefaultCategory
	defaultFeedTTL      = 5 * time.Minute
)

// Sources are the backends the default providers read from. Nil feeds serve demo data.
type Sources struct {
	Tasks   TaskLister
	Weather weather.Source
	News    news.Source
	Cache   *TTLCache
}

// RegisterDefaultProviders installs a provider for every built-in widget type.
func RegisterDefaultProviders(reg ProviderRegistry, src Sources) error {
	if src.Weather == nil {
		src.Weather = weather.WithFallback(nil, nil)
	}
	if src.News == nil {
		src.News = news.WithFallback(nil, nil)
	}
	if src.Cache == nil {
		src.Cache = NewTTLCache(defaultFeedTTL)
	}
	providers := map[WidgetType]Provider{
		WidgetTodo:      NewTodoProvider(src.Tasks),
		WidgetWeather:   NewWeatherProvider(src.Weather, src.Cache),
		WidgetNews:      NewNewsProvider(src.News, src.Cache),
		WidgetPomodoro:  ProviderFunc(pomodoroProvider),
		WidgetCalendar:  ProviderFunc(calendarProvider),
		WidgetStocks:    ProviderFunc(stocksProvider),
		WidgetNotes:     ProviderFunc(notesProvider),
		WidgetAnalytics: NewAnalyticsProvider(WithChartCache(src.Cache)),
		WidgetBookmarks: ProviderFunc(bookmarksProvider),
		WidgetGoals:     ProviderFunc(goalsProvider),
	}
	for _, t := range widgetTypes {
		if err := reg.RegisterProvider(t, providers[t]); err != nil {
			return err
		}
	}
	return nil
}

func pomodoroProvider(_ context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Widget.Config
	return WidgetData{
		"work_minutes":        intValue(cfg["work_minutes"], 25),
		"short_break_minutes": intValue(cfg["short_break_minutes"], 5),
		"long_break_minutes":  intValue(cfg["long_break_minutes"], 15),
		"long_break_interval": intValue(cfg["long_break_interval"], 4),
	}, nil
}

type quote struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
}

var demoQuotes = []quote{
	{Symbol: "AAPL", Name: "Apple Inc.", Price: 185.32, Change: 2.45},
	{Symbol: "GOOGL", Name: "Alphabet", Price: 145.67, Change: -0.89},
	{Symbol: "MSFT", Name: "Microsoft", Price: 412.43, Change: 1.23},
}

func stocksProvider(_ context.Context, meta WidgetContext) (WidgetData, error) {
	symbols := stringSliceValue(meta.Widget.Config["symbols"])
	if len(symbols) == 0 {
		return WidgetData{"quotes": append([]quote(nil), demoQuotes...)}, nil
	}
	out := make([]quote, 0, len(symbols))
	for _, symbol := range symbols {
		for _, q := range demoQuotes {
			if strings.EqualFold(q.Symbol, symbol) {
				out = append(out, q)
			}
		}
	}
	return WidgetData{"quotes": out}, nil
}

func notesProvider(_ context.Context, meta WidgetContext) (WidgetData, error) {
	return WidgetData{"text": stringValue(meta.Widget.Config["text"], "")}, nil
}

func bookmarksProvider(context.Context, WidgetContext) (WidgetData, error) {
	return WidgetData{
		"bookmarks": []map[string]any{
			{"id": "1", "title": "GitHub", "url": "https://github.com", "category": "Development"},
			{"id": "2", "title": "Twitter", "url": "https://twitter.com", "category": "Social"},
			{"id": "3", "title": "Google Docs", "url": "https://docs.google.com", "category": "Productivity"},
			{"id": "4", "title": "Notion", "url": "https://notion.so", "category": "Organization"},
		},
	}, nil
}

func goalsProvider(context.Context, WidgetContext) (WidgetData, error) {
	goals := []map[string]any{
		{"id": "1", "title": "Learn React Native", "completed": false, "priority": "high"},
		{"id": "2", "title": "Finish project documentation", "completed": true, "priority": "medium"},
		{"id": "3", "title": "Exercise 3 times this week", "completed": false, "priority": "medium"},
	}
	done := 0
	for _, g := range goals {
		if g["completed"] == true {
			done++
		}
	}
	return WidgetData{
		"goals":     goals,
		"completed": done,
		"progress":  done * 100 / len(goals),
	}, nil
}
