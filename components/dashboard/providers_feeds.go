package dashboard

import (
	"context"
	"fmt"

	"github.com/goliatone/go-deskboard/pkg/news"
	"github.com/goliatone/go-deskboard/pkg/tasks"
	"github.com/goliatone/go-deskboard/pkg/weather"
)

// TaskLister lists the viewer's tasks for the todo widget.
type TaskLister interface {
	List(ctx context.Context, userID string) ([]tasks.Task, error)
}

// NewTodoProvider renders the viewer's tasks with completion counts.
func NewTodoProvider(lister TaskLister) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		items := []tasks.Task{}
		if lister != nil && meta.Viewer.UserID != "" {
			list, err := lister.List(ctx, meta.Viewer.UserID)
			if err != nil {
				return nil, fmt.Errorf("dashboard: list tasks: %w", err)
			}
			items = list
		}
		completed := 0
		for _, task := range items {
			if task.IsCompleted {
				completed++
			}
		}
		pending := len(items) - completed
		if !boolValue(meta.Widget.Config["show_completed"], true) {
			open := items[:0:0]
			for _, task := range items {
				if !task.IsCompleted {
					open = append(open, task)
				}
			}
			items = open
		}
		if limit := intValue(meta.Widget.Config["limit"], 0); limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		return WidgetData{
			"tasks":     items,
			"completed": completed,
			"pending":   pending,
		}, nil
	})
}

// NewWeatherProvider reads current conditions for the configured city.
func NewWeatherProvider(source weather.Source, cache *TTLCache) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		city := stringValue(meta.Widget.Config["city"], defaultWeatherCity)
		v, err := cache.GetOrLoad("weather:"+configHash(map[string]any{"city": city}), func() (any, error) {
			return source.Current(ctx, city)
		})
		if err != nil {
			return nil, err
		}
		report := v.(weather.Report)
		data := WidgetData{
			"temperature": report.Temperature,
			"condition":   report.Condition,
			"location":    report.Location,
			"icon":        report.Icon,
			"demo":        report.Demo,
		}
		if report.Error != "" {
			data["error"] = report.Error
		}
		return data, nil
	})
}

// NewNewsProvider reads top headlines for the configured category.
func NewNewsProvider(source news.Source, cache *TTLCache) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		category := stringValue(meta.Widget.Config["category"], defaultNewsCategory)
		v, err := cache.GetOrLoad("news:"+configHash(map[string]any{"category": category}), func() (any, error) {
			return source.TopHeadlines(ctx, category)
		})
		if err != nil {
			return nil, err
		}
		feed := v.(news.Feed)
		data := WidgetData{
			"category": feed.Category,
			"articles": feed.Articles,
			"demo":     feed.Demo,
		}
		if feed.Error != "" {
			data["error"] = feed.Error
		}
		return data, nil
	})
}
