package dashboard

import "github.com/ettle/strcase"

// SeedWidget describes a widget added to a brand new dashboard.
type SeedWidget struct {
	Type      WidgetType
	Overrides WidgetOverrides
}

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Type:        WidgetTodo,
		Description: "Personal task list",
		Category:    "productivity",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"show_completed": map[string]any{"type": "boolean", "default": true},
				"limit":          map[string]any{"type": "integer", "minimum": 1, "maximum": 100},
			},
		},
	},
	{
		Type:        WidgetWeather,
		Description: "Current conditions for a city",
		Category:    "feeds",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"city": map[string]any{"type": "string", "minLength": 1, "default": defaultWeatherCity},
			},
		},
	},
	{
		Type:        WidgetNews,
		Description: "Top headlines by category",
		Category:    "feeds",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"category": map[string]any{
					"type":    "string",
					"enum":    []string{"general", "world", "business", "technology", "entertainment", "sports", "science", "health"},
					"default": defaultNewsCategory,
				},
			},
		},
	},
	{
		Type:        WidgetPomodoro,
		Description: "Focus timer with work and break intervals",
		Category:    "productivity",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"work_minutes":        map[string]any{"type": "integer", "minimum": 1, "maximum": 120},
				"short_break_minutes": map[string]any{"type": "integer", "minimum": 1, "maximum": 60},
				"long_break_minutes":  map[string]any{"type": "integer", "minimum": 1, "maximum": 120},
				"long_break_interval": map[string]any{"type": "integer", "minimum": 1, "maximum": 12},
			},
		},
	},
	{
		Type:        WidgetCalendar,
		Description: "Month overview",
		Category:    "planning",
		Schema:      map[string]any{"type": "object"},
	},
	{
		Type:        WidgetStocks,
		Description: "Watchlist quotes",
		Category:    "feeds",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"symbols": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string", "minLength": 1},
					"uniqueItems": true,
				},
			},
		},
	},
	{
		Type:        WidgetNotes,
		Description: "Scratchpad",
		Category:    "productivity",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{"type": "string", "maxLength": 10000},
			},
		},
	},
	{
		Type:        WidgetAnalytics,
		Description: "Productivity summary and weekly focus trend",
		Category:    "analytics",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"chart": map[string]any{"type": "string", "enum": []string{"line", "bar"}, "default": "line"},
			},
		},
	},
	{
		Type:        WidgetBookmarks,
		Description: "Saved links grouped by category",
		Category:    "planning",
		Schema:      map[string]any{"type": "object"},
	},
	{
		Type:        WidgetGoals,
		Description: "Goals with priority and progress",
		Category:    "planning",
		Schema:      map[string]any{"type": "object"},
	},
}

// DefaultWidgetDefinitions returns the built-in definitions with names and footprints filled in.
func DefaultWidgetDefinitions() []WidgetDefinition {
	defs := make([]WidgetDefinition, len(defaultWidgetDefinitions))
	for i, def := range defaultWidgetDefinitions {
		def.Name = displayName(def.Type)
		def.Footprint = FootprintFor(def.Type)
		defs[i] = def
	}
	return defs
}

// DefaultSeedWidgets lists one widget of every type in the starter order.
func DefaultSeedWidgets() []SeedWidget {
	seeds := make([]SeedWidget, 0, len(widgetTypes))
	for _, t := range widgetTypes {
		seeds = append(seeds, SeedWidget{Type: t})
	}
	return seeds
}

func displayName(t WidgetType) string {
	return strcase.ToPascal(string(t))
}
