package dashboard

import (
	"context"
	"fmt"
	"strings"
)

// WidgetType identifies one of the closed set of widgets the dashboard can host.
type WidgetType string

const (
	WidgetTodo      WidgetType = "todo"
	WidgetWeather   WidgetType = "weather"
	WidgetNews      WidgetType = "news"
	WidgetPomodoro  WidgetType = "pomodoro"
	WidgetCalendar  WidgetType = "calendar"
	WidgetStocks    WidgetType = "stocks"
	WidgetNotes     WidgetType = "notes"
	WidgetAnalytics WidgetType = "analytics"
	WidgetBookmarks WidgetType = "bookmarks"
	WidgetGoals     WidgetType = "goals"
)

var widgetTypes = []WidgetType{
	WidgetTodo,
	WidgetWeather,
	WidgetNews,
	WidgetPomodoro,
	WidgetCalendar,
	WidgetStocks,
	WidgetNotes,
	WidgetAnalytics,
	WidgetBookmarks,
	WidgetGoals,
}

// WidgetTypes returns every supported widget type in declaration order.
func WidgetTypes() []WidgetType {
	return append([]WidgetType(nil), widgetTypes...)
}

// Valid reports whether t belongs to the supported enumeration.
func (t WidgetType) Valid() bool {
	for _, known := range widgetTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseWidgetType normalizes raw input and rejects unknown values.
func ParseWidgetType(raw string) (WidgetType, error) {
	t := WidgetType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownWidgetType, raw)
	}
	return t, nil
}

func (t WidgetType) order() int {
	for idx, known := range widgetTypes {
		if t == known {
			return idx
		}
	}
	return len(widgetTypes)
}

// Widget is a dashboard-visible unit of functionality.
type Widget struct {
	ID      string         `json:"id" yaml:"id"`
	Type    WidgetType     `json:"type" yaml:"type"`
	ColSpan int            `json:"colSpan" yaml:"colSpan"`
	RowSpan int            `json:"rowSpan" yaml:"rowSpan"`
	Title   string         `json:"title,omitempty" yaml:"title,omitempty"`
	Config  map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// LayoutItem is the positional record for a widget. Zero constraints are unset.
type LayoutItem struct {
	I    string     `json:"i" yaml:"i"`
	X    int        `json:"x" yaml:"x"`
	Y    int        `json:"y" yaml:"y"`
	W    int        `json:"w" yaml:"w"`
	H    int        `json:"h" yaml:"h"`
	Type WidgetType `json:"type" yaml:"type"`
	MinW int        `json:"minW,omitempty" yaml:"minW,omitempty"`
	MinH int        `json:"minH,omitempty" yaml:"minH,omitempty"`
	MaxW int        `json:"maxW,omitempty" yaml:"maxW,omitempty"`
	MaxH int        `json:"maxH,omitempty" yaml:"maxH,omitempty"`
}

// State is the full dashboard state owned by a Board.
type State struct {
	Widgets   []Widget     `json:"widgets" yaml:"widgets"`
	Layout    []LayoutItem `json:"layout" yaml:"layout"`
	IsEditing bool         `json:"isEditing" yaml:"isEditing"`
}

// Projection is the read-only view handed to renderers.
type Projection struct {
	Layout    []LayoutItem      `json:"layout"`
	Widgets   map[string]Widget `json:"widgets"`
	IsEditing bool              `json:"isEditing"`
}

// Widget looks up the widget behind a layout item.
func (p Projection) Widget(id string) (Widget, bool) {
	w, ok := p.Widgets[id]
	return w, ok
}

// WidgetOverrides optionally replaces the per-type defaults when adding a widget.
// Non-positive spans are treated as absent.
type WidgetOverrides struct {
	Title   string         `json:"title,omitempty"`
	ColSpan int            `json:"colSpan,omitempty"`
	RowSpan int            `json:"rowSpan,omitempty"`
	Config  map[string]any `json:"config,omitempty"`
}

// ViewerContext identifies who owns a dashboard.
type ViewerContext struct {
	UserID string
	Roles  []string
	Locale string
}

// WidgetEvent describes changes that transports might care about.
type WidgetEvent struct {
	UserID string     `json:"user_id,omitempty"`
	Widget Widget     `json:"widget"`
	Reason string     `json:"reason"`
	Type   WidgetType `json:"type,omitempty"`
}

// LayoutStore persists the serialized dashboard blob per user. The blob is opaque to the store.
type LayoutStore interface {
	LoadLayout(ctx context.Context, userID string) ([]byte, bool, error)
	SaveLayout(ctx context.Context, userID string, blob []byte) error
}

// ProviderRegistry maps widget types to definitions and data providers.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(t WidgetType, provider Provider) error
	Definition(t WidgetType) (WidgetDefinition, bool)
	Provider(t WidgetType) (Provider, bool)
	Definitions() []WidgetDefinition
}

// RefreshHook notifies transports (REST/WebSocket) about widget changes.
type RefreshHook interface {
	WidgetUpdated(ctx context.Context, event WidgetEvent) error
}

// WidgetDefinition describes a widget type: display metadata, footprint and config schema.
type WidgetDefinition struct {
	Type        WidgetType     `json:"type" yaml:"type"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
	Footprint   Footprint      `json:"footprint" yaml:"footprint"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// View is a resolved dashboard: projection plus provider payloads per widget id.
type View struct {
	UserID    string                `json:"user_id"`
	Columns   int                   `json:"columns"`
	IsEditing bool                  `json:"isEditing"`
	Layout    []LayoutItem          `json:"layout"`
	Widgets   map[string]Widget     `json:"widgets"`
	Data      map[string]WidgetData `json:"data"`
}
