package dashboard

import "fmt"

// MaxSpan is the largest column or row span a widget may occupy.
const MaxSpan = 12

// maxOrigin bounds layout coordinates so placement arithmetic cannot overflow.
const maxOrigin = 1 << 20

// Footprint is a widget size in grid cells.
type Footprint struct {
	ColSpan int `json:"colSpan" yaml:"colSpan"`
	RowSpan int `json:"rowSpan" yaml:"rowSpan"`
}

func (f Footprint) valid() bool {
	return f.ColSpan >= 1 && f.RowSpan >= 1
}

// DefaultFootprints is the single source of per-type default sizes.
var DefaultFootprints = map[WidgetType]Footprint{
	WidgetTodo:      {ColSpan: 2, RowSpan: 2},
	WidgetWeather:   {ColSpan: 1, RowSpan: 1},
	WidgetNews:      {ColSpan: 2, RowSpan: 1},
	WidgetPomodoro:  {ColSpan: 1, RowSpan: 1},
	WidgetCalendar:  {ColSpan: 1, RowSpan: 2},
	WidgetStocks:    {ColSpan: 1, RowSpan: 1},
	WidgetNotes:     {ColSpan: 1, RowSpan: 1},
	WidgetAnalytics: {ColSpan: 2, RowSpan: 2},
	WidgetBookmarks: {ColSpan: 1, RowSpan: 1},
	WidgetGoals:     {ColSpan: 1, RowSpan: 1},
}

// FootprintFor returns the default footprint for t, or 1x1 for unknown types.
func FootprintFor(t WidgetType) Footprint {
	if fp, ok := DefaultFootprints[t]; ok {
		return fp
	}
	return Footprint{ColSpan: 1, RowSpan: 1}
}

// resolve applies positive overrides on top of the footprint and rejects spans
// above MaxSpan.
func (f Footprint) resolve(colSpan, rowSpan int) (Footprint, error) {
	if colSpan > 0 {
		f.ColSpan = colSpan
	}
	if rowSpan > 0 {
		f.RowSpan = rowSpan
	}
	if f.ColSpan > MaxSpan || f.RowSpan > MaxSpan {
		return Footprint{}, fmt.Errorf("%w: span %dx%d exceeds %d", ErrInvalidOverrides, f.ColSpan, f.RowSpan, MaxSpan)
	}
	return f, nil
}
