package dashboard

import (
	"fmt"
	"maps"
	"sync"
)

// BoardOptions configures a Board.
type BoardOptions struct {
	Columns    int
	IDs        IDGenerator
	Footprints map[WidgetType]Footprint
}

// Board owns one dashboard state. Every operation holds the board lock for its whole
// duration, so callers observe complete transitions only.
type Board struct {
	mu         sync.Mutex
	state      State
	columns    int
	ids        IDGenerator
	footprints map[WidgetType]Footprint
}

// NewBoard returns an empty board with editing disabled.
func NewBoard(opts BoardOptions) *Board {
	if opts.Columns <= 0 {
		opts.Columns = GridColumns
	}
	if opts.IDs == nil {
		opts.IDs = NewSequenceGenerator()
	}
	if opts.Footprints == nil {
		opts.Footprints = DefaultFootprints
	}
	return &Board{
		state:      State{Widgets: []Widget{}, Layout: []LayoutItem{}},
		columns:    opts.Columns,
		ids:        opts.IDs,
		footprints: opts.Footprints,
	}
}

// Columns returns the grid width used for placement.
func (b *Board) Columns() int {
	return b.columns
}

// State returns a copy of the current state.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Clone()
}

// Projection returns the renderer view of the current state.
func (b *Board) Projection() Projection {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Projection()
}

// AddWidget creates a widget of type t, places it on the grid and returns the new state.
// The new widget is always the last entry of State.Widgets.
func (b *Board) AddWidget(t WidgetType, overrides WidgetOverrides) (State, error) {
	if !t.Valid() {
		return State{}, fmt.Errorf("%w: %q", ErrUnknownWidgetType, t)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	fp, ok := b.footprints[t]
	if !ok || !fp.valid() {
		fp = FootprintFor(t)
	}
	fp, err := fp.resolve(overrides.ColSpan, overrides.RowSpan)
	if err != nil {
		return State{}, err
	}
	id, err := b.nextID(t)
	if err != nil {
		return State{}, err
	}

	widget := Widget{
		ID:      id,
		Type:    t,
		ColSpan: fp.ColSpan,
		RowSpan: fp.RowSpan,
		Title:   overrides.Title,
		Config:  maps.Clone(overrides.Config),
	}
	x, y := Place(b.state.Layout, fp.ColSpan, fp.RowSpan, b.columns)
	item := LayoutItem{
		I:    widget.ID,
		X:    x,
		Y:    y,
		W:    fp.ColSpan,
		H:    fp.RowSpan,
		Type: t,
		MinW: 1,
		MinH: 1,
	}

	b.state.Widgets = append(b.state.Widgets, widget)
	b.state.Layout = append(b.state.Layout, item)
	return b.state.Clone(), nil
}

const maxIDAttempts = 64

func (b *Board) nextID(t WidgetType) (string, error) {
	for range maxIDAttempts {
		id := b.ids.Next(t)
		if id != "" && !b.state.hasWidget(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %d attempts for %s", ErrIDExhausted, maxIDAttempts, t)
}

// RemoveWidget deletes the widget and its layout item. Unknown ids are a no-op.
func (b *Board) RemoveWidget(id string) State {
	b.mu.Lock()
	defer b.mu.Unlock()

	widgets := b.state.Widgets[:0:0]
	for _, w := range b.state.Widgets {
		if w.ID != id {
			widgets = append(widgets, w)
		}
	}
	layout := b.state.Layout[:0:0]
	for _, item := range b.state.Layout {
		if item.I != id {
			layout = append(layout, item)
		}
	}
	b.state.Widgets = widgets
	b.state.Layout = layout
	return b.state.Clone()
}

// UpdateLayout replaces the layout wholesale. The replacement must contain exactly one
// item per current widget and respect every item's size constraints; otherwise the
// state is left untouched. Item types are taken from the owning widgets.
func (b *Board) UpdateLayout(items []LayoutItem) (State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ids := make(map[string]WidgetType, len(b.state.Widgets))
	for _, w := range b.state.Widgets {
		ids[w.ID] = w.Type
	}
	if err := checkPairing(ids, items); err != nil {
		return State{}, err
	}
	next := make([]LayoutItem, len(items))
	for i, item := range items {
		if err := checkConstraints(item); err != nil {
			return State{}, err
		}
		item.Type = ids[item.I]
		next[i] = item
	}
	b.state.Layout = next
	return b.state.Clone(), nil
}

// ToggleEdit flips the edit mode flag.
func (b *Board) ToggleEdit() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.IsEditing = !b.state.IsEditing
	return b.state.Clone()
}

// Load replaces the whole state after validating its invariants.
func (b *Board) Load(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = state.Clone()
	return nil
}
