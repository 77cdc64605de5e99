package dashboard

import (
	"fmt"
	"maps"
)

// Clone returns a deep copy of the state. Widget config maps are copied one level deep.
func (s State) Clone() State {
	out := State{
		Widgets:   make([]Widget, len(s.Widgets)),
		Layout:    make([]LayoutItem, len(s.Layout)),
		IsEditing: s.IsEditing,
	}
	for i, w := range s.Widgets {
		w.Config = maps.Clone(w.Config)
		out.Widgets[i] = w
	}
	copy(out.Layout, s.Layout)
	return out
}

// Projection builds the renderer view of the state.
func (s State) Projection() Projection {
	clone := s.Clone()
	index := make(map[string]Widget, len(clone.Widgets))
	for _, w := range clone.Widgets {
		index[w.ID] = w
	}
	return Projection{
		Layout:    clone.Layout,
		Widgets:   index,
		IsEditing: clone.IsEditing,
	}
}

func (s State) hasWidget(id string) bool {
	for _, w := range s.Widgets {
		if w.ID == id {
			return true
		}
	}
	return false
}

// Validate checks every structural invariant of the state.
func (s State) Validate() error {
	ids := make(map[string]WidgetType, len(s.Widgets))
	for _, w := range s.Widgets {
		if w.ID == "" {
			return fmt.Errorf("%w: widget without id", ErrInvalidState)
		}
		if !w.Type.Valid() {
			return fmt.Errorf("%w: widget %s: %w: %q", ErrInvalidState, w.ID, ErrUnknownWidgetType, w.Type)
		}
		if w.ColSpan < 1 || w.RowSpan < 1 {
			return fmt.Errorf("%w: widget %s has non-positive span", ErrInvalidState, w.ID)
		}
		if _, dup := ids[w.ID]; dup {
			return fmt.Errorf("%w: duplicate widget id %s", ErrInvalidState, w.ID)
		}
		ids[w.ID] = w.Type
	}
	if err := checkPairing(ids, s.Layout); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	for _, item := range s.Layout {
		if err := checkConstraints(item); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidState, err)
		}
	}
	return nil
}

// checkPairing verifies the layout ids are exactly the widget ids, each used once.
func checkPairing(ids map[string]WidgetType, layout []LayoutItem) error {
	if len(layout) != len(ids) {
		return fmt.Errorf("%w: %d layout items for %d widgets", ErrLayoutMismatch, len(layout), len(ids))
	}
	seen := make(map[string]struct{}, len(layout))
	for _, item := range layout {
		if _, ok := ids[item.I]; !ok {
			return fmt.Errorf("%w: unknown widget id %q", ErrLayoutMismatch, item.I)
		}
		if _, dup := seen[item.I]; dup {
			return fmt.Errorf("%w: duplicate layout id %q", ErrLayoutMismatch, item.I)
		}
		seen[item.I] = struct{}{}
	}
	return nil
}

func checkConstraints(item LayoutItem) error {
	switch {
	case item.X < 0 || item.Y < 0:
		return fmt.Errorf("%w: %s has negative origin (%d,%d)", ErrLayoutConstraint, item.I, item.X, item.Y)
	case item.X > maxOrigin || item.Y > maxOrigin:
		return fmt.Errorf("%w: %s origin (%d,%d) out of range", ErrLayoutConstraint, item.I, item.X, item.Y)
	case item.W < 1 || item.H < 1:
		return fmt.Errorf("%w: %s has non-positive size %dx%d", ErrLayoutConstraint, item.I, item.W, item.H)
	case item.W > MaxSpan || item.H > MaxSpan:
		return fmt.Errorf("%w: %s size %dx%d exceeds %d", ErrLayoutConstraint, item.I, item.W, item.H, MaxSpan)
	case item.MinW > 0 && item.W < item.MinW:
		return fmt.Errorf("%w: %s width %d below minW %d", ErrLayoutConstraint, item.I, item.W, item.MinW)
	case item.MinH > 0 && item.H < item.MinH:
		return fmt.Errorf("%w: %s height %d below minH %d", ErrLayoutConstraint, item.I, item.H, item.MinH)
	case item.MaxW > 0 && item.W > item.MaxW:
		return fmt.Errorf("%w: %s width %d above maxW %d", ErrLayoutConstraint, item.I, item.W, item.MaxW)
	case item.MaxH > 0 && item.H > item.MaxH:
		return fmt.Errorf("%w: %s height %d above maxH %d", ErrLayoutConstraint, item.I, item.H, item.MaxH)
	}
	return nil
}
