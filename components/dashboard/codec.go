package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeState serializes a state for the layout store. Widget config is JSON-normalized:
// numbers come back from DecodeState as float64 and lists as []any.
func EncodeState(state State) ([]byte, error) {
	data, err := json.Marshal(state.Clone())
	if err != nil {
		return nil, fmt.Errorf("dashboard: encode state: %w", err)
	}
	return data, nil
}

// DecodeState parses a stored blob. A bare JSON array is accepted as a layout-only
// payload and the widgets are rebuilt from its items.
func DecodeState(data []byte) (State, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return State{}, fmt.Errorf("dashboard: decode state: empty payload")
	}
	if trimmed[0] == '[' {
		var layout []LayoutItem
		if err := json.Unmarshal(trimmed, &layout); err != nil {
			return State{}, fmt.Errorf("dashboard: decode layout: %w", err)
		}
		return stateFromLayout(layout), nil
	}
	var state State
	if err := json.Unmarshal(trimmed, &state); err != nil {
		return State{}, fmt.Errorf("dashboard: decode state: %w", err)
	}
	return state.Clone(), nil
}

func stateFromLayout(layout []LayoutItem) State {
	state := State{
		Widgets: make([]Widget, 0, len(layout)),
		Layout:  make([]LayoutItem, 0, len(layout)),
	}
	for _, item := range layout {
		state.Widgets = append(state.Widgets, Widget{
			ID:      item.I,
			Type:    item.Type,
			ColSpan: item.W,
			RowSpan: item.H,
		})
		state.Layout = append(state.Layout, item)
	}
	return state
}
