package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	b := NewBoard(BoardOptions{})
	addAll(t, b, WidgetTodo, WidgetWeather)
	_, err := b.AddWidget(WidgetNotes, WidgetOverrides{Title: "Ideas", Config: map[string]any{"text": "draft"}})
	require.NoError(t, err)
	b.ToggleEdit()
	state := b.State()

	blob, err := EncodeState(state)
	require.NoError(t, err)
	decoded, err := DecodeState(blob)
	require.NoError(t, err)
	assert.Equal(t, state, decoded)
}

func TestEncodeStateUsesWireNames(t *testing.T) {
	blob, err := EncodeState(State{
		Widgets: []Widget{{ID: "todo-1", Type: WidgetTodo, ColSpan: 2, RowSpan: 2}},
		Layout:  []LayoutItem{{I: "todo-1", W: 2, H: 2, Type: WidgetTodo, MinW: 1, MinH: 1}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"widgets":[{"id":"todo-1","type":"todo","colSpan":2,"rowSpan":2}],
		"layout":[{"i":"todo-1","x":0,"y":0,"w":2,"h":2,"type":"todo","minW":1,"minH":1}],
		"isEditing":false
	}`, string(blob))
}

func TestDecodeLayoutArray(t *testing.T) {
	state, err := DecodeState([]byte(`[{"i":"weather-1","x":1,"y":0,"w":1,"h":1,"type":"weather"}]`))
	require.NoError(t, err)
	require.NoError(t, state.Validate())
	assert.Equal(t, []Widget{{ID: "weather-1", Type: WidgetWeather, ColSpan: 1, RowSpan: 1}}, state.Widgets)
	assert.Equal(t, 1, state.Layout[0].X)
}

func TestDecodeStateErrors(t *testing.T) {
	_, err := DecodeState(nil)
	assert.Error(t, err)
	_, err = DecodeState([]byte(`{"widgets":`))
	assert.Error(t, err)
	_, err = DecodeState([]byte(`[{"i":1}]`))
	assert.Error(t, err)
}

func TestDecodeStateNormalizesNilSlices(t *testing.T) {
	state, err := DecodeState([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, state.Widgets)
	assert.NotNil(t, state.Layout)
}

func TestStateRoundTripNormalizesConfig(t *testing.T) {
	b := NewBoard(BoardOptions{})
	_, err := b.AddWidget(WidgetPomodoro, WidgetOverrides{Config: map[string]any{"work_minutes": 50, "labels": []string{"deep"}}})
	require.NoError(t, err)

	blob, err := EncodeState(b.State())
	require.NoError(t, err)
	decoded, err := DecodeState(blob)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"work_minutes": float64(50), "labels": []any{"deep"}}, decoded.Widgets[0].Config)
}
