package dashboard

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addAll(t *testing.T, b *Board, types ...WidgetType) State {
	t.Helper()
	var state State
	for _, wt := range types {
		var err error
		state, err = b.AddWidget(wt, WidgetOverrides{})
		require.NoError(t, err)
	}
	return state
}

func assertPaired(t *testing.T, state State) {
	t.Helper()
	require.Len(t, state.Layout, len(state.Widgets))
	counts := map[string]int{}
	for _, item := range state.Layout {
		counts[item.I]++
	}
	for _, w := range state.Widgets {
		assert.Equal(t, 1, counts[w.ID], "layout entries for %s", w.ID)
	}
}

func assertNoOverlap(t *testing.T, state State) {
	t.Helper()
	for i, a := range state.Layout {
		for _, b := range state.Layout[i+1:] {
			assert.False(t, overlaps(a.X, a.Y, a.W, a.H, b.X, b.Y, b.W, b.H), "%s overlaps %s", a.I, b.I)
		}
	}
}

func TestBoardIDsAreUnique(t *testing.T) {
	b := NewBoard(BoardOptions{})
	var state State
	for i := 0; i < 25; i++ {
		state = addAll(t, b, WidgetTypes()[i%len(widgetTypes)])
	}
	seen := map[string]bool{}
	for _, w := range state.Widgets {
		assert.False(t, seen[w.ID], "duplicate id %s", w.ID)
		seen[w.ID] = true
	}
	assert.Equal(t, "todo-1", state.Widgets[0].ID)
	assert.Equal(t, "todo-2", state.Widgets[10].ID)
}

func TestBoardIDsSkipLoadedCollisions(t *testing.T) {
	b := NewBoard(BoardOptions{})
	require.NoError(t, b.Load(State{
		Widgets: []Widget{{ID: "notes-1", Type: WidgetNotes, ColSpan: 1, RowSpan: 1}},
		Layout:  []LayoutItem{{I: "notes-1", W: 1, H: 1, Type: WidgetNotes}},
	}))
	state := addAll(t, b, WidgetNotes)
	assert.Equal(t, "notes-2", state.Widgets[1].ID)
}

func TestBoardUUIDGenerator(t *testing.T) {
	b := NewBoard(BoardOptions{IDs: NewUUIDGenerator()})
	state := addAll(t, b, WidgetNews, WidgetNews)
	assert.NotEqual(t, state.Widgets[0].ID, state.Widgets[1].ID)
	assert.Regexp(t, `^news-[0-9a-f-]{36}$`, state.Widgets[0].ID)
}

func TestBoardPairingAcrossOperations(t *testing.T) {
	b := NewBoard(BoardOptions{})
	state := addAll(t, b, WidgetTodo, WidgetWeather, WidgetCalendar, WidgetNews)
	assertPaired(t, state)
	state = b.RemoveWidget(state.Widgets[1].ID)
	assertPaired(t, state)
	state = addAll(t, b, WidgetGoals)
	assertPaired(t, state)
	state = b.ToggleEdit()
	assertPaired(t, state)
}

func TestBoardRemoveIsIdempotent(t *testing.T) {
	b := NewBoard(BoardOptions{})
	addAll(t, b, WidgetTodo, WidgetWeather)

	first := b.RemoveWidget("weather-1")
	second := b.RemoveWidget("weather-1")
	assert.Equal(t, first, second)
	assert.Equal(t, first, b.RemoveWidget("does-not-exist"))
	assert.Len(t, first.Widgets, 1)
}

func TestBoardRemoveDoesNotReflow(t *testing.T) {
	b := NewBoard(BoardOptions{})
	addAll(t, b, WidgetWeather, WidgetStocks, WidgetNotes)
	state := b.RemoveWidget("weather-1")
	assert.Equal(t, 1, state.Layout[0].X)
	assert.Equal(t, 2, state.Layout[1].X)
}

func TestBoardAppliesDefaultFootprints(t *testing.T) {
	b := NewBoard(BoardOptions{})
	state := addAll(t, b, WidgetTodo, WidgetWeather)
	assert.Equal(t, 2, state.Layout[0].W)
	assert.Equal(t, 2, state.Layout[0].H)
	assert.Equal(t, 1, state.Layout[1].W)
	assert.Equal(t, 1, state.Layout[1].H)
	assert.Equal(t, 2, state.Widgets[0].ColSpan)
	assert.Equal(t, WidgetTodo, state.Layout[0].Type)
	assert.Equal(t, 1, state.Layout[0].MinW)
	assert.Equal(t, 1, state.Layout[0].MinH)
}

func TestBoardOverridesReplaceFootprint(t *testing.T) {
	b := NewBoard(BoardOptions{})
	state, err := b.AddWidget(WidgetNotes, WidgetOverrides{Title: "Ideas", ColSpan: 2, RowSpan: -1, Config: map[string]any{"text": "x"}})
	require.NoError(t, err)
	assert.Equal(t, Widget{ID: "notes-1", Type: WidgetNotes, ColSpan: 2, RowSpan: 1, Title: "Ideas", Config: map[string]any{"text": "x"}}, state.Widgets[0])
	assert.Equal(t, 2, state.Layout[0].W)
}

func TestBoardCustomFootprintTable(t *testing.T) {
	b := NewBoard(BoardOptions{Footprints: map[WidgetType]Footprint{WidgetTodo: {ColSpan: 1, RowSpan: 2}}})
	state := addAll(t, b, WidgetTodo, WidgetWeather)
	assert.Equal(t, 1, state.Layout[0].W)
	assert.Equal(t, 1, state.Layout[1].W, "types missing from the table fall back to the defaults")
}

func TestBoardPlacementSequence(t *testing.T) {
	b := NewBoard(BoardOptions{})
	state := addAll(t, b, WidgetWeather, WidgetStocks, WidgetNotes, WidgetGoals)
	got := make([][2]int, len(state.Layout))
	for i, item := range state.Layout {
		got[i] = [2]int{item.X, item.Y}
	}
	assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {2, 0}, {0, 1}}, got)
}

func TestBoardFullWidthFallback(t *testing.T) {
	b := NewBoard(BoardOptions{})
	addAll(t, b, WidgetWeather)
	state, err := b.AddWidget(WidgetNews, WidgetOverrides{ColSpan: 3})
	require.NoError(t, err)
	last := state.Layout[len(state.Layout)-1]
	assert.Equal(t, [2]int{0, 1}, [2]int{last.X, last.Y})
	assertNoOverlap(t, state)
}

func TestBoardSeedLayoutHasNoOverlap(t *testing.T) {
	b := NewBoard(BoardOptions{})
	state := addAll(t, b, WidgetTypes()...)
	assertPaired(t, state)
	assertNoOverlap(t, state)
	for _, item := range state.Layout {
		assert.LessOrEqual(t, item.X+item.W, GridColumns, "%s overflows the grid", item.I)
	}
}

func TestBoardToggleEditTwiceRestores(t *testing.T) {
	b := NewBoard(BoardOptions{})
	assert.True(t, b.ToggleEdit().IsEditing)
	assert.False(t, b.ToggleEdit().IsEditing)
}

func TestBoardUpdateLayoutPermutation(t *testing.T) {
	b := NewBoard(BoardOptions{})
	before := addAll(t, b, WidgetTodo, WidgetWeather, WidgetNews)

	items := []LayoutItem{
		{I: "news-1", X: 0, Y: 0, W: 2, H: 1},
		{I: "todo-1", X: 0, Y: 1, W: 2, H: 2, MinW: 1, MinH: 1},
		{I: "weather-1", X: 2, Y: 0, W: 1, H: 1},
	}
	after, err := b.UpdateLayout(items)
	require.NoError(t, err)
	assert.Equal(t, before.Widgets, after.Widgets)
	assertPaired(t, after)
	assert.Equal(t, WidgetNews, after.Layout[0].Type, "type is taken from the widget")
	assert.Equal(t, 1, after.Layout[1].Y)
}

func TestBoardUpdateLayoutRejectsMismatch(t *testing.T) {
	b := NewBoard(BoardOptions{})
	before := addAll(t, b, WidgetTodo, WidgetWeather)

	cases := map[string][]LayoutItem{
		"missing":   {{I: "todo-1", W: 2, H: 2}},
		"unknown":   {{I: "todo-1", W: 2, H: 2}, {I: "ghost", W: 1, H: 1}},
		"duplicate": {{I: "todo-1", W: 2, H: 2}, {I: "todo-1", X: 2, W: 1, H: 1}},
		"extra":     {{I: "todo-1", W: 2, H: 2}, {I: "weather-1", X: 2, W: 1, H: 1}, {I: "x", W: 1, H: 1}},
	}
	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := b.UpdateLayout(items)
			assert.ErrorIs(t, err, ErrLayoutMismatch)
			assert.Equal(t, before, b.State())
		})
	}
}

func TestBoardUpdateLayoutRejectsConstraintViolations(t *testing.T) {
	b := NewBoard(BoardOptions{})
	before := addAll(t, b, WidgetWeather)

	cases := map[string]LayoutItem{
		"zero width":  {I: "weather-1", W: 0, H: 1},
		"negative x":  {I: "weather-1", X: -1, W: 1, H: 1},
		"below min":   {I: "weather-1", W: 1, H: 1, MinW: 2},
		"above max":   {I: "weather-1", W: 3, H: 1, MaxW: 2},
		"above max h": {I: "weather-1", W: 1, H: 4, MaxH: 3},
		"below min h": {I: "weather-1", W: 1, H: 1, MinH: 2},
	}
	for name, item := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := b.UpdateLayout([]LayoutItem{item})
			assert.ErrorIs(t, err, ErrLayoutConstraint)
			assert.Equal(t, before, b.State())
		})
	}
}

func TestBoardUpdateLayoutAllowsOversizedItems(t *testing.T) {
	b := NewBoard(BoardOptions{})
	addAll(t, b, WidgetWeather)
	_, err := b.UpdateLayout([]LayoutItem{{I: "weather-1", X: 2, Y: 0, W: 4, H: 1}})
	assert.NoError(t, err)
}

func TestBoardRejectsUnknownType(t *testing.T) {
	b := NewBoard(BoardOptions{})
	_, err := b.AddWidget("clock", WidgetOverrides{})
	assert.ErrorIs(t, err, ErrUnknownWidgetType)
	assert.Empty(t, b.State().Widgets)
}

func TestBoardLoadValidates(t *testing.T) {
	b := NewBoard(BoardOptions{})
	err := b.Load(State{
		Widgets: []Widget{{ID: "a", Type: WidgetNotes, ColSpan: 1, RowSpan: 1}},
		Layout:  []LayoutItem{},
	})
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, err, ErrLayoutMismatch)

	err = b.Load(State{
		Widgets: []Widget{{ID: "a", Type: "clock", ColSpan: 1, RowSpan: 1}},
		Layout:  []LayoutItem{{I: "a", W: 1, H: 1}},
	})
	assert.ErrorIs(t, err, ErrUnknownWidgetType)
	assert.Empty(t, b.State().Widgets)
}

func TestBoardStateIsACopy(t *testing.T) {
	b := NewBoard(BoardOptions{})
	_, err := b.AddWidget(WidgetNotes, WidgetOverrides{Config: map[string]any{"text": "a"}})
	require.NoError(t, err)

	state := b.State()
	state.Widgets[0].Config["text"] = "mutated"
	state.Layout[0].X = 9
	fresh := b.State()
	assert.Equal(t, "a", fresh.Widgets[0].Config["text"])
	assert.Equal(t, 0, fresh.Layout[0].X)
}

func TestBoardsAreIndependent(t *testing.T) {
	a := NewBoard(BoardOptions{})
	b := NewBoard(BoardOptions{})
	addAll(t, a, WidgetTodo)
	assert.Empty(t, b.State().Widgets)
}

func TestBoardConcurrentAdds(t *testing.T) {
	b := NewBoard(BoardOptions{})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := b.AddWidget(WidgetTypes()[i%len(widgetTypes)], WidgetOverrides{Title: fmt.Sprint(i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	state := b.State()
	assert.Len(t, state.Widgets, 50)
	assertPaired(t, state)
	assertNoOverlap(t, state)
	require.NoError(t, state.Validate())
}

func TestProjectionIndexesWidgets(t *testing.T) {
	b := NewBoard(BoardOptions{})
	addAll(t, b, WidgetTodo, WidgetWeather)
	p := b.Projection()
	w, ok := p.Widget("weather-1")
	require.True(t, ok)
	assert.Equal(t, WidgetWeather, w.Type)
	_, ok = p.Widget("nope")
	assert.False(t, ok)
	assert.Len(t, p.Layout, 2)
}

func TestBoardRejectsOversizedOverrides(t *testing.T) {
	b := NewBoard(BoardOptions{})
	before := addAll(t, b, WidgetWeather, WidgetWeather, WidgetWeather, WidgetWeather)

	for name, o := range map[string]WidgetOverrides{
		"rows":    {RowSpan: math.MaxInt},
		"columns": {ColSpan: MaxSpan + 1},
	} {
		_, err := b.AddWidget(WidgetNotes, o)
		assert.ErrorIs(t, err, ErrInvalidOverrides, name)
	}
	assert.Equal(t, before, b.State())

	state, err := b.AddWidget(WidgetNotes, WidgetOverrides{RowSpan: MaxSpan})
	require.NoError(t, err)
	assertNoOverlap(t, state)
}

func TestBoardUpdateLayoutRejectsOutOfRangeItems(t *testing.T) {
	b := NewBoard(BoardOptions{})
	addAll(t, b, WidgetWeather)

	_, err := b.UpdateLayout([]LayoutItem{{I: "weather-1", X: 0, Y: math.MaxInt, W: 1, H: 1}})
	assert.ErrorIs(t, err, ErrLayoutConstraint)
	_, err = b.UpdateLayout([]LayoutItem{{I: "weather-1", X: 0, Y: 0, W: 1, H: MaxSpan + 1}})
	assert.ErrorIs(t, err, ErrLayoutConstraint)
}

func TestBoardGivesUpOnUnusableIDs(t *testing.T) {
	calls := 0
	b := NewBoard(BoardOptions{IDs: IDGeneratorFunc(func(WidgetType) string {
		calls++
		return "fixed"
	})})
	_, err := b.AddWidget(WidgetTodo, WidgetOverrides{})
	require.NoError(t, err)

	_, err = b.AddWidget(WidgetTodo, WidgetOverrides{})
	assert.ErrorIs(t, err, ErrIDExhausted)
	assert.Equal(t, 1+maxIDAttempts, calls)
	assert.Len(t, b.State().Widgets, 1)

	empty := NewBoard(BoardOptions{IDs: IDGeneratorFunc(func(WidgetType) string { return "" })})
	_, err = empty.AddWidget(WidgetNotes, WidgetOverrides{})
	assert.ErrorIs(t, err, ErrIDExhausted)
}
