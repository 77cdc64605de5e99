package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryHoldsEveryDefinition(t *testing.T) {
	reg := NewRegistry()
	defs := reg.Definitions()
	require.Len(t, defs, len(widgetTypes))
	for i, def := range defs {
		assert.Equal(t, widgetTypes[i], def.Type)
		assert.Equal(t, FootprintFor(def.Type), def.Footprint)
		assert.NotEmpty(t, def.Name)
	}
	def, _ := reg.Definition(WidgetTodo)
	assert.Equal(t, "Todo", def.Name)
}

func TestRegistryRejectsUnknownTypes(t *testing.T) {
	reg := NewRegistry()
	assert.ErrorIs(t, reg.RegisterDefinition(WidgetDefinition{Type: "clock"}), ErrUnknownWidgetType)
}

func TestRegistryProviderNeedsDefinition(t *testing.T) {
	reg := &Registry{definitions: map[WidgetType]WidgetDefinition{}, providers: map[WidgetType]Provider{}}
	noop := ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) { return nil, nil })
	assert.Error(t, reg.RegisterProvider(WidgetNotes, noop))
	require.NoError(t, reg.RegisterDefinition(WidgetDefinition{Type: WidgetNotes}))
	require.NoError(t, reg.RegisterProvider(WidgetNotes, noop))
	assert.Error(t, reg.RegisterProvider(WidgetNotes, nil))

	def, ok := reg.Definition(WidgetNotes)
	require.True(t, ok)
	assert.Equal(t, "Notes", def.Name)
	assert.Equal(t, Footprint{ColSpan: 1, RowSpan: 1}, def.Footprint)
}

func TestParseWidgetType(t *testing.T) {
	wt, err := ParseWidgetType("  Weather ")
	require.NoError(t, err)
	assert.Equal(t, WidgetWeather, wt)

	_, err = ParseWidgetType("clock")
	assert.ErrorIs(t, err, ErrUnknownWidgetType)
	assert.Len(t, WidgetTypes(), 10)
}

func TestDefaultFootprintTable(t *testing.T) {
	assert.Equal(t, Footprint{ColSpan: 2, RowSpan: 2}, FootprintFor(WidgetTodo))
	assert.Equal(t, Footprint{ColSpan: 1, RowSpan: 2}, FootprintFor(WidgetCalendar))
	assert.Equal(t, Footprint{ColSpan: 1, RowSpan: 1}, FootprintFor("clock"))
	for _, wt := range WidgetTypes() {
		_, ok := DefaultFootprints[wt]
		assert.True(t, ok, "footprint for %s", wt)
	}
}

func TestDefaultSeedWidgetsCoverEveryType(t *testing.T) {
	seeds := DefaultSeedWidgets()
	require.Len(t, seeds, len(widgetTypes))
	for i, seed := range seeds {
		assert.Equal(t, widgetTypes[i], seed.Type)
	}
}
