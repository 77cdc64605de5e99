package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	core "github.com/goliatone/go-deskboard/components/dashboard"
	"github.com/goliatone/go-deskboard/pkg/tasks"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg, err := Config{DatabaseDriver: "sqlite", DatabaseURL: ":memory:", SkipAuth: true}.Normalize()
	require.NoError(t, err)
	return cfg
}

func TestCoreModuleWiresServices(t *testing.T) {
	var (
		service  *core.Service
		taskSvc  *tasks.Service
		registry *core.Registry
	)
	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(testConfig(t), zap.NewNop()),
		CoreModule,
		fx.Populate(&service, &taskSvc, &registry),
	)
	app.RequireStart()
	defer app.RequireStop()

	ctx := context.Background()
	viewer := core.ViewerContext{UserID: "alice"}
	_, err := taskSvc.Create(ctx, viewer.UserID, "Ship it")
	require.NoError(t, err)

	view, err := service.ResolveDashboard(ctx, viewer)
	require.NoError(t, err)
	assert.Len(t, view.Layout, len(core.WidgetTypes()))
	assert.Equal(t, 1, view.Data["todo-1"]["pending"])
	assert.Equal(t, true, view.Data["weather-1"]["demo"])

	_, err = service.RemoveWidget(ctx, viewer, "stocks-1")
	require.NoError(t, err)
	require.NoError(t, service.SaveLayout(ctx, viewer))
	state, err := service.ReloadLayout(ctx, viewer)
	require.NoError(t, err)
	assert.Len(t, state.Widgets, len(core.WidgetTypes())-1)

	for _, def := range registry.Definitions() {
		_, ok := registry.Provider(def.Type)
		assert.True(t, ok, "no provider for %s", def.Type)
	}
}

func TestFullModuleValidates(t *testing.T) {
	err := fx.ValidateApp(
		fx.NopLogger,
		fx.Supply(testConfig(t), zap.NewNop()),
		Module,
	)
	assert.NoError(t, err)
}
