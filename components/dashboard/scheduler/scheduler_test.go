package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/goliatone/go-deskboard/components/dashboard"
	"github.com/goliatone/go-deskboard/components/dashboard/commands"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubRefresh struct {
	mu    sync.Mutex
	calls [][]dashboard.WidgetType
	err   error
}

func (s *stubRefresh) Execute(_ context.Context, msg commands.RefreshTypesInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, msg.Types)
	return s.err
}

func TestNewRegistersDefaultJobs(t *testing.T) {
	s, err := New(Options{Refresh: &stubRefresh{}})
	require.NoError(t, err)
	assert.Equal(t, len(DefaultJobs()), s.Jobs())
}

func TestNewValidatesJobs(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = New(Options{Refresh: &stubRefresh{}, Jobs: []Job{{Spec: "every tuesday", Types: []dashboard.WidgetType{dashboard.WidgetNews}}}})
	assert.ErrorContains(t, err, "invalid spec")

	_, err = New(Options{Refresh: &stubRefresh{}, Jobs: []Job{{Spec: "@hourly"}}})
	assert.ErrorContains(t, err, "no widget types")
}

func TestTriggerExecutesRefreshCommand(t *testing.T) {
	refresh := &stubRefresh{}
	s, err := New(Options{Refresh: refresh, Jobs: []Job{}})
	require.NoError(t, err)

	require.NoError(t, s.Trigger(context.Background(), dashboard.WidgetWeather, dashboard.WidgetNews))
	require.Len(t, refresh.calls, 1)
	assert.Equal(t, []dashboard.WidgetType{dashboard.WidgetWeather, dashboard.WidgetNews}, refresh.calls[0])

	refresh.err = errors.New("offline")
	assert.EqualError(t, s.Trigger(context.Background(), dashboard.WidgetNews), "offline")
}

func TestTriggerRefreshesLiveBoards(t *testing.T) {
	hook := dashboard.NewBroadcastHook()
	defer hook.Close()
	events, cancel := hook.Subscribe("")
	defer cancel()

	service := dashboard.NewService(dashboard.Options{RefreshHook: hook})
	_, err := service.State(context.Background(), dashboard.ViewerContext{UserID: "alice"})
	require.NoError(t, err)

	s, err := New(Options{Refresh: commands.NewRefreshTypesCommand(service, nil), Jobs: []Job{}})
	require.NoError(t, err)
	require.NoError(t, s.Trigger(context.Background(), dashboard.WidgetNews))

	event := <-events
	assert.Equal(t, "news-1", event.Widget.ID)
	assert.Equal(t, "refresh", event.Reason)
}

func TestStartAndStop(t *testing.T) {
	s, err := New(Options{Refresh: &stubRefresh{}})
	require.NoError(t, err)
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
