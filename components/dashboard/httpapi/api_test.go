package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-deskboard/components/dashboard"
	"github.com/goliatone/go-deskboard/pkg/identity"
	"github.com/goliatone/go-deskboard/pkg/news"
	"github.com/goliatone/go-deskboard/pkg/tasks"
	"github.com/goliatone/go-deskboard/pkg/weather"
)

func newTestServer(t *testing.T, resolver dashboard.ViewerResolver) *httptest.Server {
	t.Helper()
	service := dashboard.NewService(dashboard.Options{})
	mux := NewMux(&Handlers{
		API:     NewCommandExecutor(service, nil),
		Tasks:   tasks.NewService(tasks.Options{}),
		Weather: weather.NewStatic(),
		News:    news.NewStatic(),
		Viewer:  resolver,
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string, header ...string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if len(header) == 2 {
		req.Header.Set(header[0], header[1])
	}
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(res.Body)
	require.NoError(t, err)
	return res, buf.Bytes()
}

func decodeState(t *testing.T, data []byte) dashboard.State {
	t.Helper()
	var state dashboard.State
	require.NoError(t, json.Unmarshal(data, &state))
	return state
}

func TestDashboardRequiresViewer(t *testing.T) {
	srv := newTestServer(t, func(*http.Request) (dashboard.ViewerContext, error) {
		return dashboard.ViewerContext{}, nil
	})
	res, body := do(t, srv, http.MethodGet, "/api/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, string(body), "viewer user id is required")
}

func TestDashboardWithBearerTokens(t *testing.T) {
	verifier, err := identity.NewVerifier("test-secret", "")
	require.NoError(t, err)
	srv := newTestServer(t, BearerResolver(verifier))

	res, _ := do(t, srv, http.MethodGet, "/api/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = do(t, srv, http.MethodGet, "/api/dashboard", "", "Authorization", "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	token, err := verifier.Issue("alice", nil, time.Hour)
	require.NoError(t, err)
	res, body := do(t, srv, http.MethodGet, "/api/dashboard", "", "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var view dashboard.View
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "alice", view.UserID)
	assert.Len(t, view.Layout, len(dashboard.WidgetTypes()))
}

func TestWidgetLifecycle(t *testing.T) {
	srv := newTestServer(t, StaticResolver("alice"))

	res, body := do(t, srv, http.MethodPost, "/api/dashboard/widgets", `{"type":"notes","title":"Ideas"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	state := decodeState(t, body)
	require.Len(t, state.Widgets, len(dashboard.WidgetTypes())+1)
	added := state.Widgets[len(state.Widgets)-1]
	assert.Equal(t, "notes-2", added.ID)
	assert.Equal(t, "Ideas", added.Title)

	res, body = do(t, srv, http.MethodDelete, "/api/dashboard/widgets/notes-2", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, decodeState(t, body).Widgets, len(dashboard.WidgetTypes()))

	res, body = do(t, srv, http.MethodPost, "/api/dashboard/edit", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, decodeState(t, body).IsEditing)
}

func TestAddWidgetRejectsBadInput(t *testing.T) {
	srv := newTestServer(t, StaticResolver("alice"))

	cases := map[string]string{
		"malformed":    `{"type":`,
		"unknown type": `{"type":"spreadsheet"}`,
		"bad config":   `{"type":"weather","config":{"city":""}}`,
		"unknown key":  `{"type":"weather","config":{"units":"imperial"}}`,
		"huge rowSpan": `{"type":"notes","rowSpan":9223372036854775807}`,
		"wide colSpan": `{"type":"notes","colSpan":13}`,
	}
	for name, body := range cases {
		res, _ := do(t, srv, http.MethodPost, "/api/dashboard/widgets", body)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, name)
	}
}

func TestUpdateLayoutRejectsMismatch(t *testing.T) {
	srv := newTestServer(t, StaticResolver("alice"))
	res, body := do(t, srv, http.MethodPut, "/api/dashboard/layout", `[{"i":"todo-1","x":0,"y":0,"w":2,"h":2}]`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, string(body), "layout does not match widgets")
}

func TestUpdateLayoutAcceptsWrappedPayload(t *testing.T) {
	srv := newTestServer(t, StaticResolver("alice"))
	_, body := do(t, srv, http.MethodGet, "/api/dashboard/state", "")
	state := decodeState(t, body)
	for i := range state.Layout {
		state.Layout[i].Y += 1
	}
	payload, err := json.Marshal(map[string]any{"layout": state.Layout})
	require.NoError(t, err)

	res, body := do(t, srv, http.MethodPut, "/api/dashboard/layout", string(payload))
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 1, decodeState(t, body).Layout[0].Y)
}

func TestSaveAndReloadLayout(t *testing.T) {
	srv := newTestServer(t, StaticResolver("alice"))

	res, _ := do(t, srv, http.MethodDelete, "/api/dashboard/widgets/goals-1", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	res, _ = do(t, srv, http.MethodPost, "/api/layout", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = do(t, srv, http.MethodDelete, "/api/dashboard/widgets/stocks-1", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body := do(t, srv, http.MethodPost, "/api/layout/reload", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	state := decodeState(t, body)
	assert.Len(t, state.Widgets, len(dashboard.WidgetTypes())-1)
	for _, w := range state.Widgets {
		assert.NotEqual(t, "goals-1", w.ID)
	}
}

func TestDefinitions(t *testing.T) {
	srv := newTestServer(t, StaticResolver("alice"))
	res, body := do(t, srv, http.MethodGet, "/api/dashboard/definitions", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var defs []dashboard.WidgetDefinition
	require.NoError(t, json.Unmarshal(body, &defs))
	assert.Len(t, defs, len(dashboard.WidgetTypes()))
}

func TestTaskEndpoints(t *testing.T) {
	srv := newTestServer(t, StaticResolver("alice"))

	res, body := do(t, srv, http.MethodPost, "/api/tasks", `{"title":"  "}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var created tasks.Task
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, tasks.DefaultTitle, created.Title)

	res, body = do(t, srv, http.MethodPut, "/api/tasks/"+created.ID, `{"isCompleted":true}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var updated tasks.Task
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.True(t, updated.IsCompleted)
	assert.Equal(t, tasks.DefaultTitle, updated.Title)

	res, body = do(t, srv, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var list []tasks.Task
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)

	res, _ = do(t, srv, http.MethodDelete, "/api/tasks/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	res, _ = do(t, srv, http.MethodDelete, "/api/tasks/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestFeedEndpoints(t *testing.T) {
	srv := newTestServer(t, StaticResolver("alice"))

	res, body := do(t, srv, http.MethodGet, "/api/weather?city=Lisbon", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var report weather.Report
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, weather.DemoReport().Temperature, report.Temperature)

	res, body = do(t, srv, http.MethodGet, "/api/news?category=science", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var feed news.Feed
	require.NoError(t, json.Unmarshal(body, &feed))
	assert.Equal(t, "science", feed.Category)
	assert.NotEmpty(t, feed.Articles)
}

func TestCommandExecutorRequiresCommanders(t *testing.T) {
	srv := httptest.NewServer(NewMux(&Handlers{
		API:    &CommandExecutor{},
		Viewer: StaticResolver("alice"),
	}))
	defer srv.Close()

	res, body := do(t, srv, http.MethodPost, "/api/dashboard/edit", "")
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Contains(t, string(body), "edit commander not configured")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, StatusFor(identity.ErrInvalidToken))
	assert.Equal(t, http.StatusNotFound, StatusFor(tasks.ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, StatusFor(dashboard.ErrLayoutConstraint))
	assert.Equal(t, http.StatusBadRequest, StatusFor(fmt.Errorf("wrap: %w", dashboard.ErrInvalidOverrides)))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}
