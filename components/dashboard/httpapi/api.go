package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-deskboard/components/dashboard"
	"github.com/goliatone/go-deskboard/components/dashboard/commands"
	"github.com/goliatone/go-deskboard/pkg/news"
	"github.com/goliatone/go-deskboard/pkg/tasks"
	"github.com/goliatone/go-deskboard/pkg/weather"
)

const maxBodyBytes = 1 << 20

// TaskService is the task surface exposed under /api/tasks.
type TaskService interface {
	List(ctx context.Context, userID string) ([]tasks.Task, error)
	Create(ctx context.Context, userID, title string) (tasks.Task, error)
	Update(ctx context.Context, userID, id string, patch tasks.TaskPatch) (tasks.Task, error)
	Delete(ctx context.Context, userID, id string) error
}

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	API       Executor
	Tasks     TaskService
	Weather   weather.Source
	News      news.Source
	Broadcast *dashboard.BroadcastHook
	Viewer    dashboard.ViewerResolver
	Logger    *zap.Logger
}

// NewMux mounts every configured endpoint on a ServeMux.
func NewMux(h *Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	if h.API != nil {
		mux.HandleFunc("GET /api/dashboard", h.HandleDashboard)
		mux.HandleFunc("GET /api/dashboard/state", h.HandleState)
		mux.HandleFunc("GET /api/dashboard/definitions", h.HandleDefinitions)
		mux.HandleFunc("POST /api/dashboard/widgets", h.HandleAddWidget)
		mux.HandleFunc("DELETE /api/dashboard/widgets/{id}", h.HandleRemoveWidget)
		mux.HandleFunc("PUT /api/dashboard/layout", h.HandleUpdateLayout)
		mux.HandleFunc("POST /api/dashboard/edit", h.HandleToggleEdit)
		mux.HandleFunc("POST /api/dashboard/refresh", h.HandleRefreshWidget)
		mux.HandleFunc("POST /api/layout", h.HandleSaveLayout)
		mux.HandleFunc("POST /api/layout/reload", h.HandleReloadLayout)
	}
	if h.Tasks != nil {
		mux.HandleFunc("GET /api/tasks", h.HandleListTasks)
		mux.HandleFunc("POST /api/tasks", h.HandleCreateTask)
		mux.HandleFunc("PUT /api/tasks/{id}", h.HandleUpdateTask)
		mux.HandleFunc("DELETE /api/tasks/{id}", h.HandleDeleteTask)
	}
	if h.Weather != nil {
		mux.HandleFunc("GET /api/weather", h.HandleWeather)
	}
	if h.News != nil {
		mux.HandleFunc("GET /api/news", h.HandleNews)
	}
	if h.Broadcast != nil && h.Viewer != nil {
		mux.Handle("GET /api/events/ws", h.Broadcast.WebSocketHandler(h.Viewer))
		mux.Handle("GET /api/events", h.Broadcast.SSEHandler(h.Viewer))
	}
	return mux
}

func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	view, err := h.API.Dashboard(r.Context(), viewer)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	h.respondState(w, r, viewer, http.StatusOK)
}

func (h *Handlers) HandleDefinitions(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	defs, err := h.API.Definitions(r.Context(), viewer)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, defs)
}

func (h *Handlers) HandleAddWidget(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	var payload dashboard.AddWidgetRequest
	if err := decodeBody(r, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.API.AddWidget(r.Context(), commands.AddWidgetInput{Viewer: viewer, Request: payload}); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondState(w, r, viewer, http.StatusCreated)
}

func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	input := commands.RemoveWidgetInput{Viewer: viewer, WidgetID: r.PathValue("id")}
	if err := h.API.RemoveWidget(r.Context(), input); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondState(w, r, viewer, http.StatusOK)
}

func (h *Handlers) HandleUpdateLayout(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	layout, err := decodeLayout(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.API.UpdateLayout(r.Context(), commands.UpdateLayoutInput{Viewer: viewer, Layout: layout}); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondState(w, r, viewer, http.StatusOK)
}

func (h *Handlers) HandleToggleEdit(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	if err := h.API.ToggleEdit(r.Context(), commands.ToggleEditInput{Viewer: viewer}); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondState(w, r, viewer, http.StatusOK)
}

func (h *Handlers) HandleRefreshWidget(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	var payload commands.RefreshWidgetInput
	if err := decodeBody(r, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	payload.Event.UserID = viewer.UserID
	if err := h.API.Refresh(r.Context(), payload); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

// HandleSaveLayout persists the board. A layout in the body is applied first.
func (h *Handlers) HandleSaveLayout(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	layout, err := decodeLayout(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if layout != nil {
		if err := h.API.UpdateLayout(r.Context(), commands.UpdateLayoutInput{Viewer: viewer, Layout: layout}); err != nil {
			h.writeError(w, err)
			return
		}
	}
	if err := h.API.SaveLayout(r.Context(), commands.SaveLayoutInput{Viewer: viewer}); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *Handlers) HandleReloadLayout(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	if err := h.API.ReloadLayout(r.Context(), commands.ReloadLayoutInput{Viewer: viewer}); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondState(w, r, viewer, http.StatusOK)
}

func (h *Handlers) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	list, err := h.Tasks.List(r.Context(), viewer.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	var payload struct {
		Title string `json:"title"`
	}
	if err := decodeBody(r, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	task, err := h.Tasks.Create(r.Context(), viewer.UserID, payload.Title)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *Handlers) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	var patch tasks.TaskPatch
	if err := decodeBody(r, &patch); err != nil {
		h.writeError(w, err)
		return
	}
	task, err := h.Tasks.Update(r.Context(), viewer.UserID, r.PathValue("id"), patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *Handlers) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	if err := h.Tasks.Delete(r.Context(), viewer.UserID, r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleWeather(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		city = weather.DefaultCity
	}
	report, err := h.Weather.Current(r.Context(), city)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) HandleNews(w http.ResponseWriter, r *http.Request) {
	feed, err := h.News.TopHeadlines(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (h *Handlers) viewer(w http.ResponseWriter, r *http.Request) (dashboard.ViewerContext, bool) {
	if h.Viewer == nil {
		h.writeError(w, dashboard.ErrMissingViewer)
		return dashboard.ViewerContext{}, false
	}
	viewer, err := h.Viewer(r)
	if err == nil && viewer.UserID == "" {
		err = dashboard.ErrMissingViewer
	}
	if err != nil {
		h.writeError(w, err)
		return dashboard.ViewerContext{}, false
	}
	return viewer, true
}

func (h *Handlers) respondState(w http.ResponseWriter, r *http.Request, viewer dashboard.ViewerContext, status int) {
	state, err := h.API.State(r.Context(), viewer)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, status, state)
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError && h.Logger != nil {
		h.Logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(r *http.Request, v any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// decodeLayout accepts a bare item array or {"layout": [...]}. An empty body yields nil.
func decodeLayout(r *http.Request) ([]dashboard.LayoutItem, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	var layout []dashboard.LayoutItem
	if data[0] == '[' {
		err = json.Unmarshal(data, &layout)
	} else {
		var wrapped struct {
			Layout []dashboard.LayoutItem `json:"layout"`
		}
		err = json.Unmarshal(data, &wrapped)
		layout = wrapped.Layout
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if layout == nil {
		layout = []dashboard.LayoutItem{}
	}
	return layout, nil
}
