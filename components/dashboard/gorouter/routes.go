package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-deskboard/components/dashboard"
	"github.com/goliatone/go-deskboard/components/dashboard/commands"
	"github.com/goliatone/go-deskboard/components/dashboard/httpapi"
	"github.com/goliatone/go-deskboard/pkg/news"
	"github.com/goliatone/go-deskboard/pkg/tasks"
	"github.com/goliatone/go-deskboard/pkg/weather"
)

// Config wires go-router with the dashboard controller, APIs, and hooks.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dashboard.Controller
	API            httpapi.Executor
	Tasks          httpapi.TaskService
	Weather        weather.Source
	News           news.Source
	Broadcast      *dashboard.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML        string
	Dashboard   string
	State       string
	Definitions string
	Widgets     string
	WidgetID    string
	Layout      string
	Edit        string
	Save        string
	Reload      string
	Tasks       string
	TaskID      string
	Weather     string
	News        string
	WebSocket   string
}

// Register mounts dashboard routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil && cfg.API == nil {
		return errors.New("gorouter: controller or API is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	resolver := cfg.ViewerResolver
	if resolver == nil {
		resolver = LocalsViewerResolver
	}

	group := cfg.Router
	if cfg.BasePath != "" {
		group = cfg.Router.Group(cfg.BasePath)
	}

	if cfg.Controller != nil {
		group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
			viewer, err := resolver(ctx)
			if err != nil {
				return respondError(ctx, err)
			}
			var buf bytes.Buffer
			if err := cfg.Controller.RenderTemplate(ctx.Context(), viewer, &buf); err != nil {
				return respondError(ctx, err)
			}
			ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
			return ctx.Send(buf.Bytes())
		}))
	}
	if cfg.API != nil {
		registerAPI(group, cfg.API, resolver, routes)
	}
	if cfg.Tasks != nil {
		registerTasks(group, cfg.Tasks, resolver, routes)
	}
	if cfg.Weather != nil {
		group.Get(routes.Weather, router.WrapHandler(func(ctx router.Context) error {
			city := ctx.Query("city")
			if city == "" {
				city = weather.DefaultCity
			}
			report, err := cfg.Weather.Current(ctx.Context(), city)
			if err != nil {
				return respondError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, report)
		}))
	}
	if cfg.News != nil {
		group.Get(routes.News, router.WrapHandler(func(ctx router.Context) error {
			feed, err := cfg.News.TopHeadlines(ctx.Context(), ctx.Query("category"))
			if err != nil {
				return respondError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, feed)
		}))
	}
	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, resolver, routes.WebSocket)
	}
	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver ViewerResolver, routes RouteConfig) {
	withViewer := func(fn func(ctx router.Context, viewer dashboard.ViewerContext) error) router.HandlerFunc {
		return router.WrapHandler(func(ctx router.Context) error {
			viewer, err := resolver(ctx)
			if err != nil {
				return respondError(ctx, err)
			}
			return fn(ctx, viewer)
		})
	}
	respondState := func(ctx router.Context, viewer dashboard.ViewerContext, status int) error {
		state, err := api.State(ctx.Context(), viewer)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(status, state)
	}

	r.Get(routes.Dashboard, withViewer(func(ctx router.Context, viewer dashboard.ViewerContext) error {
		view, err := api.Dashboard(ctx.Context(), viewer)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, view)
	}))

	r.Get(routes.State, withViewer(func(ctx router.Context, viewer dashboard.ViewerContext) error {
		return respondState(ctx, viewer, http.StatusOK)
	}))

	r.Get(routes.Definitions, withViewer(func(ctx router.Context, viewer dashboard.ViewerContext) error {
		defs, err := api.Definitions(ctx.Context(), viewer)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, defs)
	}))

	r.Post(routes.Widgets, withViewer(func(ctx router.Context, viewer dashboard.ViewerContext) error {
		var payload dashboard.AddWidgetRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		if err := api.AddWidget(ctx.Context(), commands.AddWidgetInput{Viewer: viewer, Request: payload}); err != nil {
			return respondError(ctx, err)
		}
		return respondState(ctx, viewer, http.StatusCreated)
	}))

	r.Delete(routes.WidgetID, withViewer(func(ctx router.Context, viewer dashboard.ViewerContext) error {
		id := ctx.Param("id")
		if id == "" {
			return respondStatus(ctx, http.StatusBadRequest, errors.New("widget id is required"))
		}
		if err := api.RemoveWidget(ctx.Context(), commands.RemoveWidgetInput{Viewer: viewer, WidgetID: id}); err != nil {
			return respondError(ctx, err)
		}
		return respondState(ctx, viewer, http.StatusOK)
	}))

	r.Put(routes.Layout, withViewer(func(ctx router.Context, viewer dashboard.ViewerContext) error {
		layout, err := decodeLayout(ctx.Body())
		if err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		if err := api.UpdateLayout(ctx.Context(), commands.UpdateLayoutInput{Viewer: viewer, Layout: layout}); err != nil {
			return respondError(ctx, err)
		}
		return respondState(ctx, viewer, http.StatusOK)
	}))

	r.Post(routes.Edit, withViewer(func(ctx router.Context, viewer dashboard.ViewerContext) error {
		if err := api.ToggleEdit(ctx.Context(), commands.ToggleEditInput{Viewer: viewer}); err != nil {
			return respondError(ctx, err)
		}
		return respondState(ctx, viewer, http.StatusOK)
	}))

	r.Post(routes.Save, withViewer(func(ctx router.Context, viewer dashboard.ViewerContext) error {
		if body := bytes.TrimSpace(ctx.Body()); len(body) > 0 {
			layout, err := decodeLayout(body)
			if err != nil {
				return respondStatus(ctx, http.StatusBadRequest, err)
			}
			if err := api.UpdateLayout(ctx.Context(), commands.UpdateLayoutInput{Viewer: viewer, Layout: layout}); err != nil {
				return respondError(ctx, err)
			}
		}
		if err := api.SaveLayout(ctx.Context(), commands.SaveLayoutInput{Viewer: viewer}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	r.Post(routes.Reload, withViewer(func(ctx router.Context, viewer dashboard.ViewerContext) error {
		if err := api.ReloadLayout(ctx.Context(), commands.ReloadLayoutInput{Viewer: viewer}); err != nil {
			return respondError(ctx, err)
		}
		return respondState(ctx, viewer, http.StatusOK)
	}))
}

func registerTasks[T any](r router.Router[T], svc httpapi.TaskService, resolver ViewerResolver, routes RouteConfig) {
	r.Get(routes.Tasks, router.WrapHandler(func(ctx router.Context) error {
		viewer, err := resolver(ctx)
		if err != nil {
			return respondError(ctx, err)
		}
		list, err := svc.List(ctx.Context(), viewer.UserID)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, list)
	}))

	r.Post(routes.Tasks, router.WrapHandler(func(ctx router.Context) error {
		viewer, err := resolver(ctx)
		if err != nil {
			return respondError(ctx, err)
		}
		var payload struct {
			Title string `json:"title"`
		}
		if body := bytes.TrimSpace(ctx.Body()); len(body) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				return respondStatus(ctx, http.StatusBadRequest, err)
			}
		}
		task, err := svc.Create(ctx.Context(), viewer.UserID, payload.Title)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusCreated, task)
	}))

	r.Put(routes.TaskID, router.WrapHandler(func(ctx router.Context) error {
		viewer, err := resolver(ctx)
		if err != nil {
			return respondError(ctx, err)
		}
		var patch tasks.TaskPatch
		if err := json.Unmarshal(ctx.Body(), &patch); err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		task, err := svc.Update(ctx.Context(), viewer.UserID, ctx.Param("id"), patch)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, task)
	}))

	r.Delete(routes.TaskID, router.WrapHandler(func(ctx router.Context) error {
		viewer, err := resolver(ctx)
		if err != nil {
			return respondError(ctx, err)
		}
		if err := svc.Delete(ctx.Context(), viewer.UserID, ctx.Param("id")); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, resolver ViewerResolver, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		viewer, err := resolver(ws)
		if err != nil || viewer.UserID == "" {
			return ws.Close()
		}
		events, cancel := hook.Subscribe(viewer.UserID)
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

// decodeLayout accepts a bare item array or {"layout": [...]}.
func decodeLayout(body []byte) ([]dashboard.LayoutItem, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New("layout payload is required")
	}
	if body[0] == '[' {
		var layout []dashboard.LayoutItem
		if err := json.Unmarshal(body, &layout); err != nil {
			return nil, err
		}
		return layout, nil
	}
	var wrapped struct {
		Layout []dashboard.LayoutItem `json:"layout"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Layout, nil
}

func respondError(ctx router.Context, err error) error {
	return respondStatus(ctx, httpapi.StatusFor(err), err)
}

func respondStatus(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/"
	}
	if routes.Dashboard == "" {
		routes.Dashboard = "/api/dashboard"
	}
	if routes.State == "" {
		routes.State = "/api/dashboard/state"
	}
	if routes.Definitions == "" {
		routes.Definitions = "/api/dashboard/definitions"
	}
	if routes.Widgets == "" {
		routes.Widgets = "/api/dashboard/widgets"
	}
	if routes.WidgetID == "" {
		routes.WidgetID = "/api/dashboard/widgets/:id"
	}
	if routes.Layout == "" {
		routes.Layout = "/api/dashboard/layout"
	}
	if routes.Edit == "" {
		routes.Edit = "/api/dashboard/edit"
	}
	if routes.Save == "" {
		routes.Save = "/api/layout"
	}
	if routes.Reload == "" {
		routes.Reload = "/api/layout/reload"
	}
	if routes.Tasks == "" {
		routes.Tasks = "/api/tasks"
	}
	if routes.TaskID == "" {
		routes.TaskID = "/api/tasks/:id"
	}
	if routes.Weather == "" {
		routes.Weather = "/api/weather"
	}
	if routes.News == "" {
		routes.News = "/api/news"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/api/events/ws"
	}
	return routes
}
