package dashboard

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"go.uber.org/fx"
	"go.uber.org/zap"

	core "github.com/goliatone/go-deskboard/components/dashboard"
	"github.com/goliatone/go-deskboard/components/dashboard/gorouter"
	"github.com/goliatone/go-deskboard/components/dashboard/httpapi"
	"github.com/goliatone/go-deskboard/pkg/identity"
	"github.com/goliatone/go-deskboard/pkg/tasks"
)

// ServerModule starts the configured HTTP transport.
var ServerModule = fx.Module("deskboard.server",
	fx.Invoke(StartServer),
)

// ServerDeps groups what both transports need.
type ServerDeps struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Config     Config
	Logger     *zap.Logger
	Controller *core.Controller
	Executor   *httpapi.CommandExecutor
	Tasks      *tasks.Service
	Sources    core.Sources
	Broadcast  *core.BroadcastHook
	Verifier   *identity.Verifier
}

// StartServer mounts the routes and binds the listener to the app lifecycle.
func StartServer(deps ServerDeps) error {
	if deps.Config.Transport == TransportHTTP {
		return startHTTP(deps)
	}
	return startRouter(deps)
}

func startRouter(deps ServerDeps) error {
	resolver := gorouter.StaticViewerResolver(deps.Config.DevUser)
	if deps.Verifier != nil {
		resolver = gorouter.BearerViewerResolver(deps.Verifier)
	}
	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:         server.Router(),
		Controller:     deps.Controller,
		API:            deps.Executor,
		Tasks:          deps.Tasks,
		Weather:        deps.Sources.Weather,
		News:           deps.Sources.News,
		Broadcast:      deps.Broadcast,
		ViewerResolver: resolver,
	}); err != nil {
		return err
	}
	addr := deps.Config.Addr()
	deps.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				deps.Logger.Info("dashboard listening", zap.String("addr", addr), zap.String("transport", TransportRouter))
				if err := server.Serve(addr); err != nil {
					deps.Logger.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: server.Shutdown,
	})
	return nil
}

func startHTTP(deps ServerDeps) error {
	resolver := httpapi.StaticResolver(deps.Config.DevUser)
	if deps.Verifier != nil {
		resolver = httpapi.BearerResolver(deps.Verifier)
	}
	mux := httpapi.NewMux(&httpapi.Handlers{
		API:       deps.Executor,
		Tasks:     deps.Tasks,
		Weather:   deps.Sources.Weather,
		News:      deps.Sources.News,
		Broadcast: deps.Broadcast,
		Viewer:    resolver,
		Logger:    deps.Logger.Named("http"),
	})
	mux.Handle("GET /{$}", pageHandler(deps.Controller, resolver))

	srv := &http.Server{
		Addr:              deps.Config.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	deps.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				deps.Logger.Info("dashboard listening", zap.String("addr", srv.Addr), zap.String("transport", TransportHTTP))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					deps.Logger.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: srv.Shutdown,
	})
	return nil
}

func pageHandler(controller *core.Controller, resolve core.ViewerResolver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer, err := resolve(r)
		if err != nil {
			http.Error(w, err.Error(), httpapi.StatusFor(err))
			return
		}
		var buf bytes.Buffer
		if err := controller.RenderTemplate(r.Context(), viewer, &buf); err != nil {
			http.Error(w, err.Error(), httpapi.StatusFor(err))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	})
}
