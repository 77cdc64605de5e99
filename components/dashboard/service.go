package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const providerConcurrency = 4

// Options configures the dashboard Service. Every collaborator is an interface so
// applications can swap implementations.
type Options struct {
	Layouts         LayoutStore
	Providers       ProviderRegistry
	ConfigValidator ConfigValidator
	RefreshHook     RefreshHook
	Telemetry       Telemetry
	Columns         int
	NewIDGenerator  func() IDGenerator
	Seed            []SeedWidget
	Logger          *zap.Logger
	Now             func() time.Time
}

// Service keeps one Board per viewer and orchestrates persistence, validation,
// provider data and refresh notifications around it.
type Service struct {
	opts   Options
	mu     sync.Mutex
	boards map[string]*Board
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Layouts == nil {
		opts.Layouts = NewInMemoryLayoutStore()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Providers == nil {
		opts.Providers = NewRegistry()
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Columns <= 0 {
		opts.Columns = GridColumns
	}
	if opts.NewIDGenerator == nil {
		opts.NewIDGenerator = func() IDGenerator { return NewSequenceGenerator() }
	}
	if opts.Seed == nil {
		opts.Seed = DefaultSeedWidgets()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{opts: opts, boards: map[string]*Board{}}
}

// AddWidgetRequest captures the data required to add a widget.
type AddWidgetRequest struct {
	Type    WidgetType     `json:"type"`
	Title   string         `json:"title,omitempty"`
	ColSpan int            `json:"colSpan,omitempty"`
	RowSpan int            `json:"rowSpan,omitempty"`
	Config  map[string]any `json:"config,omitempty"`
}

// Columns returns the grid width boards are created with.
func (s *Service) Columns() int {
	return s.opts.Columns
}

// Definitions lists the widget types a viewer can add.
func (s *Service) Definitions() []WidgetDefinition {
	return s.opts.Providers.Definitions()
}

// Board returns the viewer's board, loading or seeding it on first access.
func (s *Service) Board(ctx context.Context, viewer ViewerContext) (*Board, error) {
	if viewer.UserID == "" {
		return nil, ErrMissingViewer
	}
	s.mu.Lock()
	board, ok := s.boards[viewer.UserID]
	s.mu.Unlock()
	if ok {
		return board, nil
	}

	loaded, err := s.loadBoard(ctx, viewer)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.boards[viewer.UserID]; ok {
		return existing, nil
	}
	s.boards[viewer.UserID] = loaded
	return loaded, nil
}

func (s *Service) newBoard() *Board {
	opts := BoardOptions{
		Columns: s.opts.Columns,
		IDs:     s.opts.NewIDGenerator(),
	}
	if fp, ok := s.opts.Providers.(interface {
		Footprints() map[WidgetType]Footprint
	}); ok {
		opts.Footprints = fp.Footprints()
	}
	return NewBoard(opts)
}

func (s *Service) loadBoard(ctx context.Context, viewer ViewerContext) (*Board, error) {
	board := s.newBoard()
	blob, ok, err := s.opts.Layouts.LoadLayout(ctx, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: load layout for %s: %w", viewer.UserID, err)
	}
	if ok {
		state, err := DecodeState(blob)
		if err == nil {
			err = board.Load(state)
		}
		if err == nil {
			s.recordTelemetry(ctx, "dashboard.layout.load", map[string]any{
				"user_id": viewer.UserID,
				"widgets": len(state.Widgets),
			})
			return board, nil
		}
		s.opts.Logger.Warn("stored layout rejected, seeding defaults",
			zap.String("user_id", viewer.UserID),
			zap.Error(err),
		)
	}
	for _, seed := range s.opts.Seed {
		if _, err := board.AddWidget(seed.Type, seed.Overrides); err != nil {
			return nil, fmt.Errorf("dashboard: seed %s: %w", seed.Type, err)
		}
	}
	s.recordTelemetry(ctx, "dashboard.layout.seed", map[string]any{
		"user_id": viewer.UserID,
		"widgets": len(s.opts.Seed),
	})
	return board, nil
}

// State returns the viewer's current state.
func (s *Service) State(ctx context.Context, viewer ViewerContext) (State, error) {
	board, err := s.Board(ctx, viewer)
	if err != nil {
		return State{}, err
	}
	return board.State(), nil
}

// AddWidget validates the configuration against the widget schema and places a new widget.
func (s *Service) AddWidget(ctx context.Context, viewer ViewerContext, req AddWidgetRequest) (State, error) {
	t, err := ParseWidgetType(string(req.Type))
	if err != nil {
		return State{}, err
	}
	if err := s.validateConfiguration(t, req.Config); err != nil {
		return State{}, err
	}
	board, err := s.Board(ctx, viewer)
	if err != nil {
		return State{}, err
	}
	state, err := board.AddWidget(t, WidgetOverrides{
		Title:   req.Title,
		ColSpan: req.ColSpan,
		RowSpan: req.RowSpan,
		Config:  req.Config,
	})
	if err != nil {
		return State{}, err
	}
	widget := state.Widgets[len(state.Widgets)-1]
	item := state.Layout[len(state.Layout)-1]
	s.notify(ctx, WidgetEvent{UserID: viewer.UserID, Widget: widget, Reason: "add", Type: t})
	s.recordTelemetry(ctx, "dashboard.widget.add", map[string]any{
		"user_id":   viewer.UserID,
		"widget_id": widget.ID,
		"type":      string(t),
		"x":         item.X,
		"y":         item.Y,
	})
	return state, nil
}

// RemoveWidget deletes a widget. Unknown ids leave the state unchanged.
func (s *Service) RemoveWidget(ctx context.Context, viewer ViewerContext, widgetID string) (State, error) {
	board, err := s.Board(ctx, viewer)
	if err != nil {
		return State{}, err
	}
	removed, existed := board.Projection().Widget(widgetID)
	state := board.RemoveWidget(widgetID)
	if existed {
		s.notify(ctx, WidgetEvent{UserID: viewer.UserID, Widget: removed, Reason: "remove", Type: removed.Type})
	}
	s.recordTelemetry(ctx, "dashboard.widget.remove", map[string]any{
		"user_id":   viewer.UserID,
		"widget_id": widgetID,
		"found":     existed,
	})
	return state, nil
}

// UpdateLayout replaces the viewer's layout with a rearranged one.
func (s *Service) UpdateLayout(ctx context.Context, viewer ViewerContext, items []LayoutItem) (State, error) {
	board, err := s.Board(ctx, viewer)
	if err != nil {
		return State{}, err
	}
	state, err := board.UpdateLayout(items)
	if err != nil {
		return State{}, err
	}
	s.notify(ctx, WidgetEvent{UserID: viewer.UserID, Reason: "layout"})
	s.recordTelemetry(ctx, "dashboard.layout.update", map[string]any{
		"user_id": viewer.UserID,
		"count":   len(items),
	})
	return state, nil
}

// ToggleEdit flips the viewer's edit mode.
func (s *Service) ToggleEdit(ctx context.Context, viewer ViewerContext) (State, error) {
	board, err := s.Board(ctx, viewer)
	if err != nil {
		return State{}, err
	}
	state := board.ToggleEdit()
	s.recordTelemetry(ctx, "dashboard.edit.toggle", map[string]any{
		"user_id":    viewer.UserID,
		"is_editing": state.IsEditing,
	})
	return state, nil
}

// SaveLayout persists the viewer's current state.
func (s *Service) SaveLayout(ctx context.Context, viewer ViewerContext) error {
	if s.opts.Layouts == nil {
		return errMissingLayoutStore
	}
	board, err := s.Board(ctx, viewer)
	if err != nil {
		return err
	}
	blob, err := EncodeState(board.State())
	if err != nil {
		return err
	}
	if err := s.opts.Layouts.SaveLayout(ctx, viewer.UserID, blob); err != nil {
		return fmt.Errorf("dashboard: save layout for %s: %w", viewer.UserID, err)
	}
	s.recordTelemetry(ctx, "dashboard.layout.save", map[string]any{
		"user_id": viewer.UserID,
		"bytes":   len(blob),
	})
	return nil
}

// ReloadLayout discards the in-memory board and loads it from the store again.
func (s *Service) ReloadLayout(ctx context.Context, viewer ViewerContext) (State, error) {
	if viewer.UserID == "" {
		return State{}, ErrMissingViewer
	}
	s.mu.Lock()
	delete(s.boards, viewer.UserID)
	s.mu.Unlock()
	return s.State(ctx, viewer)
}

// ResolveDashboard returns the viewer's projection plus provider data per widget.
// Provider failures are recorded and leave that widget without data.
func (s *Service) ResolveDashboard(ctx context.Context, viewer ViewerContext) (View, error) {
	board, err := s.Board(ctx, viewer)
	if err != nil {
		return View{}, err
	}
	projection := board.Projection()
	view := View{
		UserID:    viewer.UserID,
		Columns:   board.Columns(),
		IsEditing: projection.IsEditing,
		Layout:    projection.Layout,
		Widgets:   projection.Widgets,
		Data:      make(map[string]WidgetData, len(projection.Layout)),
	}
	now := s.opts.Now()

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(providerConcurrency)
	for _, item := range projection.Layout {
		widget, ok := projection.Widget(item.I)
		if !ok {
			continue
		}
		provider, ok := s.opts.Providers.Provider(widget.Type)
		if !ok || provider == nil {
			continue
		}
		g.Go(func() error {
			data, err := provider.Fetch(ctx, WidgetContext{
				Widget: widget,
				Item:   item,
				Viewer: viewer,
				Now:    now,
			})
			if err != nil {
				s.opts.Logger.Warn("widget provider failed",
					zap.String("widget_id", widget.ID),
					zap.String("type", string(widget.Type)),
					zap.Error(err),
				)
				s.recordTelemetry(ctx, "dashboard.widget.provider_error", map[string]any{
					"widget_id": widget.ID,
					"type":      string(widget.Type),
					"error":     err.Error(),
				})
				return nil
			}
			mu.Lock()
			view.Data[widget.ID] = data
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	s.recordTelemetry(ctx, "dashboard.layout.resolve", map[string]any{
		"user_id": viewer.UserID,
		"widgets": len(projection.Layout),
	})
	return view, nil
}

// RefreshWidgets emits a refresh event for every live widget of the given types and
// returns how many were signalled.
func (s *Service) RefreshWidgets(ctx context.Context, types ...WidgetType) int {
	wanted := make(map[WidgetType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}
	s.mu.Lock()
	boards := make(map[string]*Board, len(s.boards))
	for userID, board := range s.boards {
		boards[userID] = board
	}
	s.mu.Unlock()

	count := 0
	for userID, board := range boards {
		for _, widget := range board.State().Widgets {
			if !wanted[widget.Type] {
				continue
			}
			s.notify(ctx, WidgetEvent{UserID: userID, Widget: widget, Reason: "refresh", Type: widget.Type})
			count++
		}
	}
	return count
}

// NotifyWidgetUpdated exposes refresh hook invocation for commands/transports.
func (s *Service) NotifyWidgetUpdated(ctx context.Context, event WidgetEvent) error {
	if err := s.opts.RefreshHook.WidgetUpdated(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.widget.event", map[string]any{
		"user_id":   event.UserID,
		"widget_id": event.Widget.ID,
		"reason":    event.Reason,
	})
	return nil
}

func (s *Service) notify(ctx context.Context, event WidgetEvent) {
	if err := s.opts.RefreshHook.WidgetUpdated(ctx, event); err != nil {
		s.opts.Logger.Warn("refresh hook failed",
			zap.String("user_id", event.UserID),
			zap.String("reason", event.Reason),
			zap.Error(err),
		)
	}
}

func (s *Service) validateConfiguration(t WidgetType, config map[string]any) error {
	def, ok := s.opts.Providers.Definition(t)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWidgetType, t)
	}
	return s.opts.ConfigValidator.Validate(def, config)
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

type noopRefreshHook struct{}

func (noopRefreshHook) WidgetUpdated(context.Context, WidgetEvent) error {
	return nil
}
