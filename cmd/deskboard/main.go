package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	core "github.com/goliatone/go-deskboard/components/dashboard"
	"github.com/goliatone/go-deskboard/pkg/dashboard"
	"github.com/goliatone/go-deskboard/pkg/identity"
)

type globals struct {
	LogLevel string `name:"log-level" env:"LOG_LEVEL" default:"info" enum:"debug,info,warn,error" help:"Minimum log level."`
}

type cli struct {
	globals

	Serve serveCmd `cmd:"" help:"Run the dashboard HTTP server."`
	Place placeCmd `cmd:"" help:"Place widget types on an empty grid and print the state as YAML."`
	Token tokenCmd `cmd:"" help:"Issue a development bearer token."`
}

func main() {
	// a missing .env is fine; real deployments use the environment
	_ = godotenv.Load()

	var app cli
	ctx := kong.Parse(&app,
		kong.Name("deskboard"),
		kong.Description("Personal productivity dashboard server and tooling."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&app.globals)
	ctx.FatalIfErrorf(err)
}

func (g *globals) logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("deskboard: log level: %w", err)
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("deskboard: init logger: %w", err)
	}
	return logger, nil
}

type serveCmd struct {
	Port              int           `env:"PORT" default:"3000" help:"HTTP listen port."`
	Transport         string        `env:"TRANSPORT" default:"router" enum:"router,http" help:"HTTP stack: go-router on Fiber or net/http."`
	DatabaseDriver    string        `name:"database-driver" env:"DATABASE_DRIVER" default:"sqlite" help:"postgres or sqlite."`
	DatabaseURL       string        `name:"database-url" env:"DATABASE_URL" help:"Database DSN."`
	JWTSecret         string        `name:"jwt-secret" env:"JWT_SECRET" help:"HS256 secret shared with the identity provider."`
	JWTIssuer         string        `name:"jwt-issuer" env:"JWT_ISSUER" help:"Expected token issuer."`
	SkipAuth          bool          `name:"skip-auth" env:"SKIP_AUTH" help:"Serve every request as --dev-user."`
	DevUser           string        `name:"dev-user" env:"DEV_USER" default:"local-user" help:"User id when auth is skipped."`
	OpenWeatherAPIKey string        `name:"openweather-api-key" env:"OPENWEATHER_API_KEY" help:"OpenWeather API key; demo data when empty."`
	GNewsAPIKey       string        `name:"gnews-api-key" env:"GNEWS_API_KEY" help:"GNews API key; demo data when empty."`
	WidgetManifest    string        `name:"widget-manifest" env:"WIDGET_MANIFEST" help:"Optional YAML widget manifest."`
	GridColumns       int           `name:"grid-columns" env:"GRID_COLUMNS" default:"3" help:"Grid width in columns."`
	FeedTTL           time.Duration `name:"feed-ttl" env:"FEED_TTL" default:"5m" help:"Cache lifetime for feed payloads."`
}

func (cmd *serveCmd) config() (dashboard.Config, error) {
	return dashboard.Config{
		Port:              cmd.Port,
		Transport:         cmd.Transport,
		DatabaseDriver:    cmd.DatabaseDriver,
		DatabaseURL:       cmd.DatabaseURL,
		JWTSecret:         cmd.JWTSecret,
		JWTIssuer:         cmd.JWTIssuer,
		SkipAuth:          cmd.SkipAuth,
		DevUser:           cmd.DevUser,
		OpenWeatherAPIKey: cmd.OpenWeatherAPIKey,
		GNewsAPIKey:       cmd.GNewsAPIKey,
		WidgetManifest:    cmd.WidgetManifest,
		GridColumns:       cmd.GridColumns,
		FeedTTL:           cmd.FeedTTL,
	}.Normalize()
}

func (cmd *serveCmd) Run(g *globals) error {
	cfg, err := cmd.config()
	if err != nil {
		return err
	}
	logger, err := g.logger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if cfg.SkipAuth {
		logger.Warn("authentication disabled", zap.String("dev_user", cfg.DevUser))
	}

	app := fx.New(
		fx.Supply(cfg, logger),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		dashboard.Module,
	)
	if err := app.Err(); err != nil {
		return err
	}
	app.Run()
	return nil
}

type placeCmd struct {
	Types   []string `arg:"" optional:"" help:"Widget types in insertion order (defaults to the starter set)."`
	Columns int      `default:"3" help:"Grid width in columns."`
	UUID    bool     `help:"Use random UUID widget ids."`

	out io.Writer `kong:"-"`
}

func (cmd *placeCmd) Run(_ *globals) error {
	types := make([]core.WidgetType, 0, len(cmd.Types))
	for _, raw := range cmd.Types {
		for _, part := range strings.Split(raw, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			t, err := core.ParseWidgetType(part)
			if err != nil {
				return err
			}
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		for _, seed := range core.DefaultSeedWidgets() {
			types = append(types, seed.Type)
		}
	}

	opts := core.BoardOptions{Columns: cmd.Columns}
	if cmd.UUID {
		opts.IDs = core.NewUUIDGenerator()
	}
	board := core.NewBoard(opts)
	for _, t := range types {
		if _, err := board.AddWidget(t, core.WidgetOverrides{}); err != nil {
			return err
		}
	}

	encoder := yaml.NewEncoder(writerOr(cmd.out))
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(board.State()); err != nil {
		return fmt.Errorf("deskboard: encode state: %w", err)
	}
	return nil
}

type tokenCmd struct {
	UserID    string        `arg:"" name:"user-id" help:"Subject of the token."`
	Roles     []string      `help:"Roles to embed."`
	TTL       time.Duration `default:"72h" help:"Token lifetime."`
	JWTSecret string        `name:"jwt-secret" env:"JWT_SECRET" help:"HS256 signing secret."`
	JWTIssuer string        `name:"jwt-issuer" env:"JWT_ISSUER" help:"Issuer claim."`

	out io.Writer `kong:"-"`
}

func (cmd *tokenCmd) Run(_ *globals) error {
	if cmd.JWTSecret == "" {
		return errors.New("deskboard: --jwt-secret or JWT_SECRET is required")
	}
	verifier, err := identity.NewVerifier(cmd.JWTSecret, cmd.JWTIssuer)
	if err != nil {
		return err
	}
	token, err := verifier.Issue(cmd.UserID, cmd.Roles, cmd.TTL)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(writerOr(cmd.out), token)
	return err
}

func writerOr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
