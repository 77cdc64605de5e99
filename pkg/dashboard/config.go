package dashboard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	core "github.com/goliatone/go-deskboard/components/dashboard"
	"github.com/goliatone/go-deskboard/pkg/sqlstore"
)

const (
	// TransportRouter serves through go-router on Fiber.
	TransportRouter = "router"
	// TransportHTTP serves through net/http with SSE and WebSocket event streams.
	TransportHTTP = "http"
)

// Config carries everything needed to assemble a running dashboard.
type Config struct {
	Port              int
	Transport         string
	DatabaseDriver    string
	DatabaseURL       string
	JWTSecret         string
	JWTIssuer         string
	SkipAuth          bool
	DevUser           string
	OpenWeatherAPIKey string
	GNewsAPIKey       string
	WidgetManifest    string
	GridColumns       int
	FeedTTL           time.Duration
}

// Normalize fills defaults and rejects inconsistent settings.
func (c Config) Normalize() (Config, error) {
	if c.Port <= 0 {
		c.Port = 3000
	}
	c.Transport = strings.ToLower(strings.TrimSpace(c.Transport))
	if c.Transport == "" {
		c.Transport = TransportRouter
	}
	if c.Transport != TransportRouter && c.Transport != TransportHTTP {
		return c, fmt.Errorf("dashboard: unknown transport %q", c.Transport)
	}
	if c.DatabaseDriver == "" {
		c.DatabaseDriver = sqlstore.DriverSQLite
	}
	if c.DatabaseURL == "" && c.DatabaseDriver == sqlstore.DriverSQLite {
		c.DatabaseURL = "file:deskboard.db"
	}
	if c.DatabaseURL == "" {
		return c, errors.New("dashboard: DATABASE_URL is required")
	}
	if !c.SkipAuth && c.JWTSecret == "" {
		return c, errors.New("dashboard: JWT_SECRET is required unless SKIP_AUTH is set")
	}
	if c.DevUser == "" {
		c.DevUser = "local-user"
	}
	if c.GridColumns <= 0 {
		c.GridColumns = core.GridColumns
	}
	if c.FeedTTL <= 0 {
		c.FeedTTL = 5 * time.Minute
	}
	return c, nil
}

// Addr is the listen address for the configured port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
