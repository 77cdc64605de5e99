package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/goliatone/go-deskboard/components/dashboard"
)

func TestConfigNormalizeDefaults(t *testing.T) {
	cfg, err := Config{SkipAuth: true}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, TransportRouter, cfg.Transport)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "file:deskboard.db", cfg.DatabaseURL)
	assert.Equal(t, core.GridColumns, cfg.GridColumns)
	assert.Equal(t, 5*time.Minute, cfg.FeedTTL)
	assert.Equal(t, "local-user", cfg.DevUser)
}

func TestConfigNormalizeRejects(t *testing.T) {
	_, err := Config{}.Normalize()
	assert.ErrorContains(t, err, "JWT_SECRET")

	_, err = Config{SkipAuth: true, Transport: "grpc"}.Normalize()
	assert.ErrorContains(t, err, "unknown transport")

	_, err = Config{SkipAuth: true, DatabaseDriver: "postgres"}.Normalize()
	assert.ErrorContains(t, err, "DATABASE_URL")
}
