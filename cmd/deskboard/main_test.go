package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	core "github.com/goliatone/go-deskboard/components/dashboard"
	"github.com/goliatone/go-deskboard/pkg/identity"
)

func TestPlacePrintsYAMLState(t *testing.T) {
	var out bytes.Buffer
	cmd := &placeCmd{Types: []string{"todo,weather", "news"}, Columns: 3, out: &out}
	require.NoError(t, cmd.Run(nil))

	var state core.State
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &state))
	require.Len(t, state.Layout, 3)
	assert.Equal(t, core.LayoutItem{I: "todo-1", X: 0, Y: 0, W: 2, H: 2, Type: core.WidgetTodo, MinW: 1, MinH: 1}, state.Layout[0])
	assert.Equal(t, 2, state.Layout[1].X)
	assert.Equal(t, 0, state.Layout[1].Y)
	assert.Equal(t, 2, state.Layout[2].Y)
}

func TestPlaceDefaultsToStarterSet(t *testing.T) {
	var out bytes.Buffer
	cmd := &placeCmd{Columns: 3, out: &out}
	require.NoError(t, cmd.Run(nil))
	assert.Equal(t, len(core.WidgetTypes()), strings.Count(out.String(), "- i: "))
}

func TestPlaceRejectsUnknownTypes(t *testing.T) {
	cmd := &placeCmd{Types: []string{"clock"}, out: &bytes.Buffer{}}
	assert.ErrorIs(t, cmd.Run(nil), core.ErrUnknownWidgetType)
}

func TestTokenIssuesVerifiableJWT(t *testing.T) {
	var out bytes.Buffer
	cmd := &tokenCmd{UserID: "alice", Roles: []string{"owner"}, TTL: time.Hour, JWTSecret: "s3cret", out: &out}
	require.NoError(t, cmd.Run(nil))

	verifier, err := identity.NewVerifier("s3cret", "")
	require.NoError(t, err)
	claims, err := verifier.Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject())
	assert.Equal(t, []string{"owner"}, claims.Roles)
}

func TestTokenRequiresSecret(t *testing.T) {
	cmd := &tokenCmd{UserID: "alice", out: &bytes.Buffer{}}
	assert.Error(t, cmd.Run(nil))
}

func TestServeConfigNormalizes(t *testing.T) {
	cmd := &serveCmd{Port: 8080, Transport: "http", SkipAuth: true, GridColumns: 6}
	cfg, err := cmd.config()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 6, cfg.GridColumns)

	_, err = (&serveCmd{}).config()
	assert.Error(t, err)
}
