package beacon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/beacon/internal/core/config"
	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/internal/core/push"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func TestNewApp_wires_badge_to_platform(t *testing.T) {
	app, err := NewApp(testConfig(t), BuildInfo{Version: "v1.0.0"})
	require.NoError(t, err)

	a := app.Store.Add(notify.Draft{Title: "a"})
	app.Store.Add(notify.Draft{Title: "b"})
	assert.Equal(t, 2, app.Platform.Badge())

	app.Store.MarkRead(a.ID)
	assert.Equal(t, 1, app.Platform.Badge())
	assert.Equal(t, "v1.0.0", app.Build.Version)
}

func TestNewApp_permission_from_config(t *testing.T) {
	cfg := testConfig(t)
	cfg.Push.Permission = string(push.PermissionUndetermined)
	deny := false
	cfg.Push.GrantOnRequest = &deny

	app, err := NewApp(cfg, BuildInfo{})
	require.NoError(t, err)

	_, err = app.Push.Initialize(context.Background())
	require.ErrorIs(t, err, push.ErrPermissionDenied)
	assert.Equal(t, push.PermissionDenied, app.Push.PermissionState())
}

func TestNewApp_fixed_token(t *testing.T) {
	cfg := testConfig(t)
	cfg.Push.Token = "ExponentPushToken[fixed]"

	app, err := NewApp(cfg, BuildInfo{})
	require.NoError(t, err)

	assert.Equal(t, "ExponentPushToken[fixed]", app.Push.Token())
}

func TestNewApp_invalid_permission(t *testing.T) {
	cfg := testConfig(t)
	cfg.Push.Permission = "sometimes"

	_, err := NewApp(cfg, BuildInfo{})
	assert.Error(t, err)
}
