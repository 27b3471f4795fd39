// Package beacon wires the notification store, push service and call
// simulator into a single application aggregate.
package beacon

import (
	"fmt"

	"github.com/colonyops/beacon/internal/core/call"
	"github.com/colonyops/beacon/internal/core/config"
	"github.com/colonyops/beacon/internal/core/logging"
	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/internal/core/push"
)

// BuildInfo holds build-time metadata.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// App is the central entry point for all beacon operations.
// Commands and the TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config   *config.Config
	Store    *notify.Store
	Platform *push.LocalPlatform
	Push     *push.Service
	Calls    *call.Service
	Build    BuildInfo
}

// NewApp constructs an App from configuration. The store reports its unread
// count to the push service, which forwards it to the platform badge.
func NewApp(cfg *config.Config, build BuildInfo) (*App, error) {
	perm, err := push.ParsePermission(cfg.Push.Permission)
	if err != nil {
		return nil, fmt.Errorf("push permission: %w", err)
	}

	platform := push.NewLocalPlatform(perm, cfg.Push.GrantsOnRequest())
	relay := push.NewRelayClient(cfg.Push.RelayURL, push.WithAccessToken(cfg.Push.AccessToken))

	svcOpts := []push.ServiceOption{push.WithServiceLogger(logging.Component("push"))}
	if cfg.Push.Token != "" {
		svcOpts = append(svcOpts, push.WithToken(cfg.Push.Token))
	}
	pushSvc := push.NewService(platform, relay, svcOpts...)

	store := notify.NewStore(
		notify.WithBadgeSink(pushSvc),
		notify.WithLogger(logging.Component("store")),
	)

	return &App{
		Config:   cfg,
		Store:    store,
		Platform: platform,
		Push:     pushSvc,
		Calls:    call.NewService(logging.Component("call")),
		Build:    build,
	}, nil
}
