package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/beacon/internal/beacon"
	"github.com/colonyops/beacon/internal/core/logging"
	"github.com/colonyops/beacon/internal/profiler"
	"github.com/colonyops/beacon/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *beacon.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *beacon.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("BEACON_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort, logging.Component("profiler"))
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	var warnings []string
	for _, w := range cmd.app.Config.Warnings() {
		warnings = append(warnings, fmt.Sprintf("%s: %s", w.Category, w.Message))
	}

	deps := tui.Deps{
		Config:   cmd.app.Config,
		Store:    cmd.app.Store,
		Push:     cmd.app.Push,
		Platform: cmd.app.Platform,
		Calls:    cmd.app.Calls,
		BuildInfo: tui.BuildInfo{
			Version: cmd.app.Build.Version,
			Commit:  cmd.app.Build.Commit,
			Date:    cmd.app.Build.Date,
		},
	}

	m := tui.New(deps, tui.Options{Warnings: warnings})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
