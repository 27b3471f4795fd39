package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/beacon/internal/core/config"
)

// PresetCompleter returns a ShellCompleteFunc that suggests configured preset
// titles. Set this as the ShellComplete field on any cli.Command that accepts
// a --preset flag.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func PresetCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		presets := config.DefaultConfig().Presets
		if flags.Config != nil {
			presets = flags.Config.Presets
		}

		w := cmd.Root().Writer
		for _, p := range presets {
			_, _ = fmt.Fprintln(w, p.Title)
		}
	}
}
