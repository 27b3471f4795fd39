package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/beacon/internal/core/config"
	"github.com/colonyops/beacon/internal/printer"
	"github.com/colonyops/beacon/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// validationError is a single failed check.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationReport struct {
	Valid    bool                       `json:"valid"`
	Errors   []validationError          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "beacon config validate [options]",
				Description: "Validates the configuration file, checking the relay URL, presets, heads-up timings and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	report := cmd.validate()

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, report); err != nil {
			return err
		}
		if !report.Valid {
			return cli.Exit("", 1)
		}
		return nil
	}

	return cmd.outputText(printer.Ctx(ctx), report)
}

func (cmd *ConfigValidateCmd) validate() validationReport {
	cfg := cmd.flags.Config
	report := validationReport{Valid: true, Warnings: cfg.Warnings()}

	err := cfg.ValidateDeep(cmd.flags.ConfigPath)
	if err == nil {
		return report
	}

	report.Valid = false

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		report.Errors = append(report.Errors, validationError{Field: "config", Message: err.Error()})
		return report
	}

	for _, fe := range fieldErrs {
		report.Errors = append(report.Errors, validationError{
			Field:   fe.Field,
			Message: strings.TrimPrefix(fe.Error(), fe.Field+": "),
		})
	}
	return report
}

func (cmd *ConfigValidateCmd) outputText(p *printer.Printer, report validationReport) error {
	for _, warn := range report.Warnings {
		p.Warnf("%s: %s", warn.Category, warn.Message)
		if warn.Item != "" {
			p.Printf("  Item: %s", warn.Item)
		}
	}

	for _, e := range report.Errors {
		p.Errorf("%s: %s", e.Field, e.Message)
	}

	p.Printf("")
	if report.Valid {
		p.Successf("Configuration is valid")
		return nil
	}

	p.Errorf("%d error(s) found", len(report.Errors))
	return cli.Exit("", 1)
}
