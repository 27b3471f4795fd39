package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/beacon/internal/beacon"
	"github.com/colonyops/beacon/internal/core/config"
	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/internal/core/push"
	"github.com/colonyops/beacon/internal/core/styles"
	"github.com/colonyops/beacon/internal/printer"
	"github.com/colonyops/beacon/internal/tui/jsoncolor"
	"github.com/colonyops/beacon/pkg/iojson"
)

type SendCmd struct {
	flags *Flags
	app   *beacon.App

	// Command-specific flags
	token    string
	title    string
	body     string
	category string
	preset   string
	format   string
	data     iojson.FileReader[map[string]any]

	isTerminal func() bool
}

// NewSendCmd creates a new send command
func NewSendCmd(flags *Flags, app *beacon.App) *SendCmd {
	return &SendCmd{
		flags: flags,
		app:   app,
		data:  iojson.FileReader[map[string]any]{Name: "data-file", Optional: true},
	}
}

// Register adds the send command to the application
func (cmd *SendCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "send",
		Usage:     "Send a push notification through the relay",
		UsageText: "beacon send [options]",
		Description: `Posts a notification to the configured push relay.

The target defaults to this device's token. When no token is configured one
is registered first, which requires notification permission.

Start from a configured preset with --preset and override any field with
flags. Extra payload data is read as a JSON object from --data-file or
piped stdin.

When --title is omitted and stdin is a terminal, an interactive form prompts
for the notification.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "token",
				Aliases:     []string{"t"},
				Usage:       "target push token (defaults to this device)",
				Destination: &cmd.token,
			},
			&cli.StringFlag{
				Name:        "title",
				Usage:       "notification title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "body",
				Aliases:     []string{"b"},
				Usage:       "notification body",
				Destination: &cmd.body,
			},
			&cli.StringFlag{
				Name:        "category",
				Usage:       "notification category (call, message, reminder, general)",
				Destination: &cmd.category,
			},
			&cli.StringFlag{
				Name:        "preset",
				Aliases:     []string{"p"},
				Usage:       "start from a configured preset by title",
				Destination: &cmd.preset,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			cmd.data.Flag(),
		},
		ShellComplete: PresetCompleter(cmd.flags),
		Action:        cmd.run,
	})

	return app
}

func (cmd *SendCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	msg, err := cmd.message()
	if err != nil {
		return err
	}

	if msg.Title == "" {
		if !cmd.stdinIsTerminal() {
			return errors.New("title is required (use --title or --preset)")
		}
		if err := cmd.runForm(&msg); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	token := cmd.token
	if token == "" {
		token = cmd.app.Push.Token()
	}
	if token == "" {
		token, err = cmd.app.Push.Initialize(ctx)
		if err != nil {
			return fmt.Errorf("register device: %w", err)
		}
	}

	ticket, err := cmd.app.Push.SendRemote(ctx, token, msg)
	if err != nil {
		var rerr *push.RelayError
		if errors.As(err, &rerr) && cmd.format == "json" {
			_ = iojson.WriteErrorWith(c.Root().ErrWriter, "relay rejected notification", map[string]any{
				"status": rerr.StatusCode,
				"code":   rerr.Code,
				"detail": rerr.Message,
			})
		}
		return fmt.Errorf("send: %w", err)
	}

	if cmd.format == "json" {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, ticket)
	}

	p.Success("Notification sent", msg.Title)
	bits, err := json.MarshalIndent(ticket, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ticket: %w", err)
	}
	p.Printf("%s", jsoncolor.Colorize(bits))
	return nil
}

// message builds the notification from the preset, the flags and the data
// file, in that order of precedence.
func (cmd *SendCmd) message() (push.Message, error) {
	var msg push.Message

	if cmd.preset != "" {
		preset, ok := findPreset(cmd.flags.Config, cmd.preset)
		if !ok {
			return msg, fmt.Errorf("unknown preset %q", cmd.preset)
		}
		msg = preset.Message()
	}

	if cmd.title != "" {
		msg.Title = cmd.title
	}
	if cmd.body != "" {
		msg.Body = cmd.body
	}
	if cmd.category != "" {
		cat := notify.ParseCategory(cmd.category)
		if string(cat) != cmd.category {
			return msg, fmt.Errorf("unknown category %q", cmd.category)
		}
		msg.Category = cat
	}
	if msg.Category == "" {
		msg.Category = notify.CategoryGeneral
	}

	data, err := cmd.data.Read()
	if err != nil {
		return msg, fmt.Errorf("read data: %w", err)
	}
	if len(data) > 0 {
		merged := make(map[string]any, len(msg.Data)+len(data))
		for k, v := range msg.Data {
			merged[k] = v
		}
		for k, v := range data {
			merged[k] = v
		}
		msg.Data = merged
	}

	return msg, nil
}

func (cmd *SendCmd) runForm(msg *push.Message) error {
	category := string(msg.Category)

	options := make([]huh.Option[string], 0, len(notify.Categories))
	for _, c := range notify.Categories {
		options = append(options, huh.NewOption(string(c), string(c)))
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(validateTitle).
				Value(&msg.Title),
			huh.NewText().
				Title("Body").
				Description("Markdown is rendered in the detail view").
				Value(&msg.Body),
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&category),
		),
	).WithTheme(styles.FormTheme()).Run()
	if err != nil {
		return err
	}

	msg.Category = notify.ParseCategory(category)
	return nil
}

func (cmd *SendCmd) stdinIsTerminal() bool {
	if cmd.isTerminal != nil {
		return cmd.isTerminal()
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func findPreset(cfg *config.Config, title string) (config.Preset, bool) {
	if cfg == nil {
		return config.Preset{}, false
	}
	for _, p := range cfg.Presets {
		if strings.EqualFold(p.Title, title) {
			return p, true
		}
	}
	return config.Preset{}, false
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}
