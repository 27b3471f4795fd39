// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"sort"

	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/colonyops/beacon/internal/core/notify"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Dark       bool
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "dark"

var themes = map[string]Palette{
	"dark": {
		Dark:       true,
		Primary:    lipgloss.Color("#0a84ff"),
		Secondary:  lipgloss.Color("#64d2ff"),
		Foreground: lipgloss.Color("#f2f2f7"),
		Muted:      lipgloss.Color("#8e8e93"),
		Background: lipgloss.Color("#000000"),
		Surface:    lipgloss.Color("#1c1c1e"),
		Success:    lipgloss.Color("#30d158"),
		Warning:    lipgloss.Color("#ff9f0a"),
		Error:      lipgloss.Color("#ff453a"),
	},
	"light": {
		Primary:    lipgloss.Color("#007aff"),
		Secondary:  lipgloss.Color("#32ade6"),
		Foreground: lipgloss.Color("#1c1c1e"),
		Muted:      lipgloss.Color("#6c6c70"),
		Background: lipgloss.Color("#f2f2f7"),
		Surface:    lipgloss.Color("#ffffff"),
		Success:    lipgloss.Color("#34c759"),
		Warning:    lipgloss.Color("#ff9500"),
		Error:      lipgloss.Color("#ff3b30"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	SuccessStyle       lipgloss.Style
	InfoStyle          lipgloss.Style
	ErrorStyle         lipgloss.Style

	// TUI shared styles.
	TabActiveStyle   lipgloss.Style
	TabInactiveStyle lipgloss.Style
	HeaderStyle      lipgloss.Style
	BadgeStyle       lipgloss.Style
	CardStyle        lipgloss.Style
	CardTitleStyle   lipgloss.Style
	MutedStyle       lipgloss.Style
	SelectedStyle    lipgloss.Style
	UnreadDotStyle   lipgloss.Style
	HelpStyle        lipgloss.Style

	ButtonStyle        lipgloss.Style
	ButtonAcceptStyle  lipgloss.Style
	ButtonDeclineStyle lipgloss.Style

	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style

	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	InfoStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError)

	TabActiveStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	TabInactiveStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)
	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	BadgeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(ColorError).
		Bold(true).
		Padding(0, 1)
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	CardTitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	SelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	UnreadDotStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	HelpStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorForeground)
	ButtonAcceptStyle = ButtonStyle.
		Background(ColorSuccess).
		Foreground(lipgloss.Color("#ffffff")).
		Bold(true)
	ButtonDeclineStyle = ButtonStyle.
		Background(ColorError).
		Foreground(lipgloss.Color("#ffffff")).
		Bold(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	toastBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Background(ColorSurface).
		Foreground(ColorForeground).
		Padding(0, 1)
	ToastInfoStyle = toastBase.BorderForeground(ColorSecondary)
	ToastWarningStyle = toastBase.BorderForeground(ColorWarning)
	ToastErrorStyle = toastBase.BorderForeground(ColorError)
}

// Toggle switches between the light and dark palettes and returns the new
// theme name.
func Toggle() string {
	name := "light"
	if !CurrentPalette.Dark {
		name = "dark"
	}
	SetTheme(themes[name])
	return name
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

// CategoryColor returns the accent color for a notification category.
func CategoryColor(c notify.Category) lipgloss.Color {
	switch c {
	case notify.CategoryCall:
		return ColorSuccess
	case notify.CategoryMessage:
		return ColorPrimary
	case notify.CategoryReminder:
		return ColorWarning
	default:
		return lipgloss.Color("#af52de")
	}
}

// CategoryIcon returns the glyph shown next to a notification of category c.
func CategoryIcon(c notify.Category) string {
	switch c {
	case notify.CategoryCall:
		return IconCall
	case notify.CategoryMessage:
		return IconMessage
	case notify.CategoryReminder:
		return IconReminder
	default:
		return IconBell
	}
}

// Fade blends c toward the background by 1-opacity. opacity is clamped to
// [0, 1].
func Fade(c lipgloss.Color, opacity float64) lipgloss.Color {
	if opacity >= 1 {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	from, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	to, err := colorful.Hex(string(ColorBackground))
	if err != nil {
		return c
	}
	return lipgloss.Color(from.BlendLab(to, 1-opacity).Clamped().Hex())
}

func colorHexPtr(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	cc, err := colorful.Hex(string(c))
	if err != nil {
		return nil
	}
	hex := cc.Hex()
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	if !CurrentPalette.Dark {
		cfg = glamourstyles.LightStyleConfig
	}

	fg := colorHexPtr(ColorForeground)
	primary := colorHexPtr(ColorPrimary)
	secondary := colorHexPtr(ColorSecondary)
	muted := colorHexPtr(ColorMuted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = primary
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	return cfg
}
