package tui

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/beacon/internal/core/headsup"
	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/internal/core/styles"
)

const (
	headsUpTickInterval = 16 * time.Millisecond
	// maxTickStep caps the time fed to the controller after a stalled frame.
	maxTickStep = 100 * time.Millisecond

	// Logical units per terminal cell.
	cellUnitsX = 8.0
	cellUnitsY = 16.0

	bannerMaxWidth = 56
	bannerDockRow  = 1
)

type headsUpTickMsg time.Time

func scheduleHeadsUpTick() tea.Cmd {
	return tea.Tick(headsUpTickInterval, func(t time.Time) tea.Msg {
		return headsUpTickMsg(t)
	})
}

// rect is a cell-space rectangle.
type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// HeadsUpView renders the controller's banner as an overlay.
type HeadsUpView struct {
	controller *headsup.Controller
}

func NewHeadsUpView(controller *headsup.Controller) *HeadsUpView {
	return &HeadsUpView{controller: controller}
}

// Layout renders the banner for the current frame and returns it with its
// position on a screen of the given width. ok is false when nothing is shown.
func (v *HeadsUpView) Layout(width int) (string, rect, bool) {
	rec, ok := v.controller.Target()
	if !ok || width <= 0 {
		return "", rect{}, false
	}

	frame := v.controller.Frame()
	if frame.Opacity <= 0 {
		return "", rect{}, false
	}

	base := min(bannerMaxWidth, width-4)
	w := max(int(math.Round(float64(base)*frame.Scale)), 12)

	banner := renderBanner(rec, v.controller.Actions(), frame.Opacity, w)
	bw := lipgloss.Width(banner)
	bh := lipgloss.Height(banner)

	x := (width-bw)/2 + int(math.Round(frame.Offset.X/cellUnitsX))
	y := bannerDockRow + int(math.Round(frame.Offset.Y/cellUnitsY))

	return banner, rect{X: x, Y: y, W: bw, H: bh}, true
}

// Overlay composites the banner over background.
func (v *HeadsUpView) Overlay(background string, width int) string {
	banner, r, ok := v.Layout(width)
	if !ok {
		return background
	}
	return placeOverlay(background, banner, r.X, r.Y)
}

func renderBanner(rec notify.Record, actions []headsup.Action, opacity float64, width int) string {
	accent := styles.Fade(styles.CategoryColor(rec.Category), opacity)
	fg := styles.Fade(styles.ColorForeground, opacity)
	muted := styles.Fade(styles.ColorMuted, opacity)

	inner := max(width-4, 1)

	title := lipgloss.NewStyle().Foreground(accent).Bold(true).
		Render(ansi.Truncate(styles.CategoryIcon(rec.Category)+"  "+rec.Title, inner, "…"))
	body := lipgloss.NewStyle().Foreground(fg).
		Render(ansi.Truncate(firstLine(rec.Body), inner, "…"))

	lines := []string{title, body}
	if len(actions) > 0 {
		lines = append(lines, renderBannerActions(actions, muted))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}

func renderBannerActions(actions []headsup.Action, muted lipgloss.Color) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		switch a {
		case headsup.ActionAccept:
			parts = append(parts, styles.ButtonAcceptStyle.Render("a accept"))
		case headsup.ActionDecline:
			parts = append(parts, styles.ButtonDeclineStyle.Render("x decline"))
		case headsup.ActionDismiss:
			parts = append(parts, lipgloss.NewStyle().Foreground(muted).Render("esc dismiss"))
		}
	}
	return strings.Join(parts, " ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
