package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/colonyops/beacon/internal/core/call"
	"github.com/colonyops/beacon/internal/core/push"
	"github.com/colonyops/beacon/internal/core/styles"
)

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	header := m.renderHeader(w)
	divider := styles.DividerStyle.Render(strings.Repeat("─", w))
	footer := lipgloss.NewStyle().PaddingLeft(1).Render(
		m.help.View(m.keys.helpFor(m.activeTab, m.controller.Active(), m.detail != nil)),
	)

	bodyHeight := max(h-2-lipgloss.Height(footer), 1)
	body := lipgloss.NewStyle().
		Width(w).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(m.renderBody(w))

	screen := lipgloss.JoinVertical(lipgloss.Left, header, divider, body, footer)
	screen = m.headsUp.Overlay(screen, w)
	return m.toastView.Overlay(screen, w, h)
}

func (m Model) renderHeader(width int) string {
	title := styles.CommandHeaderStyle.Render(styles.IconBell + " beacon")

	parts := []string{title, " "}
	for _, t := range tabs {
		label := tabLabel(t)
		if t == tabFeed {
			if n := m.store.UnreadCount(); n > 0 {
				label += " " + styles.BadgeStyle.Render(strconv.Itoa(n))
			}
		}
		if t == m.activeTab {
			parts = append(parts, styles.TabActiveStyle.Render(label))
		} else {
			parts = append(parts, styles.TabInactiveStyle.Render(label))
		}
	}

	return ansi.Truncate(lipgloss.JoinHorizontal(lipgloss.Top, parts...), width, "")
}

func tabLabel(t tab) string {
	switch t {
	case tabHome:
		return styles.IconHome + " Home"
	case tabFeed:
		return styles.IconBell + " Feed"
	case tabCall:
		return styles.IconCall + " Call"
	case tabProfile:
		return styles.IconProfile + " Profile"
	default:
		return t.String()
	}
}

func (m Model) renderBody(width int) string {
	switch m.activeTab {
	case tabFeed:
		if m.detail != nil {
			return m.detail.View()
		}
		return m.renderFeed(width)
	case tabCall:
		return m.renderCall(width)
	case tabProfile:
		return m.renderProfile(width)
	default:
		return m.renderHome(width)
	}
}

// --- Home ---

func (m Model) renderHome(width int) string {
	inner := max(width-6, 10)

	token := styles.MutedStyle.Render("not registered")
	if m.token != "" {
		token = styles.SuccessStyle.Render(ansi.Truncate(m.token, inner-14, "…"))
	}

	status := strings.Join([]string{
		styles.CardTitleStyle.Render("Device"),
		field("Push token", token),
		field("Permission", permissionLabel(m.permission)),
		field("App badge", strconv.Itoa(m.platform.Badge())),
		field("Delivered", strconv.Itoa(m.platform.Delivered())),
	}, "\n")

	var presets strings.Builder
	presets.WriteString(styles.CardTitleStyle.Render("Test notifications"))
	for i, p := range m.cfg.Presets {
		msg := p.Message()
		cursor := "  "
		title := msg.Title
		if i == m.presetCursor {
			cursor = styles.SelectedStyle.Render("› ")
			title = styles.SelectedStyle.Render(title)
		}
		icon := lipgloss.NewStyle().
			Foreground(styles.CategoryColor(msg.Category)).
			Render(styles.CategoryIcon(msg.Category))
		presets.WriteString("\n" + cursor + icon + "  " + title)
		if msg.Body != "" {
			presets.WriteString("\n     " + styles.MutedStyle.Render(ansi.Truncate(firstLine(msg.Body), inner-5, "…")))
		}
	}

	card := styles.CardStyle.Width(max(width-2, 10))
	return lipgloss.JoinVertical(lipgloss.Left,
		card.Render(status),
		card.Render(presets.String()),
	)
}

func field(label, value string) string {
	return styles.MutedStyle.Render(fmt.Sprintf("%-12s", label)) + " " + value
}

func permissionLabel(p push.Permission) string {
	switch p {
	case push.PermissionGranted:
		return styles.SuccessStyle.Render(string(p))
	case push.PermissionDenied:
		return styles.ErrorStyle.Render(string(p))
	default:
		return styles.MutedStyle.Render(string(p))
	}
}

// --- Feed ---

func (m Model) renderFeed(width int) string {
	records := m.store.List()
	if len(records) == 0 {
		return lipgloss.NewStyle().Padding(1, 2).Render(
			styles.MutedStyle.Render("No notifications yet. Send one from the home screen."),
		)
	}

	rows := max(m.contentHeight()/2, 1)
	cursor := min(m.feedCursor, len(records)-1)
	start := max(cursor-rows+1, 0)
	end := min(start+rows, len(records))
	now := m.now()
	inner := max(width-8, 10)

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		rec := records[i]

		dot := " "
		title := rec.Title
		if !rec.Read {
			dot = styles.UnreadDotStyle.Render(styles.IconDot)
			title = styles.CardTitleStyle.Render(title)
		}
		if i == cursor {
			title = styles.SelectedStyle.Render(rec.Title)
		}

		marker := "  "
		if i == cursor {
			marker = styles.SelectedStyle.Render("› ")
		}

		icon := lipgloss.NewStyle().
			Foreground(styles.CategoryColor(rec.Category)).
			Render(styles.CategoryIcon(rec.Category))
		when := styles.MutedStyle.Render(humanize.RelTime(rec.CreatedAt, now, "ago", "from now"))

		lines = append(lines,
			marker+dot+" "+icon+"  "+title+"  "+when,
			"       "+styles.MutedStyle.Render(ansi.Truncate(firstLine(rec.Body), inner, "…")),
		)
	}

	return strings.Join(lines, "\n")
}

// --- Call ---

func (m Model) renderCall(width int) string {
	card := styles.CardStyle.Width(max(width-2, 10))

	var active string
	if c, ok := m.calls.Active(); ok {
		number := c.Number
		if number == "" {
			number = "unknown number"
		}
		active = strings.Join([]string{
			styles.CardTitleStyle.Render(styles.IconCall + "  " + c.Peer),
			styles.MutedStyle.Render(number),
			styles.SuccessStyle.Render(call.FormatDuration(c.Duration(m.now()))) + " " +
				styles.MutedStyle.Render(string(c.Direction)),
			"",
			toggleButton("mute", c.Muted) + " " +
				toggleButton("speaker", c.Speaker) + " " +
				toggleButton("video", c.Video) + " " +
				styles.ButtonDeclineStyle.Render("h hang up"),
		}, "\n")
	} else {
		active = styles.MutedStyle.Render("No active call")
	}

	var history strings.Builder
	history.WriteString(styles.CardTitleStyle.Render("Recent calls"))
	entries := m.calls.History()
	if len(entries) == 0 {
		history.WriteString("\n" + styles.MutedStyle.Render("No calls yet"))
	}
	now := m.now()
	for _, e := range entries {
		dir := styles.MutedStyle
		if e.Direction == call.DirectionMissed {
			dir = styles.ErrorStyle
		}
		line := fmt.Sprintf("%s %s  %s",
			dir.Render(fmt.Sprintf("%-8s", e.Direction)),
			e.Peer,
			styles.MutedStyle.Render(humanize.RelTime(e.At, now, "ago", "from now")),
		)
		if e.Duration > 0 {
			line += styles.MutedStyle.Render("  " + call.FormatDuration(e.Duration))
		}
		history.WriteString("\n" + line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, card.Render(active), card.Render(history.String()))
}

func toggleButton(label string, on bool) string {
	if on {
		return styles.ButtonAcceptStyle.Render(label)
	}
	return styles.ButtonStyle.Render(label)
}

// --- Profile ---

func (m Model) renderProfile(width int) string {
	autoHide := onOff(m.autoHideOn)
	if m.autoHideOn {
		autoHide += styles.MutedStyle.Render(" (" + m.cfg.HeadsUp.AutoHideDuration().String() + ")")
	}

	version := m.buildInfo.Version
	if version == "" {
		version = "dev"
	}

	settings := strings.Join([]string{
		styles.CardTitleStyle.Render("Preferences"),
		field("Theme", m.themeName),
		field("Sound", onOff(m.soundOn)),
		field("Vibration", onOff(m.vibrationOn)),
		field("Auto-hide", autoHide),
	}, "\n")

	about := strings.Join([]string{
		styles.CardTitleStyle.Render("About"),
		field("Version", version),
		field("Commit", m.buildInfo.Commit),
		field("Relay", m.cfg.Push.RelayURL),
	}, "\n")

	card := styles.CardStyle.Width(max(width-2, 10))
	return lipgloss.JoinVertical(lipgloss.Left, card.Render(settings), card.Render(about))
}

func onOff(v bool) string {
	if v {
		return styles.SuccessStyle.Render("on")
	}
	return styles.MutedStyle.Render("off")
}
