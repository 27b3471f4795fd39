package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/internal/core/styles"
)

const (
	detailChrome  = 4 // border + header line + help line
	detailPadding = 4
)

// DetailView shows one notification with its body rendered as markdown.
type DetailView struct {
	record   notify.Record
	viewport viewport.Model
}

// NewDetailView creates a detail view sized to the content area.
func NewDetailView(rec notify.Record, width, height int) DetailView {
	w := max(width-detailPadding, 10)
	h := max(height-detailChrome, 3)

	d := DetailView{
		record:   rec,
		viewport: viewport.New(w, h),
	}
	d.renderContent(w)
	return d
}

// detailMarkdown builds the markdown document shown for rec.
func detailMarkdown(rec notify.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", rec.Title)
	if rec.Body != "" {
		b.WriteString(rec.Body)
		b.WriteString("\n\n")
	}

	if len(rec.Payload) > 0 {
		keys := make([]string, 0, len(rec.Payload))
		for k := range rec.Payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("---\n\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "- **%s**: `%v`\n", k, rec.Payload[k])
		}
	}
	return b.String()
}

func (d *DetailView) renderContent(width int) {
	md := detailMarkdown(d.record)

	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		d.viewport.SetContent(md)
		return
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		d.viewport.SetContent(md)
		return
	}

	d.viewport.SetContent(strings.TrimSpace(rendered))
}

// ScrollUp scrolls the viewport up.
func (d *DetailView) ScrollUp() {
	d.viewport.LineUp(1)
}

// ScrollDown scrolls the viewport down.
func (d *DetailView) ScrollDown() {
	d.viewport.LineDown(1)
}

// Record returns the displayed record.
func (d DetailView) Record() notify.Record {
	return d.record
}

// View renders the detail panel.
func (d DetailView) View() string {
	accent := styles.CategoryColor(d.record.Category)
	meta := fmt.Sprintf("%s %s %s %s",
		lipgloss.NewStyle().Foreground(accent).Render(styles.CategoryIcon(d.record.Category)),
		lipgloss.NewStyle().Foreground(accent).Bold(true).Render(string(d.record.Category)),
		styles.IconDot,
		styles.MutedStyle.Render(d.record.CreatedAt.Format("2006-01-02 15:04:05")),
	)

	scroll := ""
	if d.viewport.TotalLineCount() > d.viewport.VisibleLineCount() {
		scroll = styles.MutedStyle.Render(fmt.Sprintf(" (%.0f%%)", d.viewport.ScrollPercent()*100))
	}

	return styles.CardStyle.
		BorderForeground(accent).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			meta+scroll,
			d.viewport.View(),
		))
}
