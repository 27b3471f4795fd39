// Package printer writes styled status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/beacon/internal/core/styles"
)

type ctxKey struct{}

// Printer writes human-readable command output.
type Printer struct {
	out io.Writer
}

// New creates a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{out: w}
}

// WithPrinter stores p in ctx.
func WithPrinter(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(icon string, style lipgloss.Style, format string, args ...any) {
	_, _ = fmt.Fprintln(p.out, style.Render(icon)+" "+fmt.Sprintf(format, args...))
}

// Successf prints a success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line("✔", styles.SuccessStyle, format, args...)
}

// Infof prints an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line("•", styles.InfoStyle, format, args...)
}

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line("!", lipgloss.NewStyle().Foreground(styles.ColorWarning), format, args...)
}

// Errorf prints an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line("✘", styles.ErrorStyle, format, args...)
}

// Printf prints an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Success prints a titled success line followed by a muted detail.
func (p *Printer) Success(title, detail string) {
	p.line("✔", styles.SuccessStyle, "%s %s", title, styles.MutedStyle.Render(detail))
}

// Section prints a section header.
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintln(p.out, styles.CommandHeaderStyle.Render(title))
}
