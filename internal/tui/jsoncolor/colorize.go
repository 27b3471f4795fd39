// Package jsoncolor renders JSON documents with theme-aware syntax colors for
// terminal output.
package jsoncolor

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/beacon/internal/core/styles"
)

// palette maps token kinds to styles. It is resolved on every call so a theme
// switch applies to later output.
type palette struct {
	key, str, num, literal, null, punct lipgloss.Style
}

func currentPalette() palette {
	return palette{
		key:     lipgloss.NewStyle().Foreground(styles.ColorPrimary),
		str:     lipgloss.NewStyle().Foreground(styles.ColorSuccess),
		num:     lipgloss.NewStyle().Foreground(styles.ColorWarning),
		literal: lipgloss.NewStyle().Foreground(styles.ColorSecondary),
		null:    lipgloss.NewStyle().Foreground(styles.ColorError),
		punct:   lipgloss.NewStyle().Foreground(styles.ColorMuted),
	}
}

// Colorize pretty-prints data and colors keys, strings, numbers and literals.
// Invalid JSON is returned unchanged.
func Colorize(data []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}

	p := currentPalette()
	raw := buf.String()

	var out strings.Builder
	for i := 0; i < len(raw); {
		ch := raw[i]
		switch {
		case ch == '"':
			end := findStringEnd(raw, i)
			tok := raw[i : end+1]
			if isKey(raw[end+1:]) {
				out.WriteString(p.key.Render(tok))
			} else {
				out.WriteString(p.str.Render(tok))
			}
			i = end + 1
		case ch == '-' || (ch >= '0' && ch <= '9'):
			end := numberEnd(raw, i)
			out.WriteString(p.num.Render(raw[i:end]))
			i = end
		case strings.HasPrefix(raw[i:], "true"):
			out.WriteString(p.literal.Render("true"))
			i += len("true")
		case strings.HasPrefix(raw[i:], "false"):
			out.WriteString(p.literal.Render("false"))
			i += len("false")
		case strings.HasPrefix(raw[i:], "null"):
			out.WriteString(p.null.Render("null"))
			i += len("null")
		case strings.IndexByte("{}[]:,", ch) >= 0:
			out.WriteString(p.punct.Render(string(ch)))
			i++
		default:
			out.WriteByte(ch)
			i++
		}
	}

	return out.String()
}

// isKey reports whether the text after a string token starts with a colon.
func isKey(rest string) bool {
	rest = strings.TrimLeft(rest, " \t")
	return rest != "" && rest[0] == ':'
}

func numberEnd(s string, pos int) int {
	end := pos + 1
	for end < len(s) && strings.IndexByte("0123456789.eE+-", s[end]) >= 0 {
		end++
	}
	return end
}

// findStringEnd returns the index of the closing quote for a JSON string starting at pos.
func findStringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			return i
		}
	}
	return len(s) - 1
}
