// Package tuitest provides testing utilities for TUI components.
package tuitest

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes and trailing whitespace so rendered
// views can be compared as plain text.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	var result []string
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " ")
		result = append(result, trimmed)
	}
	return strings.TrimRight(strings.Join(result, "\n"), "\n")
}

// KeyPress creates a key press message for a single rune.
func KeyPress(key rune) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{key}}
}

// KeyDown creates a down arrow key press message.
func KeyDown() tea.Msg {
	return tea.KeyMsg{Type: tea.KeyDown}
}

// KeyUp creates an up arrow key press message.
func KeyUp() tea.Msg {
	return tea.KeyMsg{Type: tea.KeyUp}
}

// KeyLeft creates a left arrow key press message.
func KeyLeft() tea.Msg {
	return tea.KeyMsg{Type: tea.KeyLeft}
}

// KeyRight creates a right arrow key press message.
func KeyRight() tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRight}
}

// KeyEnter creates an enter key press message.
func KeyEnter() tea.Msg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

// KeyEsc creates an escape key press message.
func KeyEsc() tea.Msg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

// KeyTab creates a tab key press message.
func KeyTab() tea.Msg {
	return tea.KeyMsg{Type: tea.KeyTab}
}

// MousePress creates a left button press at x, y.
func MousePress(x, y int) tea.Msg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

// MouseMotion creates a left button drag motion at x, y.
func MouseMotion(x, y int) tea.Msg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}
}

// MouseRelease creates a button release at x, y.
func MouseRelease(x, y int) tea.Msg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}
}

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}
