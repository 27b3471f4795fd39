package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTabForScreen(t *testing.T) {
	tests := []struct {
		screen string
		want   tab
		ok     bool
	}{
		{"home", tabHome, true},
		{"index", tabHome, true},
		{"feed", tabFeed, true},
		{"notifications", tabFeed, true},
		{"call", tabCall, true},
		{"profile", tabProfile, true},
		{"", 0, false},
		{"settings", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.screen, func(t *testing.T) {
			got, ok := tabForScreen(tt.screen)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyMap_helpFor(t *testing.T) {
	k := DefaultKeyMap()

	banner := k.helpFor(tabHome, true, false)
	assert.Contains(t, banner.ShortHelp(), k.Accept)
	assert.NotContains(t, banner.ShortHelp(), k.SendLocal)

	feed := k.helpFor(tabFeed, false, false)
	assert.Contains(t, feed.ShortHelp(), k.ClearAll)
	assert.Len(t, feed.FullHelp(), 3)

	detail := k.helpFor(tabFeed, false, true)
	assert.Contains(t, detail.ShortHelp(), k.Back)
	assert.NotContains(t, detail.ShortHelp(), k.ClearAll)
}
