package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/beacon/internal/core/headsup"
	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/pkg/tuitest"
)

func newVisibleController(t *testing.T, rec notify.Record) *headsup.Controller {
	t.Helper()
	c := headsup.NewController(headsup.DefaultConfig(), headsup.Callbacks{})
	c.Present(rec)
	c.Advance(time.Second)
	require.Equal(t, headsup.PhaseVisible, c.Phase())
	return c
}

func TestHeadsUpView_Layout_hidden(t *testing.T) {
	c := headsup.NewController(headsup.DefaultConfig(), headsup.Callbacks{})
	v := NewHeadsUpView(c)

	_, _, ok := v.Layout(80)
	assert.False(t, ok)
	assert.Equal(t, "background", v.Overlay("background", 80))
}

func TestHeadsUpView_Layout_docked(t *testing.T) {
	c := newVisibleController(t, notify.Record{ID: "1", Title: "New Message", Body: "Hey!\nsecond line", Category: notify.CategoryMessage})
	v := NewHeadsUpView(c)

	banner, r, ok := v.Layout(100)
	require.True(t, ok)

	assert.Equal(t, bannerMaxWidth, r.W)
	assert.Equal(t, (100-bannerMaxWidth)/2, r.X)
	assert.Equal(t, bannerDockRow, r.Y)

	plain := tuitest.StripANSI(banner)
	assert.Contains(t, plain, "New Message")
	assert.Contains(t, plain, "Hey!")
	assert.NotContains(t, plain, "second line")
	assert.Contains(t, plain, "esc dismiss")
}

func TestHeadsUpView_Layout_call_actions(t *testing.T) {
	c := newVisibleController(t, notify.Record{ID: "1", Title: "Incoming Call", Category: notify.CategoryCall})

	banner, _, ok := NewHeadsUpView(c).Layout(60)
	require.True(t, ok)

	plain := tuitest.StripANSI(banner)
	assert.Contains(t, plain, "a accept")
	assert.Contains(t, plain, "x decline")
	assert.NotContains(t, plain, "dismiss")
}

func TestHeadsUpView_Layout_follows_drag(t *testing.T) {
	c := newVisibleController(t, notify.Record{ID: "1", Title: "t", Category: notify.CategoryGeneral})
	v := NewHeadsUpView(c)
	_, rest, _ := v.Layout(100)

	c.PointerDown()
	c.PointerMove(8*cellUnitsX, 0)

	_, moved, ok := v.Layout(100)
	require.True(t, ok)
	assert.Equal(t, rest.X+8, moved.X)
	assert.Equal(t, rest.Y, moved.Y)
}

func TestRect_contains(t *testing.T) {
	r := rect{X: 2, Y: 1, W: 4, H: 2}
	assert.True(t, r.contains(2, 1))
	assert.True(t, r.contains(5, 2))
	assert.False(t, r.contains(6, 1))
	assert.False(t, r.contains(2, 3))
	assert.False(t, r.contains(1, 1))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "one", firstLine("one\ntwo"))
	assert.Equal(t, "single", firstLine("single"))
	assert.Empty(t, firstLine(""))
}
