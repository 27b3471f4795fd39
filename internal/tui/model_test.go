package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/beacon/internal/core/call"
	"github.com/colonyops/beacon/internal/core/config"
	"github.com/colonyops/beacon/internal/core/headsup"
	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/internal/core/push"
	"github.com/colonyops/beacon/internal/core/styles"
	"github.com/colonyops/beacon/pkg/tuitest"
)

var testNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	deps     Deps
	platform *push.LocalPlatform
}

func newTestEnv(t *testing.T, relay push.Relay) testEnv {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	platform := push.NewLocalPlatform(push.PermissionGranted, true)
	svc := push.NewService(platform, relay, push.WithToken("ExponentPushToken[test]"))
	store := notify.NewStore(
		notify.WithBadgeSink(svc),
		notify.WithClock(func() time.Time { return testNow }),
	)

	return testEnv{
		deps: Deps{
			Config:   &cfg,
			Store:    store,
			Push:     svc,
			Platform: platform,
			Calls:    call.NewService(zerolog.Nop()),
		},
		platform: platform,
	}
}

func (e testEnv) model() Model {
	m := New(e.deps, Options{Now: func() time.Time { return testNow }})
	return update(m, tuitest.WindowSize(100, 30))
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

// advance feeds heads-up ticks covering d.
func advance(m Model, d time.Duration) Model {
	for elapsed := time.Duration(0); elapsed < d; elapsed += headsUpTickInterval {
		m = update(m, headsUpTickMsg(m.lastTick.Add(headsUpTickInterval)))
	}
	return m
}

func (e testEnv) deliver(t *testing.T, m Model, msg push.Message) Model {
	t.Helper()
	require.NoError(t, e.platform.Deliver(context.Background(), msg))
	return update(m, drainNotificationsMsg{})
}

var (
	callMsg = push.Message{
		Title:    "Incoming Call",
		Body:     "Ada is calling",
		Category: notify.CategoryCall,
		Data:     map[string]any{"caller": "Ada", "number": "+1 555 0100"},
	}
	chatMsg = push.Message{
		Title:    "New Message",
		Body:     "Hey!",
		Category: notify.CategoryMessage,
	}
)

func TestModel_delivery_presents_banner(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.model()

	m = env.deliver(t, m, chatMsg)

	require.Equal(t, 1, env.deps.Store.Len())
	assert.True(t, m.ticking)
	assert.Equal(t, headsup.PhaseEntering, m.controller.Phase())
	target, ok := m.controller.Target()
	require.True(t, ok)
	assert.Equal(t, "New Message", target.Title)
	assert.Equal(t, 1, env.platform.Badge())

	m = advance(m, time.Second)
	assert.Equal(t, headsup.PhaseVisible, m.controller.Phase())
	assert.Contains(t, tuitest.StripANSI(m.View()), "New Message")
}

func TestModel_message_auto_hides_and_stays_unread(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.deliver(t, env.model(), chatMsg)

	m = advance(m, 7*time.Second)

	assert.False(t, m.controller.Active())
	assert.False(t, m.ticking)
	_, ok := env.deps.Store.Current()
	assert.False(t, ok)
	assert.Equal(t, 1, env.deps.Store.UnreadCount())
}

func TestModel_call_accept(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.deliver(t, env.model(), callMsg)
	m = advance(m, time.Second)

	m = update(m, tuitest.KeyPress('a'))
	m = advance(m, time.Second)

	active, ok := env.deps.Calls.Active()
	require.True(t, ok)
	assert.Equal(t, "Ada", active.Peer)
	assert.Equal(t, tabCall, m.activeTab)
	assert.Equal(t, 0, env.deps.Store.UnreadCount())
	assert.Equal(t, 0, env.platform.Badge())
	assert.False(t, m.controller.Active())
}

func TestModel_call_decline(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.deliver(t, env.model(), callMsg)
	m = advance(m, time.Second)

	m = update(m, tuitest.KeyPress('x'))
	m = advance(m, time.Second)

	_, ok := env.deps.Calls.Active()
	assert.False(t, ok)
	history := env.deps.Calls.History()
	require.Len(t, history, 1)
	assert.Equal(t, call.DirectionMissed, history[0].Direction)
	assert.Equal(t, tabHome, m.activeTab)
	assert.Equal(t, 0, env.deps.Store.UnreadCount())
}

func TestModel_call_never_auto_hides(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.deliver(t, env.model(), callMsg)

	m = advance(m, 10*time.Second)

	assert.Equal(t, headsup.PhaseVisible, m.controller.Phase())
}

func TestModel_unavailable_action_shows_toast(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.deliver(t, env.model(), callMsg)
	m = advance(m, time.Second)

	m = update(m, tuitest.KeyEsc())

	require.True(t, m.toasts.HasToasts())
	assert.Equal(t, toastWarning, m.toasts.Toasts()[0].level)
	assert.Equal(t, headsup.PhaseVisible, m.controller.Phase())
}

func TestModel_mouse_swipe_dismisses(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.deliver(t, env.model(), chatMsg)
	m = advance(m, time.Second)

	_, r, ok := m.headsUp.Layout(m.width)
	require.True(t, ok)
	x, y := r.X+r.W/2, r.Y+1

	m = update(m, tuitest.MousePress(x, y))
	assert.True(t, m.drag.active)
	m = update(m, tuitest.MouseMotion(x+30, y))
	assert.Equal(t, headsup.PhaseDragging, m.controller.Phase())
	m = update(m, tuitest.MouseRelease(x+30, y))
	m = advance(m, time.Second)

	assert.False(t, m.controller.Active())
	assert.Equal(t, 1, env.deps.Store.UnreadCount())
}

func TestModel_mouse_press_outside_banner_is_ignored(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.deliver(t, env.model(), chatMsg)
	m = advance(m, time.Second)

	m = update(m, tuitest.MousePress(0, 25))

	assert.False(t, m.drag.active)
	assert.Equal(t, headsup.PhaseVisible, m.controller.Phase())
}

func TestModel_keyboard_nudge(t *testing.T) {
	t.Run("short drag snaps back", func(t *testing.T) {
		env := newTestEnv(t, nil)
		m := env.deliver(t, env.model(), chatMsg)
		m = advance(m, time.Second)

		m = update(m, tuitest.KeyUp())
		assert.Equal(t, headsup.PhaseDragging, m.controller.Phase())
		m = update(m, tuitest.KeyPress(' '))
		m = advance(m, time.Second)

		assert.Equal(t, headsup.PhaseVisible, m.controller.Phase())
		assert.False(t, m.nudge.active)
	})

	t.Run("upward flick dismisses", func(t *testing.T) {
		env := newTestEnv(t, nil)
		m := env.deliver(t, env.model(), chatMsg)
		m = advance(m, time.Second)

		m = update(m, tuitest.KeyUp())
		m = update(m, tuitest.KeyUp())
		m = update(m, tuitest.KeyUp())
		m = update(m, tuitest.KeyPress(' '))
		m = advance(m, time.Second)

		assert.False(t, m.controller.Active())
	})

	t.Run("arrows navigate without a banner", func(t *testing.T) {
		env := newTestEnv(t, nil)
		m := env.model()

		m = update(m, tuitest.KeyDown())

		assert.Equal(t, 1, m.presetCursor)
		assert.False(t, m.nudge.active)
	})
}

func TestModel_send_local_preset(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.model()

	next, cmd := m.Update(tuitest.KeyEnter())
	m = next.(Model)
	require.NotNil(t, cmd)
	m = update(m, cmd())
	m = update(m, drainNotificationsMsg{})

	records := env.deps.Store.List()
	require.Len(t, records, 1)
	assert.Equal(t, env.deps.Config.Presets[0].Title, records[0].Title)
	assert.Equal(t, notify.CategoryCall, records[0].Category)
	assert.True(t, m.controller.Active())
}

func TestModel_send_remote_preset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"status":"ok","id":"t-1"}}`))
	}))
	defer srv.Close()

	env := newTestEnv(t, push.NewRelayClient(srv.URL))
	m := env.model()

	next, cmd := m.Update(tuitest.KeyPress('r'))
	m = next.(Model)
	require.NotNil(t, cmd)
	msg := cmd()
	sent, ok := msg.(relaySentMsg)
	require.True(t, ok)
	require.NoError(t, sent.err)

	m = update(m, msg)
	require.True(t, m.toasts.HasToasts())
	assert.Equal(t, toastInfo, m.toasts.Toasts()[0].level)
	assert.Contains(t, m.toasts.Toasts()[0].message, "via relay")
}

func TestModel_feed_operations(t *testing.T) {
	env := newTestEnv(t, nil)
	store := env.deps.Store
	a := store.Add(notify.Draft{Title: "a", Category: notify.CategoryMessage})
	store.Add(notify.Draft{Title: "b", Category: notify.CategoryReminder})
	m := env.model()

	m = update(m, tuitest.KeyPress('2'))
	require.Equal(t, tabFeed, m.activeTab)
	assert.Contains(t, tuitest.StripANSI(m.View()), "b")

	m = update(m, tuitest.KeyPress('m'))
	assert.Equal(t, 1, store.UnreadCount())

	m = update(m, tuitest.KeyPress('j'))
	m = update(m, tuitest.KeyEnter())
	require.NotNil(t, m.detail)
	assert.Equal(t, a.ID, m.detail.Record().ID)
	assert.Equal(t, 0, store.UnreadCount())

	m = update(m, tuitest.KeyEsc())
	assert.Nil(t, m.detail)

	m = update(m, tuitest.KeyPress('d'))
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "b", store.List()[0].Title)
	assert.Equal(t, 0, m.feedCursor)

	store.Add(notify.Draft{Title: "c"})
	m = update(m, tuitest.KeyPress('C'))
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, env.platform.Badge())
	assert.Contains(t, tuitest.StripANSI(m.View()), "No notifications yet")
}

func TestModel_navigate_follows_screen_hint(t *testing.T) {
	env := newTestEnv(t, nil)
	env.deps.Store.Add(notify.Draft{
		Title:    "Settings changed",
		Category: notify.CategoryGeneral,
		Payload:  map[string]any{"screen": "profile"},
	})
	m := env.model()

	m = update(m, tuitest.KeyPress('2'))
	m = update(m, tuitest.KeyPress('g'))

	assert.Equal(t, tabProfile, m.activeTab)
	assert.Equal(t, 0, env.deps.Store.UnreadCount())
}

func TestModel_call_screen_keys(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.model()
	m = update(m, tuitest.KeyPress('3'))

	m = update(m, tuitest.KeyPress('m'))
	require.True(t, m.toasts.HasToasts())
	assert.Equal(t, toastWarning, m.toasts.Toasts()[0].level)

	env.deps.Calls.Dial("Grace", "+1 555 0199")
	m = update(m, tuitest.KeyPress('m'))
	active, ok := env.deps.Calls.Active()
	require.True(t, ok)
	assert.True(t, active.Muted)
	assert.Contains(t, tuitest.StripANSI(m.View()), "Grace")

	m = update(m, tuitest.KeyPress('h'))
	_, ok = env.deps.Calls.Active()
	assert.False(t, ok)

	m = update(m, tuitest.KeyPress('n'))
	active, ok = env.deps.Calls.Active()
	require.True(t, ok)
	assert.Equal(t, "Grace", active.Peer)
	assert.Equal(t, call.DirectionOutgoing, active.Direction)
}

func TestModel_profile_toggles(t *testing.T) {
	dark, ok := styles.GetPalette(config.ThemeDark)
	require.True(t, ok)
	t.Cleanup(func() { styles.SetTheme(dark) })

	env := newTestEnv(t, nil)
	m := env.model()
	m = update(m, tuitest.KeyPress('4'))

	m = update(m, tuitest.KeyPress('t'))
	assert.Equal(t, config.ThemeLight, m.themeName)

	m = update(m, tuitest.KeyPress('s'))
	assert.False(t, m.soundOn)
	m = update(m, tuitest.KeyPress('v'))
	assert.False(t, m.vibrationOn)

	m = update(m, tuitest.KeyPress('h'))
	assert.False(t, m.autoHideOn)
	assert.False(t, m.controller.Config().AutoHideEnabled)

	m = env.deliver(t, m, chatMsg)
	m = advance(m, 10*time.Second)
	assert.Equal(t, headsup.PhaseVisible, m.controller.Phase())
}

func TestModel_tab_cycle(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.model()

	for _, want := range []tab{tabFeed, tabCall, tabProfile, tabHome} {
		m = update(m, tuitest.KeyTab())
		assert.Equal(t, want, m.activeTab)
	}
}

func TestModel_unread_badge_in_header(t *testing.T) {
	env := newTestEnv(t, nil)
	env.deps.Store.Add(notify.Draft{Title: "one"})
	env.deps.Store.Add(notify.Draft{Title: "two"})
	m := env.model()

	header := tuitest.StripANSI(m.renderHeader(100))
	assert.Regexp(t, `Feed\s+2`, header)
}

func TestModel_startup_warnings_become_toasts(t *testing.T) {
	env := newTestEnv(t, nil)
	m := New(env.deps, Options{Warnings: []string{"custom relay configured without an access token"}})

	cmd := m.Init()

	require.NotNil(t, cmd)
	require.True(t, m.toasts.HasToasts())
	assert.True(t, m.toasts.Ticking())
}

func TestModel_quit_closes_controller(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.deliver(t, env.model(), chatMsg)

	next, cmd := m.Update(tuitest.KeyPress('q'))
	m = next.(Model)

	require.NotNil(t, cmd)
	assert.False(t, m.controller.Active())
	assert.Empty(t, m.View())
}
