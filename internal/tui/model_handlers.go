package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/beacon/internal/core/call"
	"github.com/colonyops/beacon/internal/core/headsup"
	"github.com/colonyops/beacon/internal/core/logging"
	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/internal/core/push"
	"github.com/colonyops/beacon/internal/core/styles"
)

// Keyboard drag steps in logical units.
const (
	nudgeStepX = 48.0
	nudgeStepY = 32.0
)

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.controller.SetViewportWidth(float64(msg.Width) * cellUnitsX)

	if m.detail != nil {
		d := NewDetailView(m.detail.Record(), m.width, m.contentHeight())
		m.detail = &d
	}
	return m, nil
}

// --- Delivery ---

func (m Model) handleDrain() (tea.Model, tea.Cmd) {
	for _, msg := range m.buffer.Drain() {
		// A new session replaces any gesture in flight.
		m.drag = dragState{}
		m.nudge = nudgeState{}

		rec := m.store.Add(msg.Draft())
		ctx := logging.WithNotificationID(context.Background(), rec.ID)
		m.logger.Debug().Ctx(ctx).
			Str("category", string(rec.Category)).
			Msg("notification received")
	}

	cmds := []tea.Cmd{m.buffer.WaitForSignal()}
	if cmd := m.ensureHeadsUpTick(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handlePushInit(msg pushInitMsg) (tea.Model, tea.Cmd) {
	m.permission = msg.permission
	m.token = msg.token

	switch {
	case errors.Is(msg.err, push.ErrPermissionDenied):
		m.toasts.Warnf("Push permission denied, local notifications only")
	case msg.err != nil:
		m.logger.Error().Err(msg.err).Msg("push initialization failed")
		m.toasts.Errorf("Push setup failed: %v", msg.err)
	default:
		m.logger.Info().Str("permission", string(msg.permission)).Msg("push ready")
	}
	return m, m.ensureToastTick()
}

func (m Model) handleLocalSent(msg localSentMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.toasts.Errorf("Local delivery failed: %v", msg.err)
		return m, m.ensureToastTick()
	}
	return m, nil
}

func (m Model) handleRelaySent(msg relaySentMsg) (tea.Model, tea.Cmd) {
	var rerr *push.RelayError
	switch {
	case errors.Is(msg.err, push.ErrNoToken):
		m.toasts.Warnf("No push token, grant permission first")
	case errors.As(msg.err, &rerr):
		m.toasts.Errorf("Relay rejected %q: %s", msg.title, rerr.Message)
	case msg.err != nil:
		m.toasts.Errorf("Relay send failed: %v", msg.err)
	default:
		m.toasts.Infof("Sent %q via relay (%s)", msg.title, msg.ticket.Status)
	}
	return m, m.ensureToastTick()
}

// --- Ticks ---

func (m Model) handleHeadsUpTick(msg headsUpTickMsg) (tea.Model, tea.Cmd) {
	now := time.Time(msg)
	d := min(max(now.Sub(m.lastTick), 0), maxTickStep)
	m.lastTick = now

	m.controller.Advance(d)
	cmd := m.applyOutcomes()

	if m.controller.Active() {
		return m, tea.Batch(cmd, scheduleHeadsUpTick())
	}
	m.ticking = false
	m.drag = dragState{}
	m.nudge = nudgeState{}
	return m, cmd
}

func (m Model) handleToastTick(_ toastTickMsg) (tea.Model, tea.Cmd) {
	m.toasts.Tick(toastTickInterval)
	if m.toasts.HasToasts() {
		return m, scheduleToastTick()
	}
	m.toasts.SetTicking(false)
	return m, nil
}

// applyOutcomes applies finished heads-up sessions to the store and the call
// service.
func (m *Model) applyOutcomes() tea.Cmd {
	for _, o := range m.outcomes.drain() {
		// A superseded session finishes after its successor became current.
		if cur, ok := m.store.Current(); ok && cur.ID == o.record.ID {
			m.store.ClearCurrent()
		}

		ctx := logging.WithNotificationID(context.Background(), o.record.ID)
		m.logger.Info().Ctx(ctx).Str("action", string(o.action)).Msg("heads-up finished")

		switch o.action {
		case headsup.ActionAccept:
			m.store.MarkRead(o.record.ID)
			c := m.calls.Accept(o.record)
			m.activeTab = tabCall
			m.detail = nil
			m.toasts.Infof("Connected to %s", c.Peer)
		case headsup.ActionDecline:
			m.store.MarkRead(o.record.ID)
			m.calls.Decline(o.record)
			m.toasts.Infof("Declined call from %s", peerName(o.record))
		case headsup.ActionDismiss:
			// the record stays unread in the feed
		}
	}
	return m.ensureToastTick()
}

func peerName(rec notify.Record) string {
	if p := rec.PayloadString("caller"); p != "" {
		return p
	}
	return rec.Title
}

// --- Keys ---

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.controller.Close()
		return m, tea.Quit
	}

	if m.controller.Active() {
		if handled, cmd := m.handleHeadsUpKey(msg); handled {
			return m, cmd
		}
	}

	if m.detail != nil {
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.activeTab = tabs[(int(m.activeTab)+1)%len(tabs)]
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.activeTab = tabs[(int(m.activeTab)+len(tabs)-1)%len(tabs)]
		return m, nil
	case key.Matches(msg, m.keys.TabHome):
		m.activeTab = tabHome
		return m, nil
	case key.Matches(msg, m.keys.TabFeed):
		m.activeTab = tabFeed
		return m, nil
	case key.Matches(msg, m.keys.TabCall):
		m.activeTab = tabCall
		return m, nil
	case key.Matches(msg, m.keys.TabProf):
		m.activeTab = tabProfile
		return m, nil
	}

	switch m.activeTab {
	case tabHome:
		return m.handleHomeKey(msg)
	case tabFeed:
		return m.handleFeedKey(msg)
	case tabCall:
		return m.handleCallKey(msg)
	case tabProfile:
		return m.handleProfileKey(msg)
	}
	return m, nil
}

// handleHeadsUpKey routes banner keys. Unhandled keys fall through to the
// active screen.
func (m *Model) handleHeadsUpKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Accept):
		return true, m.invoke(headsup.ActionAccept)
	case key.Matches(msg, m.keys.Decline):
		return true, m.invoke(headsup.ActionDecline)
	case key.Matches(msg, m.keys.Dismiss):
		return true, m.invoke(headsup.ActionDismiss)
	case key.Matches(msg, m.keys.NudgeUp):
		return m.nudgeBy(0, -nudgeStepY), nil
	case key.Matches(msg, m.keys.NudgeDn):
		return m.nudgeBy(0, nudgeStepY), nil
	case key.Matches(msg, m.keys.NudgeL):
		return m.nudgeBy(-nudgeStepX, 0), nil
	case key.Matches(msg, m.keys.NudgeR):
		return m.nudgeBy(nudgeStepX, 0), nil
	case key.Matches(msg, m.keys.Release):
		if !m.nudge.active {
			return false, nil
		}
		m.controller.PointerUp()
		m.nudge = nudgeState{}
		return true, nil
	}
	return false, nil
}

func (m *Model) invoke(a headsup.Action) tea.Cmd {
	err := m.controller.Invoke(a)
	switch {
	case errors.Is(err, headsup.ErrActionUnavailable):
		rec, _ := m.controller.Target()
		m.toasts.Warnf("%s is not available for %s notifications", a, rec.Category)
	case err != nil:
		m.logger.Debug().Err(err).Str("action", string(a)).Msg("heads-up action ignored")
	}
	return m.ensureToastTick()
}

// nudgeBy moves the banner as if dragged by (dx, dy) more units. A nudge can
// only start on a settled banner; it reports whether the key was consumed.
func (m *Model) nudgeBy(dx, dy float64) bool {
	phase := m.controller.Phase()
	if m.nudge.active && phase != headsup.PhaseVisible && phase != headsup.PhaseDragging {
		m.nudge = nudgeState{}
	}

	if !m.nudge.active {
		if phase != headsup.PhaseVisible {
			return phase == headsup.PhaseEntering || phase == headsup.PhaseExiting
		}
		m.controller.PointerDown()
		m.nudge = nudgeState{active: true}
	}

	m.nudge.dx += dx
	m.nudge.dy += dy
	m.controller.PointerMove(m.nudge.dx, m.nudge.dy)
	return true
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.detail = nil
	case key.Matches(msg, m.keys.Up):
		m.detail.ScrollUp()
	case key.Matches(msg, m.keys.Down):
		m.detail.ScrollDown()
	case key.Matches(msg, m.keys.Navigate):
		return m.navigateTo(m.detail.Record())
	}
	return m, nil
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	presets := m.cfg.Presets
	switch {
	case key.Matches(msg, m.keys.Up):
		m.presetCursor = max(m.presetCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.presetCursor = min(m.presetCursor+1, max(len(presets)-1, 0))
	case key.Matches(msg, m.keys.SendLocal):
		if len(presets) > 0 {
			return m, m.sendLocal(presets[m.presetCursor].Message())
		}
	case key.Matches(msg, m.keys.SendRemote):
		if len(presets) > 0 {
			return m, m.sendRemote(presets[m.presetCursor].Message())
		}
	case key.Matches(msg, m.keys.Permission):
		return m, m.initPush()
	}
	return m, nil
}

func (m Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	records := m.store.List()
	m.feedCursor = min(m.feedCursor, max(len(records)-1, 0))

	switch {
	case key.Matches(msg, m.keys.Up):
		m.feedCursor = max(m.feedCursor-1, 0)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.feedCursor = min(m.feedCursor+1, max(len(records)-1, 0))
		return m, nil
	case key.Matches(msg, m.keys.ClearAll):
		m.store.ClearAll()
		m.feedCursor = 0
		if err := m.push.ClearAll(context.Background()); err != nil {
			m.logger.Warn().Err(err).Msg("failed to clear delivered notifications")
		}
		m.toasts.Infof("Cleared all notifications")
		return m, m.ensureToastTick()
	}

	if len(records) == 0 {
		return m, nil
	}
	rec := records[m.feedCursor]

	switch {
	case key.Matches(msg, m.keys.Select):
		m.store.MarkRead(rec.ID)
		rec.Read = true
		d := NewDetailView(rec, m.width, m.contentHeight())
		m.detail = &d
	case key.Matches(msg, m.keys.MarkRead):
		m.store.MarkRead(rec.ID)
	case key.Matches(msg, m.keys.Remove):
		m.store.Remove(rec.ID)
		m.feedCursor = min(m.feedCursor, max(len(records)-2, 0))
	case key.Matches(msg, m.keys.Navigate):
		return m.navigateTo(rec)
	}
	return m, nil
}

// navigateTo follows the record's routing hint. Calls always land on the
// call screen.
func (m Model) navigateTo(rec notify.Record) (tea.Model, tea.Cmd) {
	target, ok := tabForScreen(rec.PayloadString("screen"))
	if rec.Category == notify.CategoryCall {
		target, ok = tabCall, true
	}
	if !ok {
		m.toasts.Warnf("No screen to open for %q", rec.Title)
		return m, m.ensureToastTick()
	}
	m.store.MarkRead(rec.ID)
	m.detail = nil
	m.activeTab = target
	return m, nil
}

func (m Model) handleCallKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch {
	case key.Matches(msg, m.keys.Hangup):
		var e call.Entry
		if e, err = m.calls.Hangup(); err == nil {
			m.toasts.Infof("Call with %s ended (%s)", e.Peer, call.FormatDuration(e.Duration))
		}
	case key.Matches(msg, m.keys.Mute):
		_, err = m.calls.ToggleMute()
	case key.Matches(msg, m.keys.Speaker):
		_, err = m.calls.ToggleSpeaker()
	case key.Matches(msg, m.keys.Video):
		_, err = m.calls.ToggleVideo()
	case key.Matches(msg, m.keys.Redial):
		history := m.calls.History()
		if len(history) == 0 {
			m.toasts.Warnf("No recent calls")
			break
		}
		c := m.calls.Dial(history[0].Peer, history[0].Number)
		m.toasts.Infof("Calling %s", c.Peer)
	}

	if errors.Is(err, call.ErrNoActiveCall) {
		m.toasts.Warnf("No active call")
	}
	return m, m.ensureToastTick()
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Theme):
		m.themeName = styles.Toggle()
		if m.detail != nil {
			d := NewDetailView(m.detail.Record(), m.width, m.contentHeight())
			m.detail = &d
		}
	case key.Matches(msg, m.keys.Sound):
		m.soundOn = !m.soundOn
	case key.Matches(msg, m.keys.Vibration):
		m.vibrationOn = !m.vibrationOn
	case key.Matches(msg, m.keys.AutoHide):
		m.autoHideOn = !m.autoHideOn
		m.controller.Configure(headsup.AutoHideOptions{
			Duration: m.cfg.HeadsUp.AutoHideDuration(),
			Enabled:  m.autoHideOn,
		})
	}
	return m, nil
}

// --- Mouse ---

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.controller.Phase() != headsup.PhaseVisible {
			return m, nil
		}
		if _, r, ok := m.headsUp.Layout(m.width); ok && r.contains(msg.X, msg.Y) {
			m.nudge = nudgeState{}
			m.controller.PointerDown()
			m.drag = dragState{active: true, startX: msg.X, startY: msg.Y}
		}
	case tea.MouseActionMotion:
		if m.drag.active {
			m.controller.PointerMove(
				float64(msg.X-m.drag.startX)*cellUnitsX,
				float64(msg.Y-m.drag.startY)*cellUnitsY,
			)
		}
	case tea.MouseActionRelease:
		if m.drag.active {
			m.controller.PointerUp()
			m.drag = dragState{}
		}
	}
	return m, nil
}
