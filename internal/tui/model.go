// Package tui implements the Bubble Tea TUI for beacon.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/beacon/internal/core/call"
	"github.com/colonyops/beacon/internal/core/config"
	"github.com/colonyops/beacon/internal/core/headsup"
	"github.com/colonyops/beacon/internal/core/logging"
	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/internal/core/push"
	"github.com/colonyops/beacon/internal/core/styles"
)

const clockTickInterval = time.Second

// Deps are the services the TUI drives. All fields are required.
type Deps struct {
	Config    *config.Config
	Store     *notify.Store
	Push      *push.Service
	Platform  *push.LocalPlatform
	Calls     *call.Service
	BuildInfo BuildInfo
}

// Options configures the TUI behavior.
type Options struct {
	Warnings []string         // Startup warnings to display as toasts
	Now      func() time.Time // Clock override, defaults to time.Now
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	cfg       *config.Config
	store     *notify.Store
	push      *push.Service
	platform  *push.LocalPlatform
	calls     *call.Service
	buildInfo BuildInfo
	logger    zerolog.Logger

	// Heads-up presentation
	controller *headsup.Controller
	headsUp    *HeadsUpView
	outcomes   *outcomeQueue
	ticking    bool
	lastTick   time.Time
	drag       dragState
	nudge      nudgeState

	// Delivery and status
	buffer    *NotificationBuffer
	toasts    *ToastController
	toastView *ToastView

	keys KeyMap
	help help.Model

	// Layout
	activeTab tab
	width     int
	height    int
	now       func() time.Time

	// Home
	presetCursor int
	token        string
	permission   push.Permission

	// Feed
	feedCursor int
	detail     *DetailView

	// Profile
	themeName   string
	soundOn     bool
	vibrationOn bool
	autoHideOn  bool

	quitting bool
}

// dragState tracks a mouse drag that started on the banner.
type dragState struct {
	active         bool
	startX, startY int
}

// nudgeState tracks a keyboard-simulated drag.
type nudgeState struct {
	active bool
	dx, dy float64
}

type pushInitMsg struct {
	token      string
	permission push.Permission
	err        error
}

type localSentMsg struct {
	title string
	err   error
}

type relaySentMsg struct {
	title  string
	ticket push.Ticket
	err    error
}

type clockTickMsg time.Time

func scheduleClockTick() tea.Cmd {
	return tea.Tick(clockTickInterval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// New creates a new TUI model. It registers the model's collaborators with
// the store and the local platform, so it should be called once per program.
func New(deps Deps, opts Options) Model {
	cfg := deps.Config
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	outcomes := &outcomeQueue{}

	hcfg := headsup.DefaultConfig()
	hcfg.AutoHide = cfg.HeadsUp.AutoHideDuration()
	hcfg.AutoHideEnabled = cfg.HeadsUp.AutoHideEnabled()
	hcfg.ViewportWidth = cfg.HeadsUp.ViewportWidth

	controller := headsup.NewController(hcfg, outcomes.callbacks(),
		headsup.WithLogger(logging.Component("headsup")))

	deps.Store.OnSurface(func(rec notify.Record) {
		controller.Present(rec)
	})

	buffer := NewNotificationBuffer()
	deps.Platform.OnDeliver(buffer.Push)

	toasts := NewToastController()
	for _, w := range opts.Warnings {
		toasts.Warnf("%s", w)
	}

	h := help.New()
	h.ShortSeparator = " • "
	h.Styles.ShortKey = styles.HelpStyle
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.ShortSeparator = styles.HelpStyle
	h.Styles.FullKey = styles.HelpStyle
	h.Styles.FullDesc = styles.HelpStyle
	h.Styles.FullSeparator = styles.HelpStyle

	return Model{
		cfg:         cfg,
		store:       deps.Store,
		push:        deps.Push,
		platform:    deps.Platform,
		calls:       deps.Calls,
		buildInfo:   deps.BuildInfo,
		logger:      logging.Component("tui"),
		controller:  controller,
		headsUp:     NewHeadsUpView(controller),
		outcomes:    outcomes,
		buffer:      buffer,
		toasts:      toasts,
		toastView:   NewToastView(toasts),
		keys:        DefaultKeyMap(),
		help:        h,
		activeTab:   tabHome,
		now:         now,
		token:       deps.Push.Token(),
		permission:  deps.Push.PermissionState(),
		themeName:   cfg.Theme,
		soundOn:     cfg.Profile.SoundEnabled(),
		vibrationOn: cfg.Profile.VibrationEnabled(),
		autoHideOn:  cfg.HeadsUp.AutoHideEnabled(),
	}
}

// Init starts push registration, the delivery listener and the clock.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.initPush(),
		m.buffer.WaitForSignal(),
		scheduleClockTick(),
	}
	if cmd := m.ensureToastTick(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// initPush returns a command that resolves permission and the device token.
func (m Model) initPush() tea.Cmd {
	svc := m.push
	return func() tea.Msg {
		token, err := svc.Initialize(context.Background())
		return pushInitMsg{token: token, permission: svc.PermissionState(), err: err}
	}
}

// sendLocal returns a command that delivers msg through the local platform.
func (m Model) sendLocal(msg push.Message) tea.Cmd {
	svc := m.push
	return func() tea.Msg {
		return localSentMsg{title: msg.Title, err: svc.SendLocal(context.Background(), msg)}
	}
}

// sendRemote returns a command that posts msg to the relay for this device.
func (m Model) sendRemote(msg push.Message) tea.Cmd {
	svc := m.push
	return func() tea.Msg {
		ticket, err := svc.SendRemote(context.Background(), "", msg)
		return relaySentMsg{title: msg.Title, ticket: ticket, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	// Window
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	// Delivery
	case drainNotificationsMsg:
		return m.handleDrain()
	case pushInitMsg:
		return m.handlePushInit(msg)
	case localSentMsg:
		return m.handleLocalSent(msg)
	case relaySentMsg:
		return m.handleRelaySent(msg)

	// Ticks
	case headsUpTickMsg:
		return m.handleHeadsUpTick(msg)
	case toastTickMsg:
		return m.handleToastTick(msg)
	case clockTickMsg:
		return m, scheduleClockTick()

	// Input
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

// ensureHeadsUpTick starts the animation clock when a session is active and
// the clock is not already running.
func (m *Model) ensureHeadsUpTick() tea.Cmd {
	if m.ticking || !m.controller.Active() {
		return nil
	}
	m.ticking = true
	m.lastTick = m.now()
	return scheduleHeadsUpTick()
}

// ensureToastTick starts the toast countdown when toasts are queued.
func (m Model) ensureToastTick() tea.Cmd {
	if !m.toasts.HasToasts() || m.toasts.Ticking() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}

func (m Model) contentHeight() int {
	return max(m.height-4, 1)
}
