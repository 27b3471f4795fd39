package headsup

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/beacon/internal/core/notify"
)

// session is one presentation of one record.
type session struct {
	id     uint64
	target notify.Record
	phase  Phase

	autoHide     AutoHideOptions
	autoHideLeft time.Duration // paused timer while dragging or settling

	offset Vec    // drag offset while dragging or settled
	anim   *tween // active entry/exit/snap animation
	exit   Action // cause recorded when committing to an exit
}

// Controller runs the heads-up state machine. It is not safe for concurrent
// use: all calls must come from the UI event loop, which also drives Advance.
type Controller struct {
	cfg       Config
	callbacks Callbacks
	logger    zerolog.Logger

	seq     uint64
	sess    session
	tl      timeline
	gesture gesture
	closed  bool
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l zerolog.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// NewController creates a controller in the hidden phase.
func NewController(cfg Config, cb Callbacks, opts ...ControllerOption) *Controller {
	c := &Controller{
		cfg:       cfg.withDefaults(),
		callbacks: cb,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configure replaces the auto-hide defaults used by later presentations.
func (c *Controller) Configure(opts AutoHideOptions) {
	if opts.Duration > 0 {
		c.cfg.AutoHide = opts.Duration
	}
	c.cfg.AutoHideEnabled = opts.Enabled
}

// Config returns the effective configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// SetViewportWidth updates the width used for swipe thresholds and
// horizontal exits.
func (c *Controller) SetViewportWidth(w float64) {
	if w > 0 {
		c.cfg.ViewportWidth = w
	}
}

// Present starts a session for rec. An active session is abandoned without
// firing any of its callbacks and every continuation it scheduled is dropped.
func (c *Controller) Present(rec notify.Record, opts ...PresentOption) {
	if c.closed {
		return
	}

	if c.sess.phase != PhaseHidden {
		dropped := c.tl.cancel(c.sess.id)
		c.logger.Debug().
			Str("superseded", c.sess.target.ID).
			Str("phase", c.sess.phase.String()).
			Int("dropped_tasks", dropped).
			Msg("heads-up superseded")
	}
	c.gesture.reset()

	ah := AutoHideOptions{Duration: c.cfg.AutoHide, Enabled: c.cfg.AutoHideEnabled}
	for _, opt := range opts {
		opt(&ah)
	}

	c.seq++
	c.sess = session{
		id:       c.seq,
		target:   rec,
		phase:    PhaseEntering,
		autoHide: ah,
		anim: &tween{
			from:     Frame{Offset: Vec{Y: c.cfg.RestingY}, Opacity: 0, Scale: 0.9},
			to:       restFrame,
			duration: c.cfg.EnterDuration,
			ease:     easeOutCubic,
		},
	}
	c.tl.schedule(c.sess.id, taskEnter, c.cfg.EnterDuration)

	c.logger.Debug().
		Str("id", rec.ID).
		Str("category", string(rec.Category)).
		Uint64("session", c.sess.id).
		Msg("heads-up presented")
}

// Advance moves time forward by d, completing animations and firing timers in
// order. Continuations scheduled while advancing run within the same call if
// they fall inside d.
func (c *Controller) Advance(d time.Duration) {
	for {
		if t, ok := c.tl.popDue(); ok {
			c.run(t)
			continue
		}
		if d <= 0 {
			return
		}

		step := d
		if next, ok := c.tl.next(); ok && next < step {
			step = next
		}
		c.tl.elapse(step)
		if c.sess.anim != nil {
			c.sess.anim.step(step)
		}
		d -= step
	}
}

func (c *Controller) run(t task) {
	if t.session != c.sess.id || c.sess.phase == PhaseHidden {
		return
	}

	switch t.kind {
	case taskEnter:
		c.sess.phase = PhaseVisible
		c.sess.anim = nil
		c.sess.offset = Vec{}
		if c.autoHideEligible() {
			c.tl.schedule(c.sess.id, taskAutoHide, c.sess.autoHide.Duration)
		}
	case taskSnap:
		c.sess.anim = nil
		c.sess.offset = Vec{}
		if c.sess.autoHideLeft > 0 {
			c.tl.schedule(c.sess.id, taskAutoHide, c.sess.autoHideLeft)
			c.sess.autoHideLeft = 0
		}
	case taskAutoHide:
		if c.sess.phase != PhaseVisible {
			return
		}
		c.logger.Debug().Str("id", c.sess.target.ID).Msg("heads-up auto-hide")
		c.beginExit(ActionDismiss, Frame{Offset: Vec{Y: c.cfg.RestingY}})
	case taskExit:
		c.finish()
	}
}

func (c *Controller) autoHideEligible() bool {
	return c.sess.autoHide.Enabled &&
		c.sess.autoHide.Duration > 0 &&
		c.sess.target.Category != notify.CategoryCall
}

// beginExit cancels every pending continuation of the session and animates
// from the current frame to the target frame.
func (c *Controller) beginExit(cause Action, to Frame) {
	from := c.Frame()
	c.tl.cancel(c.sess.id)
	c.gesture.reset()

	c.sess.phase = PhaseExiting
	c.sess.exit = cause
	c.sess.autoHideLeft = 0
	c.sess.anim = &tween{
		from:     from,
		to:       to,
		duration: c.cfg.ExitDuration,
		ease:     easeInCubic,
	}
	c.tl.schedule(c.sess.id, taskExit, c.cfg.ExitDuration)
}

func (c *Controller) finish() {
	rec := c.sess.target
	cause := c.sess.exit
	c.tl.cancel(c.sess.id)
	c.sess = session{id: c.sess.id}

	c.logger.Debug().Str("id", rec.ID).Str("action", string(cause)).Msg("heads-up closed")
	c.callbacks.fire(cause, rec)
}

// PointerDown starts a gesture. Presses are only tracked while the banner is
// settled in the visible phase.
func (c *Controller) PointerDown() {
	if c.sess.phase != PhaseVisible {
		return
	}
	c.gesture.begin()
}

// PointerMove reports the cumulative pointer displacement since PointerDown.
func (c *Controller) PointerMove(dx, dy float64) {
	if c.sess.phase != PhaseVisible && c.sess.phase != PhaseDragging {
		return
	}

	delta := Vec{X: dx, Y: dy}
	if c.gesture.move(delta, c.cfg.DragThreshold) {
		c.startDrag()
	}
	if c.sess.phase == PhaseDragging {
		c.sess.offset = dragOffset(delta)
	}
}

func (c *Controller) startDrag() {
	if left, ok := c.tl.cancelKind(c.sess.id, taskAutoHide); ok {
		c.sess.autoHideLeft = left
	}
	c.tl.cancelKind(c.sess.id, taskSnap)
	c.sess.anim = nil
	c.sess.phase = PhaseDragging
}

// PointerUp ends the gesture: a drag past the swipe or flick threshold commits
// to a dismissal, anything shorter springs back. A tap does nothing.
func (c *Controller) PointerUp() {
	if c.gesture.state != gestureDragging || c.sess.phase != PhaseDragging {
		c.gesture.reset()
		return
	}
	delta := c.gesture.delta
	c.gesture.reset()

	decision := decideRelease(delta, c.cfg)
	if decision.dismiss {
		c.beginExit(ActionDismiss, Frame{Offset: decision.target, Opacity: 1, Scale: 1})
		return
	}

	c.sess.phase = PhaseVisible
	c.sess.anim = &tween{
		from:     Frame{Offset: c.sess.offset, Opacity: 1, Scale: 1},
		to:       restFrame,
		duration: c.cfg.SnapDuration,
		ease:     springOut,
	}
	c.tl.schedule(c.sess.id, taskSnap, c.cfg.SnapDuration)
}

// PointerCancel abandons the gesture as if released without movement.
func (c *Controller) PointerCancel() {
	if c.gesture.state == gestureDragging && c.sess.phase == PhaseDragging {
		c.gesture.delta = Vec{}
		c.PointerUp()
		return
	}
	c.gesture.reset()
}

// Invoke runs an explicit user action on the current session.
func (c *Controller) Invoke(a Action) error {
	switch c.sess.phase {
	case PhaseHidden:
		return ErrNoSession
	case PhaseExiting:
		return ErrExiting
	}
	if !Offers(c.sess.target.Category, a) {
		return ErrActionUnavailable
	}

	to := Frame{Offset: Vec{Y: c.cfg.RestingY}}
	c.beginExit(a, to)
	return nil
}

// Close cancels the session and all pending continuations without firing any
// callback. The controller ignores later presentations.
func (c *Controller) Close() {
	c.tl.clear()
	c.gesture.reset()
	c.sess = session{id: c.sess.id}
	c.closed = true
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.sess.phase
}

// Active reports whether a session is on screen.
func (c *Controller) Active() bool {
	return c.sess.phase != PhaseHidden
}

// Target returns the presented record.
func (c *Controller) Target() (notify.Record, bool) {
	if c.sess.phase == PhaseHidden {
		return notify.Record{}, false
	}
	return c.sess.target, true
}

// Actions returns the actions available for the presented record.
func (c *Controller) Actions() []Action {
	if c.sess.phase == PhaseHidden || c.sess.phase == PhaseExiting {
		return nil
	}
	return ActionsFor(c.sess.target.Category)
}

// Offset returns the drag offset. It is only meaningful while dragging.
func (c *Controller) Offset() Vec {
	if c.sess.phase != PhaseDragging {
		return Vec{}
	}
	return c.sess.offset
}

// Frame returns the current visual state of the banner.
func (c *Controller) Frame() Frame {
	switch {
	case c.sess.phase == PhaseHidden:
		return hiddenFrame
	case c.sess.anim != nil:
		return c.sess.anim.frame()
	default:
		return Frame{Offset: c.sess.offset, Opacity: 1, Scale: 1}
	}
}

// AutoHideRemaining returns the time left before the banner auto-hides. The
// second value is false when no timer runs, including while dragging.
func (c *Controller) AutoHideRemaining() (time.Duration, bool) {
	if c.sess.phase != PhaseVisible {
		return 0, false
	}
	return c.tl.remaining(c.sess.id, taskAutoHide)
}

// Pending returns the number of scheduled continuations.
func (c *Controller) Pending() int {
	return c.tl.len()
}
