package tui

import (
	"fmt"
	"time"
)

const (
	defaultToastTTL   = 4 * time.Second
	defaultMaxToasts  = 4
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 44
)

// toastLevel is the severity of a status toast.
type toastLevel int

const (
	toastInfo toastLevel = iota
	toastWarning
	toastError
)

type toast struct {
	level     toastLevel
	message   string
	remaining time.Duration
}

// ToastController manages the lifecycle of status toasts: relay results,
// permission problems and call outcomes. It handles push, eviction, TTL
// countdown and dismissal.
type ToastController struct {
	toasts  []toast
	ticking bool
}

func NewToastController() *ToastController {
	return &ToastController{}
}

// Push adds a toast to the stack. If the stack exceeds defaultMaxToasts, the
// oldest toast is evicted.
func (c *ToastController) Push(level toastLevel, message string) {
	c.toasts = append(c.toasts, toast{
		level:     level,
		message:   message,
		remaining: defaultToastTTL,
	})
	if len(c.toasts) > defaultMaxToasts {
		c.toasts = c.toasts[len(c.toasts)-defaultMaxToasts:]
	}
}

// Infof pushes an info toast.
func (c *ToastController) Infof(format string, args ...any) {
	c.Push(toastInfo, fmt.Sprintf(format, args...))
}

// Warnf pushes a warning toast.
func (c *ToastController) Warnf(format string, args ...any) {
	c.Push(toastWarning, fmt.Sprintf(format, args...))
}

// Errorf pushes an error toast.
func (c *ToastController) Errorf(format string, args ...any) {
	c.Push(toastError, fmt.Sprintf(format, args...))
}

// Tick decrements the remaining TTL on all toasts by d and removes
// any that have expired.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest (bottom-most) toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

// HasToasts returns true if there are any active toasts.
func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

// Toasts returns the current active toast slice.
func (c *ToastController) Toasts() []toast {
	return c.toasts
}

// Ticking returns whether the tick timer is currently running.
func (c *ToastController) Ticking() bool {
	return c.ticking
}

// SetTicking sets the tick timer state.
func (c *ToastController) SetTicking(v bool) {
	c.ticking = v
}
