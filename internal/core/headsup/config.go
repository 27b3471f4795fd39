package headsup

import "time"

const (
	DefaultAutoHide      = 5 * time.Second
	DefaultEnterDuration = 600 * time.Millisecond
	DefaultExitDuration  = 250 * time.Millisecond
	DefaultSnapDuration  = 300 * time.Millisecond
	DefaultViewportWidth = 390.0
	DefaultDragThreshold = 10.0
	DefaultSwipeFraction = 0.25
	DefaultFlickDistance = 80.0
	DefaultRestingY      = -200.0
)

// Config holds presentation timings and gesture thresholds.
type Config struct {
	AutoHide        time.Duration
	AutoHideEnabled bool
	EnterDuration   time.Duration
	ExitDuration    time.Duration
	SnapDuration    time.Duration

	ViewportWidth float64 // logical units
	DragThreshold float64 // displacement that turns a press into a drag
	SwipeFraction float64 // fraction of ViewportWidth that commits a horizontal swipe
	FlickDistance float64 // upward displacement that commits a vertical flick
	RestingY      float64 // off-screen position above the dock
}

// DefaultConfig returns the standard heads-up timings.
func DefaultConfig() Config {
	return Config{
		AutoHide:        DefaultAutoHide,
		AutoHideEnabled: true,
		EnterDuration:   DefaultEnterDuration,
		ExitDuration:    DefaultExitDuration,
		SnapDuration:    DefaultSnapDuration,
		ViewportWidth:   DefaultViewportWidth,
		DragThreshold:   DefaultDragThreshold,
		SwipeFraction:   DefaultSwipeFraction,
		FlickDistance:   DefaultFlickDistance,
		RestingY:        DefaultRestingY,
	}
}

// withDefaults fills zero values from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.AutoHide <= 0 {
		c.AutoHide = d.AutoHide
	}
	if c.EnterDuration <= 0 {
		c.EnterDuration = d.EnterDuration
	}
	if c.ExitDuration <= 0 {
		c.ExitDuration = d.ExitDuration
	}
	if c.SnapDuration <= 0 {
		c.SnapDuration = d.SnapDuration
	}
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = d.ViewportWidth
	}
	if c.DragThreshold <= 0 {
		c.DragThreshold = d.DragThreshold
	}
	if c.SwipeFraction <= 0 {
		c.SwipeFraction = d.SwipeFraction
	}
	if c.FlickDistance <= 0 {
		c.FlickDistance = d.FlickDistance
	}
	if c.RestingY >= 0 {
		c.RestingY = d.RestingY
	}
	return c
}

// AutoHideOptions overrides the timeout behaviour of a single presentation.
type AutoHideOptions struct {
	Duration time.Duration
	Enabled  bool
}

// PresentOption customizes one call to Present.
type PresentOption func(*AutoHideOptions)

// WithAutoHide enables auto-hide after d for this presentation.
func WithAutoHide(d time.Duration) PresentOption {
	return func(o *AutoHideOptions) {
		o.Enabled = true
		if d > 0 {
			o.Duration = d
		}
	}
}

// WithoutAutoHide keeps this presentation on screen until acted upon.
func WithoutAutoHide() PresentOption {
	return func(o *AutoHideOptions) { o.Enabled = false }
}
