package headsup

import (
	"math"
	"time"
)

// Vec is a 2D displacement in logical units. Negative Y is up.
type Vec struct {
	X, Y float64
}

func (v Vec) lerp(to Vec, t float64) Vec {
	return Vec{X: v.X + (to.X-v.X)*t, Y: v.Y + (to.Y-v.Y)*t}
}

// Frame is the visual state of the banner at a point in time.
type Frame struct {
	Offset  Vec
	Opacity float64
	Scale   float64
}

func (f Frame) lerp(to Frame, t float64) Frame {
	return Frame{
		Offset:  f.Offset.lerp(to.Offset, t),
		Opacity: f.Opacity + (to.Opacity-f.Opacity)*t,
		Scale:   f.Scale + (to.Scale-f.Scale)*t,
	}
}

var (
	restFrame   = Frame{Opacity: 1, Scale: 1}
	hiddenFrame = Frame{}
)

type easing func(float64) float64

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

func easeInCubic(t float64) float64 {
	return t * t * t
}

// springOut is a critically damped spring response, normalized so that it
// lands exactly on 1 at t=1.
func springOut(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return springRaw(t) / springRaw(1)
}

func springRaw(t float64) float64 {
	const omega = 8.0
	return 1 - (1+omega*t)*math.Exp(-omega*t)
}

// tween interpolates between two frames over a fixed duration.
type tween struct {
	from, to Frame
	elapsed  time.Duration
	duration time.Duration
	ease     easing
}

func (tw *tween) step(d time.Duration) {
	tw.elapsed += d
	if tw.elapsed > tw.duration {
		tw.elapsed = tw.duration
	}
}

func (tw *tween) frame() Frame {
	if tw.duration <= 0 {
		return tw.to
	}
	t := float64(tw.elapsed) / float64(tw.duration)
	return tw.from.lerp(tw.to, tw.ease(t))
}
