package headsup

import "math"

type gestureState int

const (
	gestureIdle gestureState = iota
	gestureTracking
	gestureDragging
)

// gesture accumulates pointer displacement for one press. It only becomes a
// drag once the displacement leaves the tap threshold on either axis.
type gesture struct {
	state gestureState
	delta Vec
}

func (g *gesture) begin() {
	g.state = gestureTracking
	g.delta = Vec{}
}

// move records the cumulative displacement and reports whether this move
// turned the press into a drag.
func (g *gesture) move(delta Vec, threshold float64) bool {
	if g.state == gestureIdle {
		return false
	}
	g.delta = delta
	if g.state == gestureTracking &&
		(math.Abs(delta.X) > threshold || math.Abs(delta.Y) > threshold) {
		g.state = gestureDragging
		return true
	}
	return false
}

func (g *gesture) reset() {
	g.state = gestureIdle
	g.delta = Vec{}
}

// dragOffset maps raw displacement to banner offset: horizontal follows the
// pointer, vertical only follows upward movement.
func dragOffset(delta Vec) Vec {
	return Vec{X: delta.X, Y: math.Min(delta.Y, 0)}
}

// releaseDecision is the outcome of lifting the pointer after a drag.
type releaseDecision struct {
	dismiss  bool
	vertical bool
	target   Vec
}

func decideRelease(delta Vec, cfg Config) releaseDecision {
	flick := delta.Y < -cfg.FlickDistance
	swipe := math.Abs(delta.X) > cfg.ViewportWidth*cfg.SwipeFraction

	switch {
	case flick:
		return releaseDecision{
			dismiss:  true,
			vertical: true,
			target:   Vec{X: delta.X, Y: cfg.RestingY},
		}
	case swipe:
		x := cfg.ViewportWidth
		if delta.X < 0 {
			x = -x
		}
		return releaseDecision{
			dismiss: true,
			target:  Vec{X: x, Y: math.Min(delta.Y, 0)},
		}
	default:
		return releaseDecision{}
	}
}
