// Package headsup implements the heads-up banner presentation controller: a
// single-session state machine that animates a notification in, tracks drag
// gestures, auto-hides it and animates it out.
package headsup

import (
	"errors"

	"github.com/colonyops/beacon/internal/core/notify"
)

// Phase is the presentation state of the current session.
type Phase int

const (
	PhaseHidden Phase = iota
	PhaseEntering
	PhaseVisible
	PhaseDragging
	PhaseExiting
)

func (p Phase) String() string {
	switch p {
	case PhaseHidden:
		return "hidden"
	case PhaseEntering:
		return "entering"
	case PhaseVisible:
		return "visible"
	case PhaseDragging:
		return "dragging"
	case PhaseExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// Action is a user action that ends a session.
type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
	ActionDismiss Action = "dismiss"
)

var (
	// ErrNoSession is returned when an action is invoked while nothing is presented.
	ErrNoSession = errors.New("no heads-up session")
	// ErrActionUnavailable is returned when the action is not offered for the
	// presented category.
	ErrActionUnavailable = errors.New("action not available for category")
	// ErrExiting is returned when the session already committed to an exit.
	ErrExiting = errors.New("heads-up session is exiting")
)

// ActionsFor returns the fixed action set for a category. Calls offer accept
// and decline; everything else offers dismiss only.
func ActionsFor(c notify.Category) []Action {
	if c == notify.CategoryCall {
		return []Action{ActionAccept, ActionDecline}
	}
	return []Action{ActionDismiss}
}

// Offers reports whether the category exposes the action.
func Offers(c notify.Category, a Action) bool {
	for _, x := range ActionsFor(c) {
		if x == a {
			return true
		}
	}
	return false
}

// Callbacks receive the outcome of a session. Exactly one fires per session
// unless the session is superseded or the controller is closed.
type Callbacks struct {
	OnAccept  func(notify.Record)
	OnDecline func(notify.Record)
	OnDismiss func(notify.Record)
}

func (cb Callbacks) fire(a Action, rec notify.Record) {
	var fn func(notify.Record)
	switch a {
	case ActionAccept:
		fn = cb.OnAccept
	case ActionDecline:
		fn = cb.OnDecline
	case ActionDismiss:
		fn = cb.OnDismiss
	}
	if fn != nil {
		fn(rec)
	}
}
