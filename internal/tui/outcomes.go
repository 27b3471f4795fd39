package tui

import (
	"github.com/colonyops/beacon/internal/core/headsup"
	"github.com/colonyops/beacon/internal/core/notify"
)

// outcome is a finished heads-up session.
type outcome struct {
	action headsup.Action
	record notify.Record
}

// outcomeQueue collects controller callbacks so the Update loop can apply
// them to the model after the controller call returns.
type outcomeQueue struct {
	items []outcome
}

func (q *outcomeQueue) callbacks() headsup.Callbacks {
	return headsup.Callbacks{
		OnAccept:  func(r notify.Record) { q.push(headsup.ActionAccept, r) },
		OnDecline: func(r notify.Record) { q.push(headsup.ActionDecline, r) },
		OnDismiss: func(r notify.Record) { q.push(headsup.ActionDismiss, r) },
	}
}

func (q *outcomeQueue) push(a headsup.Action, r notify.Record) {
	q.items = append(q.items, outcome{action: a, record: r})
}

func (q *outcomeQueue) drain() []outcome {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
