package headsup

import "time"

type taskKind int

const (
	taskEnter    taskKind = iota // entry animation finished
	taskSnap                     // snap-back animation finished
	taskAutoHide                 // auto-hide timeout
	taskExit                     // exit animation finished
)

func (k taskKind) String() string {
	switch k {
	case taskEnter:
		return "enter"
	case taskSnap:
		return "snap"
	case taskAutoHide:
		return "auto-hide"
	case taskExit:
		return "exit"
	default:
		return "unknown"
	}
}

// task is a pending continuation owned by one session.
type task struct {
	session   uint64
	kind      taskKind
	remaining time.Duration
}

// timeline holds scheduled continuations. Time only moves when elapse is
// called, so ordering is deterministic and cancellation is immediate.
type timeline struct {
	tasks []task
}

// schedule replaces any task of the same kind for the session.
func (tl *timeline) schedule(session uint64, kind taskKind, d time.Duration) {
	tl.cancelKind(session, kind)
	if d < 0 {
		d = 0
	}
	tl.tasks = append(tl.tasks, task{session: session, kind: kind, remaining: d})
}

// cancel drops every task of the session and returns how many were dropped.
func (tl *timeline) cancel(session uint64) int {
	kept := tl.tasks[:0]
	for _, t := range tl.tasks {
		if t.session != session {
			kept = append(kept, t)
		}
	}
	n := len(tl.tasks) - len(kept)
	tl.tasks = kept
	return n
}

// cancelKind drops one task and returns its remaining time.
func (tl *timeline) cancelKind(session uint64, kind taskKind) (time.Duration, bool) {
	for i, t := range tl.tasks {
		if t.session == session && t.kind == kind {
			tl.tasks = append(tl.tasks[:i], tl.tasks[i+1:]...)
			return t.remaining, true
		}
	}
	return 0, false
}

func (tl *timeline) remaining(session uint64, kind taskKind) (time.Duration, bool) {
	for _, t := range tl.tasks {
		if t.session == session && t.kind == kind {
			return t.remaining, true
		}
	}
	return 0, false
}

// next returns the time until the earliest task is due.
func (tl *timeline) next() (time.Duration, bool) {
	if len(tl.tasks) == 0 {
		return 0, false
	}
	earliest := tl.tasks[0].remaining
	for _, t := range tl.tasks[1:] {
		if t.remaining < earliest {
			earliest = t.remaining
		}
	}
	return earliest, true
}

func (tl *timeline) elapse(d time.Duration) {
	for i := range tl.tasks {
		tl.tasks[i].remaining -= d
	}
}

// popDue removes and returns the first due task in scheduling order.
func (tl *timeline) popDue() (task, bool) {
	for i, t := range tl.tasks {
		if t.remaining <= 0 {
			tl.tasks = append(tl.tasks[:i], tl.tasks[i+1:]...)
			return t, true
		}
	}
	return task{}, false
}

func (tl *timeline) len() int {
	return len(tl.tasks)
}

func (tl *timeline) clear() {
	tl.tasks = nil
}
