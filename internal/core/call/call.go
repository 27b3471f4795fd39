// Package call simulates the telephony side of the demo: accepting or
// declining incoming calls surfaced by heads-up notifications, an active call
// with in-call toggles, and an in-memory call history.
package call

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/beacon/internal/core/notify"
)

// Direction classifies a history entry.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
	DirectionMissed   Direction = "missed"
)

// ErrNoActiveCall is returned by in-call operations when no call is running.
var ErrNoActiveCall = errors.New("no active call")

// Call is an active call.
type Call struct {
	Peer      string
	Number    string
	Direction Direction
	StartedAt time.Time
	Muted     bool
	Speaker   bool
	Video     bool
}

// Duration returns how long the call has been running at now.
func (c Call) Duration(now time.Time) time.Duration {
	if now.Before(c.StartedAt) {
		return 0
	}
	return now.Sub(c.StartedAt)
}

// Entry is a finished call.
type Entry struct {
	Peer      string
	Number    string
	Direction Direction
	Duration  time.Duration
	At        time.Time
}

// FormatDuration renders d as mm:ss.
func FormatDuration(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Service tracks the active call and call history.
type Service struct {
	mu      sync.Mutex
	active  *Call
	history []Entry
	now     func() time.Time
	logger  zerolog.Logger
}

// NewService creates a call service seeded with history, newest first.
func NewService(logger zerolog.Logger, history ...Entry) *Service {
	return &Service{
		history: append([]Entry(nil), history...),
		now:     time.Now,
		logger:  logger,
	}
}

// peerOf reads caller details from the notification payload, falling back to
// the notification title.
func peerOf(rec notify.Record) (string, string) {
	peer := rec.PayloadString("caller")
	if peer == "" {
		peer = rec.Title
	}
	return peer, rec.PayloadString("number")
}

// Accept starts an incoming call for rec. An already running call is ended
// first.
func (s *Service) Accept(rec notify.Record) Call {
	peer, number := peerOf(rec)
	s.logger.Info().Str("peer", peer).Msg("call accepted")
	return s.start(peer, number, DirectionIncoming)
}

// Decline records rec as a missed call.
func (s *Service) Decline(rec notify.Record) {
	peer, number := peerOf(rec)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]Entry{{
		Peer:      peer,
		Number:    number,
		Direction: DirectionMissed,
		At:        s.now(),
	}}, s.history...)
	s.logger.Info().Str("peer", peer).Msg("call declined")
}

// Dial starts an outgoing call.
func (s *Service) Dial(peer, number string) Call {
	s.logger.Info().Str("peer", peer).Msg("dialing")
	return s.start(peer, number, DirectionOutgoing)
}

func (s *Service) start(peer, number string, dir Direction) Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hangupLocked()
	s.active = &Call{
		Peer:      peer,
		Number:    number,
		Direction: dir,
		StartedAt: s.now(),
	}
	return *s.active
}

// Hangup ends the active call and records it in history.
func (s *Service) Hangup() (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return Entry{}, ErrNoActiveCall
	}
	e := s.hangupLocked()
	s.logger.Info().Str("peer", e.Peer).Dur("duration", e.Duration).Msg("call ended")
	return e, nil
}

func (s *Service) hangupLocked() Entry {
	if s.active == nil {
		return Entry{}
	}
	now := s.now()
	e := Entry{
		Peer:      s.active.Peer,
		Number:    s.active.Number,
		Direction: s.active.Direction,
		Duration:  s.active.Duration(now),
		At:        now,
	}
	s.history = append([]Entry{e}, s.history...)
	s.active = nil
	return e
}

// Active returns the running call.
func (s *Service) Active() (Call, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return Call{}, false
	}
	return *s.active, true
}

// ToggleMute flips the microphone state of the active call.
func (s *Service) ToggleMute() (bool, error) {
	return s.toggle(func(c *Call) *bool { return &c.Muted })
}

// ToggleSpeaker flips the speaker state of the active call.
func (s *Service) ToggleSpeaker() (bool, error) {
	return s.toggle(func(c *Call) *bool { return &c.Speaker })
}

// ToggleVideo flips the camera state of the active call.
func (s *Service) ToggleVideo() (bool, error) {
	return s.toggle(func(c *Call) *bool { return &c.Video })
}

func (s *Service) toggle(field func(*Call) *bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return false, ErrNoActiveCall
	}
	f := field(s.active)
	*f = !*f
	return *f, nil
}

// History returns finished calls, newest first.
func (s *Service) History() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.history))
	copy(out, s.history)
	return out
}
