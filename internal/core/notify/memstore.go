package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SurfaceFunc is invoked when a record becomes the current heads-up target.
type SurfaceFunc func(Record)

// Store is the in-memory notification collection. Records are kept
// most-recent-first. All methods are safe for concurrent use; subscribers run
// on the caller's goroutine after the lock is released.
//
// Badge updates are serialized by badgeMu, which is taken before mu and held
// through the sink call, so the sink sees counts in mutation order.
type Store struct {
	mu      sync.RWMutex
	badgeMu sync.Mutex
	records []Record
	current *Record
	badge   BadgeSink
	surface []SurfaceFunc
	now     func() time.Time
	logger  zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithBadgeSink sets the collaborator that receives unread counts.
func WithBadgeSink(b BadgeSink) Option {
	return func(s *Store) { s.badge = b }
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for best-effort side effects.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnSurface registers a callback invoked every time Add designates a new
// current heads-up target.
func (s *Store) OnSurface(fn SurfaceFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface = append(s.surface, fn)
}

// Add creates a record from the draft, prepends it and makes it the current
// heads-up target.
func (s *Store) Add(d Draft) Record {
	rec := Record{
		ID:        newID(),
		Title:     d.Title,
		Body:      d.Body,
		Category:  ParseCategory(string(d.Category)),
		CreatedAt: s.now(),
		Payload:   d.Payload,
	}

	var subs []SurfaceFunc
	s.mutate(func() bool {
		s.records = append([]Record{rec}, s.records...)
		cur := rec
		s.current = &cur
		subs = make([]SurfaceFunc, len(s.surface))
		copy(subs, s.surface)
		return true
	})

	for _, fn := range subs {
		fn(rec)
	}

	return rec
}

// MarkRead flags the record as read. Unknown ids are ignored: the record may
// have been removed concurrently.
func (s *Store) MarkRead(id string) {
	s.mutate(func() bool {
		changed := false
		for i := range s.records {
			if s.records[i].ID == id {
				if !s.records[i].Read {
					s.records[i].Read = true
					changed = true
				}
				break
			}
		}
		if changed && s.current != nil && s.current.ID == id {
			s.current.Read = true
		}
		return changed
	})
}

// Remove deletes the record. Unknown ids are ignored.
func (s *Store) Remove(id string) {
	s.mutate(func() bool {
		idx := -1
		for i := range s.records {
			if s.records[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false
		}

		wasUnread := !s.records[idx].Read
		s.records = append(s.records[:idx:idx], s.records[idx+1:]...)
		if s.current != nil && s.current.ID == id {
			s.current = nil
		}
		return wasUnread
	})
}

// ClearAll removes every record and the current target.
func (s *Store) ClearAll() {
	s.mutate(func() bool {
		s.records = nil
		s.current = nil
		return true
	})
}

// UnreadCount returns the number of records not yet read.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unreadLocked()
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// List returns a snapshot of all records, newest first.
func (s *Store) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Current returns the record most recently designated as heads-up target.
func (s *Store) Current() (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Record{}, false
	}
	return *s.current, true
}

// ClearCurrent releases the heads-up slot without touching the collection.
func (s *Store) ClearCurrent() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

func (s *Store) unreadLocked() int {
	n := 0
	for _, r := range s.records {
		if !r.Read {
			n++
		}
	}
	return n
}

// mutate applies fn under the write lock. When fn reports that the unread
// count may have changed, the post-mutation count is sent to the badge sink
// before the next mutation can start.
func (s *Store) mutate(fn func() bool) {
	s.badgeMu.Lock()
	defer s.badgeMu.Unlock()

	s.mu.Lock()
	changed := fn()
	unread := s.unreadLocked()
	badge := s.badge
	s.mu.Unlock()

	if !changed || badge == nil {
		return
	}
	if err := badge.SetBadgeCount(context.Background(), unread); err != nil {
		s.logger.Warn().Err(err).Int("count", unread).Msg("failed to update badge count")
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
