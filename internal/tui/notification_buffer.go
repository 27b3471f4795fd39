package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/beacon/internal/core/push"
)

// drainNotificationsMsg tells the Update loop that deliveries are waiting.
type drainNotificationsMsg struct{}

// NotificationBuffer buffers platform deliveries and emits coalesced drain signals.
// Push may be called from any goroutine; Drain runs on the Update loop.
type NotificationBuffer struct {
	mu       sync.Mutex
	messages []push.Message
	signal   chan struct{}
}

// NewNotificationBuffer constructs a buffer for async notification delivery.
func NewNotificationBuffer() *NotificationBuffer {
	return &NotificationBuffer{
		messages: make([]push.Message, 0),
		signal:   make(chan struct{}, 1),
	}
}

// Push appends a message and emits a non-blocking drain signal.
func (b *NotificationBuffer) Push(m push.Message) {
	b.mu.Lock()
	b.messages = append(b.messages, m)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns all buffered messages and clears the buffer.
func (b *NotificationBuffer) Drain() []push.Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.messages) == 0 {
		return nil
	}

	out := make([]push.Message, len(b.messages))
	copy(out, b.messages)
	b.messages = b.messages[:0]
	return out
}

// WaitForSignal blocks until there are messages ready to drain.
func (b *NotificationBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return drainNotificationsMsg{}
	}
}
