// Package push provides the platform push/permission collaborator and the
// HTTP client for the third-party push relay.
package push

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/colonyops/beacon/internal/core/notify"
)

// Permission is the notification permission state reported by the platform.
type Permission string

const (
	PermissionGranted      Permission = "granted"
	PermissionDenied       Permission = "denied"
	PermissionUndetermined Permission = "undetermined"
)

// ParsePermission maps a config string to a Permission.
func ParsePermission(s string) (Permission, error) {
	switch p := Permission(s); p {
	case PermissionGranted, PermissionDenied, PermissionUndetermined:
		return p, nil
	case "":
		return PermissionUndetermined, nil
	default:
		return "", fmt.Errorf("unknown permission %q", s)
	}
}

// ErrPermissionDenied is returned when the user has not granted notification
// permission. Callers degrade to local-only notifications.
var ErrPermissionDenied = errors.New("push notification permission not granted")

// Message is a platform-deliverable notification.
type Message struct {
	Title    string
	Body     string
	Category notify.Category
	Data     map[string]any
}

// Draft converts the message to a store draft.
func (m Message) Draft() notify.Draft {
	return notify.Draft{
		Title:    m.Title,
		Body:     m.Body,
		Category: m.Category,
		Payload:  m.Data,
	}
}

// Platform is the device notification service.
type Platform interface {
	Permission(ctx context.Context) (Permission, error)
	RequestPermission(ctx context.Context) (Permission, error)
	Deliver(ctx context.Context, m Message) error
	SetBadgeCount(ctx context.Context, n int) error
	DismissAll(ctx context.Context) error
}

// DeliverFunc receives messages delivered by a LocalPlatform.
type DeliverFunc func(Message)

// LocalPlatform is an in-process platform. Delivery hands the message to a
// registered handler, typically the TUI inbox buffer.
type LocalPlatform struct {
	mu         sync.Mutex
	permission Permission
	grantOnAsk bool
	badge      int
	handler    DeliverFunc
	delivered  int
}

// NewLocalPlatform creates a platform with the given initial permission. When
// grantOnAsk is set, an undetermined permission becomes granted on request.
func NewLocalPlatform(initial Permission, grantOnAsk bool) *LocalPlatform {
	return &LocalPlatform{permission: initial, grantOnAsk: grantOnAsk}
}

var _ Platform = (*LocalPlatform)(nil)

// OnDeliver sets the delivery handler.
func (p *LocalPlatform) OnDeliver(fn DeliverFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handler = fn
}

func (p *LocalPlatform) Permission(_ context.Context) (Permission, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.permission, nil
}

func (p *LocalPlatform) RequestPermission(_ context.Context) (Permission, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.permission == PermissionUndetermined {
		if p.grantOnAsk {
			p.permission = PermissionGranted
		} else {
			p.permission = PermissionDenied
		}
	}
	return p.permission, nil
}

func (p *LocalPlatform) Deliver(_ context.Context, m Message) error {
	p.mu.Lock()
	handler := p.handler
	p.delivered++
	p.mu.Unlock()

	if handler == nil {
		return errors.New("no delivery handler registered")
	}
	handler(m)
	return nil
}

func (p *LocalPlatform) SetBadgeCount(_ context.Context, n int) error {
	if n < 0 {
		return fmt.Errorf("invalid badge count %d", n)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.badge = n
	return nil
}

func (p *LocalPlatform) DismissAll(_ context.Context) error {
	return nil
}

// Badge returns the last badge count set.
func (p *LocalPlatform) Badge() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.badge
}

// Delivered returns the number of delivered messages.
func (p *LocalPlatform) Delivered() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.delivered
}
