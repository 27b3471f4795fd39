package push

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/beacon/internal/core/logging"
)

// ErrNoToken is returned by SendRemote when no push token is known.
var ErrNoToken = errors.New("no push token")

// Relay sends a message through the third-party push relay.
type Relay interface {
	Send(ctx context.Context, msg RelayMessage) (Ticket, error)
}

// Service combines the platform and the relay. It is constructed explicitly
// and handed to whatever owns the notification store.
type Service struct {
	platform Platform
	relay    Relay
	logger   zerolog.Logger

	mu         sync.Mutex
	token      string
	permission Permission
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the service logger.
func WithServiceLogger(l zerolog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// WithToken preloads a known push token.
func WithToken(token string) ServiceOption {
	return func(s *Service) { s.token = token }
}

// NewService creates a push service. relay may be nil, in which case
// SendRemote always fails.
func NewService(platform Platform, relay Relay, opts ...ServiceOption) *Service {
	s := &Service{
		platform:   platform,
		relay:      relay,
		logger:     zerolog.Nop(),
		permission: PermissionUndetermined,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize checks permission, asks for it once when undetermined and
// registers a push token. ErrPermissionDenied is not fatal: local delivery
// keeps working.
func (s *Service) Initialize(ctx context.Context) (string, error) {
	perm, err := s.platform.Permission(ctx)
	if err != nil {
		return "", fmt.Errorf("read permission: %w", err)
	}

	if perm != PermissionGranted {
		perm, err = s.platform.RequestPermission(ctx)
		if err != nil {
			return "", fmt.Errorf("request permission: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.permission = perm

	if perm != PermissionGranted {
		s.logger.Warn().Str("permission", string(perm)).Msg("push permission not granted, local notifications only")
		return "", ErrPermissionDenied
	}

	if s.token == "" {
		s.token = fmt.Sprintf("ExponentPushToken[%s]", uuid.NewString())
	}
	s.logger.Info().Str("token", s.token).Msg("push token registered")
	return s.token, nil
}

// Token returns the registered push token, or "".
func (s *Service) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// PermissionState returns the permission observed by the last Initialize.
func (s *Service) PermissionState() Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permission
}

// SendLocal delivers a message on this device immediately.
func (s *Service) SendLocal(ctx context.Context, m Message) error {
	if err := s.platform.Deliver(ctx, m); err != nil {
		return fmt.Errorf("deliver local notification: %w", err)
	}
	return nil
}

// SendRemote posts the message through the relay to token. An empty token
// targets this device's own token. Failures are returned as-is; there is no
// retry.
func (s *Service) SendRemote(ctx context.Context, token string, m Message) (Ticket, error) {
	if token == "" {
		token = s.Token()
	}
	if token == "" {
		return Ticket{}, ErrNoToken
	}
	if s.relay == nil {
		return Ticket{}, errors.New("no push relay configured")
	}

	ctx = logging.WithPushToken(ctx, token)

	data := make(map[string]any, len(m.Data)+1)
	for k, v := range m.Data {
		data[k] = v
	}
	data["type"] = string(m.Category)

	ticket, err := s.relay.Send(ctx, RelayMessage{
		To:        token,
		Sound:     "default",
		Title:     m.Title,
		Body:      m.Body,
		Data:      data,
		Badge:     1,
		ChannelID: string(m.Category),
	})
	if err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Str("title", m.Title).Msg("failed to send push notification")
		return ticket, err
	}

	s.logger.Debug().Ctx(ctx).Str("ticket", ticket.ID).Msg("push notification accepted by relay")
	return ticket, nil
}

// SetBadgeCount forwards the unread count to the platform badge.
func (s *Service) SetBadgeCount(ctx context.Context, n int) error {
	return s.platform.SetBadgeCount(ctx, n)
}

// ClearAll dismisses delivered notifications and resets the badge.
func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.platform.DismissAll(ctx); err != nil {
		return fmt.Errorf("dismiss notifications: %w", err)
	}
	return s.platform.SetBadgeCount(ctx, 0)
}
