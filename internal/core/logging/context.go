package logging

import "context"

type contextKey string

const (
	notificationIDKey contextKey = "notification_id"
	pushTokenKey      contextKey = "push_token"
)

// WithNotificationID adds a notification ID to the context.
func WithNotificationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, notificationIDKey, id)
}

// WithPushToken adds the target push token to the context.
func WithPushToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, pushTokenKey, token)
}

// GetNotificationID retrieves the notification ID from the context.
// Returns empty string if not present.
func GetNotificationID(ctx context.Context) string {
	if id, ok := ctx.Value(notificationIDKey).(string); ok {
		return id
	}
	return ""
}

// GetPushToken retrieves the push token from the context.
// Returns empty string if not present.
func GetPushToken(ctx context.Context) string {
	if token, ok := ctx.Value(pushTokenKey).(string); ok {
		return token
	}
	return ""
}
