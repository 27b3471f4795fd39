package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name      string
		setupCtx  func() context.Context
		wantKeys  []string
		wantEmpty []string
	}{
		{
			name: "both notification_id and push_token",
			setupCtx: func() context.Context {
				ctx := context.Background()
				ctx = WithNotificationID(ctx, "n-123")
				ctx = WithPushToken(ctx, "tok-456")
				return ctx
			},
			wantKeys: []string{"notification_id", "push_token"},
		},
		{
			name: "only notification_id",
			setupCtx: func() context.Context {
				return WithNotificationID(context.Background(), "n-123")
			},
			wantKeys:  []string{"notification_id"},
			wantEmpty: []string{"push_token"},
		},
		{
			name: "only push_token",
			setupCtx: func() context.Context {
				return WithPushToken(context.Background(), "tok-456")
			},
			wantKeys:  []string{"push_token"},
			wantEmpty: []string{"notification_id"},
		},
		{
			name:      "no context values",
			setupCtx:  context.Background,
			wantEmpty: []string{"notification_id", "push_token"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(tt.setupCtx()).Msg("test")

			var logEntry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

			for _, key := range tt.wantKeys {
				assert.Contains(t, logEntry, key)
			}
			for _, key := range tt.wantEmpty {
				assert.NotContains(t, logEntry, key)
			}
		})
	}
}
