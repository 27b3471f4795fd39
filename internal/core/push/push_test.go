package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/beacon/internal/core/notify"
)

func TestRelayClient_Send(t *testing.T) {
	var got RelayMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"data":{"status":"ok","id":"ticket-1"}}`))
	}))
	defer srv.Close()

	client := NewRelayClient(srv.URL, WithAccessToken("secret"))
	ticket, err := client.Send(context.Background(), RelayMessage{
		To:    "ExponentPushToken[abc]",
		Title: "Hello",
		Body:  "World",
		Data:  map[string]any{"screen": "feed"},
		Badge: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", ticket.Status)
	assert.Equal(t, "ticket-1", ticket.ID)
	assert.Equal(t, "ExponentPushToken[abc]", got.To)
	assert.Equal(t, "feed", got.Data["screen"])
}

func TestRelayClient_Send_errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
	}{
		{
			name:     "http error with body",
			status:   http.StatusBadRequest,
			body:     `{"errors":[{"code":"VALIDATION_ERROR","message":"\"to\" is required"}]}`,
			wantCode: "VALIDATION_ERROR",
			wantMsg:  `"to" is required`,
		},
		{
			name:    "http error without body",
			status:  http.StatusBadGateway,
			body:    "upstream down",
			wantMsg: "502 Bad Gateway",
		},
		{
			name:     "ticket error",
			status:   http.StatusOK,
			body:     `{"data":{"status":"error","message":"not registered","details":{"error":"DeviceNotRegistered"}}}`,
			wantCode: "DeviceNotRegistered",
			wantMsg:  "not registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewRelayClient(srv.URL).Send(context.Background(), RelayMessage{To: "x"})

			var rerr *RelayError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, tt.status, rerr.StatusCode)
			assert.Equal(t, tt.wantCode, rerr.Code)
			assert.Equal(t, tt.wantMsg, rerr.Message)
		})
	}
}

func TestRelayClient_Send_no_retry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewRelayClient(srv.URL).Send(context.Background(), RelayMessage{To: "x"})

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRelayClient_Send_bad_json(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewRelayClient(srv.URL).Send(context.Background(), RelayMessage{To: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestNewRelayClient_default_url(t *testing.T) {
	assert.Equal(t, DefaultRelayURL, NewRelayClient("").url)
}

type fakeRelay struct {
	sent []RelayMessage
	err  error
}

func (f *fakeRelay) Send(_ context.Context, msg RelayMessage) (Ticket, error) {
	f.sent = append(f.sent, msg)
	if f.err != nil {
		return Ticket{}, f.err
	}
	return Ticket{Status: "ok", ID: "t1"}, nil
}

func TestService_Initialize(t *testing.T) {
	tests := []struct {
		name       string
		initial    Permission
		grantOnAsk bool
		wantErr    error
		wantPerm   Permission
	}{
		{"granted", PermissionGranted, false, nil, PermissionGranted},
		{"undetermined then granted", PermissionUndetermined, true, nil, PermissionGranted},
		{"undetermined then denied", PermissionUndetermined, false, ErrPermissionDenied, PermissionDenied},
		{"denied stays denied", PermissionDenied, true, ErrPermissionDenied, PermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(NewLocalPlatform(tt.initial, tt.grantOnAsk), nil)

			token, err := svc.Initialize(context.Background())

			assert.Equal(t, tt.wantPerm, svc.PermissionState())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				assert.Empty(t, svc.Token())
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(token, "ExponentPushToken["))
			assert.Equal(t, token, svc.Token())
		})
	}
}

func TestService_SendLocal_when_denied(t *testing.T) {
	platform := NewLocalPlatform(PermissionDenied, false)
	var received []Message
	platform.OnDeliver(func(m Message) { received = append(received, m) })
	svc := NewService(platform, nil)

	_, err := svc.Initialize(context.Background())
	require.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, svc.SendLocal(context.Background(), Message{Title: "local", Category: notify.CategoryReminder}))
	require.Len(t, received, 1)
	assert.Equal(t, "local", received[0].Title)
}

func TestService_SendRemote(t *testing.T) {
	relay := &fakeRelay{}
	svc := NewService(NewLocalPlatform(PermissionGranted, false), relay, WithToken("ExponentPushToken[me]"))

	ticket, err := svc.SendRemote(context.Background(), "", Message{
		Title:    "Incoming call",
		Body:     "Ada is calling",
		Category: notify.CategoryCall,
		Data:     map[string]any{"caller": "Ada"},
	})

	require.NoError(t, err)
	assert.Equal(t, "t1", ticket.ID)
	require.Len(t, relay.sent, 1)
	sent := relay.sent[0]
	assert.Equal(t, "ExponentPushToken[me]", sent.To)
	assert.Equal(t, "call", sent.Data["type"])
	assert.Equal(t, "Ada", sent.Data["caller"])
	assert.Equal(t, "call", sent.ChannelID)
}

func TestService_SendRemote_failures(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		svc := NewService(NewLocalPlatform(PermissionDenied, false), &fakeRelay{})
		_, err := svc.SendRemote(context.Background(), "", Message{Title: "x"})
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("relay error surfaces", func(t *testing.T) {
		relayErr := &RelayError{StatusCode: 500, Message: "boom"}
		relay := &fakeRelay{err: relayErr}
		svc := NewService(NewLocalPlatform(PermissionGranted, false), relay)

		_, err := svc.SendRemote(context.Background(), "tok", Message{Title: "x"})

		var rerr *RelayError
		require.ErrorAs(t, err, &rerr)
		assert.Len(t, relay.sent, 1)
	})

	t.Run("no relay", func(t *testing.T) {
		svc := NewService(NewLocalPlatform(PermissionGranted, false), nil)
		_, err := svc.SendRemote(context.Background(), "tok", Message{Title: "x"})
		assert.Error(t, err)
	})
}

func TestService_badge_sink(t *testing.T) {
	platform := NewLocalPlatform(PermissionGranted, false)
	svc := NewService(platform, nil)
	store := notify.NewStore(notify.WithBadgeSink(svc))

	a := store.Add(notify.Draft{Title: "a"})
	store.Add(notify.Draft{Title: "b"})
	assert.Equal(t, 2, platform.Badge())

	store.MarkRead(a.ID)
	assert.Equal(t, 1, platform.Badge())

	require.NoError(t, svc.ClearAll(context.Background()))
	assert.Equal(t, 0, platform.Badge())
}

func TestLocalPlatform_Deliver_without_handler(t *testing.T) {
	p := NewLocalPlatform(PermissionGranted, false)
	err := p.Deliver(context.Background(), Message{Title: "x"})
	assert.Error(t, err)
}

func TestParsePermission(t *testing.T) {
	p, err := ParsePermission("")
	require.NoError(t, err)
	assert.Equal(t, PermissionUndetermined, p)

	p, err = ParsePermission("denied")
	require.NoError(t, err)
	assert.Equal(t, PermissionDenied, p)

	_, err = ParsePermission("maybe")
	assert.Error(t, err)
}

func TestMessage_Draft(t *testing.T) {
	m := Message{Title: "t", Body: "b", Category: notify.CategoryCall, Data: map[string]any{"k": "v"}}
	d := m.Draft()
	assert.Equal(t, notify.Draft{Title: "t", Body: "b", Category: notify.CategoryCall, Payload: map[string]any{"k": "v"}}, d)
}
