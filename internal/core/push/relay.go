package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultRelayURL is the Expo push API endpoint.
const DefaultRelayURL = "https://exp.host/--/api/v2/push/send"

// RelayMessage is the JSON body posted to the relay.
type RelayMessage struct {
	To        string         `json:"to"`
	Sound     string         `json:"sound,omitempty"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data,omitempty"`
	Badge     int            `json:"badge,omitempty"`
	ChannelID string         `json:"channelId,omitempty"`
}

// Ticket is the relay's acknowledgement for one message.
type Ticket struct {
	Status  string         `json:"status"`
	ID      string         `json:"id,omitempty"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type relayResponse struct {
	Data   Ticket `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// RelayError is returned when the relay rejects a message.
type RelayError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *RelayError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("relay error (%d) %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("relay error (%d): %s", e.StatusCode, e.Message)
}

// RelayClient posts messages to the push relay. It performs exactly one
// request per Send.
type RelayClient struct {
	url         string
	accessToken string
	client      *http.Client
}

// RelayOption configures a RelayClient.
type RelayOption func(*RelayClient)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) RelayOption {
	return func(r *RelayClient) { r.client = c }
}

// WithAccessToken sets a bearer token for relays that require one.
func WithAccessToken(token string) RelayOption {
	return func(r *RelayClient) { r.accessToken = token }
}

// NewRelayClient creates a relay client for url.
func NewRelayClient(url string, opts ...RelayOption) *RelayClient {
	if url == "" {
		url = DefaultRelayURL
	}
	r := &RelayClient{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Send posts one message and returns the relay ticket.
func (r *RelayClient) Send(ctx context.Context, msg RelayMessage) (Ticket, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return Ticket{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return Ticket{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if r.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.accessToken)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Ticket{}, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Ticket{}, fmt.Errorf("read response: %w", err)
	}

	var parsed relayResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := &RelayError{StatusCode: resp.StatusCode, Message: resp.Status}
		if decodeErr == nil && len(parsed.Errors) > 0 {
			rerr.Code = parsed.Errors[0].Code
			rerr.Message = parsed.Errors[0].Message
		}
		return Ticket{}, rerr
	}
	if decodeErr != nil {
		return Ticket{}, fmt.Errorf("decode response: %w", decodeErr)
	}

	if parsed.Data.Status == "error" {
		code, _ := parsed.Data.Details["error"].(string)
		return parsed.Data, &RelayError{
			StatusCode: resp.StatusCode,
			Code:       code,
			Message:    parsed.Data.Message,
		}
	}

	return parsed.Data, nil
}
