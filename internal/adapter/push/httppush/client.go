// Package httppush talks to the push gateway over HTTP.
package httppush

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/strogmv/chatpush/internal/domain"
	"github.com/strogmv/chatpush/internal/pkg/circuitbreaker"
)

// TransportError is a structured push transport failure: an invalid target
// address, an unavailable gateway or a rate limit.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("push gateway error: status=%d body=%s", e.StatusCode, e.Body)
}

type sendRequest struct {
	Notification notification      `json:"notification"`
	Data         map[string]string `json:"data"`
	Target       string            `json:"target"`
}

type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type Client struct {
	baseURL string
	token   string
	client  *http.Client
	breaker *circuitbreaker.Breaker
}

func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
		breaker: circuitbreaker.NewBreaker(5, 30*time.Second, 1),
	}
}

// Send delivers one payload and returns the gateway's delivery identifier.
// There is no retry here; a failed send is terminal for its recipient.
func (c *Client) Send(ctx context.Context, payload domain.NotificationPayload) (string, error) {
	var deliveryID string
	err := c.breaker.Do(func() error {
		id, err := c.send(ctx, payload)
		deliveryID = id
		return err
	})
	return deliveryID, err
}

func (c *Client) send(ctx context.Context, payload domain.NotificationPayload) (string, error) {
	body := sendRequest{
		Notification: notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: map[string]string{
			"classification": payload.Classification,
			"conversationId": payload.ConversationID,
		},
		Target: payload.TargetAddress,
	}

	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal push request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/send",
		bytes.NewReader(b),
	)
	if err != nil {
		return "", fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send push request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TransportError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out sendResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode push response: %w", err)
	}
	return out.ID, nil
}
