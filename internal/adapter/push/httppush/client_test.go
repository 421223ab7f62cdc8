package httppush

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/strogmv/chatpush/internal/domain"
	"github.com/strogmv/chatpush/internal/pkg/circuitbreaker"
)

func testPayload() domain.NotificationPayload {
	return domain.NotificationPayload{
		Title:          "New Customer Message",
		Body:           "Hi",
		Classification: "chat",
		ConversationID: "u1",
		TargetAddress:  "addr1",
	}
}

func TestSendBuildsGatewayPayload(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/send" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok" {
			t.Errorf("unexpected authorization header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "d-123"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", time.Second)
	id, err := c.Send(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "d-123" {
		t.Fatalf("unexpected delivery id %q", id)
	}

	notification, _ := got["notification"].(map[string]any)
	if notification["title"] != "New Customer Message" || notification["body"] != "Hi" {
		t.Fatalf("unexpected notification block: %+v", got)
	}
	data, _ := got["data"].(map[string]any)
	if data["classification"] != "chat" || data["conversationId"] != "u1" {
		t.Fatalf("unexpected data block: %+v", got)
	}
	if got["target"] != "addr1" {
		t.Fatalf("unexpected target: %+v", got)
	}
}

func TestSendMapsGatewayRejection(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", time.Second)
	_, err := c.Send(context.Background(), testPayload())

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("unexpected status: %+v", te)
	}
}

func TestSendOpensBreakerAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", time.Second)
	for i := 0; i < 5; i++ {
		if _, err := c.Send(context.Background(), testPayload()); err == nil {
			t.Fatalf("expected failure on attempt %d", i)
		}
	}

	_, err := c.Send(context.Background(), testPayload())
	if !errors.Is(err, circuitbreaker.ErrOpen) {
		t.Fatalf("expected breaker to reject the call, got %v", err)
	}
}
