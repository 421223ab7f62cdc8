// Package nats receives message-creation events from the chat backend.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	natspkg "github.com/nats-io/nats.go"

	"github.com/strogmv/chatpush/internal/domain"
	"github.com/strogmv/chatpush/internal/pkg/logger"
	"github.com/strogmv/chatpush/internal/port"
)

// Subscriber turns NATS deliveries on chats.<userId>.messages.<messageId>
// into fan-out invocations. Each event runs in its own goroutine so that
// concurrent conversations never serialize behind each other.
type Subscriber struct {
	conn   *natspkg.Conn
	fanout port.Fanout
}

func NewSubscriber(conn *natspkg.Conn, fanout port.Fanout) *Subscriber {
	return &Subscriber{conn: conn, fanout: fanout}
}

// Start subscribes to the message-created subject.
func (s *Subscriber) Start(subject string) (*natspkg.Subscription, error) {
	return s.conn.Subscribe(subject, s.handle)
}

func (s *Subscriber) handle(msg *natspkg.Msg) {
	ev, err := ParseEvent(msg.Subject, msg.Data)
	if err != nil {
		// A broken event is dropped, never redelivered: notify is not
		// idempotent on replays.
		logger.From(context.Background()).Error("dropping undecodable message event",
			slog.String("subject", msg.Subject),
			slog.Any("error", err),
		)
		return
	}

	go func() {
		s.fanout.Handle(context.Background(), ev)
	}()
}

// ParseEvent builds a MessageCreated from a delivery subject and payload.
// The subject supplies the conversation owner and message id; the payload
// carries only sender and text.
func ParseEvent(subject string, data []byte) (domain.MessageCreated, error) {
	var ev domain.MessageCreated

	tokens := strings.Split(subject, ".")
	if len(tokens) != 4 || tokens[0] != "chats" || tokens[2] != "messages" {
		return ev, fmt.Errorf("unexpected subject %q", subject)
	}
	if tokens[1] == "" || tokens[3] == "" {
		return ev, fmt.Errorf("empty path token in subject %q", subject)
	}

	var msg domain.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return ev, fmt.Errorf("decode message payload: %w", err)
	}

	msg.ConversationID = tokens[1]
	ev = domain.MessageCreated{
		UserID:    tokens[1],
		MessageID: tokens[3],
		Message:   msg,
	}
	return ev, nil
}
