package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/strogmv/chatpush/internal/domain"
	"github.com/strogmv/chatpush/internal/pkg/logger"
	"github.com/strogmv/chatpush/internal/port"
)

// Notification titles, keyed by who wrote the message.
const (
	titleSupportMessage  = "New Support Message"
	titleCustomerMessage = "New Customer Message"
)

// ErrMalformedMessage aborts resolution when sender or text is missing.
// The event becomes a no-op, never an error to the invoking runtime.
var ErrMalformedMessage = errors.New("message is missing sender or text")

// FanoutImpl resolves the recipient set for a message-creation event and
// dispatches one push notification per reachable recipient. It holds no
// per-event state and is safe to invoke concurrently across events.
type FanoutImpl struct {
	directory   port.Directory
	audit       port.AuditLog
	push        port.PushSender
	callTimeout time.Duration
}

func NewFanoutImpl(directory port.Directory, audit port.AuditLog, push port.PushSender, callTimeout time.Duration) *FanoutImpl {
	if callTimeout <= 0 {
		callTimeout = 5 * time.Second
	}
	return &FanoutImpl{
		directory:   directory,
		audit:       audit,
		push:        push,
		callTimeout: callTimeout,
	}
}

// Handle runs one event through Received -> Resolving -> Dispatching ->
// Finalized. Per-recipient failures never fail the event: the overall
// outcome is Completed whenever dispatch was reached.
func (s *FanoutImpl) Handle(ctx context.Context, ev domain.MessageCreated) domain.EventOutcome {
	l := logger.From(ctx).With(
		slog.String("conversation_id", ev.UserID),
		slog.String("message_id", ev.MessageID),
	)

	recipients, title, err := s.resolve(ctx, ev)
	if err != nil {
		if errors.Is(err, ErrMalformedMessage) {
			l.Warn("skipping event",
				slog.String("classification", "malformed_message"),
				slog.Any("error", err),
			)
			eventsTotal.WithLabelValues(string(domain.EventNoOp)).Inc()
			return domain.EventOutcome{Status: domain.EventNoOp}
		}
		l.Error("ending event without dispatch",
			slog.String("classification", "directory_unavailable"),
			slog.Any("error", err),
		)
		eventsTotal.WithLabelValues(string(domain.EventAborted)).Inc()
		return domain.EventOutcome{Status: domain.EventAborted}
	}

	outcomes := make([]domain.RecipientOutcome, len(recipients))
	var wg sync.WaitGroup
	for i, recipientID := range recipients {
		wg.Add(1)
		go func(i int, recipientID string) {
			defer wg.Done()
			outcomes[i] = s.dispatch(ctx, recipientID, title, ev.Message.Text, ev.UserID)
		}(i, recipientID)
	}
	wg.Wait()

	for _, out := range outcomes {
		dispatchesTotal.WithLabelValues(string(out.Status)).Inc()
		switch out.Status {
		case domain.StatusDelivered:
			l.Info("notification delivered",
				slog.String("recipient_id", out.RecipientID),
				slog.String("delivery_id", out.DeliveryID),
			)
		case domain.StatusSkipped:
			l.Info("recipient skipped",
				slog.String("recipient_id", out.RecipientID),
				slog.String("classification", "address_unknown"),
			)
		default:
			l.Error("dispatch failed",
				slog.String("recipient_id", out.RecipientID),
				slog.String("classification", string(out.Status)),
				slog.Any("error", out.Err),
			)
		}
	}

	eventsTotal.WithLabelValues(string(domain.EventCompleted)).Inc()
	return domain.EventOutcome{Status: domain.EventCompleted, Recipients: outcomes}
}

// resolve computes the ordered candidate recipient set and the notification
// title for the event.
func (s *FanoutImpl) resolve(ctx context.Context, ev domain.MessageCreated) ([]string, string, error) {
	msg := ev.Message
	if msg.Sender == "" || msg.Text == "" {
		return nil, "", ErrMalformedMessage
	}

	if msg.Sender == domain.SenderAdmin {
		// Support wrote: notify the customer who owns the conversation.
		return []string{ev.UserID}, titleSupportMessage, nil
	}

	lctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	admins, err := s.directory.ListAdmins(lctx)
	if err != nil {
		return nil, "", fmt.Errorf("list admins: %w", err)
	}

	recipients := make([]string, 0, len(admins))
	for _, admin := range admins {
		// An admin chatting under their own conversation id is the
		// sender; exclusion matches on that id only.
		if admin.ID == ev.UserID {
			continue
		}
		recipients = append(recipients, admin.ID)
	}
	return recipients, titleCustomerMessage, nil
}

// dispatch notifies one recipient. The audit append and the push send are
// independent side effects: both are attempted once the address is known,
// and a failure in one never suppresses the other.
func (s *FanoutImpl) dispatch(ctx context.Context, recipientID, title, body, conversationID string) domain.RecipientOutcome {
	out := domain.RecipientOutcome{RecipientID: recipientID}

	lctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	addr, found, err := s.directory.PushAddress(lctx, recipientID)
	cancel()
	if err != nil {
		out.Status = domain.StatusDeliveryFailed
		out.Err = fmt.Errorf("resolve push address: %w", err)
		return out
	}
	if !found {
		out.Status = domain.StatusSkipped
		return out
	}

	payload := domain.NotificationPayload{
		Title:          title,
		Body:           body,
		Classification: domain.ClassificationChat,
		ConversationID: conversationID,
		TargetAddress:  addr,
	}
	record := domain.AuditRecord{
		RecipientID:    recipientID,
		Title:          title,
		Body:           body,
		Classification: domain.ClassificationChat,
		ConversationID: conversationID,
	}

	var (
		wg       sync.WaitGroup
		auditErr error
		sendErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		actx, acancel := context.WithTimeout(ctx, s.callTimeout)
		defer acancel()
		auditErr = s.audit.Append(actx, record)
	}()
	go func() {
		defer wg.Done()
		pctx, pcancel := context.WithTimeout(ctx, s.callTimeout)
		defer pcancel()
		out.DeliveryID, sendErr = s.push.Send(pctx, payload)
	}()
	wg.Wait()

	switch {
	case auditErr != nil:
		out.Status = domain.StatusAuditFailed
		out.Err = fmt.Errorf("append audit record: %w", auditErr)
		if sendErr != nil {
			out.Err = errors.Join(out.Err, fmt.Errorf("send push: %w", sendErr))
		}
	case sendErr != nil:
		out.Status = domain.StatusDeliveryFailed
		out.Err = fmt.Errorf("send push: %w", sendErr)
	default:
		out.Status = domain.StatusDelivered
	}
	return out
}
