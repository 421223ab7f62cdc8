package port

import (
	"context"

	"github.com/strogmv/chatpush/internal/domain"
)

// Fanout handles one message-creation event end to end. It never returns an
// error: the triggering event has no caller waiting for a response, and an
// error surfaced to the invoking runtime would force a redelivery of the
// whole event. All failures are classified in the returned outcome and
// logged.
type Fanout interface {
	Handle(ctx context.Context, ev domain.MessageCreated) domain.EventOutcome
}
