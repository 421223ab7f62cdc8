package port

import (
	"context"

	"github.com/strogmv/chatpush/internal/domain"
)

// PushSender delivers one notification payload to its target address and
// returns the transport's delivery identifier.
type PushSender interface {
	Send(ctx context.Context, payload domain.NotificationPayload) (deliveryID string, err error)
}
