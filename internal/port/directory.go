package port

import (
	"context"

	"github.com/strogmv/chatpush/internal/domain"
)

// Directory is the read-only view of the external user store.
type Directory interface {
	// PushAddress resolves a user to their push-delivery address. A missing
	// user or an unset address yields found == false with a nil error;
	// only a failure of the lookup itself returns an error.
	PushAddress(ctx context.Context, userID string) (addr string, found bool, err error)
	// ListAdmins returns every entry currently flagged as administrator.
	// No ordering is guaranteed.
	ListAdmins(ctx context.Context) ([]domain.DirectoryEntry, error)
}
