package port

import (
	"context"
	"time"

	"github.com/strogmv/chatpush/internal/domain"
)

// AuditLog is the durable, append-only notification log. The fan-out core
// only appends; it never reads or mutates existing records.
type AuditLog interface {
	Append(ctx context.Context, rec domain.AuditRecord) error
}

// AuditArchiveSource exposes aged audit rows to the archive exporter.
// Implemented by the same store that backs AuditLog; the core never uses it.
type AuditArchiveSource interface {
	ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]domain.AuditRecord, error)
	Delete(ctx context.Context, ids []string) error
}

// ObjectStore persists opaque archive objects under a key.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte) error
}
