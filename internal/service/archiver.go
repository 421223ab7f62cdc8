package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/strogmv/chatpush/internal/pkg/logger"
	"github.com/strogmv/chatpush/internal/port"
)

// Archiver moves aged audit records out of the hot store into object
// storage as JSON-lines batches. It runs beside the fan-out core and never
// touches records the core could still be appending.
type Archiver struct {
	source    port.AuditArchiveSource
	store     port.ObjectStore
	retention time.Duration
	interval  time.Duration
	batchSize int
}

func NewArchiver(source port.AuditArchiveSource, store port.ObjectStore, retention, interval time.Duration) *Archiver {
	return &Archiver{
		source:    source,
		store:     store,
		retention: retention,
		interval:  interval,
		batchSize: 1000,
	}
}

// Run loops until ctx is cancelled.
func (a *Archiver) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.RunOnce(ctx); err != nil {
				logger.From(ctx).Error("audit archive pass failed", slog.Any("error", err))
			}
		}
	}
}

// RunOnce exports one batch of records older than the retention window and
// deletes them from the source. A batch is deleted only after its object is
// durably stored.
func (a *Archiver) RunOnce(ctx context.Context) error {
	cutoff := time.Now().Add(-a.retention)
	records, err := a.source.ListOlderThan(ctx, cutoff, a.batchSize)
	if err != nil {
		return fmt.Errorf("list aged audit records: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode audit record %s: %w", rec.ID, err)
		}
		ids = append(ids, rec.ID)
	}

	key := fmt.Sprintf("audit/%s/%s.jsonl", cutoff.UTC().Format("2006-01-02"), uuid.NewString())
	if err := a.store.Put(ctx, key, buf.Bytes()); err != nil {
		return fmt.Errorf("store archive object %s: %w", key, err)
	}
	if err := a.source.Delete(ctx, ids); err != nil {
		return fmt.Errorf("delete archived records: %w", err)
	}

	logger.From(ctx).Info("archived audit records",
		slog.String("key", key),
		slog.Int("count", len(ids)),
	)
	return nil
}
