// Package postgres implements the append-only notification audit log.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/strogmv/chatpush/internal/domain"
)

type Log struct {
	pool *pgxpool.Pool
}

func NewLog(pool *pgxpool.Pool) *Log {
	return &Log{pool: pool}
}

// Append writes one audit record. created_at is assigned by the database.
func (l *Log) Append(ctx context.Context, rec domain.AuditRecord) error {
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := l.pool.Exec(ctx, `
		INSERT INTO notifications (id, recipient_id, title, body, classification, conversation_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		id,
		rec.RecipientID,
		rec.Title,
		rec.Body,
		rec.Classification,
		rec.ConversationID,
	)
	if err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}

// ListOlderThan returns up to limit records created before cutoff, oldest
// first. Used by the archive exporter only.
func (l *Log) ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]domain.AuditRecord, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, recipient_id, title, body, classification, conversation_id, created_at
		FROM notifications
		WHERE created_at < $1
		ORDER BY created_at ASC
		LIMIT $2
	`, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("query aged audit records: %w", err)
	}
	defer rows.Close()

	var out []domain.AuditRecord
	for rows.Next() {
		var rec domain.AuditRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.RecipientID,
			&rec.Title,
			&rec.Body,
			&rec.Classification,
			&rec.ConversationID,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit rows: %w", err)
	}
	return out, nil
}

// Delete removes archived records by id.
func (l *Log) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := l.pool.Exec(ctx, `DELETE FROM notifications WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("delete archived audit records: %w", err)
	}
	return nil
}
