// Package postgres implements the user directory over a pgx pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/strogmv/chatpush/internal/domain"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// PushAddress resolves a user to their push address. A missing row or a
// NULL/empty address is a soft miss, not an error.
func (s *Store) PushAddress(ctx context.Context, userID string) (string, bool, error) {
	var addr *string
	err := s.pool.QueryRow(ctx,
		`SELECT push_address FROM users WHERE id = $1`,
		userID,
	).Scan(&addr)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query push address: %w", err)
	}
	if addr == nil || *addr == "" {
		return "", false, nil
	}
	return *addr, true, nil
}

// ListAdmins returns every directory entry flagged as administrator.
// The id ordering carries no meaning; it only keeps fixed snapshots stable.
func (s *Store) ListAdmins(ctx context.Context) ([]domain.DirectoryEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, push_address FROM users WHERE is_admin ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query admins: %w", err)
	}
	defer rows.Close()

	var out []domain.DirectoryEntry
	for rows.Next() {
		var (
			entry domain.DirectoryEntry
			addr  *string
		)
		if err := rows.Scan(&entry.ID, &addr); err != nil {
			return nil, fmt.Errorf("scan admin row: %w", err)
		}
		entry.IsAdmin = true
		if addr != nil {
			entry.PushAddress = *addr
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate admin rows: %w", err)
	}
	return out, nil
}
