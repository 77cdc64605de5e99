package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// LoadLayout returns the stored blob for the user.
func (s *Store) LoadLayout(ctx context.Context, userID string) ([]byte, bool, error) {
	var layout string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT layout FROM user_layouts WHERE user_id = ?`), userID).Scan(&layout)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlstore: load layout %s: %w", userID, err)
	}
	return []byte(layout), true, nil
}

// SaveLayout upserts the blob for the user.
func (s *Store) SaveLayout(ctx context.Context, userID string, blob []byte) error {
	if userID == "" {
		return fmt.Errorf("sqlstore: save layout: user id is required")
	}
	query := s.rebind(`INSERT INTO user_layouts (user_id, layout, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET layout = excluded.layout, updated_at = excluded.updated_at`)
	if _, err := s.db.ExecContext(ctx, query, userID, string(blob), toMillis(s.now())); err != nil {
		return fmt.Errorf("sqlstore: save layout %s: %w", userID, err)
	}
	return nil
}
