package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spendy-app/spendy/internal/model"
)

// SetCurrentUser records who is logged in. There is at most one current
// user per database; logging in replaces the previous entry.
func (s *SQLiteStorage) SetCurrentUser(ctx context.Context, user model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(user.ID, "user.ID"); err != nil {
		return err
	}

	query := `
		INSERT INTO current_user (singleton, user_id, nickname)
		VALUES (1, ?, ?)
		ON CONFLICT(singleton) DO UPDATE SET
			user_id = excluded.user_id,
			nickname = excluded.nickname,
			logged_in_at = CURRENT_TIMESTAMP`

	if _, err := s.db.ExecContext(ctx, query, user.ID, user.Nickname); err != nil {
		return fmt.Errorf("failed to set current user: %w", err)
	}
	return nil
}

// GetCurrentUser returns the logged-in user, or nil when nobody is.
func (s *SQLiteStorage) GetCurrentUser(ctx context.Context) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var user model.User
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, nickname FROM current_user WHERE singleton = 1`).
		Scan(&user.ID, &user.Nickname)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return &user, nil
}

// ClearCurrentUser logs the current user out.
func (s *SQLiteStorage) ClearCurrentUser(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM current_user`); err != nil {
		return fmt.Errorf("failed to clear current user: %w", err)
	}
	return nil
}
