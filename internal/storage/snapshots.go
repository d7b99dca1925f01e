package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spendy-app/spendy/internal/model"
)

// ListSnapshots returns every snapshot in the user's namespace, newest
// first. An empty or unknown userID yields an empty slice, never an error.
// A row whose persisted blob cannot be decoded is logged and dropped so a
// corrupted entry can never break history navigation.
func (s *SQLiteStorage) ListSnapshots(ctx context.Context, userID string) ([]model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if userID == "" {
		return []model.Snapshot{}, nil
	}

	query := `
		SELECT id, created_at, persona, analysis, records
		FROM snapshots
		WHERE user_id = ?
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	snapshots := []model.Snapshot{}
	for rows.Next() {
		var (
			snap         model.Snapshot
			createdAt    time.Time
			persona      sql.NullString
			analysisJSON sql.NullString
			recordsJSON  string
		)
		if err := rows.Scan(&snap.ID, &createdAt, &persona, &analysisJSON, &recordsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.CreatedAt = createdAt
		snap.Persona = persona.String

		if analysisJSON.Valid && analysisJSON.String != "" {
			if err := json.Unmarshal([]byte(analysisJSON.String), &snap.Analysis); err != nil {
				slog.Error("dropping snapshot with corrupted analysis blob",
					"user_id", userID, "snapshot_id", snap.ID, "error", err)
				continue
			}
		}
		if err := json.Unmarshal([]byte(recordsJSON), &snap.Records); err != nil {
			slog.Error("dropping snapshot with corrupted records blob",
				"user_id", userID, "snapshot_id", snap.ID, "error", err)
			continue
		}

		snapshots = append(snapshots, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	slog.Debug("retrieved snapshots", "user_id", userID, "count", len(snapshots))
	return snapshots, nil
}

// SaveSnapshot upserts a snapshot by id within the user's namespace:
// saving an existing id replaces its content in place. An empty userID is
// a caller-side logic error and a silent no-op rather than a failure.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, userID string, snapshot model.Snapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if userID == "" {
		slog.Warn("save snapshot called without a user, ignoring", "snapshot_id", snapshot.ID)
		return nil
	}
	if err := validateSnapshot(&snapshot); err != nil {
		return err
	}

	recordsJSON, err := json.Marshal(snapshot.Records)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	var analysisJSON []byte
	if snapshot.Analysis != nil {
		analysisJSON, err = json.Marshal(snapshot.Analysis)
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
	}

	query := `
		INSERT INTO snapshots (user_id, id, created_at, persona, analysis, records)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, id) DO UPDATE SET
			created_at = excluded.created_at,
			persona = excluded.persona,
			analysis = excluded.analysis,
			records = excluded.records`

	_, err = s.db.ExecContext(ctx, query,
		userID, snapshot.ID, snapshot.CreatedAt, snapshot.Persona,
		nullableString(analysisJSON), string(recordsJSON))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	slog.Debug("saved snapshot", "user_id", userID, "snapshot_id", snapshot.ID)
	return nil
}

// DeleteSnapshot removes a snapshot from the user's namespace. Missing ids
// and empty userIDs are no-ops.
func (s *SQLiteStorage) DeleteSnapshot(ctx context.Context, userID, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if userID == "" {
		slog.Warn("delete snapshot called without a user, ignoring", "snapshot_id", id)
		return nil
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		slog.Debug("snapshot not found, nothing deleted", "user_id", userID, "snapshot_id", id)
	}
	return nil
}

func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
