package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveArtifact stores the latest document of a kind for a session, replacing any previous one.
func (db *DB) SaveArtifact(ctx context.Context, sessionID, userID uuid.UUID, kind, filename, text string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO session_artifacts (session_id, user_id, kind, filename, text)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (session_id, kind) DO UPDATE SET filename = $4, text = $5, updated_at = NOW()`,
		sessionID, userID, kind, filename, text,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", kind, err)
	}
	return nil
}

// GetArtifact retrieves a session artifact. Returns nil, nil when not found.
func (db *DB) GetArtifact(ctx context.Context, sessionID uuid.UUID, kind string) (*Artifact, error) {
	var a Artifact
	err := db.pool.QueryRow(ctx,
		`SELECT session_id, kind, filename, text, updated_at
		 FROM session_artifacts WHERE session_id = $1 AND kind = $2`,
		sessionID, kind,
	).Scan(&a.SessionID, &a.Kind, &a.Filename, &a.Text, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", kind, err)
	}
	return &a, nil
}

// DeleteSessionArtifacts drops every artifact of a session.
func (db *DB) DeleteSessionArtifacts(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM session_artifacts WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session artifacts: %w", err)
	}
	return nil
}

// PurgeArtifacts removes artifacts not updated since before and returns how many were deleted.
func (db *DB) PurgeArtifacts(ctx context.Context, before time.Time) (int64, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM session_artifacts WHERE updated_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to purge artifacts: %w", err)
	}
	return tag.RowsAffected(), nil
}
