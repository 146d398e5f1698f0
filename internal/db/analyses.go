package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateAnalysis appends one analysis record. archiveKey may be nil.
func (db *DB) CreateAnalysis(ctx context.Context, input AnalysisCreateInput, archiveKey *string) (*Analysis, error) {
	var a Analysis
	err := db.pool.QueryRow(ctx,
		`INSERT INTO analyses (id, user_id, score, matched_skills, missing_skills, archive_key)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, score, matched_skills, missing_skills, created_at`,
		uuid.New(), input.UserID, input.Score,
		JoinSkills(input.MatchedSkills), JoinSkills(input.MissingSkills), archiveKey,
	).Scan(&a.ID, &a.UserID, &a.Score, &a.MatchedSkills, &a.MissingSkills, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis: %w", err)
	}
	return &a, nil
}

// ListAnalysesByUser returns a user's analyses oldest first.
func (db *DB) ListAnalysesByUser(ctx context.Context, userID uuid.UUID) ([]Analysis, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, score, matched_skills, missing_skills, created_at
		 FROM analyses WHERE user_id = $1
		 ORDER BY created_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	analyses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Analysis, error) {
		var a Analysis
		err := row.Scan(&a.ID, &a.UserID, &a.Score, &a.MatchedSkills, &a.MissingSkills, &a.CreatedAt)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan analyses: %w", err)
	}
	return analyses, nil
}
