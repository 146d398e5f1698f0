package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateApplication records a job application.
func (db *DB) CreateApplication(ctx context.Context, input ApplicationCreateInput) (*Application, error) {
	var a Application
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (id, user_id, company, role, status, job_link, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, user_id, company, role, status, job_link, notes, created_at`,
		uuid.New(), input.UserID, input.Company, input.Role, input.Status, input.JobLink, input.Notes,
	).Scan(&a.ID, &a.UserID, &a.Company, &a.Role, &a.Status, &a.JobLink, &a.Notes, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &a, nil
}

// ListApplicationsByUser returns a user's applications newest first.
func (db *DB) ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, company, role, status, job_link, notes, created_at
		 FROM applications WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	apps, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Application, error) {
		var a Application
		err := row.Scan(&a.ID, &a.UserID, &a.Company, &a.Role, &a.Status, &a.JobLink, &a.Notes, &a.CreatedAt)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan applications: %w", err)
	}
	return apps, nil
}
