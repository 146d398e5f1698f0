package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/db"
)

// Store is the persistence the server needs. *db.DB implements it.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, input db.UserCreateInput) (*db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmailAndRole(ctx context.Context, email, role string) (*db.User, error)
	UpdateLinkedInURL(ctx context.Context, id uuid.UUID, url *string) error

	CreateAnalysis(ctx context.Context, input db.AnalysisCreateInput, archiveKey *string) (*db.Analysis, error)
	ListAnalysesByUser(ctx context.Context, userID uuid.UUID) ([]db.Analysis, error)

	CreateApplication(ctx context.Context, input db.ApplicationCreateInput) (*db.Application, error)
	ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]db.Application, error)

	SaveArtifact(ctx context.Context, sessionID, userID uuid.UUID, kind, filename, text string) error
	GetArtifact(ctx context.Context, sessionID uuid.UUID, kind string) (*db.Artifact, error)
	DeleteSessionArtifacts(ctx context.Context, sessionID uuid.UUID) error
}

// Archiver keeps a copy of uploaded resumes. *storage.Archive implements it.
type Archiver interface {
	Put(ctx context.Context, userID, filename, contentType string, data []byte) (string, error)
}

var _ Store = (*db.DB)(nil)
