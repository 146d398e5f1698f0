package server

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/db"
)

// memStore is an in-memory Store for handler tests.
type memStore struct {
	mu           sync.Mutex
	users        map[uuid.UUID]*db.User
	analyses     []db.Analysis
	applications []db.Application
	artifacts    map[string]db.Artifact
	pingErr      error
	clock        time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[uuid.UUID]*db.User),
		artifacts: make(map[string]db.Artifact),
		clock:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so ordering is deterministic.
func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func artifactKey(sessionID uuid.UUID, kind string) string {
	return sessionID.String() + "/" + kind
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }

func (m *memStore) CreateUser(_ context.Context, input db.UserCreateInput) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == input.Email && u.Role == input.Role {
			return nil, db.ErrUserExists
		}
	}
	u := &db.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Role:         input.Role,
		PasswordHash: input.PasswordHash,
		LinkedInURL:  input.LinkedInURL,
		CreatedAt:    m.tick(),
	}
	m.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByEmailAndRole(_ context.Context, email, role string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email && u.Role == role {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) UpdateLinkedInURL(_ context.Context, id uuid.UUID, url *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user not found: %s", id)
	}
	u.LinkedInURL = url
	return nil
}

func (m *memStore) CreateAnalysis(_ context.Context, input db.AnalysisCreateInput, _ *string) (*db.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := db.Analysis{
		ID:            uuid.New(),
		UserID:        input.UserID,
		Score:         input.Score,
		MatchedSkills: db.JoinSkills(input.MatchedSkills),
		MissingSkills: db.JoinSkills(input.MissingSkills),
		CreatedAt:     m.tick(),
	}
	m.analyses = append(m.analyses, a)
	return &a, nil
}

func (m *memStore) ListAnalysesByUser(_ context.Context, userID uuid.UUID) ([]db.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.Analysis
	for _, a := range m.analyses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) CreateApplication(_ context.Context, input db.ApplicationCreateInput) (*db.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	app := db.Application{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Company:   input.Company,
		Role:      input.Role,
		Status:    input.Status,
		JobLink:   input.JobLink,
		Notes:     input.Notes,
		CreatedAt: m.tick(),
	}
	m.applications = append(m.applications, app)
	return &app, nil
}

func (m *memStore) ListApplicationsByUser(_ context.Context, userID uuid.UUID) ([]db.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.Application
	for _, a := range m.applications {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) SaveArtifact(_ context.Context, sessionID, _ uuid.UUID, kind, filename, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifacts[artifactKey(sessionID, kind)] = db.Artifact{
		SessionID: sessionID,
		Kind:      kind,
		Filename:  filename,
		Text:      text,
		UpdatedAt: m.tick(),
	}
	return nil
}

func (m *memStore) GetArtifact(_ context.Context, sessionID uuid.UUID, kind string) (*db.Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.artifacts[artifactKey(sessionID, kind)]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *memStore) DeleteSessionArtifacts(_ context.Context, sessionID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, a := range m.artifacts {
		if a.SessionID == sessionID {
			delete(m.artifacts, key)
		}
	}
	return nil
}

func (m *memStore) artifactCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.artifacts)
}

var _ Store = (*memStore)(nil)
