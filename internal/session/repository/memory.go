package repository

import (
	"context"
	"sync"
	"time"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/session/model"
)

type memoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

// NewMemory creates an in-memory session repository.
func NewMemory() Repository {
	return &memoryRepository{sessions: make(map[string]model.Session)}
}

func (r *memoryRepository) Get(_ context.Context, id string) (*model.Session, error) {
	if id == "" {
		return nil, model.ErrInvalidSessionID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return &session, nil
}

func (r *memoryRepository) Save(_ context.Context, session *model.Session) error {
	if session == nil || session.ID == "" {
		return model.ErrInvalidSessionID
	}

	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	r.mu.Lock()
	r.sessions[session.ID] = *session
	r.mu.Unlock()
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	if id == "" {
		return model.ErrInvalidSessionID
	}

	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

func (r *memoryRepository) DeleteStale(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, session := range r.sessions {
		if session.UpdatedAt.Before(before) {
			delete(r.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memoryRepository) Ping(context.Context) error {
	return nil
}
