// Package repository provides the persisted session store.
//
// It replaces browser local storage: one row per session cookie, last write
// wins. Two implementations exist, a gorm-backed one for production and an
// in-memory one for tests and single-instance deployments.
package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/database/database"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/session/model"
)

// Repository defines the interface for session persistence.
type Repository interface {
	// Get returns the session with the given id or model.ErrSessionNotFound.
	Get(ctx context.Context, id string) (*model.Session, error)

	// Save inserts or replaces the session.
	Save(ctx context.Context, session *model.Session) error

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteStale removes sessions not updated since before.
	DeleteStale(ctx context.Context, before time.Time) (int64, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new gorm-backed session repository.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Get returns the session with the given id.
func (r *repository) Get(ctx context.Context, id string) (*model.Session, error) {
	if id == "" {
		return nil, model.ErrInvalidSessionID
	}

	var session model.Session
	err := r.db.WithContext(ctx).
		Where("session_id = ?", id).
		First(&session).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrSessionNotFound
		}
		r.logger.Errorw("Get session database error", "session_id", id, "error", err)
		return nil, err
	}

	return &session, nil
}

// Save inserts or replaces the session.
func (r *repository) Save(ctx context.Context, session *model.Session) error {
	if session == nil || session.ID == "" {
		return model.ErrInvalidSessionID
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			UpdateAll: true,
		}).
		Create(session).Error

	if err != nil {
		r.logger.Errorw("Save session database error", "session_id", session.ID, "error", err)
		return err
	}

	r.logger.Debugw("Save session completed", "session_id", session.ID, "authenticated", session.Authenticated())
	return nil
}

// Delete removes the session.
func (r *repository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return model.ErrInvalidSessionID
	}

	err := r.db.WithContext(ctx).
		Where("session_id = ?", id).
		Delete(&model.Session{}).Error

	if err != nil {
		r.logger.Errorw("Delete session database error", "session_id", id, "error", err)
		return err
	}

	return nil
}

// DeleteStale removes sessions not updated since before.
func (r *repository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("updated_at < ?", before).
		Delete(&model.Session{})

	if result.Error != nil {
		r.logger.Errorw("DeleteStale database error", "before", before, "error", result.Error)
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		r.logger.Infow("DeleteStale completed", "deleted", result.RowsAffected)
	}
	return result.RowsAffected, nil
}

// Ping checks database connectivity.
func (r *repository) Ping(ctx context.Context) error {
	return database.HealthCheck(ctx, r.db)
}
