package repository

import (
	"context"

	"github.com/taskboard/backend/domain"
)

// SessionRepository stores refresh sessions keyed by session ID.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
	Extend(ctx context.Context, id string, ttlSeconds int) error
}
