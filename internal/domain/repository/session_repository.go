package repository

import (
	"context"
	"time"

	"patient-sheets/internal/domain/entity"
)

type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session, ttl time.Duration) error
	// Update rewrites an existing session, keeping its remaining lifetime.
	Update(ctx context.Context, session *entity.Session) error
	// FindByID returns nil, nil when the session does not exist or has expired.
	FindByID(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
