package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"patient-sheets/internal/domain/entity"
	domainRepo "patient-sheets/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

type sessionRepository struct {
	redisClient *redis.Client
}

func NewSessionRepository(redisClient *redis.Client) domainRepo.SessionRepository {
	return &sessionRepository{redisClient: redisClient}
}

func (r *sessionRepository) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.redisClient.Set(ctx, sessionKeyPrefix+session.ID, data, ttl).Err()
}

func (r *sessionRepository) Update(ctx context.Context, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.redisClient.Set(ctx, sessionKeyPrefix+session.ID, data, redis.KeepTTL).Err()
}

func (r *sessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.redisClient.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.redisClient.Del(ctx, sessionKeyPrefix+id).Err()
}
