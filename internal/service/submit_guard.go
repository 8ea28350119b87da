package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// =============================================================================
// Errors
// =============================================================================

// ErrSubmitInProgress is returned when the session already has a submit running
var ErrSubmitInProgress = errors.New("a submit is already in progress for this session")

// releaseScript deletes the lock only while it still holds the caller's token,
// so an expired lock taken over by a later submit is never released early.
var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// =============================================================================
// Constants
// =============================================================================

const (
	submitLockKeyPrefix = "submit:lock:"

	// Upper bound for one submit; the lock expires on its own after this
	submitLockTTL = 2 * time.Minute

	// Timeout for the release call, detached from the request context
	releaseTimeout = 5 * time.Second
)

// =============================================================================
// Types
// =============================================================================

// SubmitGuard serializes add and edit submits of one session so a repeated
// request cannot interleave its table writes with the first.
type SubmitGuard interface {
	Acquire(ctx context.Context, sessionID string) (release func(), err error)
}

type redisSubmitGuard struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSubmitGuard(redisClient *redis.Client, log *logrus.Logger) SubmitGuard {
	return &redisSubmitGuard{
		redisClient: redisClient,
		log:         log,
	}
}

// Acquire takes the session's submit lock. The returned release must be called
// once the submit finishes.
func (g *redisSubmitGuard) Acquire(ctx context.Context, sessionID string) (func(), error) {
	key := submitLockKeyPrefix + sessionID
	token := uuid.New().String()

	ok, err := g.redisClient.SetNX(ctx, key, token, submitLockTTL).Result()
	if err != nil {
		g.log.Warnf("Failed to acquire submit lock for session %s: %+v", sessionID, err)
		return nil, err
	}
	if !ok {
		return nil, ErrSubmitInProgress
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()

		if err := releaseScript.Run(ctx, g.redisClient, []string{key}, token).Err(); err != nil {
			g.log.Warnf("Failed to release submit lock for session %s: %+v", sessionID, err)
		}
	}
	return release, nil
}
