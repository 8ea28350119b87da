package repository

import (
	"context"
	"testing"
	"time"

	"patient-sheets/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestSessionRepository_SaveAndFind(t *testing.T) {
	client, mr := newTestRedis(t)
	repo := NewSessionRepository(client)
	ctx := context.Background()

	session := &entity.Session{
		ID:            "abc",
		AccessToken:   "ya29.token",
		SpreadsheetID: "sheet-1",
		Draft:         entity.PatientRecord{PatientID: "PT1", FirstName: "Ana"},
		CreatedAt:     time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Save(ctx, session, time.Hour))
	assert.Equal(t, time.Hour, mr.TTL(sessionKeyPrefix+"abc"))

	got, err := repo.FindByID(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ya29.token", got.AccessToken)
	assert.Equal(t, "sheet-1", got.SpreadsheetID)
	assert.Equal(t, "Ana", got.Draft.FirstName)
	assert.True(t, session.CreatedAt.Equal(got.CreatedAt))
}

func TestSessionRepository_UpdateKeepsTTL(t *testing.T) {
	client, mr := newTestRedis(t)
	repo := NewSessionRepository(client)
	ctx := context.Background()

	session := &entity.Session{ID: "abc", AccessToken: "t"}
	require.NoError(t, repo.Save(ctx, session, time.Hour))
	mr.FastForward(10 * time.Minute)

	session.SpreadsheetID = "sheet-2"
	require.NoError(t, repo.Update(ctx, session))

	assert.Equal(t, 50*time.Minute, mr.TTL(sessionKeyPrefix+"abc"))
	got, err := repo.FindByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "sheet-2", got.SpreadsheetID)
}

func TestSessionRepository_Missing(t *testing.T) {
	client, mr := newTestRedis(t)
	repo := NewSessionRepository(client)
	ctx := context.Background()

	got, err := repo.FindByID(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Save(ctx, &entity.Session{ID: "abc"}, time.Minute))
	mr.FastForward(2 * time.Minute)
	got, err = repo.FindByID(ctx, "abc")
	assert.NoError(t, err)
	assert.Nil(t, got, "expired sessions read as missing")
}

func TestSessionRepository_Delete(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewSessionRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &entity.Session{ID: "abc"}, time.Hour))
	require.NoError(t, repo.Delete(ctx, "abc"))

	got, err := repo.FindByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}
