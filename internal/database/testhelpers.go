package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/AbhiGadhave11/realtime-polling-platform/internal/domain"
)

// CreateTestPoll is a helper that creates a poll with the given options for testing.
// Returns the created poll with its option rows populated.
func CreateTestPoll(t *testing.T, pool *pgxpool.Pool, title string, options ...string) *domain.Poll {
	t.Helper()

	repo := NewPollRepo(pool)
	ctx := context.Background()

	poll, err := repo.Create(ctx, title, nil, options)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, poll.ID)
	require.Len(t, poll.Options, len(options))

	return poll
}
