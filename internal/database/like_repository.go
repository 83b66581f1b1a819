package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AbhiGadhave11/realtime-polling-platform/internal/domain"
)

// LikeRepo implements domain.LikeRepository backed by PostgreSQL.
type LikeRepo struct {
	pool *pgxpool.Pool
}

// NewLikeRepo creates a LikeRepo from the shared connection pool.
func NewLikeRepo(pool *pgxpool.Pool) *LikeRepo {
	return &LikeRepo{pool: pool}
}

// Insert appends an unattributed like row for the poll.
func (r *LikeRepo) Insert(ctx context.Context, pollID uuid.UUID) (*domain.Like, error) {
	var like domain.Like
	err := r.pool.QueryRow(ctx, `
		INSERT INTO likes (poll_id)
		VALUES ($1)
		RETURNING id, poll_id, user_id, created_at
	`, pollID).Scan(&like.ID, &like.PollID, &like.UserID, &like.CreatedAt)
	if err != nil {
		return nil, mapForeignKeyError(err)
	}
	return &like, nil
}

// FindUnattributed returns one like row without a user identifier, or
// nil when none exists.
func (r *LikeRepo) FindUnattributed(ctx context.Context, pollID uuid.UUID) (*domain.Like, error) {
	var like domain.Like
	err := r.pool.QueryRow(ctx, `
		SELECT id, poll_id, user_id, created_at
		FROM likes
		WHERE poll_id = $1 AND user_id IS NULL
		ORDER BY created_at
		LIMIT 1
	`, pollID).Scan(&like.ID, &like.PollID, &like.UserID, &like.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// Delete removes the like row by primary key.
func (r *LikeRepo) Delete(ctx context.Context, likeID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM likes WHERE id = $1`, likeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLikeNotFound
	}
	return nil
}

// CountByPoll returns the number of like rows for the poll.
func (r *LikeRepo) CountByPoll(ctx context.Context, pollID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM likes WHERE poll_id = $1`, pollID).Scan(&count)
	return count, err
}
