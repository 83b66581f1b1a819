package database

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AbhiGadhave11/realtime-polling-platform/internal/domain"
)

const foreignKeyViolation = "23503"

// VoteRepo implements domain.VoteRepository backed by PostgreSQL.
type VoteRepo struct {
	pool *pgxpool.Pool
}

// NewVoteRepo creates a VoteRepo from the shared connection pool.
func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// Insert appends an anonymous vote row. The option must belong to the
// poll; a vote for another poll's option reports option-not-found.
func (r *VoteRepo) Insert(ctx context.Context, pollID, optionID uuid.UUID) (*domain.Vote, error) {
	var vote domain.Vote
	err := r.pool.QueryRow(ctx, `
		INSERT INTO votes (poll_id, option_id)
		SELECT $1, $2
		WHERE EXISTS (SELECT 1 FROM options WHERE id = $2 AND poll_id = $1)
		RETURNING id, poll_id, option_id, user_id, created_at
	`, pollID, optionID).Scan(&vote.ID, &vote.PollID, &vote.OptionID, &vote.UserID, &vote.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOptionNotFound
	}
	if err != nil {
		return nil, mapForeignKeyError(err)
	}

	return &vote, nil
}

// ListByPoll returns all votes for the poll, oldest first.
func (r *VoteRepo) ListByPoll(ctx context.Context, pollID uuid.UUID) ([]domain.Vote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, poll_id, option_id, user_id, created_at
		FROM votes
		WHERE poll_id = $1
		ORDER BY created_at
	`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []domain.Vote
	for rows.Next() {
		var vote domain.Vote
		if err := rows.Scan(&vote.ID, &vote.PollID, &vote.OptionID, &vote.UserID, &vote.CreatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, vote)
	}
	return votes, rows.Err()
}

// mapForeignKeyError translates referential integrity violations into
// domain sentinels so callers never see SQLSTATE codes.
func mapForeignKeyError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		if strings.Contains(pgErr.ConstraintName, "option") {
			return domain.ErrOptionNotFound
		}
		return domain.ErrPollNotFound
	}
	return err
}
