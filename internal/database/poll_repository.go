package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AbhiGadhave11/realtime-polling-platform/internal/domain"
)

// pollColumns must match the Scan order in scanPoll.
const pollColumns = `id, title, description, created_at, updated_at`

// PollRepo implements domain.PollRepository backed by PostgreSQL.
type PollRepo struct {
	pool *pgxpool.Pool
}

// NewPollRepo creates a PollRepo from the shared connection pool.
func NewPollRepo(pool *pgxpool.Pool) *PollRepo {
	return &PollRepo{pool: pool}
}

func scanPoll(row pgx.Row) (*domain.Poll, error) {
	var poll domain.Poll
	err := row.Scan(&poll.ID, &poll.Title, &poll.Description, &poll.CreatedAt, &poll.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPollNotFound
	}
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

// Create inserts the poll and its options in a single transaction.
// Option positions follow the order the caller supplied.
func (r *PollRepo) Create(ctx context.Context, title string, description *string, options []string) (*domain.Poll, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	poll, err := scanPoll(tx.QueryRow(ctx, `
		INSERT INTO polls (title, description)
		VALUES ($1, $2)
		RETURNING `+pollColumns+`
	`, title, description))
	if err != nil {
		return nil, fmt.Errorf("failed to insert poll: %w", err)
	}

	for i, text := range options {
		var option domain.Option
		err := tx.QueryRow(ctx, `
			INSERT INTO options (poll_id, text, position)
			VALUES ($1, $2, $3)
			RETURNING id, poll_id, text, position
		`, poll.ID, text, i).Scan(&option.ID, &option.PollID, &option.Text, &option.Position)
		if err != nil {
			return nil, fmt.Errorf("failed to insert option: %w", err)
		}
		poll.Options = append(poll.Options, option)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return poll, nil
}

// GetByID loads a poll with its options in display order.
func (r *PollRepo) GetByID(ctx context.Context, pollID uuid.UUID) (*domain.Poll, error) {
	poll, err := scanPoll(r.pool.QueryRow(ctx,
		`SELECT `+pollColumns+` FROM polls WHERE id = $1`, pollID))
	if err != nil {
		return nil, err
	}

	poll.Options, err = r.loadOptions(ctx, pollID)
	if err != nil {
		return nil, err
	}

	return poll, nil
}

// List returns all polls with their options, newest first.
func (r *PollRepo) List(ctx context.Context) ([]domain.Poll, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+pollColumns+` FROM polls ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var polls []domain.Poll
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var poll domain.Poll
		if err := rows.Scan(&poll.ID, &poll.Title, &poll.Description, &poll.CreatedAt, &poll.UpdatedAt); err != nil {
			return nil, err
		}
		index[poll.ID] = len(polls)
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	optionRows, err := r.pool.Query(ctx,
		`SELECT id, poll_id, text, position FROM options ORDER BY poll_id, position`)
	if err != nil {
		return nil, err
	}
	defer optionRows.Close()

	for optionRows.Next() {
		var option domain.Option
		if err := optionRows.Scan(&option.ID, &option.PollID, &option.Text, &option.Position); err != nil {
			return nil, err
		}
		if i, ok := index[option.PollID]; ok {
			polls[i].Options = append(polls[i].Options, option)
		}
	}
	if err := optionRows.Err(); err != nil {
		return nil, err
	}

	return polls, nil
}

func (r *PollRepo) loadOptions(ctx context.Context, pollID uuid.UUID) ([]domain.Option, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, poll_id, text, position
		FROM options
		WHERE poll_id = $1
		ORDER BY position
	`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []domain.Option
	for rows.Next() {
		var option domain.Option
		if err := rows.Scan(&option.ID, &option.PollID, &option.Text, &option.Position); err != nil {
			return nil, err
		}
		options = append(options, option)
	}
	return options, rows.Err()
}
