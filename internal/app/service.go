package app

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/AbhiGadhave11/realtime-polling-platform/internal/domain"
	apperrors "github.com/AbhiGadhave11/realtime-polling-platform/internal/errors"
	"github.com/AbhiGadhave11/realtime-polling-platform/internal/metrics"
	"github.com/AbhiGadhave11/realtime-polling-platform/internal/stats"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 1000
	minOptions           = 2
	maxOptions           = 10
	maxOptionLength      = 100
)

// Service implements domain.PollService. Every mutation follows the same
// two-phase contract: commit (durable write + fresh aggregate reload),
// then notify (best-effort broadcast). Notify failures never change the
// reported outcome of the commit.
type Service struct {
	polls     domain.PollRepository
	votes     domain.VoteRepository
	likes     domain.LikeRepository
	publisher domain.EventPublisher
	clock     clockwork.Clock
}

func NewService(polls domain.PollRepository, votes domain.VoteRepository, likes domain.LikeRepository, publisher domain.EventPublisher, clock clockwork.Clock) *Service {
	return &Service{
		polls:     polls,
		votes:     votes,
		likes:     likes,
		publisher: publisher,
		clock:     clock,
	}
}

func (s *Service) observe(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.MutationsTotal.WithLabelValues(operation, status).Inc()
	metrics.MutationDuration.WithLabelValues(operation).Observe(s.clock.Since(start).Seconds())
}

func validateCreatePoll(req domain.CreatePollRequest) error {
	if utf8.RuneCountInString(req.Title) < 1 {
		return apperrors.ValidationError("title must not be empty").WithField("field", "title")
	}
	if utf8.RuneCountInString(req.Title) > maxTitleLength {
		return apperrors.ValidationError("title exceeds 200 characters").WithField("field", "title")
	}
	if utf8.RuneCountInString(req.Description) > maxDescriptionLength {
		return apperrors.ValidationError("description exceeds 1000 characters").WithField("field", "description")
	}
	if len(req.Options) < minOptions || len(req.Options) > maxOptions {
		return apperrors.ValidationError("polls need between 2 and 10 options").WithField("field", "options")
	}
	for i, option := range req.Options {
		if utf8.RuneCountInString(option) < 1 {
			return apperrors.ValidationError("option text must not be empty").WithField("field", "options").WithField("index", i)
		}
		if utf8.RuneCountInString(option) > maxOptionLength {
			return apperrors.ValidationError("option text exceeds 100 characters").WithField("field", "options").WithField("index", i)
		}
	}
	return nil
}

// CreatePoll persists a poll with its options in one transaction and
// broadcasts a new_poll event carrying the complete zero-count snapshot.
func (s *Service) CreatePoll(ctx context.Context, req domain.CreatePollRequest) (snapshot *domain.PollSnapshot, err error) {
	start := s.clock.Now()
	defer func() { s.observe("create_poll", start, err) }()

	if err = validateCreatePoll(req); err != nil {
		return nil, err
	}

	var description *string
	if req.Description != "" {
		description = &req.Description
	}

	poll, err := s.polls.Create(ctx, req.Title, description, req.Options)
	if err != nil {
		return nil, err
	}

	snapshot = emptySnapshot(poll)
	s.publisher.Publish(domain.NewPollCreatedEvent(*snapshot))
	return snapshot, nil
}

// CastVote appends a vote unconditionally — any voter identifier is
// accepted and never deduplicated. The fresh tallies go back to the
// voter synchronously and out to all subscribers via broadcast.
func (s *Service) CastVote(ctx context.Context, pollID, optionID uuid.UUID, userID string) (receipt *domain.VoteReceipt, err error) {
	start := s.clock.Now()
	defer func() { s.observe("vote", start, err) }()

	poll, err := s.polls.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	vote, err := s.votes.Insert(ctx, pollID, optionID)
	if err != nil {
		return nil, err
	}

	votes, err := s.votes.ListByPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	optionStats := stats.OptionStats(poll.Options, votes)
	totalVotes := stats.TotalVotes(votes)

	s.publisher.Publish(domain.NewVoteEvent(pollID, optionStats, totalVotes))

	// The stored row is anonymous; the identifier is echoed back (or
	// generated) purely for the client's local duplicate tracking.
	if userID == "" {
		userID = uuid.NewString()
	}
	echoed := *vote
	echoed.UserID = &userID

	return &domain.VoteReceipt{Vote: echoed, Options: optionStats, TotalVotes: totalVotes}, nil
}

// ToggleLike flips the poll between liked and not liked. The anonymous
// model keys on "does an unattributed like row exist", not on the caller:
// an existing row is removed whenever the caller supplied any identifier.
// Two different visitors can therefore toggle each other's like — kept
// as-is to match the established client behavior.
func (s *Service) ToggleLike(ctx context.Context, pollID uuid.UUID, userID string) (receipt *domain.LikeReceipt, err error) {
	start := s.clock.Now()
	defer func() { s.observe("like", start, err) }()

	existing, err := s.likes.FindUnattributed(ctx, pollID)
	if err != nil {
		return nil, err
	}

	liked := true
	if existing != nil && userID != "" {
		if err = s.likes.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		liked = false
	} else {
		if _, err = s.likes.Insert(ctx, pollID); err != nil {
			return nil, err
		}
	}

	// Poll existence is confirmed only after the write. The row may
	// already be persisted when this reports not-found; callers see a
	// 404 either way.
	if _, err = s.polls.GetByID(ctx, pollID); err != nil {
		return nil, err
	}

	totalLikes, err := s.likes.CountByPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(domain.NewLikeEvent(pollID, totalLikes, liked))

	return &domain.LikeReceipt{Liked: liked, TotalLikes: totalLikes}, nil
}

// GetPoll returns a snapshot with fully derived stats. Subscribers use
// this to catch up on connect; broadcasts are never replayed.
func (s *Service) GetPoll(ctx context.Context, pollID uuid.UUID) (*domain.PollSnapshot, error) {
	poll, err := s.polls.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(ctx, poll)
}

// ListPolls returns snapshots for all polls, newest first.
func (s *Service) ListPolls(ctx context.Context) ([]domain.PollSnapshot, error) {
	polls, err := s.polls.List(ctx)
	if err != nil {
		return nil, err
	}

	snapshots := make([]domain.PollSnapshot, 0, len(polls))
	for i := range polls {
		snapshot, err := s.snapshot(ctx, &polls[i])
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *snapshot)
	}
	return snapshots, nil
}

func (s *Service) snapshot(ctx context.Context, poll *domain.Poll) (*domain.PollSnapshot, error) {
	votes, err := s.votes.ListByPoll(ctx, poll.ID)
	if err != nil {
		return nil, err
	}
	totalLikes, err := s.likes.CountByPoll(ctx, poll.ID)
	if err != nil {
		return nil, err
	}

	return &domain.PollSnapshot{
		ID:          poll.ID,
		Title:       poll.Title,
		Description: poll.Description,
		CreatedAt:   poll.CreatedAt,
		Options:     stats.OptionStats(poll.Options, votes),
		TotalVotes:  stats.TotalVotes(votes),
		TotalLikes:  totalLikes,
	}, nil
}

func emptySnapshot(poll *domain.Poll) *domain.PollSnapshot {
	options := make([]domain.OptionStat, len(poll.Options))
	for i, opt := range poll.Options {
		options[i] = domain.OptionStat{OptionID: opt.ID, Text: opt.Text, Votes: 0, Percentage: 0}
	}
	return &domain.PollSnapshot{
		ID:          poll.ID,
		Title:       poll.Title,
		Description: poll.Description,
		CreatedAt:   poll.CreatedAt,
		Options:     options,
		TotalVotes:  0,
		TotalLikes:  0,
	}
}
