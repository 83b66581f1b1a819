package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Model types ---

type Poll struct {
	ID          uuid.UUID
	Title       string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Options     []Option
}

type Option struct {
	ID       uuid.UUID
	PollID   uuid.UUID
	Text     string
	Position int
}

// Vote is append-only; rows are never updated. UserID is nullable —
// anonymous votes are permitted and not deduplicated server-side.
type Vote struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"pollId"`
	OptionID  uuid.UUID `json:"optionId"`
	UserID    *string   `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Like struct {
	ID        uuid.UUID
	PollID    uuid.UUID
	UserID    *string
	CreatedAt time.Time
}

// --- Derived value types ---

// OptionStat is the derived tally for a single option. Percentage is
// rounded to one decimal and is 0 when the poll has no votes.
type OptionStat struct {
	OptionID   uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	Votes      int       `json:"votes"`
	Percentage float64   `json:"percentage"`
}

// PollSnapshot is a poll with fully derived stats, as served to clients
// on reads and carried whole in new-poll broadcasts.
type PollSnapshot struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	Options     []OptionStat `json:"options"`
	TotalVotes  int          `json:"totalVotes"`
	TotalLikes  int          `json:"totalLikes"`
}

// --- Request/result types ---

type CreatePollRequest struct {
	Title       string
	Description string
	Options     []string
}

// VoteReceipt is the synchronous reply to the voter. Subscribers learn
// about the vote through the broadcast instead.
type VoteReceipt struct {
	Vote       Vote
	Options    []OptionStat
	TotalVotes int
}

type LikeReceipt struct {
	Liked      bool
	TotalLikes int
}

// --- Interfaces ---

// PollRepository abstracts poll/option persistence. Polls and options
// are immutable after creation.
type PollRepository interface {
	Create(ctx context.Context, title string, description *string, options []string) (*Poll, error)
	GetByID(ctx context.Context, pollID uuid.UUID) (*Poll, error)
	List(ctx context.Context) ([]Poll, error)
}

// VoteRepository abstracts the append-only vote log.
type VoteRepository interface {
	Insert(ctx context.Context, pollID, optionID uuid.UUID) (*Vote, error)
	ListByPoll(ctx context.Context, pollID uuid.UUID) ([]Vote, error)
}

// LikeRepository abstracts like rows. The anonymous design keeps at most
// one unattributed row per poll on the toggle path.
type LikeRepository interface {
	Insert(ctx context.Context, pollID uuid.UUID) (*Like, error)
	FindUnattributed(ctx context.Context, pollID uuid.UUID) (*Like, error)
	Delete(ctx context.Context, likeID uuid.UUID) error
	CountByPoll(ctx context.Context, pollID uuid.UUID) (int, error)
}

// EventPublisher pushes one event to every live subscriber connection.
// Publish is fire-and-forget: send failures are local to the failing
// connection and never surface to the caller.
type EventPublisher interface {
	Publish(event Event)
}

// PollService is the application layer contract — HTTP handlers route
// all operations through here.
type PollService interface {
	CreatePoll(ctx context.Context, req CreatePollRequest) (*PollSnapshot, error)
	CastVote(ctx context.Context, pollID, optionID uuid.UUID, userID string) (*VoteReceipt, error)
	ToggleLike(ctx context.Context, pollID uuid.UUID, userID string) (*LikeReceipt, error)
	GetPoll(ctx context.Context, pollID uuid.UUID) (*PollSnapshot, error)
	ListPolls(ctx context.Context) ([]PollSnapshot, error)
}
