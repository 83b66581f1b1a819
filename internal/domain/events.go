package domain

import "github.com/google/uuid"

// EventKind discriminates the broadcast event variants on the wire.
type EventKind string

const (
	EventVote    EventKind = "vote"
	EventLike    EventKind = "like"
	EventNewPoll EventKind = "new_poll"
)

// Event is the closed set of messages pushed to live connections.
// The unexported marker keeps the variant set sealed: a new kind must be
// added here and implement Kind/Data, so dispatch stays exhaustive.
type Event interface {
	Kind() EventKind
	PollID() uuid.UUID
	Data() any
	isEvent()
}

type eventBase struct {
	pollID uuid.UUID
}

func (eventBase) isEvent()            {}
func (b eventBase) PollID() uuid.UUID { return b.pollID }

// VoteEvent carries the full recomputed option list for the poll.
type VoteEvent struct {
	eventBase
	Options    []OptionStat `json:"options"`
	TotalVotes int          `json:"totalVotes"`
}

func NewVoteEvent(pollID uuid.UUID, options []OptionStat, totalVotes int) VoteEvent {
	return VoteEvent{eventBase: eventBase{pollID}, Options: options, TotalVotes: totalVotes}
}

func (VoteEvent) Kind() EventKind { return EventVote }
func (e VoteEvent) Data() any     { return e }

// LikeEvent carries the new like count and toggle direction.
type LikeEvent struct {
	eventBase
	TotalLikes int  `json:"totalLikes"`
	Liked      bool `json:"liked"`
}

func NewLikeEvent(pollID uuid.UUID, totalLikes int, liked bool) LikeEvent {
	return LikeEvent{eventBase: eventBase{pollID}, TotalLikes: totalLikes, Liked: liked}
}

func (LikeEvent) Kind() EventKind { return EventLike }
func (e LikeEvent) Data() any     { return e }

// NewPollEvent is the only variant whose payload is a complete entity
// snapshot rather than a delta.
type NewPollEvent struct {
	eventBase
	Poll PollSnapshot
}

func NewPollCreatedEvent(poll PollSnapshot) NewPollEvent {
	return NewPollEvent{eventBase: eventBase{poll.ID}, Poll: poll}
}

func (NewPollEvent) Kind() EventKind { return EventNewPoll }
func (e NewPollEvent) Data() any     { return e.Poll }
