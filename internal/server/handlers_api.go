package server

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/AbhiGadhave11/realtime-polling-platform/internal/domain"
	apperrors "github.com/AbhiGadhave11/realtime-polling-platform/internal/errors"
)

type createPollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

type voteRequest struct {
	PollID   string `json:"pollId"`
	OptionID string `json:"optionId"`
	UserID   string `json:"userId"`
}

type likeRequest struct {
	PollID string `json:"pollId"`
	UserID string `json:"userId"`
}

func (s *Server) handleCreatePoll(c echo.Context) error {
	var req createPollRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	snapshot, err := s.app.CreatePoll(c.Request().Context(), domain.CreatePollRequest{
		Title:       req.Title,
		Description: req.Description,
		Options:     req.Options,
	})
	if err != nil {
		return err
	}

	return c.JSON(201, map[string]any{"poll": snapshot})
}

func (s *Server) handleListPolls(c echo.Context) error {
	snapshots, err := s.app.ListPolls(c.Request().Context())
	if err != nil {
		return err
	}

	if snapshots == nil {
		snapshots = []domain.PollSnapshot{}
	}
	return c.JSON(200, map[string]any{"polls": snapshots})
}

func (s *Server) handleGetPoll(c echo.Context) error {
	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid poll id").WithField("field", "id")
	}

	snapshot, err := s.app.GetPoll(c.Request().Context(), pollID)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(200, map[string]any{"poll": snapshot})
}

func (s *Server) handleVote(c echo.Context) error {
	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	pollID, err := uuid.Parse(req.PollID)
	if err != nil {
		return apperrors.ValidationError("invalid poll id").WithField("field", "pollId")
	}
	optionID, err := uuid.Parse(req.OptionID)
	if err != nil {
		return apperrors.ValidationError("invalid option id").WithField("field", "optionId")
	}

	receipt, err := s.app.CastVote(c.Request().Context(), pollID, optionID, req.UserID)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(200, map[string]any{
		"success":    true,
		"vote":       receipt.Vote,
		"options":    receipt.Options,
		"totalVotes": receipt.TotalVotes,
	})
}

func (s *Server) handleLike(c echo.Context) error {
	var req likeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	pollID, err := uuid.Parse(req.PollID)
	if err != nil {
		return apperrors.ValidationError("invalid poll id").WithField("field", "pollId")
	}

	receipt, err := s.app.ToggleLike(c.Request().Context(), pollID, req.UserID)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(200, map[string]any{
		"success":    true,
		"liked":      receipt.Liked,
		"totalLikes": receipt.TotalLikes,
	})
}

// mapDomainError translates domain sentinels into structured errors with
// the right HTTP status. Everything else surfaces as an opaque internal
// error via the errors middleware.
func mapDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrPollNotFound):
		return apperrors.NotFoundError("poll not found")
	case errors.Is(err, domain.ErrOptionNotFound):
		return apperrors.NotFoundError("option not found")
	default:
		return err
	}
}
