package server

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhiGadhave11/realtime-polling-platform/internal/config"
	"github.com/AbhiGadhave11/realtime-polling-platform/internal/domain"
	apperrors "github.com/AbhiGadhave11/realtime-polling-platform/internal/errors"
)

// stubApp implements domain.PollService with overridable behavior per test.
type stubApp struct {
	createPoll func(ctx context.Context, req domain.CreatePollRequest) (*domain.PollSnapshot, error)
	castVote   func(ctx context.Context, pollID, optionID uuid.UUID, userID string) (*domain.VoteReceipt, error)
	toggleLike func(ctx context.Context, pollID uuid.UUID, userID string) (*domain.LikeReceipt, error)
	getPoll    func(ctx context.Context, pollID uuid.UUID) (*domain.PollSnapshot, error)
	listPolls  func(ctx context.Context) ([]domain.PollSnapshot, error)
}

func (s *stubApp) CreatePoll(ctx context.Context, req domain.CreatePollRequest) (*domain.PollSnapshot, error) {
	return s.createPoll(ctx, req)
}

func (s *stubApp) CastVote(ctx context.Context, pollID, optionID uuid.UUID, userID string) (*domain.VoteReceipt, error) {
	return s.castVote(ctx, pollID, optionID, userID)
}

func (s *stubApp) ToggleLike(ctx context.Context, pollID uuid.UUID, userID string) (*domain.LikeReceipt, error) {
	return s.toggleLike(ctx, pollID, userID)
}

func (s *stubApp) GetPoll(ctx context.Context, pollID uuid.UUID) (*domain.PollSnapshot, error) {
	return s.getPoll(ctx, pollID)
}

func (s *stubApp) ListPolls(ctx context.Context) ([]domain.PollSnapshot, error) {
	return s.listPolls(ctx)
}

func newTestServer(app domain.PollService) *Server {
	cfg := &config.Config{Port: "8080"}
	return NewServer(cfg, app, nil, nil)
}

func jsonRequest(method, target, body string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func testSnapshot() *domain.PollSnapshot {
	return &domain.PollSnapshot{
		ID:        uuid.New(),
		Title:     "Pick one",
		CreatedAt: time.Now(),
		Options: []domain.OptionStat{
			{OptionID: uuid.New(), Text: "A", Votes: 0, Percentage: 0},
			{OptionID: uuid.New(), Text: "B", Votes: 0, Percentage: 0},
		},
	}
}

func TestHandleCreatePoll_Success(t *testing.T) {
	snapshot := testSnapshot()
	app := &stubApp{
		createPoll: func(_ context.Context, req domain.CreatePollRequest) (*domain.PollSnapshot, error) {
			assert.Equal(t, "Pick one", req.Title)
			assert.Equal(t, []string{"A", "B"}, req.Options)
			return snapshot, nil
		},
	}
	srv := newTestServer(app)

	rec, c := jsonRequest("POST", "/api/polls", `{"title":"Pick one","options":["A","B"]}`)
	err := srv.handleCreatePoll(c)
	require.NoError(t, err)

	assert.Equal(t, 201, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "poll")
}

func TestHandleCreatePoll_ValidationErrorPropagates(t *testing.T) {
	app := &stubApp{
		createPoll: func(context.Context, domain.CreatePollRequest) (*domain.PollSnapshot, error) {
			return nil, apperrors.ValidationError("title must not be empty")
		},
	}
	srv := newTestServer(app)

	_, c := jsonRequest("POST", "/api/polls", `{"title":"","options":["A","B"]}`)
	err := srv.handleCreatePoll(c)

	var structured *apperrors.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, apperrors.TypeValidation, structured.Type)
}

func TestHandleGetPoll_InvalidID(t *testing.T) {
	srv := newTestServer(&stubApp{})

	_, c := jsonRequest("GET", "/api/polls/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := srv.handleGetPoll(c)

	var structured *apperrors.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, apperrors.TypeValidation, structured.Type)
}

func TestHandleGetPoll_NotFound(t *testing.T) {
	app := &stubApp{
		getPoll: func(context.Context, uuid.UUID) (*domain.PollSnapshot, error) {
			return nil, domain.ErrPollNotFound
		},
	}
	srv := newTestServer(app)

	_, c := jsonRequest("GET", "/api/polls/"+uuid.NewString(), "")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := srv.handleGetPoll(c)

	var structured *apperrors.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, apperrors.TypeNotFound, structured.Type)
}

func TestHandleListPolls_EmptyIsArray(t *testing.T) {
	app := &stubApp{
		listPolls: func(context.Context) ([]domain.PollSnapshot, error) {
			return nil, nil
		},
	}
	srv := newTestServer(app)

	rec, c := jsonRequest("GET", "/api/polls", "")
	require.NoError(t, srv.handleListPolls(c))

	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"polls":[]}`, rec.Body.String())
}

func TestHandleVote_Success(t *testing.T) {
	pollID := uuid.New()
	optionID := uuid.New()
	userID := "visitor-7"

	app := &stubApp{
		castVote: func(_ context.Context, gotPoll, gotOption uuid.UUID, gotUser string) (*domain.VoteReceipt, error) {
			assert.Equal(t, pollID, gotPoll)
			assert.Equal(t, optionID, gotOption)
			assert.Equal(t, userID, gotUser)
			return &domain.VoteReceipt{
				Vote: domain.Vote{ID: uuid.New(), PollID: pollID, OptionID: optionID, UserID: &userID},
				Options: []domain.OptionStat{
					{OptionID: optionID, Text: "A", Votes: 1, Percentage: 100.0},
				},
				TotalVotes: 1,
			}, nil
		},
	}
	srv := newTestServer(app)

	body := `{"pollId":"` + pollID.String() + `","optionId":"` + optionID.String() + `","userId":"visitor-7"}`
	rec, c := jsonRequest("POST", "/api/vote", body)
	require.NoError(t, srv.handleVote(c))

	assert.Equal(t, 200, rec.Code)

	var resp struct {
		Success    bool `json:"success"`
		TotalVotes int  `json:"totalVotes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.TotalVotes)
}

func TestHandleVote_InvalidUUIDs(t *testing.T) {
	srv := newTestServer(&stubApp{})

	tests := []struct {
		name string
		body string
	}{
		{"bad poll id", `{"pollId":"nope","optionId":"` + uuid.NewString() + `"}`},
		{"bad option id", `{"pollId":"` + uuid.NewString() + `","optionId":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := jsonRequest("POST", "/api/vote", tt.body)
			err := srv.handleVote(c)

			var structured *apperrors.Error
			require.ErrorAs(t, err, &structured)
			assert.Equal(t, apperrors.TypeValidation, structured.Type)
		})
	}
}

func TestHandleVote_PollNotFound(t *testing.T) {
	app := &stubApp{
		castVote: func(context.Context, uuid.UUID, uuid.UUID, string) (*domain.VoteReceipt, error) {
			return nil, domain.ErrPollNotFound
		},
	}
	srv := newTestServer(app)

	body := `{"pollId":"` + uuid.NewString() + `","optionId":"` + uuid.NewString() + `"}`
	_, c := jsonRequest("POST", "/api/vote", body)
	err := srv.handleVote(c)

	var structured *apperrors.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, apperrors.TypeNotFound, structured.Type)
}

func TestHandleLike_Success(t *testing.T) {
	pollID := uuid.New()
	app := &stubApp{
		toggleLike: func(_ context.Context, gotPoll uuid.UUID, _ string) (*domain.LikeReceipt, error) {
			assert.Equal(t, pollID, gotPoll)
			return &domain.LikeReceipt{Liked: true, TotalLikes: 3}, nil
		},
	}
	srv := newTestServer(app)

	body := `{"pollId":"` + pollID.String() + `"}`
	rec, c := jsonRequest("POST", "/api/like", body)
	require.NoError(t, srv.handleLike(c))

	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"success":true,"liked":true,"totalLikes":3}`, rec.Body.String())
}

func TestHandleLike_PollNotFound(t *testing.T) {
	app := &stubApp{
		toggleLike: func(context.Context, uuid.UUID, string) (*domain.LikeReceipt, error) {
			return nil, domain.ErrPollNotFound
		},
	}
	srv := newTestServer(app)

	body := `{"pollId":"` + uuid.NewString() + `"}`
	_, c := jsonRequest("POST", "/api/like", body)
	err := srv.handleLike(c)

	var structured *apperrors.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, apperrors.TypeNotFound, structured.Type)
}
