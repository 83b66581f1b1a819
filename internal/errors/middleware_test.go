package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// invoke runs a handler through the middleware against a fresh request and
// returns the recorder and the error the middleware itself returned.
func invoke(t *testing.T, handler echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/polls", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return rec, Middleware()(handler)(c)
}

func errorCount(errType ErrorType) float64 {
	return testutil.ToFloat64(HTTPErrorsTotal.WithLabelValues(string(errType)))
}

func TestMiddleware_NoError(t *testing.T) {
	rec, err := invoke(t, func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestMiddleware_ValidationError(t *testing.T) {
	HTTPErrorsTotal.Reset()

	rec, err := invoke(t, func(c echo.Context) error {
		return ValidationError("title must not be empty").WithField("field", "title")
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "title must not be empty", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, "title", resp.Fields["field"])

	assert.Equal(t, 1.0, errorCount(TypeValidation))
}

func TestMiddleware_NotFoundError(t *testing.T) {
	HTTPErrorsTotal.Reset()

	pollID := uuid.New()
	rec, err := invoke(t, func(c echo.Context) error {
		return NotFoundError("poll not found").WithField("pollId", pollID.String())
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, TypeNotFound, resp.Type)
	assert.Equal(t, pollID.String(), resp.Fields["pollId"])

	assert.Equal(t, 1.0, errorCount(TypeNotFound))
}

func TestMiddleware_PlainErrorBecomesOpaqueInternal(t *testing.T) {
	HTTPErrorsTotal.Reset()

	rec, err := invoke(t, func(c echo.Context) error {
		return errors.New("write tcp: broken pipe")
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error)
	assert.Equal(t, TypeInternal, resp.Type)
	assert.NotContains(t, rec.Body.String(), "broken pipe")

	assert.Equal(t, 1.0, errorCount(TypeInternal))
}

func TestMiddleware_EchoHTTPErrorPassesThrough(t *testing.T) {
	HTTPErrorsTotal.Reset()

	httpErr := echo.NewHTTPError(http.StatusNotFound, "route not found")
	_, err := invoke(t, func(c echo.Context) error {
		return httpErr
	})

	// Echo's default error handler keeps ownership of the response
	require.ErrorIs(t, err, httpErr)
	assert.Equal(t, 1.0, errorCount(TypeNotFound))
}
