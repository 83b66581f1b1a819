package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPErrorsTotal tracks HTTP errors by error type
var HTTPErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_errors_total",
		Help: "Total HTTP errors by error type",
	},
	[]string{"type"},
)

// Middleware converts errors returned by handlers into JSON responses.
// Echo's own HTTPErrors (routing, binding) pass through so their status
// codes survive; everything else is normalized via From.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				HTTPErrorsTotal.WithLabelValues(string(typeForStatus(httpErr.Code))).Inc()
				return err
			}

			structured := From(err)
			HTTPErrorsTotal.WithLabelValues(string(structured.Type)).Inc()
			logError(c, structured)

			if writeErr := c.JSON(structured.HTTPStatus(), structured.ToResponse()); writeErr != nil {
				return fmt.Errorf("failed to write error response: %w", writeErr)
			}
			return nil
		}
	}
}

// typeForStatus buckets echo HTTPError status codes for the metric label.
func typeForStatus(code int) ErrorType {
	switch code {
	case http.StatusBadRequest:
		return TypeValidation
	case http.StatusNotFound:
		return TypeNotFound
	default:
		return TypeInternal
	}
}

func logError(c echo.Context, err *Error) {
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}
	for k, v := range err.Fields {
		attrs = append(attrs, k, v)
	}

	switch err.Type {
	case TypeValidation:
		slog.Info("Validation error", attrs...)
	case TypeNotFound:
		slog.Info("Not found", attrs...)
	default:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.Error("Internal error", attrs...)
	}
}
