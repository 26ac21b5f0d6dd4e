package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// statusForError maps engine errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnknownAccount), errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes the mapped status. Client errors echo the
// error text; server errors only echo msg.
func respondError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	status := statusForError(err)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error(msg, slog.String("error", err.Error()), slog.Int("status", status))
		if status == http.StatusServiceUnavailable {
			msg = "Ledger data is temporarily unavailable"
		}
		c.JSON(status, ErrorResponse{Error: msg})
	default:
		logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
		c.JSON(status, ErrorResponse{Error: err.Error()})
	}
}

// respondBindError turns query binding failures into a 400 with one detail per field.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Invalid request parameters", slog.String("error", err.Error()))

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request parameters", Details: []string{err.Error()}})
		return
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldMessage(fe))
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request parameters", Details: details})
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	if name != "" {
		name = strings.ToLower(name[:1]) + name[1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", name)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s check", name, fe.Tag())
	}
}
