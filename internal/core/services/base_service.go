package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	"github.com/SscSPs/ledger_reporting/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LogViolations reports integrity findings at warn level, one record each,
// so they reach operators even when the report itself renders fine.
func (s *BaseService) LogViolations(ctx context.Context, report domain.ReportKind, violations []domain.IntegrityViolation) {
	logger := s.GetLogger(ctx)
	for _, v := range violations {
		logger.Warn("Ledger integrity violation",
			slog.String("report", string(report)),
			slog.String("kind", string(v.Kind)),
			slog.Int64("entry_number", v.EntryNumber),
			slog.Int("line_number", v.LineNumber),
			slog.String("account_id", v.AccountID),
			slog.String("detail", v.Detail))
	}
}
