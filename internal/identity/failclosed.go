package identity

import (
	"context"
	"log/slog"

	"cleanroom/internal/resolution/ports"
)

// FailClosed wraps a checker so capability failures become a conservative
// "invalid" verdict instead of an error. The underlying error is logged and
// still returned so callers can surface it as a warning.
type FailClosed struct {
	inner  ports.IdentityChecker
	logger *slog.Logger
}

func NewFailClosed(inner ports.IdentityChecker, logger *slog.Logger) *FailClosed {
	if logger == nil {
		logger = slog.Default()
	}
	return &FailClosed{inner: inner, logger: logger}
}

func (f *FailClosed) Valid(ctx context.Context, ssn string) (bool, error) {
	valid, err := f.inner.Valid(ctx, ssn)
	if err != nil {
		f.logger.WarnContext(ctx, "identity capability unreachable, failing closed", "error", err)
		return false, err
	}
	return valid, nil
}
