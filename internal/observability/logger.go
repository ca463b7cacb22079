package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "request_id"
)

// basic global logger, JSON to stderr until Init points it elsewhere.
var logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))

// Init routes log output to a file under dir. The chat TUI owns the
// terminal, so stderr is not a usable sink while it runs.
func Init(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "sahayak.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	logger = slog.New(slog.NewJSONHandler(f, nil))
	return nil
}

// InitWriter is the test seam for Init.
func InitWriter(w io.Writer) {
	logger = slog.New(slog.NewJSONHandler(w, nil))
}

func Logger() *slog.Logger {
	return logger
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *slog.Logger {
	return logger.With(kv...)
}

// WithRequestID stores a request_id in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// LoggerFromContext adds request_id if present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	reqID, _ := ctx.Value(ctxKeyRequestID).(string)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}
