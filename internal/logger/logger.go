package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type scopeKey struct{}

// scope is the set of attributes a context adds to every record logged
// through FromContext.
type scope struct {
	requestID string
	attrs     []any
}

func scopeOf(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

// InitLogger installs the process-wide logger writing to stdout.
func InitLogger(cfg Config) {
	InitLoggerWithWriter(cfg, os.Stdout)
}

// InitLoggerWithWriter installs the process-wide logger writing to w.
func InitLoggerWithWriter(cfg Config, w io.Writer) {
	slog.SetDefault(slog.New(cfg.Handler(w)))
}

// GenerateRequestID creates a new request id.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a context whose logger reports requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	s := scopeOf(ctx)
	s.requestID = requestID
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithCart tags every later record with the cart it concerns.
func WithCart(ctx context.Context, storeID, sessionID string) context.Context {
	attrs := []any{AttrKeyStoreID, storeID}
	if sessionID != "" {
		attrs = append(attrs, AttrKeySessionID, sessionID)
	}
	return WithAttrs(ctx, attrs...)
}

// WithAttrs appends key/value pairs to the context's log scope.
func WithAttrs(ctx context.Context, args ...any) context.Context {
	s := scopeOf(ctx)
	merged := make([]any, 0, len(s.attrs)+len(args))
	merged = append(merged, s.attrs...)
	s.attrs = append(merged, args...)
	return context.WithValue(ctx, scopeKey{}, s)
}

// Inherit copies the log scope of src onto dst. Background work uses it to
// keep request attributes without inheriting the request's cancellation.
func Inherit(dst, src context.Context) context.Context {
	s := scopeOf(src)
	if s.requestID == "" && len(s.attrs) == 0 {
		return dst
	}
	return context.WithValue(dst, scopeKey{}, s)
}

// RequestIDFromContext extracts the request ID, if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	s := scopeOf(ctx)
	return s.requestID, s.requestID != ""
}

// GetRequestID returns the request ID or an empty string.
func GetRequestID(ctx context.Context) string {
	return scopeOf(ctx).requestID
}

// FromContext returns the default logger with the context's scope applied.
func FromContext(ctx context.Context) *slog.Logger {
	s := scopeOf(ctx)
	l := slog.Default()
	if s.requestID != "" {
		l = l.With(AttrKeyRequestID, s.requestID)
	}
	if len(s.attrs) > 0 {
		l = l.With(s.attrs...)
	}
	return l
}

func Debug(msg string, args ...any) { slog.Default().Debug(msg, args...) }
func Info(msg string, args ...any)  { slog.Default().Info(msg, args...) }
func Warn(msg string, args ...any)  { slog.Default().Warn(msg, args...) }
func Error(msg string, args ...any) { slog.Default().Error(msg, args...) }
