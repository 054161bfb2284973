package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Config selects the level, encoding and identity attributes of the process
// logger.
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig builds a Config, filling blank identity fields with defaults.
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	c := Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
	if c.ServiceName == "" {
		c.ServiceName = DefaultServiceName
	}
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Environment == "" {
		c.Environment = DefaultEnvironment
	}
	return c
}

// LogLevel maps Level onto slog. Unknown values log at info.
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Handler returns the slog handler described by c writing to w. Every record
// carries the service, version and environment.
func (c Config) Handler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: c.LogLevel(), AddSource: c.AddSource}

	var h slog.Handler
	if strings.EqualFold(c.Format, LogFormatJSON) {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return h.WithAttrs([]slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	})
}
