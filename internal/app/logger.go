package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/signroom-backend/internal/config"
)

const redacted = "[REDACTED]"

// sensitiveKeys never reach log output with their value. Signer tokens and
// signature payloads grant or prove consent and must stay out of logs.
var sensitiveKeys = map[string]struct{}{
	"token":         {},
	"access_token":  {},
	"authorization": {},
	"signature":     {},
	"field_values":  {},
	"jwt_secret":    {},
}

// NewLogger builds the process logger on stderr and installs it as the
// slog default. Format "json" is for production; "text" adds source
// locations for local work.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := slog.New(newHandler(os.Stderr, cfg))
	slog.SetDefault(logger)
	return logger
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	text := strings.EqualFold(cfg.Format, "text")
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   text,
		ReplaceAttr: redactAttr,
	}
	if text {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if _, ok := sensitiveKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, redacted)
	}
	return a
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
