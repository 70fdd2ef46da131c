package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"field-delivery-sync/internal/config"
	"field-delivery-sync/internal/logx"
)

// NewLogger builds the process logger. json goes through zap, console
// through a slog text handler on stderr.
func NewLogger(cfg *config.Config) (logx.Logger, error) {
	return newLogger(cfg.Log, os.Stderr)
}

func newLogger(cfg config.Log, w io.Writer) (logx.Logger, error) {
	switch strings.ToLower(cfg.Format) {
	case "", "json":
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		enc := zap.NewProductionEncoderConfig()
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), level)
		return logx.NewZapAdapter(zap.New(core)), nil
	case "console":
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		base := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
		return logx.NewSlogAdapter(base), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}
