package kit

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the service logger. The level comes from LOG_LEVEL when
// set (debug, info, warn, error), info otherwise. Output goes to stderr so
// interactive programs keep stdout for their own rendering.
func NewLogger(service string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.InitialFields = map[string]any{"service": service}

	if lv := os.Getenv("LOG_LEVEL"); lv != "" {
		if parsed, err := zapcore.ParseLevel(lv); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(parsed)
		}
	}

	l, _ := cfg.Build()
	return l
}
