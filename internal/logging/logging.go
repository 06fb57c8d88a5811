// Package logging builds the zap logger used by the CLI and adapts it into a
// binder.Observer so each refill is reported as a structured log entry.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formbind/pkg/binder"
)

// New builds a zap logger. format "json" selects the production encoder;
// anything else the development console encoder. Unknown levels fall back to
// info.
func New(level, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	return cfg.Build()
}

func parseLevel(raw string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Observer logs every bind through logger. Absent records are logged at
// debug level since they are an expected outcome.
func Observer(logger *zap.Logger) binder.Observer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("formbind")
	return binder.ObserverFunc(func(record binder.Record, result binder.Result) {
		if record == nil {
			logger.Debug("no record to refill")
			return
		}
		logger.Info("form refilled",
			zap.Strings("applied", result.Applied),
			zap.Strings("skipped", result.Skipped),
			zap.Any("record", record),
		)
	})
}
