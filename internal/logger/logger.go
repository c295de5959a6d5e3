package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a structured logger. Production writes JSON to stdout, every other
// environment writes colored console output. An empty level defaults to info in
// production and debug elsewhere.
func New(env, level string) (*zap.Logger, error) {
	lvl, err := parseLevel(env, level)
	if err != nil {
		return nil, err
	}

	core := newCore(env, lvl, zapcore.Lock(os.Stdout))
	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	), nil
}

func parseLevel(env, level string) (zapcore.Level, error) {
	if level == "" {
		if env == "production" {
			return zapcore.InfoLevel, nil
		}
		return zapcore.DebugLevel, nil
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return lvl, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	return lvl, nil
}

func newCore(env string, lvl zapcore.Level, out zapcore.WriteSyncer) zapcore.Core {
	if env == "production" {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "timestamp"
		cfg.MessageKey = "message"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewCore(zapcore.NewJSONEncoder(cfg), out, lvl)
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), out, lvl)
}
