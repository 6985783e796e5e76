package main

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the diagnostic logger. Output goes to stderr so the
// stdout message stream stays clean.
func newLogger(level string) (*zap.Logger, error) {
	conf := zap.NewProductionConfig()
	conf.Sampling = nil
	conf.OutputPaths = []string{"stderr"}
	conf.ErrorOutputPaths = []string{"stderr"}
	conf.EncoderConfig.TimeKey = "time"
	conf.EncoderConfig.LevelKey = "severity"
	conf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	conf.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		conf.Level = zap.NewAtomicLevelAt(parsed)
	}

	return conf.Build()
}
