// Package logging builds the zap loggers used across the binary. Library
// code takes a *zap.Logger and defaults to zap.NewNop, so embedding hosts
// stay in control of output.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.DisableStacktrace = true
	return config.Build()
}
