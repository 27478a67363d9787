// Package logger builds the structured logger for the process using the
// Uber zap logging library.
package logger

import "go.uber.org/zap"

// New constructs a SugaredLogger at the given level. The logger is
// passed explicitly into every component; there is no package-level
// instance.
func New(level string) (*zap.SugaredLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return zl.Sugar(), nil
}
