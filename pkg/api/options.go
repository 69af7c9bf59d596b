package api

import (
	"go.uber.org/zap"
)

// Options passed to the API on creation
type Options struct {
	// Logger used by the service. Defaults to a no-op logger.
	Logger *zap.SugaredLogger
}

// OptionsDefault returns options with nothing but a silent logger.
func OptionsDefault() *Options {
	return &Options{Logger: zap.NewNop().Sugar()}
}
