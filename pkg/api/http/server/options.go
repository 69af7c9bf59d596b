package server

import (
	"time"

	"go.uber.org/zap"
)

const (
	defWriteTimeout = 15 * time.Second
	defReadTimeout  = 15 * time.Second
)

// Options for the HTTP server.
type Options struct {
	// TLS certificate & key, both or neither
	TLSCert string
	TLSKey  string

	// RateLimit is the sustained number of requests per second served (0 is unlimited)
	RateLimit float64

	// Burst is how many requests may exceed the rate at once. Defaults to RateLimit.
	Burst int

	// Debug adds per request logging
	Debug bool

	Logger *zap.SugaredLogger

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (o *Options) SetDefaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop().Sugar()
	}
	if o.Burst <= 0 && o.RateLimit > 0 {
		o.Burst = int(o.RateLimit)
		if o.Burst < 1 {
			o.Burst = 1
		}
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = defReadTimeout
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = defWriteTimeout
	}
}
