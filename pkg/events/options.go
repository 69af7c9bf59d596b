package events

import (
	"crypto/tls"
	"time"
)

const (
	defaultQueue     = "etlmon:events"
	defaultMaxRetry  = 5
	defaultRetention = 24 * time.Hour
	defaultWorkers   = 4
)

// Options are options for the event transport.
type Options struct {
	// URL of the redis server events are sent through (eg. redis://localhost:6379/0).
	// If empty events are dropped.
	URL string

	// TLSConfig needed to connect to redis (optional).
	TLSConfig *tls.Config

	// Queue name events are written to.
	Queue string

	// MaxRetry is how often a listener may fail an event before it is archived.
	MaxRetry int

	// Retention keeps processed events around for inspection.
	Retention time.Duration

	// Workers is the listener concurrency.
	Workers int
}

func (o *Options) SetDefaults() {
	if o.Queue == "" {
		o.Queue = defaultQueue
	}
	if o.MaxRetry <= 0 {
		o.MaxRetry = defaultMaxRetry
	}
	if o.Retention <= 0 {
		o.Retention = defaultRetention
	}
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}
}
