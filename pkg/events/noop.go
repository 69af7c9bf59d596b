package events

import (
	"context"

	"github.com/voidshard/etlmon/pkg/structs"
)

// Noop drops every event.
type Noop struct{}

func (Noop) ExecutionFinished(ctx context.Context, e *structs.JobExecution) error { return nil }

func (Noop) StepFinished(ctx context.Context, d *structs.JobExecutionDetail) error { return nil }

func (Noop) Close() error { return nil }

// New returns an asynq backed publisher, or a Noop one if no URL is configured.
func New(opts *Options) (Publisher, error) {
	if opts == nil || opts.URL == "" {
		return Noop{}, nil
	}
	return NewAsynqPublisher(opts)
}
