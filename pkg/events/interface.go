package events

import (
	"context"

	"github.com/voidshard/etlmon/pkg/structs"
)

// Publisher announces lifecycle transitions to whoever is listening.
//
// Publishing happens after the transition is committed, so a failed publish
// never undoes a state change.
type Publisher interface {
	// ExecutionFinished is sent once an execution reaches a terminal status.
	ExecutionFinished(ctx context.Context, e *structs.JobExecution) error

	// StepFinished is sent once a step reaches a terminal status.
	StepFinished(ctx context.Context, d *structs.JobExecutionDetail) error

	Close() error
}

// Handler processes a single event. Returning an error asks for a retry.
type Handler func(ctx context.Context, evt *Event) error
