package events

import (
	"encoding/json"
	"time"

	"github.com/voidshard/etlmon/pkg/errors"
	"github.com/voidshard/etlmon/pkg/structs"
)

const (
	TypeExecutionFinished = "etl:execution:finished"
	TypeStepFinished      = "etl:step:finished"
)

// Event is the payload carried by every task we enqueue.
type Event struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`

	// Exactly one of these is set, depending on Type
	Execution *structs.JobExecution       `json:"execution,omitempty"`
	Detail    *structs.JobExecutionDetail `json:"detail,omitempty"`
}

// IsAlert returns true for events worth paging someone over: an execution
// that did not succeed, or a failed step.
func (e *Event) IsAlert() bool {
	switch {
	case e.Execution != nil:
		return e.Execution.Status != structs.SUCCESS
	case e.Detail != nil:
		return e.Detail.Status == structs.FAILURE
	default:
		return false
	}
}

func newExecutionEvent(e *structs.JobExecution, at time.Time) *Event {
	return &Event{Type: TypeExecutionFinished, At: at, Execution: e}
}

func newStepEvent(d *structs.JobExecutionDetail, at time.Time) *Event {
	return &Event{Type: TypeStepFinished, At: at, Detail: d}
}

func encode(e *Event) ([]byte, error) {
	return json.Marshal(e)
}

func decode(taskType string, payload []byte) (*Event, error) {
	e := &Event{}
	if err := json.Unmarshal(payload, e); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidArg, "event payload: %v", err)
	}
	if e.Type != taskType {
		return nil, errors.Wrapf(errors.ErrInvalidArg, "payload type %q does not match task %q", e.Type, taskType)
	}
	switch e.Type {
	case TypeExecutionFinished:
		if e.Execution == nil {
			return nil, errors.Wrapf(errors.ErrInvalidArg, "%s event without execution", e.Type)
		}
	case TypeStepFinished:
		if e.Detail == nil {
			return nil, errors.Wrapf(errors.ErrInvalidArg, "%s event without detail", e.Type)
		}
	default:
		return nil, errors.Wrapf(errors.ErrInvalidArg, "unknown event type %q", e.Type)
	}
	return e, nil
}
