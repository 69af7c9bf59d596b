package structs

import (
	"time"
)

// Window is an optional half-open time range [From, To) matched against
// execution start times. A nil bound is unbounded.
type Window struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// Valid returns false if both bounds are set and To is not after From.
func (w Window) Valid() bool {
	if w.From == nil || w.To == nil {
		return true
	}
	return w.To.After(*w.From)
}

// Contains returns true if t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if w.From != nil && t.Before(*w.From) {
		return false
	}
	if w.To != nil && !t.Before(*w.To) {
		return false
	}
	return true
}

// Query returns a query restricted to this window (and job name, if given).
func (w Window) Query(jobName string) *Query {
	q := &Query{StartedFrom: w.From, StartedBefore: w.To}
	if jobName != "" {
		q.JobNames = []string{jobName}
	}
	return q
}
