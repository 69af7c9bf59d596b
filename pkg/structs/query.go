package structs

import (
	"time"
)

const (
	queryLimitDefault = 100
	queryLimitMax     = 1000
)

// Query is a filter over executions. Every field is optional, an unset field
// means "unconstrained", and set fields are combined with AND.
type Query struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`

	// Filters
	JobNames []string `json:"job_names,omitempty"`
	Statuses []Status `json:"statuses,omitempty"`

	// StartedFrom is inclusive, StartedBefore exclusive.
	StartedFrom   *time.Time `json:"started_from,omitempty"`
	StartedBefore *time.Time `json:"started_before,omitempty"`
}

// Sanitize applies the default limit, clamps to the max and drops empty filters.
func (q *Query) Sanitize() {
	if q.Limit <= 0 {
		q.Limit = queryLimitDefault
	}
	if q.Limit > queryLimitMax {
		q.Limit = queryLimitMax
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if len(q.JobNames) == 0 {
		q.JobNames = nil
	}
	if len(q.Statuses) == 0 {
		q.Statuses = nil
	}
}

// Copy returns a deep copy, so the result can be sanitized without touching q.
func (q *Query) Copy() *Query {
	out := *q
	if q.JobNames != nil {
		out.JobNames = append([]string{}, q.JobNames...)
	}
	if q.Statuses != nil {
		out.Statuses = append([]Status{}, q.Statuses...)
	}
	if q.StartedFrom != nil {
		t := *q.StartedFrom
		out.StartedFrom = &t
	}
	if q.StartedBefore != nil {
		t := *q.StartedBefore
		out.StartedBefore = &t
	}
	return &out
}

// ClampLimit returns limit or def if limit is unset, never more than the max query limit.
func ClampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > queryLimitMax {
		return queryLimitMax
	}
	return limit
}
