package structs

import (
	"encoding/json"
	"time"
)

// JobExecution is one run of a named job.
type JobExecution struct {
	ID      int64  `json:"id"`
	JobName string `json:"job_name"`
	Status  Status `json:"status"`

	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// Only set for FAILURE or PARTIAL
	ErrorMessage *string `json:"error_message,omitempty"`

	Attributes Attributes `json:"attributes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Duration is end - start. The second value is false while the execution is
// still running, we never measure against "now".
func (e *JobExecution) Duration() (time.Duration, bool) {
	return duration(e.StartTime, e.EndTime)
}

// IsFinished returns true if the execution has reached a terminal status.
func (e *JobExecution) IsFinished() bool {
	return IsFinalStatus(e.Status)
}

func (e *JobExecution) MarshalJSON() ([]byte, error) {
	type alias JobExecution
	return json.Marshal(&struct {
		*alias
		DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	}{
		alias:           (*alias)(e),
		DurationSeconds: durationSeconds(e.StartTime, e.EndTime),
	})
}

func duration(start time.Time, end *time.Time) (time.Duration, bool) {
	if end == nil {
		return 0, false
	}
	return end.Sub(start), true
}

func durationSeconds(start time.Time, end *time.Time) *float64 {
	d, ok := duration(start, end)
	if !ok {
		return nil
	}
	s := d.Seconds()
	return &s
}
