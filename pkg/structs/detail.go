package structs

import (
	"encoding/json"
	"time"
)

// JobExecutionDetail is a single step of an execution.
type JobExecutionDetail struct {
	ID          int64  `json:"id"`
	ExecutionID int64  `json:"execution_id"`
	StepName    string `json:"step_name"`
	StepOrder   int    `json:"step_order"`
	Status      Status `json:"status"`

	StepMessage *string `json:"step_message,omitempty"`

	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (d *JobExecutionDetail) Duration() (time.Duration, bool) {
	return duration(d.StartTime, d.EndTime)
}

func (d *JobExecutionDetail) IsFinished() bool {
	return IsStepFinalStatus(d.Status)
}

func (d *JobExecutionDetail) MarshalJSON() ([]byte, error) {
	type alias JobExecutionDetail
	return json.Marshal(&struct {
		*alias
		DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	}{
		alias:           (*alias)(d),
		DurationSeconds: durationSeconds(d.StartTime, d.EndTime),
	})
}
