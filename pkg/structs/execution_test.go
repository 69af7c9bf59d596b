package structs

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	start := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)

	cases := []struct {
		Name     string
		Given    *JobExecution
		Expect   time.Duration
		ExpectOk bool
	}{
		{"Running", &JobExecution{StartTime: start}, 0, false},
		{"Finished", &JobExecution{StartTime: start, EndTime: &end}, 90 * time.Second, true},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			d, ok := c.Given.Duration()
			assert.Equal(t, c.ExpectOk, ok)
			assert.Equal(t, c.Expect, d)
		})
	}
}

func TestExecutionMarshalJSON(t *testing.T) {
	start := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)

	running := &JobExecution{ID: 1, JobName: "Nightly_Load", Status: RUNNING, StartTime: start}
	data, err := json.Marshal(running)
	require.Nil(t, err)

	out := map[string]interface{}{}
	require.Nil(t, json.Unmarshal(data, &out))
	assert.Equal(t, "EmExecucao", out["status"])
	assert.Equal(t, "Nightly_Load", out["job_name"])
	assert.NotContains(t, out, "duration_seconds")
	assert.NotContains(t, out, "end_time")

	running.EndTime = &end
	running.Status = SUCCESS
	data, err = json.Marshal(running)
	require.Nil(t, err)

	out = map[string]interface{}{}
	require.Nil(t, json.Unmarshal(data, &out))
	assert.Equal(t, 1.5, out["duration_seconds"])
}

func TestDetailMarshalJSON(t *testing.T) {
	start := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Second)
	msg := "ok"

	d := &JobExecutionDetail{ID: 3, ExecutionID: 1, StepName: "Extract", StepOrder: 1, Status: SUCCESS, StepMessage: &msg, StartTime: start, EndTime: &end}
	data, err := json.Marshal(d)
	require.Nil(t, err)

	out := map[string]interface{}{}
	require.Nil(t, json.Unmarshal(data, &out))
	assert.Equal(t, 2.0, out["duration_seconds"])
	assert.Equal(t, "ok", out["step_message"])
	assert.Equal(t, 1.0, out["step_order"])
}

func TestAttributesMerge(t *testing.T) {
	a := Attributes{AttrRowsProcessed: 10, AttrServerName: "etl01"}
	b := Attributes{AttrRowsProcessed: 20}

	result := a.Merge(b)

	assert.Equal(t, Attributes{AttrRowsProcessed: 20, AttrServerName: "etl01"}, result)
	assert.Equal(t, 10, a[AttrRowsProcessed])
	assert.Nil(t, Attributes(nil).Merge(nil))
	assert.True(t, a.ValidKeys())
	assert.False(t, Attributes{"": 1}.ValidKeys())
}

func TestWindow(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	w := Window{From: &from, To: &to}

	assert.True(t, w.Valid())
	assert.True(t, w.Contains(from))
	assert.True(t, w.Contains(to.Add(-time.Microsecond)))
	assert.False(t, w.Contains(to))
	assert.False(t, w.Contains(from.Add(-time.Second)))

	assert.False(t, Window{From: &to, To: &from}.Valid())
	assert.False(t, Window{From: &from, To: &from}.Valid())
	assert.True(t, Window{From: &from}.Valid())
	assert.True(t, Window{}.Contains(from))

	q := w.Query("Nightly_Load")
	assert.Equal(t, []string{"Nightly_Load"}, q.JobNames)
	assert.Equal(t, &from, q.StartedFrom)
	assert.Equal(t, &to, q.StartedBefore)
	assert.Nil(t, Window{}.Query("").JobNames)
}
