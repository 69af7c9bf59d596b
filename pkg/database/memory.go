package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/voidshard/etlmon/pkg/errors"
	"github.com/voidshard/etlmon/pkg/structs"
)

// Memory is an in process Database. Everything is lost on exit, it exists for
// tests and single process demos.
type Memory struct {
	lock sync.RWMutex

	lastExecution int64
	lastDetail    int64

	executions map[int64]*structs.JobExecution
	details    map[int64]*structs.JobExecutionDetail
}

func NewMemory() *Memory {
	return &Memory{
		executions: map[int64]*structs.JobExecution{},
		details:    map[int64]*structs.JobExecutionDetail{},
	}
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) InsertExecution(ctx context.Context, in *structs.JobExecution) (int64, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.lastExecution++
	e := copyExecution(in)
	e.ID = m.lastExecution
	m.executions[e.ID] = e
	return e.ID, nil
}

func (m *Memory) InsertDetail(ctx context.Context, in *structs.JobExecutionDetail) (int64, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.executions[in.ExecutionID]; !ok {
		// mirrors the foreign key on the SQL stores
		return 0, errors.Wrapf(errors.ErrNotFound, "execution %d", in.ExecutionID)
	}

	m.lastDetail++
	d := copyDetail(in)
	d.ID = m.lastDetail
	m.details[d.ID] = d
	return d.ID, nil
}

func (m *Memory) Execution(ctx context.Context, id int64) (*structs.JobExecution, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	e, ok := m.executions[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "execution %d", id)
	}
	return copyExecution(e), nil
}

func (m *Memory) Detail(ctx context.Context, id int64) (*structs.JobExecutionDetail, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	d, ok := m.details[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "detail %d", id)
	}
	return copyDetail(d), nil
}

func (m *Memory) Executions(ctx context.Context, q *structs.Query) ([]*structs.JobExecution, error) {
	m.lock.RLock()
	matched := []*structs.JobExecution{}
	for _, e := range m.executions {
		if matches(q, e) {
			matched = append(matched, copyExecution(e))
		}
	}
	m.lock.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].StartTime.Equal(matched[j].StartTime) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].StartTime.After(matched[j].StartTime)
	})

	if q.Offset >= len(matched) {
		return []*structs.JobExecution{}, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (m *Memory) Details(ctx context.Context, executionID int64) ([]*structs.JobExecutionDetail, error) {
	m.lock.RLock()
	out := []*structs.JobExecutionDetail{}
	for _, d := range m.details {
		if d.ExecutionID == executionID {
			out = append(out, copyDetail(d))
		}
	}
	m.lock.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].StepOrder == out[j].StepOrder {
			return out[i].ID < out[j].ID
		}
		return out[i].StepOrder < out[j].StepOrder
	})
	return out, nil
}

func (m *Memory) FinishExecution(ctx context.Context, id int64, status structs.Status, end time.Time, errMsg *string, attrs structs.Attributes) (int64, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	e, ok := m.executions[id]
	if !ok || e.Status != structs.RUNNING {
		return 0, nil
	}
	e.Status = status
	e.EndTime = &end
	e.ErrorMessage = copyString(errMsg)
	e.Attributes = attrs.Copy()
	return 1, nil
}

func (m *Memory) FinishDetail(ctx context.Context, id int64, status structs.Status, end time.Time, msg *string) (int64, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	d, ok := m.details[id]
	if !ok || d.Status != structs.RUNNING {
		return 0, nil
	}
	d.Status = status
	d.EndTime = &end
	if msg != nil {
		d.StepMessage = copyString(msg)
	}
	return 1, nil
}

func (m *Memory) CountByStatus(ctx context.Context, q *structs.Query) (map[structs.Status]int64, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	out := map[structs.Status]int64{}
	for _, e := range m.executions {
		if matches(q, e) {
			out[e.Status]++
		}
	}
	return out, nil
}

// matches applies the query filters (not limit / offset) to an execution.
func matches(q *structs.Query, e *structs.JobExecution) bool {
	if len(q.JobNames) > 0 && !contains(q.JobNames, e.JobName) {
		return false
	}
	if len(q.Statuses) > 0 && !contains(q.Statuses, e.Status) {
		return false
	}
	return structs.Window{From: q.StartedFrom, To: q.StartedBefore}.Contains(e.StartTime)
}

func contains[T comparable](in []T, v T) bool {
	for _, i := range in {
		if i == v {
			return true
		}
	}
	return false
}

func copyExecution(in *structs.JobExecution) *structs.JobExecution {
	out := *in
	out.ErrorMessage = copyString(in.ErrorMessage)
	out.Attributes = in.Attributes.Copy()
	if in.EndTime != nil {
		end := *in.EndTime
		out.EndTime = &end
	}
	return &out
}

func copyDetail(in *structs.JobExecutionDetail) *structs.JobExecutionDetail {
	out := *in
	out.StepMessage = copyString(in.StepMessage)
	if in.EndTime != nil {
		end := *in.EndTime
		out.EndTime = &end
	}
	return &out
}

func copyString(in *string) *string {
	if in == nil {
		return nil
	}
	s := *in
	return &s
}
