package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/etlmon/pkg/errors"
	"github.com/voidshard/etlmon/pkg/structs"
)

var base = time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)

func stores(t *testing.T) map[string]Database {
	path := filepath.Join(t.TempDir(), "etlmon.db")
	lite, err := New(&Options{URL: "sqlite3://" + path, AutoMigrate: true})
	require.Nil(t, err)
	t.Cleanup(func() { lite.Close() })

	return map[string]Database{
		"Memory": NewMemory(),
		"SQLite": lite,
	}
}

func newExecution(name string, offset time.Duration) *structs.JobExecution {
	return &structs.JobExecution{
		JobName:   name,
		Status:    structs.RUNNING,
		StartTime: base.Add(offset),
		CreatedAt: base.Add(offset),
	}
}

func TestStoreExecutionLifecycle(t *testing.T) {
	for name, db := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			in := newExecution("Nightly_Load", 0)
			in.Attributes = structs.Attributes{structs.AttrServerName: "etl01"}

			id, err := db.InsertExecution(ctx, in)
			require.Nil(t, err)
			assert.True(t, id > 0)

			e, err := db.Execution(ctx, id)
			require.Nil(t, err)
			assert.Equal(t, id, e.ID)
			assert.Equal(t, "Nightly_Load", e.JobName)
			assert.Equal(t, structs.RUNNING, e.Status)
			assert.True(t, base.Equal(e.StartTime))
			assert.Nil(t, e.EndTime)
			assert.Nil(t, e.ErrorMessage)
			assert.Equal(t, "etl01", e.Attributes[structs.AttrServerName])

			msg := "constraint violation"
			end := base.Add(time.Minute)
			rows, err := db.FinishExecution(ctx, id, structs.FAILURE, end, &msg, e.Attributes.Merge(structs.Attributes{structs.AttrRowsProcessed: 3}))
			require.Nil(t, err)
			assert.Equal(t, int64(1), rows)

			// already terminal, the conditional update matches nothing
			rows, err = db.FinishExecution(ctx, id, structs.SUCCESS, end, nil, nil)
			require.Nil(t, err)
			assert.Equal(t, int64(0), rows)

			e, err = db.Execution(ctx, id)
			require.Nil(t, err)
			assert.Equal(t, structs.FAILURE, e.Status)
			require.NotNil(t, e.EndTime)
			assert.True(t, end.Equal(*e.EndTime))
			require.NotNil(t, e.ErrorMessage)
			assert.Equal(t, msg, *e.ErrorMessage)
			assert.Equal(t, "etl01", e.Attributes[structs.AttrServerName])
			assert.NotNil(t, e.Attributes[structs.AttrRowsProcessed])
		})
	}
}

func TestStoreMissing(t *testing.T) {
	for name, db := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := db.Execution(ctx, 404)
			assert.True(t, errors.Is(err, errors.ErrNotFound))

			_, err = db.Detail(ctx, 404)
			assert.True(t, errors.Is(err, errors.ErrNotFound))

			rows, err := db.FinishExecution(ctx, 404, structs.SUCCESS, base, nil, nil)
			assert.Nil(t, err)
			assert.Equal(t, int64(0), rows)

			rows, err = db.FinishDetail(ctx, 404, structs.SUCCESS, base, nil)
			assert.Nil(t, err)
			assert.Equal(t, int64(0), rows)

			details, err := db.Details(ctx, 404)
			assert.Nil(t, err)
			assert.Equal(t, 0, len(details))
		})
	}
}

func TestStoreDetails(t *testing.T) {
	for name, db := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			execID, err := db.InsertExecution(ctx, newExecution("Nightly_Load", 0))
			require.Nil(t, err)

			msgA := "A"
			ids := map[int]int64{}
			for _, order := range []int{3, 1, 2} {
				id, err := db.InsertDetail(ctx, &structs.JobExecutionDetail{
					ExecutionID: execID,
					StepName:    "step",
					StepOrder:   order,
					Status:      structs.RUNNING,
					StepMessage: &msgA,
					StartTime:   base,
					CreatedAt:   base,
				})
				require.Nil(t, err)
				ids[order] = id
			}

			details, err := db.Details(ctx, execID)
			require.Nil(t, err)
			require.Equal(t, 3, len(details))
			assert.Equal(t, 1, details[0].StepOrder)
			assert.Equal(t, 2, details[1].StepOrder)
			assert.Equal(t, 3, details[2].StepOrder)

			// nil message keeps the previous one
			rows, err := db.FinishDetail(ctx, ids[1], structs.SUCCESS, base.Add(time.Second), nil)
			require.Nil(t, err)
			assert.Equal(t, int64(1), rows)

			d, err := db.Detail(ctx, ids[1])
			require.Nil(t, err)
			assert.Equal(t, structs.SUCCESS, d.Status)
			require.NotNil(t, d.StepMessage)
			assert.Equal(t, "A", *d.StepMessage)
			require.NotNil(t, d.EndTime)

			msgB := "B"
			rows, err = db.FinishDetail(ctx, ids[2], structs.FAILURE, base.Add(time.Second), &msgB)
			require.Nil(t, err)
			assert.Equal(t, int64(1), rows)

			d, err = db.Detail(ctx, ids[2])
			require.Nil(t, err)
			assert.Equal(t, "B", *d.StepMessage)

			rows, err = db.FinishDetail(ctx, ids[2], structs.SUCCESS, base.Add(time.Second), nil)
			require.Nil(t, err)
			assert.Equal(t, int64(0), rows)
		})
	}
}

func TestStoreQueries(t *testing.T) {
	for name, db := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			finish := func(name string, offset time.Duration, status structs.Status) int64 {
				id, err := db.InsertExecution(ctx, newExecution(name, offset))
				require.Nil(t, err)
				if status != structs.RUNNING {
					_, err = db.FinishExecution(ctx, id, status, base.Add(offset+time.Minute), nil, nil)
					require.Nil(t, err)
				}
				return id
			}

			a1 := finish("a", 0, structs.SUCCESS)
			a2 := finish("a", time.Hour, structs.FAILURE)
			b1 := finish("b", 2*time.Hour, structs.SUCCESS)
			b2 := finish("b", 3*time.Hour, structs.RUNNING)

			all, err := db.Executions(ctx, &structs.Query{Limit: 10})
			require.Nil(t, err)
			require.Equal(t, 4, len(all))
			assert.Equal(t, []int64{b2, b1, a2, a1}, []int64{all[0].ID, all[1].ID, all[2].ID, all[3].ID})

			limited, err := db.Executions(ctx, &structs.Query{Limit: 2, Offset: 1})
			require.Nil(t, err)
			require.Equal(t, 2, len(limited))
			assert.Equal(t, b1, limited[0].ID)

			named, err := db.Executions(ctx, &structs.Query{Limit: 10, JobNames: []string{"a"}})
			require.Nil(t, err)
			assert.Equal(t, 2, len(named))

			failed, err := db.Executions(ctx, &structs.Query{Limit: 10, Statuses: []structs.Status{structs.FAILURE}})
			require.Nil(t, err)
			require.Equal(t, 1, len(failed))
			assert.Equal(t, a2, failed[0].ID)

			from := base.Add(time.Hour)
			to := base.Add(3 * time.Hour)
			windowed, err := db.Executions(ctx, &structs.Query{Limit: 10, StartedFrom: &from, StartedBefore: &to})
			require.Nil(t, err)
			require.Equal(t, 2, len(windowed))
			assert.Equal(t, b1, windowed[0].ID)
			assert.Equal(t, a2, windowed[1].ID)

			counts, err := db.CountByStatus(ctx, &structs.Query{})
			require.Nil(t, err)
			assert.Equal(t, map[structs.Status]int64{
				structs.SUCCESS: 2,
				structs.FAILURE: 1,
				structs.RUNNING: 1,
			}, counts)

			counts, err = db.CountByStatus(ctx, &structs.Query{JobNames: []string{"b"}, StartedFrom: &from, StartedBefore: &to})
			require.Nil(t, err)
			assert.Equal(t, map[structs.Status]int64{structs.SUCCESS: 1}, counts)

			counts, err = db.CountByStatus(ctx, &structs.Query{JobNames: []string{"nope"}})
			require.Nil(t, err)
			assert.Equal(t, 0, len(counts))
		})
	}
}

func TestMemoryRejectsOrphanDetail(t *testing.T) {
	db := NewMemory()

	_, err := db.InsertDetail(context.Background(), &structs.JobExecutionDetail{ExecutionID: 9, Status: structs.RUNNING})

	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestMemoryCopiesOnRead(t *testing.T) {
	db := NewMemory()
	ctx := context.Background()

	id, err := db.InsertExecution(ctx, newExecution("a", 0))
	require.Nil(t, err)

	e, err := db.Execution(ctx, id)
	require.Nil(t, err)
	e.Status = structs.CANCELLED

	again, err := db.Execution(ctx, id)
	require.Nil(t, err)
	assert.Equal(t, structs.RUNNING, again.Status)
}

func TestMigrateVersion(t *testing.T) {
	opts := &Options{URL: "sqlite3://" + filepath.Join(t.TempDir(), "v.db")}

	v, dirty, err := MigrateVersion(opts)
	require.Nil(t, err)
	assert.Equal(t, uint(0), v)
	assert.False(t, dirty)

	require.Nil(t, Migrate(opts))
	require.Nil(t, Migrate(opts)) // no change is fine

	v, dirty, err = MigrateVersion(opts)
	require.Nil(t, err)
	assert.Equal(t, uint(1), v)
	assert.False(t, dirty)

	require.Nil(t, MigrateDown(opts))
}

func TestMigrateMemory(t *testing.T) {
	err := Migrate(&Options{URL: "memory://"})
	assert.True(t, errors.Is(err, errors.ErrInvalidArg))
}

func TestMigrateUnreachable(t *testing.T) {
	opts := &Options{URL: "sqlite3://" + filepath.Join(t.TempDir(), "missing", "dir", "v.db")}

	err := Migrate(opts)
	assert.True(t, errors.Is(err, errors.ErrUnavailable), "got %v", err)

	_, _, err = MigrateVersion(opts)
	assert.True(t, errors.Is(err, errors.ErrUnavailable), "got %v", err)
}
