package events

import (
	"context"
	"crypto/tls"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ie "github.com/voidshard/etlmon/pkg/errors"
	"github.com/voidshard/etlmon/pkg/structs"
)

var at = time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)

func TestToTaskRoundTrip(t *testing.T) {
	msg := "constraint violation"
	e := &structs.JobExecution{ID: 4, JobName: "Nightly_Load", Status: structs.FAILURE, StartTime: at, ErrorMessage: &msg}

	task, err := toTask(newExecutionEvent(e, at))
	require.Nil(t, err)
	assert.Equal(t, TypeExecutionFinished, task.Type())

	result, err := decode(task.Type(), task.Payload())
	require.Nil(t, err)
	assert.Equal(t, int64(4), result.Execution.ID)
	assert.Equal(t, structs.FAILURE, result.Execution.Status)
	assert.Equal(t, msg, *result.Execution.ErrorMessage)
	assert.Nil(t, result.Detail)
	assert.True(t, at.Equal(result.At))
}

func TestDecodeRejects(t *testing.T) {
	cases := []struct {
		Name    string
		Type    string
		Payload string
	}{
		{"NotJSON", TypeStepFinished, "{"},
		{"TypeMismatch", TypeStepFinished, `{"type":"etl:execution:finished","execution":{"id":1}}`},
		{"MissingExecution", TypeExecutionFinished, `{"type":"etl:execution:finished"}`},
		{"MissingDetail", TypeStepFinished, `{"type":"etl:step:finished"}`},
		{"UnknownType", "etl:other", `{"type":"etl:other"}`},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			_, err := decode(c.Type, []byte(c.Payload))
			assert.True(t, ie.Is(err, ie.ErrInvalidArg), "got %v", err)
		})
	}
}

func TestIsAlert(t *testing.T) {
	cases := []struct {
		Name   string
		Given  *Event
		Expect bool
	}{
		{"ExecutionSuccess", &Event{Execution: &structs.JobExecution{Status: structs.SUCCESS}}, false},
		{"ExecutionFailure", &Event{Execution: &structs.JobExecution{Status: structs.FAILURE}}, true},
		{"ExecutionPartial", &Event{Execution: &structs.JobExecution{Status: structs.PARTIAL}}, true},
		{"ExecutionCancelled", &Event{Execution: &structs.JobExecution{Status: structs.CANCELLED}}, true},
		{"StepSuccess", &Event{Detail: &structs.JobExecutionDetail{Status: structs.SUCCESS}}, false},
		{"StepFailure", &Event{Detail: &structs.JobExecutionDetail{Status: structs.FAILURE}}, true},
		{"Empty", &Event{}, false},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, c.Given.IsAlert())
		})
	}
}

func TestWrap(t *testing.T) {
	var got *Event
	h := wrap(func(ctx context.Context, evt *Event) error {
		got = evt
		return nil
	})

	task, err := toTask(newStepEvent(&structs.JobExecutionDetail{ID: 9, StepName: "Load", Status: structs.FAILURE}, at))
	require.Nil(t, err)

	err = h.ProcessTask(context.Background(), task)
	assert.Nil(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(9), got.Detail.ID)

	err = h.ProcessTask(context.Background(), asynq.NewTask(TypeStepFinished, []byte("garbage")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestRedisConn(t *testing.T) {
	cfg := &tls.Config{}

	conn, err := redisConn(&Options{URL: "redis://localhost:6379/2", TLSConfig: cfg})
	require.Nil(t, err)

	opt, ok := conn.(asynq.RedisClientOpt)
	require.True(t, ok)
	assert.Equal(t, "localhost:6379", opt.Addr)
	assert.Equal(t, 2, opt.DB)
	assert.Equal(t, cfg, opt.TLSConfig)

	_, err = redisConn(&Options{URL: "nope://"})
	assert.NotNil(t, err)
}

func TestNewWithoutURL(t *testing.T) {
	pub, err := New(&Options{})
	require.Nil(t, err)

	_, ok := pub.(Noop)
	assert.True(t, ok)
	assert.Nil(t, pub.ExecutionFinished(context.Background(), &structs.JobExecution{}))
	assert.Nil(t, pub.StepFinished(context.Background(), &structs.JobExecutionDetail{}))
	assert.Nil(t, pub.Close())
}

func TestSetDefaults(t *testing.T) {
	opts := &Options{}
	opts.SetDefaults()

	assert.Equal(t, defaultQueue, opts.Queue)
	assert.Equal(t, defaultMaxRetry, opts.MaxRetry)
	assert.Equal(t, defaultRetention, opts.Retention)
	assert.Equal(t, defaultWorkers, opts.Workers)
}
