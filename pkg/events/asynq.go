package events

import (
	"context"
	"sync"
	"time"

	"github.com/hibiken/asynq"

	"github.com/voidshard/etlmon/pkg/errors"
	"github.com/voidshard/etlmon/pkg/structs"
)

var timeNow = func() time.Time { return time.Now().UTC() }

// Asynq publishes events as asynq tasks on a redis queue.
type Asynq struct {
	opts *Options
	cli  *asynq.Client
}

func NewAsynqPublisher(opts *Options) (*Asynq, error) {
	opts.SetDefaults()
	conn, err := redisConn(opts)
	if err != nil {
		return nil, err
	}
	return &Asynq{opts: opts, cli: asynq.NewClient(conn)}, nil
}

func (a *Asynq) ExecutionFinished(ctx context.Context, e *structs.JobExecution) error {
	return a.enqueue(ctx, newExecutionEvent(e, timeNow()))
}

func (a *Asynq) StepFinished(ctx context.Context, d *structs.JobExecutionDetail) error {
	return a.enqueue(ctx, newStepEvent(d, timeNow()))
}

func (a *Asynq) Close() error {
	return a.cli.Close()
}

func (a *Asynq) enqueue(ctx context.Context, evt *Event) error {
	task, err := toTask(evt)
	if err != nil {
		return err
	}
	_, err = a.cli.EnqueueContext(ctx, task, a.taskOptions()...)
	return err
}

func (a *Asynq) taskOptions() []asynq.Option {
	return []asynq.Option{
		asynq.Queue(a.opts.Queue),
		asynq.MaxRetry(a.opts.MaxRetry),
		asynq.Retention(a.opts.Retention),
	}
}

// Listener consumes events from the queue.
type Listener struct {
	opts *Options

	lock sync.Mutex
	mux  *asynq.ServeMux
	srv  *asynq.Server
}

func NewListener(opts *Options) (*Listener, error) {
	opts.SetDefaults()
	conn, err := redisConn(opts)
	if err != nil {
		return nil, err
	}
	srv := asynq.NewServer(conn, asynq.Config{
		Concurrency: opts.Workers,
		Queues:      map[string]int{opts.Queue: 1},
	})
	return &Listener{opts: opts, srv: srv, mux: asynq.NewServeMux()}, nil
}

// Handle registers a handler for every event type.
func (l *Listener) Handle(handler Handler) {
	l.lock.Lock()
	defer l.lock.Unlock()
	for _, typ := range []string{TypeExecutionFinished, TypeStepFinished} {
		l.mux.HandleFunc(typ, wrap(handler))
	}
}

// Run processes events until Close is called.
func (l *Listener) Run() error {
	return l.srv.Run(l.mux)
}

func (l *Listener) Close() error {
	l.srv.Shutdown()
	return nil
}

// wrap turns a Handler into an asynq handler. Payloads we can't read will never
// become readable, so they skip retries.
func wrap(handler Handler) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		evt, err := decode(t.Type(), t.Payload())
		if err != nil {
			return errors.Wrapf(asynq.SkipRetry, "bad event payload: %v", err)
		}
		return handler(ctx, evt)
	}
}

func toTask(evt *Event) (*asynq.Task, error) {
	data, err := encode(evt)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(evt.Type, data), nil
}

func redisConn(opts *Options) (asynq.RedisConnOpt, error) {
	conn, err := asynq.ParseRedisURI(opts.URL)
	if err != nil {
		return nil, err
	}
	if opts.TLSConfig == nil {
		return conn, nil
	}
	switch c := conn.(type) {
	case asynq.RedisClientOpt:
		c.TLSConfig = opts.TLSConfig
		return c, nil
	case asynq.RedisFailoverClientOpt:
		c.TLSConfig = opts.TLSConfig
		return c, nil
	default:
		return conn, nil
	}
}
