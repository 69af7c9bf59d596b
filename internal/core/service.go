package core

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/voidshard/etlmon/pkg/database"
	"github.com/voidshard/etlmon/pkg/errors"
	"github.com/voidshard/etlmon/pkg/events"
	"github.com/voidshard/etlmon/pkg/structs"
)

const (
	// default list sizes
	defRecentLimit  = 50
	defFailedLimit  = 20
	defHistoryLimit = 50
)

var (
	// timeNow is the engine's clock. Postgres keeps microseconds, so we never
	// hand out more precision than can be read back.
	timeNow = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }
)

// Service is the execution lifecycle engine and statistics aggregator.
//
// It holds no state of its own between calls; everything goes through the store.
type Service struct {
	db  database.Database
	pub events.Publisher
	log *zap.SugaredLogger
}

func NewService(db database.Database, pub events.Publisher, log *zap.SugaredLogger) *Service {
	if pub == nil {
		pub = events.Noop{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{db: db, pub: pub, log: log}
}

func (c *Service) Close() error {
	perr := c.pub.Close()
	derr := c.db.Close()
	if derr != nil {
		return derr
	}
	return perr
}

// StartExecution records a new running execution of the named job.
func (c *Service) StartExecution(ctx context.Context, req *structs.StartExecutionRequest) (int64, error) {
	if req == nil {
		return 0, errors.Wrap(errors.ErrInvalidArg, "no request given")
	}
	name, err := validateJobName(req.JobName)
	if err != nil {
		return 0, err
	}
	if err := validateAttributes(req.Attributes); err != nil {
		return 0, err
	}

	now := timeNow()
	id, err := c.db.InsertExecution(ctx, &structs.JobExecution{
		JobName:    name,
		Status:     structs.RUNNING,
		StartTime:  now,
		Attributes: req.Attributes.Copy(),
		CreatedAt:  now,
	})
	if err != nil {
		return 0, errors.Wrapf(err, "start execution of %s", name)
	}

	c.log.Infow("execution started", "execution_id", id, "job_name", name)
	return id, nil
}

// FinishExecution moves a running execution to a terminal status. Finishing an
// execution twice is an error, even with the same status.
func (c *Service) FinishExecution(ctx context.Context, id int64, req *structs.FinishExecutionRequest) error {
	if req == nil {
		return errors.Wrap(errors.ErrInvalidArg, "no request given")
	}
	status, err := toExecutionFinalStatus(id, req.Status)
	if err != nil {
		return err
	}
	if err := validateMessage("error message", req.ErrorMessage); err != nil {
		return err
	}
	if err := validateAttributes(req.Attributes); err != nil {
		return err
	}

	e, err := c.db.Execution(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "finish execution %d as %s", id, status)
	}
	if e.IsFinished() {
		return errors.Wrapf(errors.ErrInvalidState, "execution %d already finished as %s, cannot finish as %s", id, e.Status, status)
	}

	msg := req.ErrorMessage
	if msg != nil && !structs.KeepsErrorMessage(status) {
		c.log.Debugw("discarding error message", "execution_id", id, "status", status)
		msg = nil
	}

	end := notBefore(timeNow(), e.StartTime)
	attrs := e.Attributes.Merge(req.Attributes)

	rows, err := c.db.FinishExecution(ctx, id, status, end, msg, attrs)
	if err != nil {
		return errors.Wrapf(err, "finish execution %d as %s", id, status)
	}
	if rows == 0 {
		// someone else got there between our read and write
		return c.lostExecutionRace(ctx, id, status)
	}

	e.Status = status
	e.EndTime = &end
	e.ErrorMessage = msg
	e.Attributes = attrs

	d, _ := e.Duration()
	c.log.Infow("execution finished", "execution_id", id, "job_name", e.JobName, "status", status, "duration", d)

	if err := c.pub.ExecutionFinished(ctx, e); err != nil {
		c.log.Warnw("failed to publish execution event", "execution_id", id, "error", err)
	}
	return nil
}

func (c *Service) lostExecutionRace(ctx context.Context, id int64, status structs.Status) error {
	e, err := c.db.Execution(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "finish execution %d as %s", id, status)
	}
	return errors.Wrapf(errors.ErrInvalidState, "execution %d already finished as %s, cannot finish as %s", id, e.Status, status)
}

// StartStep records a new running step of a running execution.
//
// The parent check is read-then-insert; a step can start just before a
// concurrent FinishExecution lands and so outlive its parent.
func (c *Service) StartStep(ctx context.Context, executionID int64, req *structs.StartStepRequest) (int64, error) {
	if req == nil {
		return 0, errors.Wrap(errors.ErrInvalidArg, "no request given")
	}
	name, err := validateStepName(req.StepName)
	if err != nil {
		return 0, err
	}
	if err := validateMessage("step message", req.StepMessage); err != nil {
		return 0, err
	}

	e, err := c.db.Execution(ctx, executionID)
	if err != nil {
		return 0, errors.Wrapf(err, "start step %s", name)
	}
	if e.IsFinished() {
		return 0, errors.Wrapf(errors.ErrInvalidState, "execution %d already finished as %s, cannot start step %s", executionID, e.Status, name)
	}

	start := notBefore(timeNow(), e.StartTime)
	id, err := c.db.InsertDetail(ctx, &structs.JobExecutionDetail{
		ExecutionID: executionID,
		StepName:    name,
		StepOrder:   req.StepOrder,
		Status:      structs.RUNNING,
		StepMessage: req.StepMessage,
		StartTime:   start,
		CreatedAt:   start,
	})
	if err != nil {
		return 0, errors.Wrapf(err, "start step %s of execution %d", name, executionID)
	}

	c.log.Debugw("step started", "execution_id", executionID, "detail_id", id, "step_name", name, "step_order", req.StepOrder)
	return id, nil
}

// FinishStep moves a running step to Success or Failure. A nil message keeps
// whatever message the step started with.
func (c *Service) FinishStep(ctx context.Context, detailID int64, req *structs.FinishStepRequest) error {
	if req == nil {
		return errors.Wrap(errors.ErrInvalidArg, "no request given")
	}

	// an unknown step is NotFound whatever status was asked for
	d, err := c.db.Detail(ctx, detailID)
	if err != nil {
		return errors.Wrapf(err, "finish step %d as %q", detailID, req.Status)
	}

	status, err := toStepFinalStatus(detailID, req.Status)
	if err != nil {
		return err
	}
	if err := validateMessage("step message", req.StepMessage); err != nil {
		return err
	}
	if d.IsFinished() {
		return errors.Wrapf(errors.ErrInvalidState, "step %d already finished as %s, cannot finish as %s", detailID, d.Status, status)
	}

	end := notBefore(timeNow(), d.StartTime)
	rows, err := c.db.FinishDetail(ctx, detailID, status, end, req.StepMessage)
	if err != nil {
		return errors.Wrapf(err, "finish step %d as %s", detailID, status)
	}
	if rows == 0 {
		return errors.Wrapf(errors.ErrInvalidState, "step %d was finished concurrently, cannot finish as %s", detailID, status)
	}

	d.Status = status
	d.EndTime = &end
	if req.StepMessage != nil {
		d.StepMessage = req.StepMessage
	}

	c.log.Debugw("step finished", "execution_id", d.ExecutionID, "detail_id", detailID, "status", status)

	if err := c.pub.StepFinished(ctx, d); err != nil {
		c.log.Warnw("failed to publish step event", "detail_id", detailID, "error", err)
	}
	return nil
}

// GetExecution returns nil (and no error) if there is no such execution.
func (c *Service) GetExecution(ctx context.Context, id int64) (*structs.JobExecution, error) {
	e, err := c.db.Execution(ctx, id)
	if errors.Is(err, errors.ErrNotFound) {
		return nil, nil
	}
	return e, err
}

// GetSteps returns the steps of an execution by ascending step order. An
// unknown execution simply has no steps.
func (c *Service) GetSteps(ctx context.Context, executionID int64) ([]*structs.JobExecutionDetail, error) {
	return c.db.Details(ctx, executionID)
}

// ListRecent returns the most recently started executions.
func (c *Service) ListRecent(ctx context.Context, limit int) ([]*structs.JobExecution, error) {
	return c.db.Executions(ctx, &structs.Query{Limit: structs.ClampLimit(limit, defRecentLimit)})
}

// ListFailed returns the most recently started executions that failed.
func (c *Service) ListFailed(ctx context.Context, limit int) ([]*structs.JobExecution, error) {
	return c.db.Executions(ctx, &structs.Query{
		Limit:    structs.ClampLimit(limit, defFailedLimit),
		Statuses: []structs.Status{structs.FAILURE},
	})
}

// ListByJobName returns the execution history of a job, most recent first.
// A job with no executions is NotFound.
func (c *Service) ListByJobName(ctx context.Context, jobName string, limit int) ([]*structs.JobExecution, error) {
	name, err := validateJobName(jobName)
	if err != nil {
		return nil, err
	}
	found, err := c.db.Executions(ctx, &structs.Query{
		Limit:    structs.ClampLimit(limit, defHistoryLimit),
		JobNames: []string{name},
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "no executions of job %s", name)
	}
	return found, nil
}

// LastExecution returns the most recently started execution of a job.
func (c *Service) LastExecution(ctx context.Context, jobName string) (*structs.JobExecution, error) {
	found, err := c.ListByJobName(ctx, jobName, 1)
	if err != nil {
		return nil, err
	}
	return found[0], nil
}

// Filter returns executions matching every set field of the query.
func (c *Service) Filter(ctx context.Context, q *structs.Query) ([]*structs.JobExecution, error) {
	if q == nil {
		q = &structs.Query{}
	}
	q = q.Copy()
	q.Sanitize()
	for i, s := range q.Statuses {
		st := structs.ToStatus(string(s))
		if st == "" {
			return nil, errors.Wrapf(errors.ErrInvalidArg, "unknown status %q", s)
		}
		q.Statuses[i] = st
	}
	if err := validateWindow(structs.Window{From: q.StartedFrom, To: q.StartedBefore}); err != nil {
		return nil, err
	}
	return c.db.Executions(ctx, q)
}
