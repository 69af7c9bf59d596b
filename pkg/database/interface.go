package database

import (
	"context"
	"time"

	"github.com/voidshard/etlmon/pkg/structs"
)

// Database is the durable record store for executions and their steps.
//
// Implementations mark connectivity / driver failures with errors.ErrUnavailable
// and return errors.ErrNotFound from single record lookups that match nothing.
type Database interface {
	// InsertExecution stores a new execution and returns the generated ID.
	InsertExecution(ctx context.Context, in *structs.JobExecution) (int64, error)

	// InsertDetail stores a new step and returns the generated ID.
	InsertDetail(ctx context.Context, in *structs.JobExecutionDetail) (int64, error)

	// Execution returns a single execution by ID.
	Execution(ctx context.Context, id int64) (*structs.JobExecution, error)

	// Detail returns a single step by ID.
	Detail(ctx context.Context, id int64) (*structs.JobExecutionDetail, error)

	// Executions returns executions matching the query, most recent start first.
	Executions(ctx context.Context, q *structs.Query) ([]*structs.JobExecution, error)

	// Details returns all steps of an execution ordered by step order ascending.
	Details(ctx context.Context, executionID int64) ([]*structs.JobExecutionDetail, error)

	// FinishExecution sets the finish time fields of an execution, but only
	// if it is still running. Returns the number of rows changed (0 or 1).
	FinishExecution(ctx context.Context, id int64, status structs.Status, end time.Time, errMsg *string, attrs structs.Attributes) (int64, error)

	// FinishDetail sets the finish time fields of a step, but only if it is still
	// running. A nil message keeps whatever message the step already has.
	// Returns the number of rows changed (0 or 1).
	FinishDetail(ctx context.Context, id int64, status structs.Status, end time.Time, msg *string) (int64, error)

	// CountByStatus groups executions matching the query (limit & offset are ignored)
	// by status. Statuses with no executions are absent.
	CountByStatus(ctx context.Context, q *structs.Query) (map[structs.Status]int64, error)

	Close() error
}
