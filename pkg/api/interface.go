package api

import (
	"context"

	"github.com/voidshard/etlmon/pkg/structs"
)

// API represents the functions etlmon servers should expose.
type API interface {
	// Implemented in etlmon/internal/core.Service

	StartExecution(ctx context.Context, req *structs.StartExecutionRequest) (int64, error)
	FinishExecution(ctx context.Context, id int64, req *structs.FinishExecutionRequest) error
	StartStep(ctx context.Context, executionID int64, req *structs.StartStepRequest) (int64, error)
	FinishStep(ctx context.Context, detailID int64, req *structs.FinishStepRequest) error

	GetExecution(ctx context.Context, id int64) (*structs.JobExecution, error)
	GetSteps(ctx context.Context, executionID int64) ([]*structs.JobExecutionDetail, error)
	ListRecent(ctx context.Context, limit int) ([]*structs.JobExecution, error)
	ListFailed(ctx context.Context, limit int) ([]*structs.JobExecution, error)
	ListByJobName(ctx context.Context, jobName string, limit int) ([]*structs.JobExecution, error)
	LastExecution(ctx context.Context, jobName string) (*structs.JobExecution, error)
	Filter(ctx context.Context, q *structs.Query) ([]*structs.JobExecution, error)

	CountTotal(ctx context.Context, w structs.Window) (int64, error)
	CountByStatus(ctx context.Context, status structs.Status, w structs.Window) (int64, error)
	GroupByStatus(ctx context.Context, w structs.Window) (map[structs.Status]int64, error)
	SuccessRate(ctx context.Context, w structs.Window) (float64, error)
	SuccessRateForJob(ctx context.Context, jobName string, w structs.Window) (float64, error)
	Statistics(ctx context.Context, w structs.Window, jobName string) (*structs.Statistics, error)
	Dashboard(ctx context.Context, recent, failed int) (*structs.Dashboard, error)

	Close() error
}

type Server interface {
	ServeForever(api API) error
	Close() error
}
