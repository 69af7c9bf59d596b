package core

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/voidshard/etlmon/pkg/errors"
	"github.com/voidshard/etlmon/pkg/structs"
)

// GroupByStatus counts executions started in the window by status. Only
// statuses with at least one execution appear.
func (c *Service) GroupByStatus(ctx context.Context, w structs.Window) (map[structs.Status]int64, error) {
	return c.groupByStatus(ctx, w, "")
}

// CountTotal counts executions started in the window.
func (c *Service) CountTotal(ctx context.Context, w structs.Window) (int64, error) {
	counts, err := c.groupByStatus(ctx, w, "")
	if err != nil {
		return 0, err
	}
	return sum(counts), nil
}

// CountByStatus counts executions started in the window with the given status.
func (c *Service) CountByStatus(ctx context.Context, status structs.Status, w structs.Window) (int64, error) {
	st := structs.ToStatus(string(status))
	if st == "" {
		return 0, errors.Wrapf(errors.ErrInvalidArg, "unknown status %q", status)
	}
	if err := validateWindow(w); err != nil {
		return 0, err
	}
	q := w.Query("")
	q.Statuses = []structs.Status{st}
	counts, err := c.db.CountByStatus(ctx, q)
	if err != nil {
		return 0, err
	}
	return counts[st], nil
}

// SuccessRate is the percentage of executions in the window that succeeded,
// 0 if there were none.
func (c *Service) SuccessRate(ctx context.Context, w structs.Window) (float64, error) {
	counts, err := c.groupByStatus(ctx, w, "")
	if err != nil {
		return 0, err
	}
	return successRate(counts[structs.SUCCESS], sum(counts)), nil
}

// SuccessRateForJob is SuccessRate restricted to one job.
func (c *Service) SuccessRateForJob(ctx context.Context, jobName string, w structs.Window) (float64, error) {
	name, err := validateJobName(jobName)
	if err != nil {
		return 0, err
	}
	counts, err := c.groupByStatus(ctx, w, name)
	if err != nil {
		return 0, err
	}
	return successRate(counts[structs.SUCCESS], sum(counts)), nil
}

// Statistics summarises executions in the window, optionally for a single job.
// Every number is derived from one grouped read so they agree with each other.
func (c *Service) Statistics(ctx context.Context, w structs.Window, jobName string) (*structs.Statistics, error) {
	if jobName != "" {
		name, err := validateJobName(jobName)
		if err != nil {
			return nil, err
		}
		jobName = name
	}

	counts, err := c.groupByStatus(ctx, w, jobName)
	if err != nil {
		return nil, err
	}

	total := sum(counts)
	return &structs.Statistics{
		JobName:     jobName,
		Period:      w,
		Total:       total,
		Successful:  counts[structs.SUCCESS],
		Failed:      counts[structs.FAILURE],
		SuccessRate: successRate(counts[structs.SUCCESS], total),
		ByStatus:    counts,
	}, nil
}

// Dashboard gathers overall statistics with the recent and failed lists.
func (c *Service) Dashboard(ctx context.Context, recent, failed int) (*structs.Dashboard, error) {
	out := &structs.Dashboard{}

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		stats, err := c.Statistics(gctx, structs.Window{}, "")
		out.Statistics = stats
		return err
	})
	grp.Go(func() error {
		items, err := c.ListRecent(gctx, recent)
		out.Recent = items
		return err
	})
	grp.Go(func() error {
		items, err := c.ListFailed(gctx, failed)
		out.Failed = items
		return err
	})

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Service) groupByStatus(ctx context.Context, w structs.Window, jobName string) (map[structs.Status]int64, error) {
	if err := validateWindow(w); err != nil {
		return nil, err
	}
	counts, err := c.db.CountByStatus(ctx, w.Query(jobName))
	if err != nil {
		return nil, err
	}
	for k, v := range counts {
		if v <= 0 {
			delete(counts, k)
		}
	}
	return counts, nil
}

func sum(counts map[structs.Status]int64) int64 {
	var total int64
	for _, v := range counts {
		total += v
	}
	return total
}

// successRate is a percentage rounded to two places; 0 when there is nothing to measure.
func successRate(success, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(success)*10000/float64(total)) / 100
}
