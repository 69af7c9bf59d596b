package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/voidshard/etlmon/pkg/api/http/common"
	"github.com/voidshard/etlmon/pkg/structs"
)

// Client talks to an etlmon API server.
type Client struct {
	url  *url.URL
	http *http.Client
}

func New(address string) (*Client, error) {
	u, err := url.Parse(address)
	return &Client{url: u, http: &http.Client{}}, err
}

// WithHTTPClient swaps the underlying http client (timeouts, transports, tests).
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

func (c *Client) Health(ctx context.Context) error {
	var out common.HealthResponse
	return c.get(ctx, c.addr(common.API_HEALTH), &out)
}

func (c *Client) StartExecution(ctx context.Context, req *structs.StartExecutionRequest) (int64, error) {
	var out common.IDResponse
	err := c.post(ctx, c.addr(common.API_JOBS_START), req, &out)
	return out.ID, err
}

func (c *Client) FinishExecution(ctx context.Context, id int64, req *structs.FinishExecutionRequest) error {
	var out common.AckResponse
	return c.post(ctx, c.addr(common.API_EXECUTION_FINISH, idString(id)), req, &out)
}

func (c *Client) StartStep(ctx context.Context, executionID int64, req *structs.StartStepRequest) (int64, error) {
	var out common.IDResponse
	err := c.post(ctx, c.addr(common.API_EXECUTION_STEPS, idString(executionID)), req, &out)
	return out.ID, err
}

func (c *Client) FinishStep(ctx context.Context, detailID int64, req *structs.FinishStepRequest) error {
	var out common.AckResponse
	return c.post(ctx, c.addr(common.API_STEP_FINISH, idString(detailID)), req, &out)
}

// GetExecution returns the execution, or ErrNotFound.
func (c *Client) GetExecution(ctx context.Context, id int64) (*structs.JobExecution, error) {
	var out structs.JobExecution
	return &out, c.get(ctx, c.addr(common.API_EXECUTION, idString(id)), &out)
}

func (c *Client) GetSteps(ctx context.Context, executionID int64) ([]*structs.JobExecutionDetail, error) {
	var out []*structs.JobExecutionDetail
	return out, c.get(ctx, c.addr(common.API_EXECUTION_DETAILS, idString(executionID)), &out)
}

func (c *Client) ListRecent(ctx context.Context, limit int) ([]*structs.JobExecution, error) {
	addr := c.addr(common.API_JOBS)
	setLimit(addr, limit)
	var out []*structs.JobExecution
	return out, c.get(ctx, addr, &out)
}

func (c *Client) ListFailed(ctx context.Context, limit int) ([]*structs.JobExecution, error) {
	addr := c.addr(common.API_JOBS_FAILED)
	setLimit(addr, limit)
	var out []*structs.JobExecution
	return out, c.get(ctx, addr, &out)
}

func (c *Client) ListByJobName(ctx context.Context, jobName string, limit int) ([]*structs.JobExecution, error) {
	addr := c.addr(common.API_JOB_HISTORY, jobName)
	setLimit(addr, limit)
	var out []*structs.JobExecution
	return out, c.get(ctx, addr, &out)
}

func (c *Client) LastExecution(ctx context.Context, jobName string) (*structs.JobExecution, error) {
	var out structs.JobExecution
	return &out, c.get(ctx, c.addr(common.API_JOB_BY_NAME, jobName), &out)
}

func (c *Client) Filter(ctx context.Context, q *structs.Query) ([]*structs.JobExecution, error) {
	addr := c.addr(common.API_JOBS_FILTER)
	setQueryString(addr, q)
	var out []*structs.JobExecution
	return out, c.get(ctx, addr, &out)
}

func (c *Client) SuccessRateForJob(ctx context.Context, jobName string, w structs.Window) (float64, error) {
	addr := c.addr(common.API_JOB_SUCCESS_RATE, jobName)
	setWindow(addr, w)
	var out structs.SuccessRateResponse
	err := c.get(ctx, addr, &out)
	return out.SuccessRate, err
}

func (c *Client) Statistics(ctx context.Context, w structs.Window, jobName string) (*structs.Statistics, error) {
	addr := c.addr(common.API_JOBS_STATISTICS)
	setWindow(addr, w)
	if jobName != "" {
		values := addr.Query()
		values.Set(common.QueryJobName, jobName)
		addr.RawQuery = values.Encode()
	}
	var out structs.Statistics
	return &out, c.get(ctx, addr, &out)
}

func (c *Client) Dashboard(ctx context.Context, recent, failed int) (*structs.Dashboard, error) {
	addr := c.addr(common.API_DASHBOARD)
	values := addr.Query()
	if recent > 0 {
		values.Set(common.QueryRecent, strconv.Itoa(recent))
	}
	if failed > 0 {
		values.Set(common.QueryFailed, strconv.Itoa(failed))
	}
	addr.RawQuery = values.Encode()
	var out structs.Dashboard
	return &out, c.get(ctx, addr, &out)
}

func (c *Client) addr(route string, values ...string) *url.URL {
	return &url.URL{Scheme: c.url.Scheme, Host: c.url.Host, Path: common.Expand(route, values...)}
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
