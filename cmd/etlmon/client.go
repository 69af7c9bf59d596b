package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/voidshard/etlmon/pkg/api/http/client"
	"github.com/voidshard/etlmon/pkg/structs"
)

const (
	docStart      = `Start an execution of a job, prints the new execution id.`
	docFinish     = `Finish a running execution as Sucesso, Falha, Parcial or Cancelado.`
	docStepStart  = `Start a step of a running execution, prints the new step id.`
	docStepFinish = `Finish a running step as Sucesso or Falha.`
	docStats      = `Print statistics over executions, optionally for one job and a time window.`

	requestTimeout = 30 * time.Second
)

type optsStart struct {
	optsClient

	JobName    string            `long:"job-name" required:"true" description:"Name of the job"`
	Attributes map[string]string `long:"attr" description:"Attribute recorded with the execution (key:value), repeatable"`
}

func (c *optsStart) Execute(args []string) error {
	return c.run(func(ctx context.Context, cl *client.Client) (interface{}, error) {
		id, err := cl.StartExecution(ctx, &structs.StartExecutionRequest{
			JobName:    c.JobName,
			Attributes: toAttributes(c.Attributes),
		})
		return &structs.StartExecutionResponse{ID: id}, err
	})
}

type optsFinish struct {
	optsClient

	ID           int64             `long:"id" required:"true" description:"Execution id"`
	Status       string            `long:"status" required:"true" description:"Final status"`
	ErrorMessage string            `long:"error" description:"Error message, kept for Falha & Parcial"`
	Attributes   map[string]string `long:"attr" description:"Attribute merged into the execution (key:value), repeatable"`
}

func (c *optsFinish) Execute(args []string) error {
	return c.run(func(ctx context.Context, cl *client.Client) (interface{}, error) {
		req := &structs.FinishExecutionRequest{
			Status:     structs.Status(c.Status),
			Attributes: toAttributes(c.Attributes),
		}
		if c.ErrorMessage != "" {
			req.ErrorMessage = &c.ErrorMessage
		}
		err := cl.FinishExecution(ctx, c.ID, req)
		if err != nil {
			return nil, err
		}
		return cl.GetExecution(ctx, c.ID)
	})
}

type optsStepStart struct {
	optsClient

	ExecutionID int64  `long:"execution-id" required:"true" description:"Execution the step belongs to"`
	StepName    string `long:"step-name" required:"true" description:"Name of the step"`
	StepOrder   int    `long:"step-order" description:"Position of the step within the execution"`
	Message     string `long:"message" description:"Message recorded with the step"`
}

func (c *optsStepStart) Execute(args []string) error {
	return c.run(func(ctx context.Context, cl *client.Client) (interface{}, error) {
		req := &structs.StartStepRequest{StepName: c.StepName, StepOrder: c.StepOrder}
		if c.Message != "" {
			req.StepMessage = &c.Message
		}
		id, err := cl.StartStep(ctx, c.ExecutionID, req)
		return &structs.StartStepResponse{ID: id}, err
	})
}

type optsStepFinish struct {
	optsClient

	ID      int64  `long:"id" required:"true" description:"Step id"`
	Status  string `long:"status" required:"true" description:"Final status"`
	Message string `long:"message" description:"Replaces the step message"`
}

func (c *optsStepFinish) Execute(args []string) error {
	return c.run(func(ctx context.Context, cl *client.Client) (interface{}, error) {
		req := &structs.FinishStepRequest{Status: structs.Status(c.Status)}
		if c.Message != "" {
			req.StepMessage = &c.Message
		}
		return nil, cl.FinishStep(ctx, c.ID, req)
	})
}

type optsStats struct {
	optsClient

	JobName string `long:"job-name" description:"Only count this job"`
	Since   string `long:"since" description:"Only count executions started at or after this duration ago (eg. 24h)"`
}

func (c *optsStats) Execute(args []string) error {
	return c.run(func(ctx context.Context, cl *client.Client) (interface{}, error) {
		w := structs.Window{}
		if c.Since != "" {
			d, err := time.ParseDuration(c.Since)
			if err != nil {
				return nil, err
			}
			from := time.Now().Add(-d)
			w.From = &from
		}
		return cl.Statistics(ctx, w, c.JobName)
	})
}

// run calls the server and prints the result as JSON on stdout.
func (o *optsClient) run(fn func(context.Context, *client.Client) (interface{}, error)) error {
	cl, err := client.New(o.serverURL())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	out, err := fn(ctx, cl)
	if err != nil || out == nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toAttributes(in map[string]string) structs.Attributes {
	if len(in) == 0 {
		return nil
	}
	out := structs.Attributes{}
	for k, v := range in {
		out[k] = v
	}
	return out
}
