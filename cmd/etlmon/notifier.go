package main

import (
	"context"

	"github.com/voidshard/etlmon/pkg/errors"
	"github.com/voidshard/etlmon/pkg/events"
)

const (
	docNotifier = `Consume finished execution & step events and log alerts.

Executions that did not succeed and failed steps are logged at warn
level, everything else at debug.`
)

type optsNotifier struct {
	optsGeneral
	optsEvents

	Workers int `long:"workers" env:"WORKERS" description:"Events handled at once"`
}

func (c *optsNotifier) Execute(args []string) error {
	cfg, err := c.load()
	if err != nil {
		return err
	}
	log, err := c.logger()
	if err != nil {
		return err
	}
	defer log.Sync()

	evOpts, err := c.optsEvents.options(cfg)
	if err != nil {
		return err
	}
	if evOpts.URL == "" {
		return errors.Wrap(errors.ErrInvalidArg, "notifier requires an events url")
	}
	evOpts.Workers = c.Workers

	l, err := events.NewListener(evOpts)
	if err != nil {
		return err
	}

	l.Handle(func(ctx context.Context, evt *events.Event) error {
		if !evt.IsAlert() {
			log.Debugw("event", "type", evt.Type, "at", evt.At)
			return nil
		}
		switch {
		case evt.Execution != nil:
			e := evt.Execution
			msg := ""
			if e.ErrorMessage != nil {
				msg = *e.ErrorMessage
			}
			log.Warnw("execution did not succeed", "id", e.ID, "job_name", e.JobName, "status", e.Status, "error_message", msg)
		case evt.Detail != nil:
			d := evt.Detail
			log.Warnw("step failed", "id", d.ID, "execution_id", d.ExecutionID, "step_name", d.StepName, "step_order", d.StepOrder)
		}
		return nil
	})

	log.Infow("listening for events", "queue", evOpts.Queue)
	return l.Run()
}
