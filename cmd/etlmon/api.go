package main

import (
	"github.com/voidshard/etlmon/internal/config"
	"github.com/voidshard/etlmon/pkg/api"
	"github.com/voidshard/etlmon/pkg/api/http/server"
)

const (
	docApi = `Run the API server.

Callers record executions & steps over HTTP, and read back lists,
statistics & the dashboard. When an events url is set every finished
execution and step is also published for the notifier.`
)

type optsAPI struct {
	optsGeneral
	optsDatabase
	optsEvents

	Addr      string  `long:"addr" env:"ADDR" description:"Address to bind to (default localhost:8100)"`
	TLSCert   string  `long:"cert" env:"CERT" description:"Path to TLS certificate"`
	TLSKey    string  `long:"key" env:"KEY" description:"Path to TLS key"`
	RateLimit float64 `long:"rate-limit" env:"RATE_LIMIT" description:"Requests per second served, 0 is unlimited"`
	Burst     int     `long:"burst" env:"BURST" description:"Requests allowed over the rate at once"`
}

func (c *optsAPI) Execute(args []string) error {
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

	svc, err := api.New(c.optsDatabase.options(cfg), evOpts, &api.Options{Logger: log})
	if err != nil {
		return err
	}
	defer svc.Close()

	rateLimit := c.RateLimit
	if rateLimit <= 0 {
		rateLimit = cfg.API.RateLimit
	}
	burst := c.Burst
	if burst <= 0 {
		burst = cfg.API.Burst
	}

	s := server.NewServer(config.String(c.Addr, cfg.API.Addr, defaultAddr), &server.Options{
		TLSCert:   config.String(c.TLSCert, cfg.API.TLSCert),
		TLSKey:    config.String(c.TLSKey, cfg.API.TLSKey),
		RateLimit: rateLimit,
		Burst:     burst,
		Debug:     c.Debug || cfg.Debug,
		Logger:    log,
	})
	return s.ServeForever(svc)
}
