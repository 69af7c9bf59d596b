package main

import (
	"go.uber.org/zap"

	"github.com/voidshard/etlmon/internal/config"
	"github.com/voidshard/etlmon/internal/logger"
	"github.com/voidshard/etlmon/internal/utils"
	"github.com/voidshard/etlmon/pkg/database"
	"github.com/voidshard/etlmon/pkg/events"
)

type optsGeneral struct {
	Config  string `long:"config" env:"ETLMON_CONFIG" description:"Path to a TOML config file"`
	Debug   bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
	LogJSON bool   `long:"log-json" env:"LOG_JSON" description:"Log as JSON"`

	cfg *config.Config
}

// load reads the config file once; later calls return the cached result.
func (o *optsGeneral) load() (*config.Config, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}
	cfg, err := config.Load(o.Config)
	if err != nil {
		return nil, err
	}
	o.cfg = cfg
	return cfg, nil
}

func (o *optsGeneral) logger() (*zap.SugaredLogger, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	return logger.New(o.Debug || cfg.Debug, o.LogJSON || cfg.LogJSON)
}

type optsDatabase struct {
	DatabaseURL string `long:"database-url" env:"DATABASE_URL" description:"Database connection string (postgres://, sqlite3:// or memory://)"`
	AutoMigrate bool   `long:"auto-migrate" env:"AUTO_MIGRATE" description:"Apply schema migrations on connect"`
	MaxConns    int32  `long:"max-conns" env:"DATABASE_MAX_CONNS" description:"Max database connections (postgres)"`
}

func (o *optsDatabase) options(cfg *config.Config) *database.Options {
	maxConns := o.MaxConns
	if maxConns <= 0 {
		maxConns = cfg.Database.MaxConns
	}
	return &database.Options{
		URL:         config.String(o.DatabaseURL, cfg.Database.URL, defaultDatabaseURL),
		AutoMigrate: o.AutoMigrate || cfg.Database.AutoMigrate,
		MaxConns:    maxConns,
	}
}

type optsEvents struct {
	EventsURL   string `long:"events-url" env:"EVENTS_URL" description:"Redis connection string for events, if unset events are not sent"`
	EventsQueue string `long:"events-queue" env:"EVENTS_QUEUE" description:"Queue events are written to"`

	EventsTLSCaCert string `long:"events-tls-ca-cert" env:"EVENTS_TLS_CA_CERT" description:"Path to TLS CA certificate"`
	EventsTLSCert   string `long:"events-tls-cert" env:"EVENTS_TLS_CERT" description:"Path to TLS certificate"`
	EventsTLSKey    string `long:"events-tls-key" env:"EVENTS_TLS_KEY" description:"Path to TLS key"`
}

func (o *optsEvents) options(cfg *config.Config) (*events.Options, error) {
	tlsCfg, err := utils.TLSConfig(
		config.String(o.EventsTLSCaCert, cfg.Events.TLSCaCert),
		config.String(o.EventsTLSCert, cfg.Events.TLSCert),
		config.String(o.EventsTLSKey, cfg.Events.TLSKey),
	)
	if err != nil {
		return nil, err
	}
	return &events.Options{
		URL:       config.String(o.EventsURL, cfg.Events.URL),
		Queue:     config.String(o.EventsQueue, cfg.Events.Queue),
		TLSConfig: tlsCfg,
	}, nil
}

// optsClient is for commands that talk to a running API server.
type optsClient struct {
	optsGeneral

	Server string `long:"server" env:"ETLMON_SERVER" description:"Address of the etlmon API server"`
}

func (o *optsClient) serverURL() string {
	cfg, err := o.load()
	if err != nil || cfg.API.Addr == "" {
		return config.String(o.Server, defaultServerURL)
	}
	return config.String(o.Server, "http://"+cfg.API.Addr)
}
