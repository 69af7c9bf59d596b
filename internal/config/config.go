package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/voidshard/etlmon/pkg/errors"
)

// Config is the optional file based configuration shared by etlmon commands.
// Flags and environment variables win over anything set here.
type Config struct {
	Debug   bool `toml:"debug"`
	LogJSON bool `toml:"log_json"`

	Database Database `toml:"database"`
	Events   Events   `toml:"events"`
	API      API      `toml:"api"`
}

type Database struct {
	URL         string `toml:"url"`
	AutoMigrate bool   `toml:"auto_migrate"`
	MaxConns    int32  `toml:"max_conns"`
}

type Events struct {
	URL       string `toml:"url"`
	Queue     string `toml:"queue"`
	TLSCaCert string `toml:"tls_ca_cert"`
	TLSCert   string `toml:"tls_cert"`
	TLSKey    string `toml:"tls_key"`
}

type API struct {
	Addr      string  `toml:"addr"`
	TLSCert   string  `toml:"tls_cert"`
	TLSKey    string  `toml:"tls_key"`
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

// Load reads a TOML config file. An empty path or missing file is an empty config.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidArg, "config %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Wrapf(errors.ErrInvalidArg, "config %s: unknown keys %v", path, undecoded)
	}
	return cfg, nil
}

// String returns the first non empty value.
func String(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
