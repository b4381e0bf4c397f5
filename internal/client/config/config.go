// Package config loads runtime configuration for the gophtodo CLI from
// built-in defaults, an optional JSON file (-c/-config) and command-line
// flags, in that order of precedence.
//
// JSON example:
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "database_path": "gophtodo.db",
//	  "request_timeout": "10s"
//	}
package config

import "time"

type Config struct {
	ServerURL      string
	DatabasePath   string
	RequestTimeout time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
	c.DatabasePath = "gophtodo.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig applies defaults, then JSON, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
