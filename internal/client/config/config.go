package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the GophGarage CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API, including its prefix.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - RequestTimeout: upper bound of a single API call.
//   - CacheDSN: SQLite DSN of the local cache.
//   - LogFile, LogLevel: where and how verbosely the client logs.
//   - NotifyWindow: days ahead a reminder is announced.
//   - NotifyInterval: how often due reminders are re-checked.
//   - DeviceToken: push token registered with the server, optional.
type Config struct {
	ServerURL           string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	CacheDSN            string
	LogFile             string
	LogLevel            string
	NotifyWindow        int
	NotifyInterval      time.Duration
	DeviceToken         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080/api"
	c.OnlineCheckInterval = 5 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.CacheDSN = "garage.db"
	c.LogFile = "gophgarage.log"
	c.LogLevel = "info"
	c.NotifyWindow = 7
	c.NotifyInterval = time.Hour
	c.DeviceToken = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
