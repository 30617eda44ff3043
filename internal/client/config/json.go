package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophgarage/internal/flagx"
	"github.com/dmitrijs2005/gophgarage/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. Absent fields keep the
// values set before.
type JsonConfig struct {
	ServerURL           string         `json:"server_url"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	CacheDSN            string         `json:"cache_dsn"`
	LogFile             string         `json:"log_file"`
	LogLevel            string         `json:"log_level"`
	NotifyWindow        int            `json:"notify_window"`
	NotifyInterval      timex.Duration `json:"notify_interval"`
	DeviceToken         string         `json:"device_token"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Without such a flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.CacheDSN, jc.CacheDSN)
	setString(&cfg.LogFile, jc.LogFile)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.DeviceToken, jc.DeviceToken)
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.NotifyInterval.Duration > 0 {
		cfg.NotifyInterval = jc.NotifyInterval.Duration
	}
	if jc.NotifyWindow > 0 {
		cfg.NotifyWindow = jc.NotifyWindow
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
