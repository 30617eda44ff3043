// Package config loads runtime configuration for the GophGarage CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the server API
//	-i int      online status check interval (seconds)
//	-f string   local cache DSN
//	-l string   log file
//	-n int      reminder notification window (days)
//	-t string   device token
//
// # JSON schema
//
// Intervals are timex.Duration values: strings like "3s" or integer
// nanoseconds.
//
//	{
//	  "server_url": "http://127.0.0.1:8080/api",
//	  "online_check_interval": "5s",
//	  "request_timeout": "10s",
//	  "cache_dsn": "garage.db",
//	  "log_file": "gophgarage.log",
//	  "log_level": "debug",
//	  "notify_window": 7,
//	  "notify_interval": "1h",
//	  "device_token": ""
//	}
package config
