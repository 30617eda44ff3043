package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the server API
//	-i int      online check interval in seconds
//	-f string   cache database DSN
//	-l string   log file path
//	-n int      notification window in days
//	-t string   device token for notifications
//
// Only the flags listed above are taken from args, using flagx.FilterArgs,
// so flags owned by other components do not interfere.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-i", "-f", "-l", "-n", "-t"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the server API")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.CacheDSN, "f", cfg.CacheDSN, "local cache database")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "log file")
	fs.IntVar(&cfg.NotifyWindow, "n", cfg.NotifyWindow, "notify about reminders due within this many days")
	fs.StringVar(&cfg.DeviceToken, "t", cfg.DeviceToken, "device token for notifications")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	return nil
}
