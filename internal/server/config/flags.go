package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-x string   API path prefix (e.g., "/api")
//	-s string   storage variant: postgres, sqlite or memory
//	-d string   database DSN
//	-k string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-l string   log level
//
// Duration flags are accepted as integers in minutes.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-x", "-s", "-d", "-k", "-t", "-u", "-p", "-b", "-g", "-e", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	fs.StringVar(&cfg.APIPrefix, "x", cfg.APIPrefix, "API path prefix")
	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage variant (postgres, sqlite, memory)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(cfg.TokenValidityDuration.Minutes()), "token validity duration (in minutes)")

	fs.StringVar(&cfg.S3RootUser, "u", cfg.S3RootUser, "S3 root user")
	fs.StringVar(&cfg.S3RootPassword, "p", cfg.S3RootPassword, "S3 root password")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	return nil
}
