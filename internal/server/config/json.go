package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophgarage/internal/flagx"
	"github.com/dmitrijs2005/gophgarage/internal/timex"
)

// JsonConfig is the DTO read from the JSON config file. Durations use
// timex.Duration, so "90m" and integer nanoseconds are both accepted.
// Absent fields keep the values set before.
type JsonConfig struct {
	Address               string         `json:"address"`
	APIPrefix             string         `json:"api_prefix"`
	Storage               string         `json:"storage"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	LogLevel              string         `json:"log_level"`
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

	for dst, v := range map[*string]string{
		&cfg.Address:        jc.Address,
		&cfg.APIPrefix:      jc.APIPrefix,
		&cfg.Storage:        jc.Storage,
		&cfg.DatabaseDSN:    jc.DatabaseDSN,
		&cfg.SecretKey:      jc.SecretKey,
		&cfg.S3RootUser:     jc.S3RootUser,
		&cfg.S3RootPassword: jc.S3RootPassword,
		&cfg.S3Bucket:       jc.S3Bucket,
		&cfg.S3Region:       jc.S3Region,
		&cfg.S3BaseEndpoint: jc.S3BaseEndpoint,
		&cfg.LogLevel:       jc.LogLevel,
	} {
		if v != "" {
			*dst = v
		}
	}
	if jc.TokenValidityDuration.Duration > 0 {
		cfg.TokenValidityDuration = jc.TokenValidityDuration.Duration
	}
	return nil
}
