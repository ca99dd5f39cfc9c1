// Package config resolves the ratewatch configuration from defaults, an
// optional config file, and environment variables.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Defaults for every configuration value. Each may be overridden by its
// environment variable or a config file entry.
const (
	DefaultBucket       = "currency.prebid.org"
	DefaultKey          = "latest.json"
	DefaultAlertFrom    = "alerts@prebid.org"
	DefaultAlertTo      = "alerts@prebid.org"
	DefaultAlertSubject = "ALERT: Stale Currency Rates File"
	DefaultStaleDays    = 2
	DefaultRegion       = "us-east-1"
)

// S3 holds the object storage location of the monitored file.
type S3 struct {
	Bucket string
	Key    string
	Region string
}

// Alert holds the addressing of the alert email.
type Alert struct {
	From    string
	To      string
	Subject string
}

// Log holds logging configuration.
type Log struct {
	Format string
}

// Config is the immutable configuration for one invocation. It is
// resolved once at startup and passed by value down the pipeline.
type Config struct {
	S3             S3
	Alert          Alert
	StaleAfterDays int
	Debug          bool
	Schedule       string
	Log            Log
}

// Default returns a Config populated with the documented defaults.
func Default() Config {
	return Config{
		S3: S3{
			Bucket: DefaultBucket,
			Key:    DefaultKey,
			Region: DefaultRegion,
		},
		Alert: Alert{
			From:    DefaultAlertFrom,
			To:      DefaultAlertTo,
			Subject: DefaultAlertSubject,
		},
		StaleAfterDays: DefaultStaleDays,
		Debug:          true,
		Log:            Log{Format: "text"},
	}
}

// Load resolves the configuration. Precedence, lowest to highest:
// defaults, config file (if path is non-empty), environment variables.
// An invalid staleness threshold falls back to its default.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("s3.bucket", DefaultBucket)
	v.SetDefault("s3.key", DefaultKey)
	v.SetDefault("s3.region", DefaultRegion)
	v.SetDefault("alert.from", DefaultAlertFrom)
	v.SetDefault("alert.to", DefaultAlertTo)
	v.SetDefault("alert.subject", DefaultAlertSubject)
	v.SetDefault("stale_after_days", DefaultStaleDays)
	v.SetDefault("schedule", "")
	v.SetDefault("log.format", "text")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	// Explicitly bind the documented environment variables.
	envVarMappings := map[string]string{
		"S3_BUCKET":             "s3.bucket",
		"S3_FILENAME":           "s3.key",
		"AWS_REGION":            "s3.region",
		"ALERT_FROM":            "alert.from",
		"ALERT_TO":              "alert.to",
		"ALERT_SUBJECT":         "alert.subject",
		"STALE_OLDER_THAN_DAYS": "stale_after_days",
		"RATEWATCH_SCHEDULE":    "schedule",
		"RATEWATCH_LOG_FORMAT":  "log.format",
	}
	for env, key := range envVarMappings {
		_ = v.BindEnv(key, env)
	}

	cfg := Config{
		S3: S3{
			Bucket: v.GetString("s3.bucket"),
			Key:    v.GetString("s3.key"),
			Region: v.GetString("s3.region"),
		},
		Alert: Alert{
			From:    v.GetString("alert.from"),
			To:      v.GetString("alert.to"),
			Subject: v.GetString("alert.subject"),
		},
		StaleAfterDays: v.GetInt("stale_after_days"),
		Debug:          debugFromEnv(),
		Schedule:       v.GetString("schedule"),
		Log:            Log{Format: v.GetString("log.format")},
	}

	// The threshold must be a positive number of days.
	if cfg.StaleAfterDays <= 0 {
		cfg.StaleAfterDays = DefaultStaleDays
	}

	return cfg, nil
}

// debugFromEnv resolves the DEBUG flag: true unless the variable is
// explicitly set to a falsy value.
func debugFromEnv() bool {
	raw, ok := os.LookupEnv("DEBUG")
	if !ok {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
