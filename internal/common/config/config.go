// internal/common/config/config.go
package config

import (
	"strings"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Runtime       RuntimeConfig           `mapstructure:"runtime"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Metrics       MetricsConfig           `mapstructure:"metrics"`
	Tracing       TracingConfig           `mapstructure:"tracing"`
	Intents       map[string]IntentConfig `mapstructure:"intents"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
}

// --- Core App/Runtime Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

const (
	ModeLambda = "lambda"
	ModeHTTP   = "http"
)

// RuntimeConfig selects how the code hook is served.
type RuntimeConfig struct {
	Mode            string `mapstructure:"mode"`
	HTTPAddress     string `mapstructure:"http_address"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// IntentConfig holds the settings applicable to every intent handler.
type IntentConfig struct {
	// Enabled is nil when the block omits the key; the intent is then enabled.
	Enabled     *bool  `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

// NotificationConfig holds settings for the fulfillment publisher.
type NotificationConfig struct {
	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		Region   string `mapstructure:"region"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// IsIntentEnabled checks if a specific intent is enabled. Intents absent from
// the config are enabled. Viper lowercases map keys, so the lookup ignores case.
func IsIntentEnabled(cfg *Config, intentName string) bool {
	if intent, ok := LookupIntent(cfg, intentName); ok {
		return intent.Enabled == nil || *intent.Enabled
	}
	return true
}

// LookupIntent returns the settings block of an intent, if present.
func LookupIntent(cfg *Config, intentName string) (IntentConfig, bool) {
	for name, intent := range cfg.Intents {
		if strings.EqualFold(name, intentName) {
			return intent, true
		}
	}
	return IntentConfig{}, false
}
