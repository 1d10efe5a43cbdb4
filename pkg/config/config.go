// Package config loads the notify-admin runtime configuration.
package config

import "time"

// Data source kinds.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceAPI      = "api"
)

// Config is the full runtime configuration.
type Config struct {
	Environment string        `mapstructure:"environment" yaml:"environment"`
	Server      ServerConfig  `mapstructure:"server" yaml:"server"`
	Logging     LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Data        DataConfig    `mapstructure:"data" yaml:"data"`
	API         APIConfig     `mapstructure:"api" yaml:"api"`
	Metrics     MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	UI          UIConfig      `mapstructure:"ui" yaml:"ui"`
}

type ServerConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	BasePath string `mapstructure:"base_path" yaml:"base_path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DataConfig selects where the seed dataset comes from.
type DataConfig struct {
	Source string `mapstructure:"source" yaml:"source"`
	// Path is the dataset file for the file source (json or yaml).
	Path string `mapstructure:"path" yaml:"path"`
}

// APIConfig points at the notification backend used by the api source.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string        `mapstructure:"api_key" yaml:"api_key"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Addr    string `mapstructure:"addr" yaml:"addr"`
}

// UIConfig overrides the message timeouts of every page when positive.
type UIConfig struct {
	BannerTimeout time.Duration `mapstructure:"banner_timeout" yaml:"banner_timeout"`
	ToastTimeout  time.Duration `mapstructure:"toast_timeout" yaml:"toast_timeout"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Environment: "development",
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Data: DataConfig{
			Source: SourceEmbedded,
		},
		API: APIConfig{
			Timeout: 10 * time.Second,
		},
		Metrics: MetricsConfig{
			Addr: ":9090",
		},
	}
}
