package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. NOTIFY_ADMIN_SERVER_ADDR.
const EnvPrefix = "NOTIFY_ADMIN"

// Options controls where Load looks.
type Options struct {
	// File is an explicit config file. When set, Paths are not searched.
	File string
	// Paths are searched for config.yaml and config.<env>.yaml.
	Paths []string
	// Environment selects the overlay file. Defaults to NOTIFY_ADMIN_ENVIRONMENT
	// and then "development".
	Environment string
	// EnvFiles are loaded into the process environment before reading.
	// Missing files are skipped.
	EnvFiles []string
}

// Load reads defaults, config files and the environment, in that order.
func Load(opts Options) (Config, error) {
	loadEnvFiles(opts.EnvFiles)

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetConfigType("yaml")

	env := opts.Environment
	if env == "" {
		env = v.GetString("environment")
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", opts.File, err)
		}
	} else {
		paths := opts.Paths
		if len(paths) == 0 {
			paths = []string{".", "./configs"}
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: read base config: %w", err)
			}
		}
		if env != "" {
			v.SetConfigName("config." + env)
			if err := v.MergeInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return Config{}, fmt.Errorf("config: read %s overlay: %w", env, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if opts.Environment != "" {
		cfg.Environment = opts.Environment
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadEnvFiles(files []string) {
	for _, path := range files {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		// Variables already set in the process win over the file.
		_ = godotenv.Load(path)
	}
}

// DefaultEnvFiles lists .env in the working directory and the nearest
// directory holding a go.mod.
func DefaultEnvFiles() []string {
	files := []string{".env"}
	if root := findProjectRoot(); root != "" {
		files = append(files, filepath.Join(root, ".env"))
	}
	return files
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("environment", d.Environment)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.base_path", d.Server.BasePath)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("data.source", d.Data.Source)
	v.SetDefault("data.path", d.Data.Path)
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.api_key", d.API.APIKey)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.addr", d.Metrics.Addr)
	v.SetDefault("ui.banner_timeout", d.UI.BannerTimeout)
	v.SetDefault("ui.toast_timeout", d.UI.ToastTimeout)
}

// applyDefaults fills values a config file blanked out.
func applyDefaults(cfg *Config) {
	d := Defaults()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = d.Server.Addr
	}
	cfg.Server.BasePath = strings.TrimRight(cfg.Server.BasePath, "/")
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = d.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = d.Logging.Format
	}
	cfg.Data.Source = strings.ToLower(strings.TrimSpace(cfg.Data.Source))
	if cfg.Data.Source == "" {
		cfg.Data.Source = d.Data.Source
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = d.API.Timeout
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = d.Metrics.Addr
	}
}

// Validate checks the fields the selected data source depends on.
func (c Config) Validate() error {
	return validation.Errors{
		"data.source": validation.Validate(c.Data.Source,
			validation.Required,
			validation.In(SourceEmbedded, SourceFile, SourceAPI).Error("must be embedded, file or api"),
		),
		"data.path": validation.Validate(c.Data.Path,
			validation.When(c.Data.Source == SourceFile, validation.Required.Error("is required for the file source")),
		),
		"api.base_url": validation.Validate(c.API.BaseURL,
			validation.When(c.Data.Source == SourceAPI, validation.Required.Error("is required for the api source")),
		),
		"server.base_path": validation.Validate(c.Server.BasePath,
			validation.When(c.Server.BasePath != "", validation.By(leadingSlash)),
		),
	}.Filter()
}

func leadingSlash(value any) error {
	s, _ := value.(string)
	if !strings.HasPrefix(s, "/") {
		return errors.New("must start with /")
	}
	return nil
}
