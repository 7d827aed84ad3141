// Package config loads dtcbrief settings from flags, environment, .env and an
// optional dtcbrief.yaml.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. DTC_CLICKUP_TOKEN.
const EnvPrefix = "DTC"

// ConfigName is the config file looked up in the working directory.
const ConfigName = "dtcbrief"

// ClickUpConfig holds task API settings.
type ClickUpConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Token      string        `mapstructure:"token"`
	ListID     string        `mapstructure:"list_id"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

// ServerConfig holds HTTP front-end settings.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Config is the resolved configuration.
type Config struct {
	Env           string        `mapstructure:"env"`
	Brand         string        `mapstructure:"brand"`
	Format        string        `mapstructure:"format"`
	Output        string        `mapstructure:"output"`
	Weeks         []string      `mapstructure:"weeks"`
	Launches      bool          `mapstructure:"launches"`
	Links         bool          `mapstructure:"links"`
	Assignee      string        `mapstructure:"assignee"`
	ReferenceYear int           `mapstructure:"reference_year"`
	Log           LogConfig     `mapstructure:"log"`
	ClickUp       ClickUpConfig `mapstructure:"clickup"`
	Server        ServerConfig  `mapstructure:"server"`
}

// New returns a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unprefixed names used by existing deployments.
	_ = v.BindEnv("env", EnvPrefix+"_ENV", "ENV")
	_ = v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOGLEVEL")
	_ = v.BindEnv("clickup.token", EnvPrefix+"_CLICKUP_TOKEN", "CLICKUP_API_TOKEN")
	_ = v.BindEnv("server.addr", EnvPrefix+"_SERVER_ADDR", "PORT_ADDR")
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("brand", "PB")
	v.SetDefault("format", "csv")
	v.SetDefault("output", "")
	v.SetDefault("weeks", []string{})
	v.SetDefault("launches", false)
	v.SetDefault("links", true)
	v.SetDefault("assignee", "")
	v.SetDefault("reference_year", 0)

	v.SetDefault("log.level", "")

	v.SetDefault("clickup.base_url", "https://api.clickup.com/api/v2")
	v.SetDefault("clickup.token", "")
	v.SetDefault("clickup.list_id", "")
	v.SetDefault("clickup.timeout", 15*time.Second)
	v.SetDefault("clickup.max_retries", 4)

	v.SetDefault("server.addr", ":8501")
	v.SetDefault("server.max_upload_bytes", int64(20<<20))
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
}

// LoadDotEnv loads .env from the working directory if present and reports
// whether it was found.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load reads configFile (or dtcbrief.yaml from the working directory when
// empty; a missing default file is not an error) and resolves the Config.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Weeks = splitList(cfg.Weeks)
	return &cfg, nil
}

// splitList flattens comma-separated entries, as produced by env vars.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
