package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/airflow-logconf/internal/logconf"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
	defaultAirflowHome    = "~/airflow"

	defaultLogFileMaxSizeMB  = 50
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAgeDays = 28
)

// Environment variable contract for per-source shipping parameters.
const (
	shippingEnvPrefix = "MWAA__LOGGING__AIRFLOW_"

	logGroupARNSuffix = "_LOG_GROUP_ARN"
	logLevelSuffix    = "_LOG_LEVEL"
	logsEnabledSuffix = "_LOGS_ENABLED"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string        `yaml:"port" validate:"required"`
	ShutdownGracePeriod  time.Duration `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    time.Duration `yaml:"read_header_timeout"`
	WriteTimeout         time.Duration `yaml:"write_timeout"`
	IdleTimeout          time.Duration `yaml:"idle_timeout"`
	EnableRequestLogging bool          `yaml:"enable_request_logging"`
	RateLimitRPS         float64       `yaml:"-" validate:"gte=0"`
	RateLimitBurst       int           `yaml:"-" validate:"gte=0"`

	LogLevel          string `yaml:"-" validate:"omitempty,oneof=debug info warn error"`
	LogFile           string `yaml:"-"`
	LogFileMaxSizeMB  int    `yaml:"-" validate:"gte=0"`
	LogFileMaxBackups int    `yaml:"-" validate:"gte=0"`
	LogFileMaxAgeDays int    `yaml:"-" validate:"gte=0"`

	Shipping logconf.Settings `yaml:"-" validate:"-"`
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
	Log                  yamlLog       `yaml:"log"`
	BaseLogFolder        string        `yaml:"base_log_folder"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// yamlLog represents the tool's own diagnostics logging section in YAML.
type yamlLog struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	LogLevel       *string
	LogFile        *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Load from YAML file if specified
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	// Apply environment variables (override YAML)
	applyEnvConfig(&cfg)
	cfg.Shipping.Sources = SourcesFromEnv()

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	// Validate final configuration
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
		LogLevel:             "info",
		LogFileMaxSizeMB:     defaultLogFileMaxSizeMB,
		LogFileMaxBackups:    defaultLogFileMaxBackups,
		LogFileMaxAgeDays:    defaultLogFileMaxAgeDays,
		Shipping:             defaultShipping(),
	}
}

// defaultShipping derives the base filesystem locations from AIRFLOW_HOME,
// matching where the host writes its log files.
func defaultShipping() logconf.Settings {
	home := strings.TrimSpace(os.Getenv("AIRFLOW_HOME"))
	if home == "" {
		home = defaultAirflowHome
	}
	base := filepath.Join(home, "logs")

	return logconf.Settings{
		BaseLogFolder:               base,
		ProcessorManagerLogLocation: filepath.Join(base, "dag_processor_manager", "dag_processor_manager.log"),
		ProcessorFilenameTemplate:   logconf.DefaultProcessorFilenameTemplate,
	}
}

// SourcesFromEnv resolves the per-source shipping triplet for every known log
// source from the current environment. An unset ARN variable leaves the
// source on local file logging; the enabled flag defaults to false and the
// level to INFO.
func SourcesFromEnv() map[logconf.Source]logconf.Shipping {
	sources := make(map[logconf.Source]logconf.Shipping, len(logconf.Sources()))
	for _, source := range logconf.Sources() {
		prefix := shippingEnvPrefix + strings.ToUpper(string(source))

		level := strings.TrimSpace(os.Getenv(prefix + logLevelSuffix))
		if level == "" {
			level = logconf.DefaultLogLevel
		}

		sources[source] = logconf.Shipping{
			LogGroupARN: strings.TrimSpace(os.Getenv(prefix + logGroupARNSuffix)),
			LogLevel:    level,
			Enabled:     strings.EqualFold(strings.TrimSpace(os.Getenv(prefix+logsEnabledSuffix)), "true"),
		}
	}
	return sources
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	if yamlCfg.ShutdownGracePeriod != "" {
		if d, err := time.ParseDuration(yamlCfg.ShutdownGracePeriod); err == nil {
			cfg.ShutdownGracePeriod = d
		}
	}

	if yamlCfg.ReadHeaderTimeout != "" {
		if d, err := time.ParseDuration(yamlCfg.ReadHeaderTimeout); err == nil {
			cfg.ReadHeaderTimeout = d
		}
	}

	if yamlCfg.WriteTimeout != "" {
		if d, err := time.ParseDuration(yamlCfg.WriteTimeout); err == nil {
			cfg.WriteTimeout = d
		}
	}

	if yamlCfg.IdleTimeout != "" {
		if d, err := time.ParseDuration(yamlCfg.IdleTimeout); err == nil {
			cfg.IdleTimeout = d
		}
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	if yamlCfg.RateLimit.RPS > 0 {
		cfg.RateLimitRPS = yamlCfg.RateLimit.RPS
	}

	if yamlCfg.RateLimit.Burst > 0 {
		cfg.RateLimitBurst = yamlCfg.RateLimit.Burst
	}

	if yamlCfg.Log.Level != "" {
		cfg.LogLevel = yamlCfg.Log.Level
	}
	if yamlCfg.Log.File != "" {
		cfg.LogFile = yamlCfg.Log.File
	}
	if yamlCfg.Log.MaxSizeMB > 0 {
		cfg.LogFileMaxSizeMB = yamlCfg.Log.MaxSizeMB
	}
	if yamlCfg.Log.MaxBackups > 0 {
		cfg.LogFileMaxBackups = yamlCfg.Log.MaxBackups
	}
	if yamlCfg.Log.MaxAgeDays > 0 {
		cfg.LogFileMaxAgeDays = yamlCfg.Log.MaxAgeDays
	}

	if yamlCfg.BaseLogFolder != "" {
		cfg.Shipping.BaseLogFolder = yamlCfg.BaseLogFolder
		cfg.Shipping.ProcessorManagerLogLocation = filepath.Join(
			yamlCfg.BaseLogFolder, "dag_processor_manager", "dag_processor_manager.log")
	}
}

// applyEnvConfig applies environment variable configuration for the tool
// itself; the shipping triplets are handled by SourcesFromEnv.
func applyEnvConfig(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if file := strings.TrimSpace(os.Getenv("LOG_FILE")); file != "" {
		cfg.LogFile = file
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.LogFile != nil && *overrides.LogFile != "" {
		cfg.LogFile = *overrides.LogFile
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
}
