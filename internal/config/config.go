package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// SupportedConfigVersions lists the config schema versions this build accepts
var SupportedConfigVersions = []int{1}

// Config represents the complete ckc configuration
type Config struct {
	Version   int    `json:"version" mapstructure:"version"`
	VaultRoot string `json:"vaultRoot" mapstructure:"vaultRoot"`

	Convert Convert `json:"convert" mapstructure:"convert"`
	Analyze Analyze `json:"analyze" mapstructure:"analyze"`
	Logging Logging `json:"logging" mapstructure:"logging"`
}

// Convert contains export conversion configuration
type Convert struct {
	InputDir    string `json:"inputDir" mapstructure:"inputDir"`
	MaxKeywords int    `json:"maxKeywords" mapstructure:"maxKeywords"`
	Catalog     bool   `json:"catalog" mapstructure:"catalog"`
}

// Analyze contains corpus analysis configuration
type Analyze struct {
	SlotBudget     int    `json:"slotBudget" mapstructure:"slotBudget"`
	MinCount       int    `json:"minCount" mapstructure:"minCount"`
	TagScheme      string `json:"tagScheme" mapstructure:"tagScheme"`
	FileScheme     string `json:"fileScheme" mapstructure:"fileScheme"`
	Workers        int    `json:"workers" mapstructure:"workers"`
	ExclusionsPath string `json:"exclusionsPath" mapstructure:"exclusionsPath"`
	TemplatePath   string `json:"templatePath" mapstructure:"templatePath"`
}

// Logging contains logging configuration
type Logging struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		VaultRoot: ".",
		Convert: Convert{
			InputDir:    "input",
			MaxKeywords: 7,
			Catalog:     true,
		},
		Analyze: Analyze{
			SlotBudget:     60,
			MinCount:       2,
			TagScheme:      "rainbow",
			FileScheme:     "rainbow",
			Workers:        0, // 0 means runtime.NumCPU capped at 8
			ExclusionsPath: ".ckc/tag_exclusions.txt",
			TemplatePath:   ".ckc/graph.json",
		},
		Logging: Logging{
			Format: "human",
			Level:  "info",
		},
	}
}

// EnvOverride records a single environment variable override that was applied
type EnvOverride struct {
	EnvVar string
	Path   string
	Value  string
}

// envVarMappings maps environment variables to config paths
var envVarMappings = map[string]string{
	"CKC_LOG_LEVEL":            "logging.level",
	"CKC_LOG_FORMAT":           "logging.format",
	"CKC_ANALYZE_SLOT_BUDGET":  "analyze.slotBudget",
	"CKC_ANALYZE_MIN_COUNT":    "analyze.minCount",
	"CKC_ANALYZE_WORKERS":      "analyze.workers",
	"CKC_ANALYZE_TAG_SCHEME":   "analyze.tagScheme",
	"CKC_ANALYZE_FILE_SCHEME":  "analyze.fileScheme",
	"CKC_CONVERT_MAX_KEYWORDS": "convert.maxKeywords",
}

// LoadConfig loads configuration from .ckc/config.json under vaultRoot,
// falling back to defaults when no config file exists. Environment
// overrides are applied last.
func LoadConfig(vaultRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("vaultRoot", ".")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(vaultRoot, ".ckc"))

	cfg := DefaultConfig()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file: keep defaults
	} else {
		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides applies CKC_* environment variables on top of cfg,
// returning the overrides that took effect. Invalid values are skipped.
func applyEnvOverrides(cfg *Config) []EnvOverride {
	var applied []EnvOverride
	for envVar, path := range envVarMappings {
		raw := os.Getenv(envVar)
		if raw == "" {
			continue
		}
		if applyOverride(cfg, path, raw) {
			applied = append(applied, EnvOverride{EnvVar: envVar, Path: path, Value: raw})
		}
	}
	return applied
}

func applyOverride(cfg *Config, path, raw string) bool {
	switch path {
	case "logging.level":
		cfg.Logging.Level = raw
	case "logging.format":
		cfg.Logging.Format = raw
	case "analyze.tagScheme":
		cfg.Analyze.TagScheme = raw
	case "analyze.fileScheme":
		cfg.Analyze.FileScheme = raw
	case "analyze.slotBudget":
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return false
		}
		cfg.Analyze.SlotBudget = n
	case "analyze.minCount":
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return false
		}
		cfg.Analyze.MinCount = n
	case "analyze.workers":
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return false
		}
		cfg.Analyze.Workers = n
	case "convert.maxKeywords":
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return false
		}
		cfg.Convert.MaxKeywords = n
	default:
		return false
	}
	return true
}

// Save writes the configuration to .ckc/config.json
func (c *Config) Save(vaultRoot string) error {
	configDir := filepath.Join(vaultRoot, ".ckc")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}
	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	supported := false
	for _, v := range SupportedConfigVersions {
		if c.Version == v {
			supported = true
			break
		}
	}
	if !supported {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Analyze.SlotBudget < 1 {
		return &ConfigError{Field: "analyze.slotBudget", Message: "slot budget must be at least 1"}
	}
	if c.Analyze.MinCount < 1 {
		return &ConfigError{Field: "analyze.minCount", Message: "minimum count must be at least 1"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
