// Package config loads CLI settings from an optional YAML file overlaid with flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Model formats accepted by the run and inspect commands.
const (
	FormatAuto  = "auto"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatRedis = "redis"
)

// Config holds every setting of a generation run.
type Config struct {
	Model       string `yaml:"model" mapstructure:"model"`
	Format      string `yaml:"format" mapstructure:"format"`
	RedisURL    string `yaml:"redis_url" mapstructure:"redis_url"`
	RedisPrefix string `yaml:"redis_prefix" mapstructure:"redis_prefix"`
	StateSize   int    `yaml:"state_size" mapstructure:"state_size"`
	Words       int    `yaml:"words" mapstructure:"words"`
	Workers     int    `yaml:"workers" mapstructure:"workers"`
	BatchDepth  int    `yaml:"batch_depth" mapstructure:"batch_depth"`
	QueueSize   int    `yaml:"queue_size" mapstructure:"queue_size"`
	SeedList    string `yaml:"seed_list" mapstructure:"seed_list"`
	Variants    bool   `yaml:"variants" mapstructure:"variants"`
	MetricsAddr string `yaml:"metrics_addr" mapstructure:"metrics_addr"`
	LogFormat   string `yaml:"log_format" mapstructure:"log_format"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// Default returns the settings used when neither file nor flag sets a value.
func Default() Config {
	return Config{
		Format:      FormatAuto,
		RedisPrefix: "rephraser:model:",
		StateSize:   2,
		Words:       4,
		Workers:     max(runtime.NumCPU()-1, 1),
		BatchDepth:  3,
		QueueSize:   100000,
		LogFormat:   "text",
	}
}

// Load reads path (optional, empty to skip) and applies overrides on top.
// Override keys are the mapstructure names, e.g. "words" or "redis_url".
func Load(path string, overrides map[string]any) (Config, error) {
	values := map[string]any{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &values); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	for k, v := range overrides {
		values[normalizeKey(k)] = v
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(values); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Format == "" {
		cfg.Format = FormatAuto
	}
	cfg.Format = strings.ToLower(cfg.Format)
	return cfg, cfg.Validate()
}

// normalizeKey maps flag names ("batch-depth") to config keys ("batch_depth").
func normalizeKey(k string) string {
	return strings.ReplaceAll(k, "-", "_")
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Words < 1 {
		errs = append(errs, fmt.Errorf("words must be at least 1, got %d", c.Words))
	}
	if c.BatchDepth < 1 {
		errs = append(errs, fmt.Errorf("batch_depth must be at least 1, got %d", c.BatchDepth))
	}
	if c.StateSize < 1 {
		errs = append(errs, fmt.Errorf("state_size must be at least 1, got %d", c.StateSize))
	}
	if c.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("queue_size must be at least 1, got %d", c.QueueSize))
	}
	switch c.Format {
	case FormatAuto, FormatJSON, FormatYAML, FormatRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown model format %q", c.Format))
	}
	if c.Format == FormatRedis && c.RedisURL == "" {
		errs = append(errs, errors.New("redis format requires redis_url"))
	}
	if c.Format != FormatRedis && c.Model == "" {
		errs = append(errs, errors.New("model path is required"))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	return errors.Join(errs...)
}
