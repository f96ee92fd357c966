package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	RunsDir         string  `mapstructure:"runs_dir" yaml:"runs_dir"`
	ChartFormat     string  `mapstructure:"chart_format" yaml:"chart_format"`
	ChartWidthIn    float64 `mapstructure:"chart_width_in" yaml:"chart_width_in"`
	ChartHeightIn   float64 `mapstructure:"chart_height_in" yaml:"chart_height_in"`
	ConfidenceLevel float64 `mapstructure:"confidence_level" yaml:"confidence_level"`
	MaxRows         int     `mapstructure:"max_rows" yaml:"max_rows"`
	SampleRows      int     `mapstructure:"sample_rows" yaml:"sample_rows"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.statlook/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".statlook")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("STATLOOK")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("chart_format", "png")
	v.SetDefault("chart_width_in", 6.0)
	v.SetDefault("chart_height_in", 4.0)
	v.SetDefault("confidence_level", 0.95)
	v.SetDefault("max_rows", 100000)
	v.SetDefault("sample_rows", 5)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".statlook")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Resolve runs_dir default: ~/.statlook/runs
	if c.RunsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.RunsDir = filepath.Join(home, ".statlook", "runs")
	}
	return &c, nil
}
