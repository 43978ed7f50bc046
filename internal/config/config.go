package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Raw sources
	WorkoutFile     string `mapstructure:"workout_file" yaml:"workout_file"`
	KeywordsFile    string `mapstructure:"keywords_file" yaml:"keywords_file"`
	WorkoutGeoFile  string `mapstructure:"workout_geo_file" yaml:"workout_geo_file"`
	KeywordsGeoFile string `mapstructure:"keywords_geo_file" yaml:"keywords_geo_file"`

	// Processed outputs
	TimeSeriesFile string `mapstructure:"timeseries_file" yaml:"timeseries_file"`
	GeoFile        string `mapstructure:"geo_file" yaml:"geo_file"`

	// Charts
	ImagesDir  string  `mapstructure:"images_dir" yaml:"images_dir"`
	PlotWidth  float64 `mapstructure:"plot_width" yaml:"plot_width"`
	PlotHeight float64 `mapstructure:"plot_height" yaml:"plot_height"`

	// Analysis parameters
	HighlightStart   string   `mapstructure:"highlight_start" yaml:"highlight_start"`
	HighlightEnd     string   `mapstructure:"highlight_end" yaml:"highlight_end"`
	CompareCountries []string `mapstructure:"compare_countries" yaml:"compare_countries"`

	// Logging
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`
}

// Keys lists every configuration key in display order.
var Keys = []string{
	"workout_file", "keywords_file", "workout_geo_file", "keywords_geo_file",
	"timeseries_file", "geo_file",
	"images_dir", "plot_width", "plot_height",
	"highlight_start", "highlight_end", "compare_countries",
	"log_level", "log_file",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workout_file", filepath.Join("data", "raw", "workout.csv"))
	v.SetDefault("keywords_file", filepath.Join("data", "raw", "three_keywords.csv"))
	v.SetDefault("workout_geo_file", filepath.Join("data", "raw", "workout_geo.csv"))
	v.SetDefault("keywords_geo_file", filepath.Join("data", "raw", "three_keywords_geo.csv"))
	v.SetDefault("timeseries_file", filepath.Join("data", "processed", "processed_timeseries_data.csv"))
	v.SetDefault("geo_file", filepath.Join("data", "processed", "processed_geo_data.csv"))
	v.SetDefault("images_dir", "images")
	v.SetDefault("plot_width", 12.0)
	v.SetDefault("plot_height", 6.0)
	v.SetDefault("highlight_start", "2020-03-01")
	v.SetDefault("highlight_end", "2021-06-01")
	v.SetDefault("compare_countries", []string{"Philippines", "Malaysia"})
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
}

// Default returns the built-in configuration without reading any file or
// environment variable.
func Default() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

// Path resolves the config file to use: cfgFile if set, else ./trendloom.yaml
// when it exists, else ~/.trendloom/config.yaml. The returned path may not exist.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	if _, err := os.Stat("trendloom.yaml"); err == nil {
		return "trendloom.yaml", nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".trendloom", "config.yaml"), nil
}

// Save writes the given configuration to the resolved config path, creating
// its directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
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
// Precedence: env > config file > defaults. A missing config file is not an
// error and nothing is created on disk.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TRENDLOOM")
	v.AutomaticEnv()
	setDefaults(v)

	path, err := Path(cfgFile)
	if err != nil {
		return nil, err
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Set assigns val to key, validating numeric and list values.
func (c *Global) Set(key, val string) error {
	switch key {
	case "workout_file":
		c.WorkoutFile = val
	case "keywords_file":
		c.KeywordsFile = val
	case "workout_geo_file":
		c.WorkoutGeoFile = val
	case "keywords_geo_file":
		c.KeywordsGeoFile = val
	case "timeseries_file":
		c.TimeSeriesFile = val
	case "geo_file":
		c.GeoFile = val
	case "images_dir":
		c.ImagesDir = val
	case "plot_width", "plot_height":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid positive float for %s: %v", key, val)
		}
		if key == "plot_width" {
			c.PlotWidth = f
		} else {
			c.PlotHeight = f
		}
	case "highlight_start":
		c.HighlightStart = val
	case "highlight_end":
		c.HighlightEnd = val
	case "compare_countries":
		parts := strings.Split(val, ",")
		if len(parts) != 2 {
			return fmt.Errorf("compare_countries needs exactly two comma-separated names, got %q", val)
		}
		c.CompareCountries = []string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])}
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "warning", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	case "log_file":
		c.LogFile = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// Get returns the display form of key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "workout_file":
		return c.WorkoutFile, nil
	case "keywords_file":
		return c.KeywordsFile, nil
	case "workout_geo_file":
		return c.WorkoutGeoFile, nil
	case "keywords_geo_file":
		return c.KeywordsGeoFile, nil
	case "timeseries_file":
		return c.TimeSeriesFile, nil
	case "geo_file":
		return c.GeoFile, nil
	case "images_dir":
		return c.ImagesDir, nil
	case "plot_width":
		return strconv.FormatFloat(c.PlotWidth, 'g', -1, 64), nil
	case "plot_height":
		return strconv.FormatFloat(c.PlotHeight, 'g', -1, 64), nil
	case "highlight_start":
		return c.HighlightStart, nil
	case "highlight_end":
		return c.HighlightEnd, nil
	case "compare_countries":
		return strings.Join(c.CompareCountries, ","), nil
	case "log_level":
		return c.LogLevel, nil
	case "log_file":
		return c.LogFile, nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}
