package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/marquee/internal/marquee"
)

var (
	ErrInvalidDirection   = errors.New("invalid direction")
	ErrInvalidTextElement = errors.New("invalid text element type")
	ErrInvalidDataset     = errors.New("invalid dataset")
)

// Datasets served by the demo database.
var Datasets = []string{"images", "text", "mixed"}

// Config holds application configuration.
type Config struct {
	Marquee  MarqueeConfig
	Database DatabaseConfig
	Demo     DemoConfig
	Log      LogConfig
}

// MarqueeConfig mirrors the widget options that make sense in a file.
type MarqueeConfig struct {
	Direction               string
	AnimationDuration       float64 `mapstructure:"animation_duration"`
	AnimationDelay          float64 `mapstructure:"animation_delay"`
	AnimationIterationCount int     `mapstructure:"animation_iteration_count"`
	PauseOnHover            bool    `mapstructure:"pause_on_hover"`
	PauseOnClick            bool    `mapstructure:"pause_on_click"`
	TransitionDuration      int     `mapstructure:"transition_duration"`
	TextElementType         string  `mapstructure:"text_element_type"`
	FPS                     int
	CellPixels              int `mapstructure:"cell_pixels"`
	Gap                     int
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// DemoConfig selects the sample content.
type DemoConfig struct {
	Dataset string
	Title   string
}

// LogConfig holds debug log settings. An empty File disables logging.
type LogConfig struct {
	File string
}

// Path returns the config file location: MARQUEE_CONFIG if set, otherwise
// ~/.config/marquee/config.toml.
func Path() string {
	if p := os.Getenv("MARQUEE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "marquee", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("marquee.direction", "left")
	v.SetDefault("marquee.animation_duration", 120)
	v.SetDefault("marquee.animation_delay", 0)
	v.SetDefault("marquee.animation_iteration_count", 0)
	v.SetDefault("marquee.pause_on_hover", true)
	v.SetDefault("marquee.pause_on_click", false)
	v.SetDefault("marquee.transition_duration", 500)
	v.SetDefault("marquee.text_element_type", "h1")
	v.SetDefault("marquee.fps", 30)
	v.SetDefault("marquee.cell_pixels", 8)
	v.SetDefault("marquee.gap", 2)
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "marquee", "marquee.db"))
	v.SetDefault("demo.dataset", "mixed")
	v.SetDefault("demo.title", "hello")
	v.SetDefault("log.file", "")
}

// Load reads configuration from file and env. Env var overrides use prefix MARQUEE_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if cfgPath := os.Getenv("MARQUEE_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "marquee"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MARQUEE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the widget would otherwise silently replace.
func (c Config) Validate() error {
	if _, ok := marquee.ParseDirection(c.Marquee.Direction); !ok {
		return fmt.Errorf("marquee.direction %q: %w", c.Marquee.Direction, ErrInvalidDirection)
	}
	if !slices.Contains(marquee.TextElements, c.Marquee.TextElementType) {
		return fmt.Errorf("marquee.text_element_type %q: %w", c.Marquee.TextElementType, ErrInvalidTextElement)
	}
	if !slices.Contains(Datasets, c.Demo.Dataset) {
		return fmt.Errorf("demo.dataset %q: %w", c.Demo.Dataset, ErrInvalidDataset)
	}
	return nil
}

// Options converts the file settings to widget options. Content and
// callbacks are left for the caller.
func (c MarqueeConfig) Options() marquee.Options {
	dir, _ := marquee.ParseDirection(c.Direction)
	return marquee.Options{
		Direction:               dir,
		AnimationDuration:       c.AnimationDuration,
		AnimationDelay:          time.Duration(c.AnimationDelay * float64(time.Second)),
		AnimationIterationCount: c.AnimationIterationCount,
		PauseOnHover:            c.PauseOnHover,
		PauseOnClick:            c.PauseOnClick,
		TransitionDuration:      time.Duration(c.TransitionDuration) * time.Millisecond,
		TextElementType:         c.TextElementType,
		FPS:                     c.FPS,
		CellPixels:              c.CellPixels,
		Gap:                     c.Gap,
	}
}

// Save writes the provided config to Path, creating the config directory if
// needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("marquee.direction", cfg.Marquee.Direction)
	v.Set("marquee.animation_duration", cfg.Marquee.AnimationDuration)
	v.Set("marquee.animation_delay", cfg.Marquee.AnimationDelay)
	v.Set("marquee.animation_iteration_count", cfg.Marquee.AnimationIterationCount)
	v.Set("marquee.pause_on_hover", cfg.Marquee.PauseOnHover)
	v.Set("marquee.pause_on_click", cfg.Marquee.PauseOnClick)
	v.Set("marquee.transition_duration", cfg.Marquee.TransitionDuration)
	v.Set("marquee.text_element_type", cfg.Marquee.TextElementType)
	v.Set("marquee.fps", cfg.Marquee.FPS)
	v.Set("marquee.cell_pixels", cfg.Marquee.CellPixels)
	v.Set("marquee.gap", cfg.Marquee.Gap)
	v.Set("database.path", cfg.Database.Path)
	v.Set("demo.dataset", cfg.Demo.Dataset)
	v.Set("demo.title", cfg.Demo.Title)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
