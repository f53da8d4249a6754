package config

import (
	"embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/benoitkugler/okcanvas/canvasdraw"
	"github.com/benoitkugler/okcanvas/canvasitem"
	"go.uber.org/zap"
)

//go:embed default/config.toml
var configFS embed.FS

type Config struct {
	Input  InputConfig  `toml:"input"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
	Watch  WatchConfig  `toml:"watch"`
	Fonts  []FontConfig `toml:"fonts"`

	// directory of the user file, used to resolve font paths
	dir string
}

type InputConfig struct {
	ItemsPath string `toml:"items_path"`
	Charset   string `toml:"charset"`
	ErrorMode string `toml:"error_mode"`
}

type OutputConfig struct {
	Format     string  `toml:"format"`
	Scale      float64 `toml:"scale"`
	Background string  `toml:"background"`
}

type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

type WatchConfig struct {
	DebounceMs int    `toml:"debounce_ms"`
	Overlay    bool   `toml:"overlay"`
	Message    string `toml:"message"`
}

type FontConfig struct {
	Family string `toml:"family"`
	File   string `toml:"file"`
	Bold   bool   `toml:"bold"`
	Italic bool   `toml:"italic"`
}

var Formats = [...]string{"png", "pdf", "svg"}

// Default returns the embedded configuration.
func Default() *Config {
	data, err := configFS.ReadFile("default/config.toml")
	if err != nil {
		panic("no embedded default config found: " + err.Error())
	}
	c := &Config{}
	if err := c.Load(string(data)); err != nil {
		panic("failed to load embedded default config: " + err.Error())
	}
	return c
}

// GetConfigFilePath returns the path of the user configuration,
// which may not exist. OKCANVAS_CONFIG_DIR takes precedence.
func GetConfigFilePath() string {
	if dir := os.Getenv("OKCANVAS_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "config.toml")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "okcanvas", "config.toml")
	}
	return ""
}

// LoadFile returns the defaults, overridden by `file`.
// An empty `file` selects the user configuration, if it exists.
func LoadFile(file string) (*Config, error) {
	c := Default()
	explicit := file != ""
	if !explicit {
		file = GetConfigFilePath()
	}
	if file == "" {
		return c, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := c.Load(string(data)); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", file, err)
	}
	c.dir = filepath.Dir(file)
	return c, nil
}

// Load decodes `data` on top of the current values.
// Arrays are replaced, not merged.
func (c *Config) Load(data string) error {
	metadata, err := toml.Decode(data, c)
	if err != nil {
		return err
	}
	if undecoded := metadata.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	if _, err := c.ErrorMode(); err != nil {
		return err
	}
	if c.Output.Format != "" && !isFormat(c.Output.Format) {
		return fmt.Errorf("invalid output format %q", c.Output.Format)
	}
	if c.Output.Scale <= 0 {
		return fmt.Errorf("invalid scale %g", c.Output.Scale)
	}
	if _, err := c.Background(); err != nil {
		return err
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("invalid debounce %d", c.Watch.DebounceMs)
	}
	for _, f := range c.Fonts {
		if f.Family == "" || f.File == "" {
			return errors.New("fonts entries require a family and a file")
		}
	}
	return nil
}

func isFormat(s string) bool {
	for _, f := range Formats {
		if f == s {
			return true
		}
	}
	return false
}

func (c *Config) ErrorMode() (canvasitem.ErrorMode, error) {
	switch c.Input.ErrorMode {
	case "ignore":
		return canvasitem.IgnoreErrorMode, nil
	case "warn", "":
		return canvasitem.WarnErrorMode, nil
	case "strict":
		return canvasitem.StrictErrorMode, nil
	default:
		return 0, fmt.Errorf("invalid error mode %q", c.Input.ErrorMode)
	}
}

// Background returns nil for a transparent surface.
func (c *Config) Background() (color.Color, error) {
	if c.Output.Background == "" {
		return nil, nil
	}
	bg, err := canvasitem.ParseColor(c.Output.Background)
	if err != nil {
		return nil, fmt.Errorf("invalid background: %w", err)
	}
	return bg, nil
}

// FontLibrary loads the configured fonts, on top of the Go fonts.
func (c *Config) FontLibrary() (*canvasdraw.FontLibrary, error) {
	lib := canvasdraw.NewFontLibrary()
	for _, f := range c.Fonts {
		file := f.File
		if !filepath.IsAbs(file) && c.dir != "" {
			file = filepath.Join(c.dir, file)
		}
		if err := lib.AddFile(f.Family, f.Bold, f.Italic, file); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// Logger builds the logger, writing to stderr.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	if c.Log.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = level
	return cfg.Build()
}
