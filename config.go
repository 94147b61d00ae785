package gglive

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gglive/recording"
	"github.com/gogpu/gglive/text"
)

// Config holds the device configuration.
type Config struct {
	// Host and Port are the address the transport binds. Port 0 picks a
	// free port; the bound port is reported by Device.State.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Token, when set, is required by the transport on every request.
	Token string `yaml:"token"`
	// Cors allows cross-origin requests from any origin.
	Cors bool `yaml:"cors"`

	// Width and Height are the size of new pages in device units.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Background is the color of new pages that do not set their own.
	Background string `yaml:"background"`
	// PointSize is the default font size in points.
	PointSize float64 `yaml:"pointsize"`
	// FixedText pins the rendered width of text to the measured width.
	FixedText bool `yaml:"fixed_text"`
	// MaxRasterPixels downsamples larger bitmaps in markup; 0 keeps all.
	MaxRasterPixels int `yaml:"max_raster_pixels"`
	// Aliases point font families at font files.
	Aliases text.Aliases `yaml:"aliases"`

	// MaxPages bounds the retained pages; 0 keeps every page.
	MaxPages int `yaml:"max_pages"`
	// CacheSize is the number of rendered markups kept per cache shard.
	CacheSize int `yaml:"cache_size"`
	// ArchivePath, when set, is the SQLite file that receives every page
	// when the device closes.
	ArchivePath string `yaml:"archive"`

	LogLevel  string `yaml:"log_level"`  // "debug", "info" (default), "warn", "error"
	LogFormat string `yaml:"log_format"` // "text", "json" or "" to pick by terminal
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Host:       "127.0.0.1",
		Port:       0,
		Width:      720,
		Height:     576,
		Background: "white",
		PointSize:  12,
		CacheSize:  8,
		LogLevel:   "info",
	}
}

// LoadConfig reads a YAML file over the defaults and then applies
// environment overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		// #nosec G304 -- config path is provided by the user
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("gglive: read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("gglive: parse config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from GGLIVE_* environment variables. Values
// that do not parse are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("GGLIVE_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("GGLIVE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Port = n
		}
	}
	if v := os.Getenv("GGLIVE_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("GGLIVE_CORS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Cors = b
		}
	}
	if v := os.Getenv("GGLIVE_WIDTH"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.Width = f
		}
	}
	if v := os.Getenv("GGLIVE_HEIGHT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.Height = f
		}
	}
	if v := os.Getenv("GGLIVE_BACKGROUND"); v != "" {
		c.Background = v
	}
	if v := os.Getenv("GGLIVE_FIXED_TEXT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.FixedText = b
		}
	}
	if v := os.Getenv("GGLIVE_MAX_PAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.MaxPages = n
		}
	}
	if v := os.Getenv("GGLIVE_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.CacheSize = n
		}
	}
	if v := os.Getenv("GGLIVE_ARCHIVE"); v != "" {
		c.ArchivePath = v
	}
	if v := os.Getenv("GGLIVE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GGLIVE_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
}

// BindFlags registers command line flags for the fields of c on fs.
// Flags parsed later override the file and environment values already in c.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Host, "host", c.Host, "address to listen on")
	fs.IntVarP(&c.Port, "port", "p", c.Port, "port to listen on (0 picks a free port)")
	fs.StringVar(&c.Token, "token", c.Token, "access token required by viewers")
	fs.BoolVar(&c.Cors, "cors", c.Cors, "allow cross-origin requests")
	fs.Float64Var(&c.Width, "width", c.Width, "page width in device units")
	fs.Float64Var(&c.Height, "height", c.Height, "page height in device units")
	fs.StringVar(&c.Background, "bg", c.Background, "page background color")
	fs.Float64Var(&c.PointSize, "pointsize", c.PointSize, "default font size in points")
	fs.BoolVar(&c.FixedText, "fixed-text", c.FixedText, "pin rendered text to its measured width")
	fs.IntVar(&c.MaxRasterPixels, "max-raster-pixels", c.MaxRasterPixels, "downsample larger bitmaps (0 keeps all)")
	fs.IntVar(&c.MaxPages, "max-pages", c.MaxPages, "number of pages to keep (0 keeps all)")
	fs.IntVar(&c.CacheSize, "cache-size", c.CacheSize, "rendered pages cached per shard")
	fs.StringVar(&c.ArchivePath, "archive", c.ArchivePath, "SQLite file receiving pages on close")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "text or json (default: text on a terminal)")
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("page size %gx%g must be positive", c.Width, c.Height))
	}
	if c.PointSize <= 0 {
		errs = append(errs, fmt.Errorf("pointsize %g must be positive", c.PointSize))
	}
	if c.MaxPages < 0 {
		errs = append(errs, fmt.Errorf("max_pages %d must not be negative", c.MaxPages))
	}
	if _, err := recording.ParseColor(c.Background); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format %q must be text or json", c.LogFormat))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("gglive: invalid config: %w", err)
	}
	return nil
}

// ParseLevel maps a level name to a slog level. The empty name is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// background returns the parsed background color, falling back to white.
func (c Config) background() recording.Color {
	bg, err := recording.ParseColor(c.Background)
	if err != nil {
		return recording.White
	}
	return bg
}
