package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/vango-dev/rxview/internal/errors"
)

const (
	// TOMLFileName is checked before JSONFileName.
	TOMLFileName = "rxview.toml"

	// JSONFileName is the JSON configuration file.
	JSONFileName = "rxview.json"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "RXVIEW_"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"
)

// Config is the complete configuration.
type Config struct {
	Serve   ServeConfig   `json:"serve" toml:"serve" envPrefix:"SERVE_"`
	Log     LogConfig     `json:"log" toml:"log" envPrefix:"LOG_"`
	Metrics MetricsConfig `json:"metrics" toml:"metrics" envPrefix:"METRICS_"`
	Tracing TracingConfig `json:"tracing" toml:"tracing" envPrefix:"TRACING_"`
	Engine  EngineConfig  `json:"engine" toml:"engine" envPrefix:"ENGINE_"`

	// path is where the config was loaded from, empty for defaults.
	path string
}

// ServeConfig configures the live server.
type ServeConfig struct {
	Host         string   `json:"host,omitempty" toml:"host" env:"HOST"`
	Port         int      `json:"port,omitempty" toml:"port" env:"PORT"`
	ReadTimeout  Duration `json:"readTimeout,omitempty" toml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout Duration `json:"writeTimeout,omitempty" toml:"write_timeout" env:"WRITE_TIMEOUT"`

	// Title is the page title.
	Title string `json:"title,omitempty" toml:"title" env:"TITLE"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" toml:"level" env:"LEVEL"`

	// Format is text or json.
	Format string `json:"format,omitempty" toml:"format" env:"FORMAT"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" toml:"enabled" env:"ENABLED"`
	Namespace string `json:"namespace,omitempty" toml:"namespace" env:"NAMESPACE"`
}

// TracingConfig configures OpenTelemetry spans.
type TracingConfig struct {
	// Name is the tracer name.
	Name string `json:"name,omitempty" toml:"name" env:"NAME"`
}

// EngineConfig configures the component engine.
type EngineConfig struct {
	// Debug logs every mount, unmount and dropped emission.
	Debug bool `json:"debug,omitempty" toml:"debug" env:"DEBUG"`
}

// Duration is a time.Duration written as a string ("10s") in files and
// environment variables.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Serve: ServeConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			ReadTimeout:  Duration(10 * time.Second),
			WriteTimeout: Duration(10 * time.Second),
			Title:        "rxview",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "rxview",
		},
		Tracing: TracingConfig{
			Name: "rxview",
		},
	}
}

// Load reads rxview.toml or rxview.json from dir when present, then
// applies environment overrides. With no file the defaults are used.
func Load(dir string) (*Config, error) {
	for _, name := range []string{TOMLFileName, JSONFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	cfg := New()
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadFile reads the file at path, choosing the format by extension, then
// applies environment overrides.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeConfigLoad).
			WithDetail("Could not read " + path).
			Wrap(err)
	}

	cfg := New()
	cfg.path = path
	if err := cfg.decode(path, data); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) decode(path string, data []byte) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".json":
		err = json.Unmarshal(data, c)
	default:
		return errors.New(errors.CodeConfigLoad).
			WithDetail("Unsupported configuration format " + filepath.Ext(path)).
			WithSuggestion("Use rxview.toml or rxview.json")
	}
	if err != nil {
		return errors.New(errors.CodeConfigLoad).
			WithDetail("Could not parse " + path).
			Wrap(err)
	}
	return nil
}

// ApplyEnv applies RXVIEW_* overrides from environ, or from the process
// environment when environ is nil.
func (c *Config) ApplyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return errors.New(errors.CodeConfigLoad).
			WithDetail("Invalid environment override").
			Wrap(err)
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return invalid(fmt.Sprintf("serve.port %d is out of range", c.Serve.Port), "Use a port between 0 and 65535")
	}
	if c.Serve.ReadTimeout < 0 || c.Serve.WriteTimeout < 0 {
		return invalid("serve timeouts must not be negative", "")
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return invalid(fmt.Sprintf("log.level %q is unknown", c.Log.Level), "Use debug, info, warn or error")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid(fmt.Sprintf("log.format %q is unknown", c.Log.Format), "Use text or json")
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return invalid("metrics.namespace is empty", "Set metrics.namespace or disable metrics")
	}
	return nil
}

func invalid(detail, suggestion string) error {
	e := errors.New(errors.CodeConfigInvalid).WithDetail(detail)
	if suggestion != "" {
		e = e.WithSuggestion(suggestion)
	}
	return e
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Serve.Host, strconv.Itoa(c.Serve.Port))
}

// Level returns the slog level for Log.Level.
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	if c.Engine.Debug {
		level = slog.LevelDebug
	}
	return level
}

// Logger builds the logger described by Log, writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
