package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/yndnr/examprep-go/internal/telemetry/logger"
	"github.com/yndnr/examprep-go/internal/telemetry/tracer"
)

// DefaultAPIURL is the API base URL used when none is configured.
const DefaultAPIURL = "http://localhost:3000/api"

// Config is the examprep-cli configuration.
type Config struct {
	API     APIConfig     `koanf:"api" yaml:"api"`
	Session SessionConfig `koanf:"session" yaml:"session"`
	Output  OutputConfig  `koanf:"output" yaml:"output"`
	Log     logger.Config `koanf:"log" yaml:"log"`
	Metrics MetricsConfig `koanf:"metrics" yaml:"metrics"`
	Trace   tracer.Config `koanf:"trace" yaml:"trace,omitempty"`
}

// APIConfig locates the exam platform API.
type APIConfig struct {
	URL string `koanf:"url" yaml:"url"`
	// Timeout bounds each request; 0 means no client-side limit.
	Timeout Duration `koanf:"timeout" yaml:"timeout"`
	// CAFile is an extra PEM bundle trusted for HTTPS.
	CAFile string `koanf:"cafile" yaml:"cafile,omitempty"`
}

// SessionConfig locates the local session store.
type SessionConfig struct {
	Dir string `koanf:"dir" yaml:"dir"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	Format string `koanf:"format" yaml:"format"` // table, json, yaml
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	// Textfile, when set, receives client metrics at exit.
	Textfile string `koanf:"textfile" yaml:"textfile,omitempty"`
}

// Duration is a time.Duration written as "30s" in YAML.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// MarshalYAML writes the duration in Go syntax.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalText parses Go duration syntax.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	log := logger.DefaultConfig()
	log.Output = nil
	return &Config{
		API:     APIConfig{URL: DefaultAPIURL},
		Session: SessionConfig{Dir: filepath.Join(HomeDir(), "session")},
		Output:  OutputConfig{Format: "table"},
		Log:     log,
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.URL)
	if err != nil || c.API.URL == "" {
		return fmt.Errorf("api.url: invalid URL %q", c.API.URL)
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.url: unsupported scheme %q", u.Scheme)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout: must not be negative")
	}
	if c.API.CAFile != "" {
		if _, err := os.Stat(c.API.CAFile); err != nil {
			return fmt.Errorf("api.cafile: %w", err)
		}
	}
	if c.Session.Dir == "" {
		return fmt.Errorf("session.dir: required")
	}
	switch c.Output.Format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("output.format: must be table, json or yaml, got %q", c.Output.Format)
	}
	if !logger.ValidLevel(c.Log.Level) {
		return fmt.Errorf("log.level: invalid level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: must be text or json, got %q", c.Log.Format)
	}
	return nil
}
