// Package config defines the tickws configuration surface and YAML loading.
//
// All duration fields are strings in "time.ParseDuration" notation, so a
// config file reads naturally:
//
//	listen: 127.0.0.1:9100
//	parsedProtocol: tickws
//	rawProtocol: tickws-raw
//	acceptBackoff: 50ms
//	log:
//	  level: debug
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Default and by Load for omitted fields.
const (
	DefaultListen           = "127.0.0.1:0"
	DefaultParsedProtocol   = "tickws"
	DefaultRawProtocol      = "tickws-raw"
	DefaultAcceptBackoff    = "50ms"
	DefaultHandshakeTimeout = "10s"
	DefaultWriteTimeout     = "10s"
	DefaultReadChunkSize    = 4096
	DefaultMaxFrameSize     = 1 << 20 // 1 MiB
)

// LogConfig holds the logging section.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `yaml:"level,omitempty"`
	// Format is the output format: text or json.
	Format string `yaml:"format,omitempty"`
	// File, when set, duplicates log output into the named file.
	File string `yaml:"file,omitempty"`
}

// Config holds the full tickws server configuration.
type Config struct {
	// Listen is the TCP address the acceptor binds, host:port.
	// Port 0 picks an ephemeral port.
	Listen string `yaml:"listen,omitempty"`

	// ParsedProtocol is the subprotocol token selecting Parsed mode.
	ParsedProtocol string `yaml:"parsedProtocol,omitempty"`

	// RawProtocol is the subprotocol token selecting Raw mode.
	RawProtocol string `yaml:"rawProtocol,omitempty"`

	// AcceptBackoff is how long the acceptor waits for a connection
	// before rechecking for shutdown.
	AcceptBackoff string `yaml:"acceptBackoff,omitempty"`

	// HandshakeTimeout bounds a single HTTP upgrade exchange.
	HandshakeTimeout string `yaml:"handshakeTimeout,omitempty"`

	// WriteTimeout bounds a single outbound frame write.
	WriteTimeout string `yaml:"writeTimeout,omitempty"`

	// ReadChunkSize is the number of bytes a single per-tick read may
	// pull off a socket.
	ReadChunkSize int `yaml:"readChunkSize,omitempty"`

	// MaxFrameSize rejects frames whose payload exceeds this many bytes.
	MaxFrameSize int64 `yaml:"maxFrameSize,omitempty"`

	Log LogConfig `yaml:"log,omitempty"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Listen:           DefaultListen,
		ParsedProtocol:   DefaultParsedProtocol,
		RawProtocol:      DefaultRawProtocol,
		AcceptBackoff:    DefaultAcceptBackoff,
		HandshakeTimeout: DefaultHandshakeTimeout,
		WriteTimeout:     DefaultWriteTimeout,
		ReadChunkSize:    DefaultReadChunkSize,
		MaxFrameSize:     DefaultMaxFrameSize,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML config file. Omitted fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.ParsedProtocol == "" || c.RawProtocol == "" {
		return fmt.Errorf("both parsedProtocol and rawProtocol are required")
	}
	if c.ParsedProtocol == c.RawProtocol {
		return fmt.Errorf("parsedProtocol and rawProtocol must differ")
	}
	if c.ReadChunkSize <= 0 {
		return fmt.Errorf("readChunkSize must be positive")
	}
	if c.MaxFrameSize <= 0 {
		return fmt.Errorf("maxFrameSize must be positive")
	}
	for _, d := range []struct {
		name  string
		value string
	}{
		{"acceptBackoff", c.AcceptBackoff},
		{"handshakeTimeout", c.HandshakeTimeout},
		{"writeTimeout", c.WriteTimeout},
	} {
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.name, err)
		}
		if parsed <= 0 {
			return fmt.Errorf("%s must be positive", d.name)
		}
	}
	return nil
}

// AcceptBackoffDuration returns the parsed accept backoff.
func (c *Config) AcceptBackoffDuration() time.Duration {
	return parseDurationOr(c.AcceptBackoff, DefaultAcceptBackoff)
}

// HandshakeTimeoutDuration returns the parsed handshake timeout.
func (c *Config) HandshakeTimeoutDuration() time.Duration {
	return parseDurationOr(c.HandshakeTimeout, DefaultHandshakeTimeout)
}

// WriteTimeoutDuration returns the parsed write timeout.
func (c *Config) WriteTimeoutDuration() time.Duration {
	return parseDurationOr(c.WriteTimeout, DefaultWriteTimeout)
}

func parseDurationOr(value, fallback string) time.Duration {
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(fallback)
	return d
}
