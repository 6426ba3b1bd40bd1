package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.ParsedProtocol == cfg.RawProtocol {
		t.Fatal("default protocols must differ")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickws.yaml")
	content := `
listen: 127.0.0.1:9100
parsedProtocol: chat.v1
acceptBackoff: 25ms
log:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Listen != "127.0.0.1:9100" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.ParsedProtocol != "chat.v1" {
		t.Errorf("ParsedProtocol = %q", cfg.ParsedProtocol)
	}
	// Omitted fields keep defaults.
	if cfg.RawProtocol != DefaultRawProtocol {
		t.Errorf("RawProtocol = %q, want default %q", cfg.RawProtocol, DefaultRawProtocol)
	}
	if cfg.ReadChunkSize != DefaultReadChunkSize {
		t.Errorf("ReadChunkSize = %d", cfg.ReadChunkSize)
	}
	if got := cfg.AcceptBackoffDuration(); got != 25*time.Millisecond {
		t.Errorf("AcceptBackoffDuration = %v", got)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty listen", func(c *Config) { c.Listen = "" }},
		{"empty parsed protocol", func(c *Config) { c.ParsedProtocol = "" }},
		{"equal protocols", func(c *Config) { c.RawProtocol = c.ParsedProtocol }},
		{"zero chunk size", func(c *Config) { c.ReadChunkSize = 0 }},
		{"negative max frame", func(c *Config) { c.MaxFrameSize = -1 }},
		{"bad backoff", func(c *Config) { c.AcceptBackoff = "soon" }},
		{"zero write timeout", func(c *Config) { c.WriteTimeout = "0s" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDurationFallback(t *testing.T) {
	cfg := Default()
	cfg.WriteTimeout = "garbage"
	if got := cfg.WriteTimeoutDuration(); got != 10*time.Second {
		t.Errorf("WriteTimeoutDuration fallback = %v", got)
	}
}
