package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.RecordingsDir != "recordings" {
		t.Fatalf("unexpected default recordings dir: %q", cfg.Paths.RecordingsDir)
	}
	if cfg.Export.VideoCodec != "libx264" || cfg.Export.Preset != "faster" {
		t.Fatalf("unexpected export defaults: %+v", cfg.Export)
	}
	if cfg.Export.Threads <= 0 {
		t.Fatalf("threads default not set: %d", cfg.Export.Threads)
	}
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
recordings_dir = "/media/captures"

[export]
preset = "slow"
bitrate = "6M"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.RecordingsDir != "/media/captures" {
		t.Fatalf("file value not applied: %q", cfg.Paths.RecordingsDir)
	}
	if cfg.Paths.OutputDir != "output" {
		t.Fatalf("default lost during layering: %q", cfg.Paths.OutputDir)
	}
	if cfg.Export.Preset != "slow" || cfg.Export.Bitrate != "6M" {
		t.Fatalf("export overrides not applied: %+v", cfg.Export)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("paths = nonsense ["), 0o644)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Export.Threads = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected negative threads to be rejected")
	}
	cfg = Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unsupported log format to be rejected")
	}
}
