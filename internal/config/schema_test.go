package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/aethernote/internal/config"
)

func TestDBPath_Relative(t *testing.T) {
	s := config.StorageConfig{DataDir: "/data", DBFile: "notes.db"}
	if got := s.DBPath(); got != filepath.Join("/data", "notes.db") {
		t.Errorf("DBPath = %q", got)
	}
}

func TestDBPath_Absolute(t *testing.T) {
	s := config.StorageConfig{DataDir: "/data", DBFile: "/elsewhere/notes.db"}
	if got := s.DBPath(); got != "/elsewhere/notes.db" {
		t.Errorf("DBPath = %q, want absolute db_file", got)
	}
}

func TestDBPath_Default(t *testing.T) {
	s := config.StorageConfig{DataDir: "/data"}
	if got := s.DBPath(); got != filepath.Join("/data", "aethernote.db") {
		t.Errorf("DBPath = %q", got)
	}
}

func TestAddr(t *testing.T) {
	if got := (config.ServeConfig{}).Addr(); got != "127.0.0.1:8765" {
		t.Errorf("zero Addr = %q", got)
	}
	if got := (config.ServeConfig{Host: "0.0.0.0", Port: 9000}).Addr(); got != "0.0.0.0:9000" {
		t.Errorf("Addr = %q", got)
	}
}

func TestDefaultPath(t *testing.T) {
	p := config.DefaultPath()
	if p == "" {
		t.Fatal("DefaultPath returned empty string")
	}
	if !strings.HasSuffix(p, filepath.Join("aethernote", "config.yml")) {
		t.Errorf("DefaultPath = %q, should end with aethernote/config.yml", p)
	}
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv("AETHERNOTE_CONFIG", "/tmp/custom.yml")
	if got := config.Path(""); got != "/tmp/custom.yml" {
		t.Errorf("Path = %q, want env override", got)
	}
	if got := config.Path("/explicit.yml"); got != "/explicit.yml" {
		t.Errorf("Path = %q, want explicit path", got)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Serve.Port != 8765 || cfg.Serve.Host != "127.0.0.1" {
		t.Errorf("serve = %+v", cfg.Serve)
	}
	if cfg.Themes.Timeout != 5*time.Second {
		t.Errorf("themes.timeout = %v", cfg.Themes.Timeout)
	}
	if cfg.Log.File != filepath.Join(cfg.Storage.DataDir, "aethernote.log") {
		t.Errorf("log.file = %q", cfg.Log.File)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	body := "storage:\n  data_dir: " + dir + "\nthemes:\n  manifest: https://example.com/themes.json\n  timeout: 2s\nserve:\n  port: 9999\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AETHERNOTE_LOG_LEVEL", "debug")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.DataDir != dir {
		t.Errorf("data_dir = %q", cfg.Storage.DataDir)
	}
	if cfg.Themes.Manifest != "https://example.com/themes.json" || cfg.Themes.Timeout != 2*time.Second {
		t.Errorf("themes = %+v", cfg.Themes)
	}
	if cfg.Serve.Port != 9999 {
		t.Errorf("port = %d", cfg.Serve.Port)
	}
	if cfg.Serve.CacheDir != filepath.Join(dir, "offline") {
		t.Errorf("cache_dir = %q", cfg.Serve.CacheDir)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want env override", cfg.Log.Level)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yml")
	want := config.Defaults()
	want.Storage.DataDir = dir
	want.Serve.Port = 1234

	if err := config.Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n  port: 1234\n") {
		t.Errorf("expected two-space indented port, got:\n%s", data)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Serve.Port != 1234 || got.Storage.DataDir != dir {
		t.Errorf("round trip = %+v", got)
	}
}
