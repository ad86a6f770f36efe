package config

import (
	"os"
	"path/filepath"
	"testing"
)

var configEnvKeys = []string{
	"SITE_CONFIG", "PORT", "LISTEN_ADDR", "DATABASE_PATH", "SESSION_SECRET", "GIN_MODE",
	"CONTENT_PATH", "UPLOAD_DIR", "UPLOAD_URL_PATH", "ADMIN_PASSWORD", "LOG_LEVEL", "SITE_BASE_URL",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.ContentPath != "public/data/content.json" {
		t.Fatalf("unexpected content path %q", cfg.ContentPath)
	}
	if cfg.UploadDir != "public/uploads" || cfg.UploadURLPath != "/uploads" {
		t.Fatalf("unexpected upload defaults %q %q", cfg.UploadDir, cfg.UploadURLPath)
	}
	if cfg.AdminPassword != "gg5656" {
		t.Fatalf("unexpected admin password default %q", cfg.AdminPassword)
	}
}

func TestLoadPortBuildsListenAddr(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Fatalf("expected :9090, got %q", cfg.ListenAddr)
	}
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "site.yaml")
	body := []byte("content_path: data/site.json\nupload_url_path: media/\nadmin_password: from-file\nlog_level: debug\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("SITE_CONFIG", path)
	t.Setenv("ADMIN_PASSWORD", " from-env ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ContentPath != "data/site.json" {
		t.Fatalf("expected content path from file, got %q", cfg.ContentPath)
	}
	if cfg.UploadURLPath != "/media" {
		t.Fatalf("expected normalized upload url path, got %q", cfg.UploadURLPath)
	}
	if cfg.AdminPassword != "from-env" {
		t.Fatalf("expected env to override file, got %q", cfg.AdminPassword)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level from file, got %q", cfg.LogLevel)
	}
}

func TestLoadFileMissingIsEmpty(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if cfg != (AppConfig{}) {
		t.Fatalf("expected empty config, got %#v", cfg)
	}
}

func TestLoadFileRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("content_path: [unclosed"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
