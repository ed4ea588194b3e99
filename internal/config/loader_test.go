package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "port: 9999\nprovider: gemini\napi_key: k\ndefault_model: gemini-1.5-flash\nmodels: [a, b]\nmax_wait: 5s\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9999 || cfg.Provider != ProviderGemini || cfg.APIKey != "k" || cfg.DefaultModel != "gemini-1.5-flash" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Models) != 2 || cfg.MaxWait.Std() != 5*time.Second {
		t.Fatalf("unexpected models/max_wait: %+v", cfg)
	}
	// untouched fields keep defaults
	if cfg.MaxUploadBytes != 16<<20 || cfg.Location != "us-central1" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"port":7070,"provider":"stub","max_upload_bytes":1024,"generate_timeout":"45s"}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 7070 || cfg.Provider != ProviderStub || cfg.MaxUploadBytes != 1024 || cfg.GenerateTimeout.Std() != 45*time.Second {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "port=8081\nprovider=\"vertex\"\nproject=\"p1\"\nlocation=\"europe-west4\"\nmax_concurrent=2\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8081 || cfg.Project != "p1" || cfg.Location != "europe-west4" || cfg.MaxConcurrent != 2 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	p = writeTempFile(t, d, "bad.json", "{")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyEnv_OverridesFileValues(t *testing.T) {
	cfg := Defaults()
	t.Setenv("PORT", "9090")
	t.Setenv("WIREGEN_PROVIDER", "stub")
	t.Setenv("WIREGEN_MODELS", "m1,m2,m3")
	t.Setenv("WIREGEN_MAX_WAIT", "250ms")
	if err := ApplyEnv(&cfg, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Port != 9090 || cfg.Provider != ProviderStub {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if len(cfg.Models) != 3 || cfg.Models[2] != "m3" {
		t.Fatalf("models=%v", cfg.Models)
	}
	if cfg.MaxWait.Std() != 250*time.Millisecond {
		t.Fatalf("max_wait=%v", cfg.MaxWait.Std())
	}
	// unset variables leave values alone
	if cfg.DefaultModel != "gemini-1.0-pro-vision" {
		t.Fatalf("default model changed: %q", cfg.DefaultModel)
	}
}

func TestApplyEnv_ReadsDotenv(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "test.env", "WIREGEN_DEFAULT_MODEL=from-dotenv\n")
	t.Setenv("WIREGEN_DEFAULT_MODEL", "")
	os.Unsetenv("WIREGEN_DEFAULT_MODEL")
	cfg := Defaults()
	if err := ApplyEnv(&cfg, p); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.DefaultModel != "from-dotenv" {
		t.Fatalf("default model=%q", cfg.DefaultModel)
	}
}

func TestAddr(t *testing.T) {
	cfg := Defaults()
	if got := cfg.Addr(); got != "0.0.0.0:8080" {
		t.Fatalf("addr=%q", got)
	}
}
