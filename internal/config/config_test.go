package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFiles_Defaults(t *testing.T) {
	cfg, err := LoadFiles([]string{filepath.Join(t.TempDir(), "missing.yaml")}, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendJSON || cfg.Theme != "classic" || cfg.DataDir == "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFiles_LaterFileOverrides(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "global.yaml")
	project := filepath.Join(dir, "project.yaml")
	writeFile(t, global, "backend: sqlite\ntheme: neon\ndata_dir: /tmp/a\n")
	writeFile(t, project, "theme: mono\n")

	cfg, err := LoadFiles([]string{global, project}, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendSQLite || cfg.Theme != "mono" || cfg.DataDir != "/tmp/a" {
		t.Fatalf("unexpected merge: %+v", cfg)
	}
}

func TestLoadFiles_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "c.yaml")
	writeFile(t, p, "backend: sqlite\n")
	t.Setenv("SERENE_BACKEND", "memory")

	cfg, err := LoadFiles([]string{p}, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendMemory {
		t.Fatalf("backend = %q, want memory", cfg.Backend)
	}
}

func TestLoadFiles_RequiredMissingFails(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := LoadFiles([]string{p}, p); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestValidate_UnknownBackend(t *testing.T) {
	c := DefaultConfig()
	c.Backend = "redis"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error")
	}
}
