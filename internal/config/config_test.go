package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
server:
  port: "9090"
redis:
  addr: localhost:6379
  db: 2
quiz:
  bank: geo
  questionsFile: config/questions.yaml
poll:
  lobby: 2s
  question: 1500ms
log:
  level: debug
`

func TestLoadYAMLWithEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("REDIS_ADDR", "redis:6380")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "redis:6380" {
		t.Fatalf("expected env override for redis addr, got %q", cfg.Redis.Addr)
	}
	if cfg.Redis.DB != 2 {
		t.Fatalf("expected redis db 2, got %d", cfg.Redis.DB)
	}
	if cfg.BankID() != "geo" {
		t.Fatalf("expected bank geo, got %q", cfg.BankID())
	}
	if got := Duration(cfg.Poll.Question, time.Second); got != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s question poll, got %v", got)
	}
}

func TestLoadMissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("PORT", "7070")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Fatalf("expected port from env, got %q", cfg.Server.Port)
	}
	if cfg.BankID() != "default" {
		t.Fatalf("expected default bank, got %q", cfg.BankID())
	}
}

func TestDuration(t *testing.T) {
	if got := Duration("", 3*time.Second); got != 3*time.Second {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := Duration("nonsense", 3*time.Second); got != 3*time.Second {
		t.Fatalf("expected fallback for invalid input, got %v", got)
	}
	if got := Duration("-1s", 3*time.Second); got != 3*time.Second {
		t.Fatalf("expected fallback for negative input, got %v", got)
	}
	if got := Duration("250ms", 3*time.Second); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %v", got)
	}
}
