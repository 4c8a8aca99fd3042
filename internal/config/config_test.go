package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "HTTP_ADDR", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL", "POSTGRES_DSN", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"JWT_SECRET", "JWT_ACCESS_TTL", "REFRESH_TTL", "AUTH_BOOTSTRAP_KEY",
		"MATCHING_CONVERSATION_TIMEOUT", "MATCHING_EXCLUSION_CACHE_TTL", "MATCHING_LIST_LIMIT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
http:
  addr: ":9090"
auth:
  bootstrap_key: internal-key
matching:
  conversation_timeout: 3s
  list_limit: 25
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Auth.BootstrapKey != "internal-key" {
		t.Fatalf("unexpected bootstrap key: %s", cfg.Auth.BootstrapKey)
	}
	if cfg.Matching.ConversationTimeout.String() != "3s" {
		t.Fatalf("unexpected conversation timeout: %s", cfg.Matching.ConversationTimeout)
	}
	if cfg.Matching.ListLimit != 25 {
		t.Fatalf("unexpected list limit: %d", cfg.Matching.ListLimit)
	}

	// Untouched sections keep their defaults.
	if cfg.Auth.JWTAccessTTL.String() != "15m0s" {
		t.Fatalf("jwt access ttl default changed: %s", cfg.Auth.JWTAccessTTL)
	}
	if cfg.Matching.ExclusionCacheTTL.String() != "5m0s" {
		t.Fatalf("exclusion cache ttl default changed: %s", cfg.Matching.ExclusionCacheTTL)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("redis addr default changed: %s", cfg.Redis.Addr)
	}
}

func TestLoadEnvOverridesWinOverYAML(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
http:
  addr: ":9090"
log:
  level: info
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("MATCHING_EXCLUSION_CACHE_TTL", "90s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("env override lost: %s", cfg.HTTP.Addr)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("env override lost: %s", cfg.Log.Level)
	}
	if cfg.Matching.ExclusionCacheTTL.String() != "1m30s" {
		t.Fatalf("env override lost: %s", cfg.Matching.ExclusionCacheTTL)
	}
}

func TestLoadRejectsMalformedEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("JWT_ACCESS_TTL", "soon")

	if _, err := Load(""); err == nil {
		t.Fatal("malformed duration env should fail")
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("defaults not applied: %s", cfg.HTTP.Addr)
	}
}
