package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sample = `
server:
  addr: ":9090"
store:
  driver: redis
  redis:
    address: ${CHART_TEST_REDIS:-localhost:6380}
    key_prefix: "graphina:"
security:
  nonce_secret: ${CHART_TEST_SECRET}
  nonce_lifetime: 2h
providers:
  retry_attempts: 5
  retry_delay: 50ms
log:
  level: debug
  format: json
`

func TestLoadString(t *testing.T) {
	t.Setenv("CHART_TEST_SECRET", "s3cret")

	cfg, err := NewLoader().LoadString(sample)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %s", cfg.Server.Addr)
	}
	if cfg.Server.AjaxPath != "/wp-admin/admin-ajax.php" {
		t.Errorf("ajax path default lost: %s", cfg.Server.AjaxPath)
	}
	if cfg.Store.Redis.Address != "localhost:6380" || cfg.Store.Redis.KeyPrefix != "graphina:" {
		t.Errorf("redis = %+v", cfg.Store.Redis)
	}
	if cfg.Security.NonceSecret != "s3cret" || cfg.Security.NonceLifetime != 2*time.Hour {
		t.Errorf("security = %+v", cfg.Security)
	}
	if cfg.Providers.RetryAttempts != 5 || cfg.Providers.RetryDelay != 50*time.Millisecond {
		t.Errorf("providers = %+v", cfg.Providers)
	}
	if cfg.Providers.HTTPTimeout != 10*time.Second {
		t.Errorf("http timeout default lost: %v", cfg.Providers.HTTPTimeout)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoadValidation(t *testing.T) {
	_, err := NewLoader().LoadString("store:\n  driver: mysql\n")
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("err = %v, want ErrValidationFailed", err)
	}
}

func TestLoadRequiredEnv(t *testing.T) {
	_, err := NewLoader().LoadString("security:\n  nonce_secret: ${CHART_TEST_UNSET_VAR:?set it}\n")
	if !errors.Is(err, ErrMissingEnvVar) {
		t.Errorf("err = %v, want ErrMissingEnvVar", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewLoader().LoadFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("missing file err = %v", err)
	}

	path := filepath.Join(dir, "chart.yaml")
	if err := os.WriteFile(path, []byte("security:\n  nonce_secret: abc\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Driver != StoreMemory {
		t.Errorf("driver = %s", cfg.Store.Driver)
	}

	txt := filepath.Join(dir, "chart.txt")
	if err := os.WriteFile(txt, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLoader().LoadFile(txt); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("txt err = %v", err)
	}
}
