package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Enumerator.Strategy != "path" {
		t.Errorf("Enumerator.Strategy = %q, want %q", cfg.Enumerator.Strategy, "path")
	}
	if cfg.Enumerator.Workers != 0 {
		t.Errorf("Enumerator.Workers = %d, want 0", cfg.Enumerator.Workers)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Server.ReadHeaderTimeout != 5*time.Second {
		t.Errorf("Server.ReadHeaderTimeout = %v, want 5s", cfg.Server.ReadHeaderTimeout)
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default() should be valid, got %v", ValidationErrors(errs))
	}
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Enumerator.Strategy = "smart"
	cfg.Enumerator.Workers = -1
	cfg.Render.Color = "sometimes"

	errs := cfg.Validate()
	if len(errs) != 4 {
		t.Fatalf("Validate() returned %d errors, want 4: %v", len(errs), ValidationErrors(errs))
	}
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	want := "log.level enumerator.strategy enumerator.workers render.color"
	if got := strings.Join(fields, " "); got != want {
		t.Errorf("fields = %q, want %q", got, want)
	}
	if msg := ValidationErrors(errs).Error(); !strings.HasPrefix(msg, "4 validation errors") {
		t.Errorf("Error() = %q", msg)
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	dir := t.TempDir()
	path := filepath.Join(dir, "patrol.yaml")
	content := "enumerator:\n  strategy: brute\n  workers: 3\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}
	t.Setenv("PATROL_SERVER_ADDR", ":9999")
	viper.SetEnvPrefix("PATROL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Enumerator.Strategy != "brute" || cfg.Enumerator.Workers != 3 {
		t.Errorf("Enumerator = %+v", cfg.Enumerator)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %q, want env override", cfg.Server.Addr)
	}
	if cfg.Storage.Dir != "./data" {
		t.Errorf("Storage.Dir = %q, want default", cfg.Storage.Dir)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("enumerator.workers", -2)

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail for negative workers")
	}
}
