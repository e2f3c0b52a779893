package config_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/ErlanBelekov/todo-api/config"
)

const testSecret = "config-test-secret-at-least-32-chars"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/todo")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Env != "local" {
		t.Errorf("Env = %q, want local", cfg.Env)
	}
	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.Store != config.StorePostgres {
		t.Errorf("Store = %q, want %q", cfg.Store, config.StorePostgres)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if !cfg.BootstrapSchema {
		t.Error("BootstrapSchema = false, want true")
	}
}

func TestLoad_MissingSecret_Fails(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/todo")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
}

func TestLoad_ShortSecret_Fails(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/todo")

	_, err := config.Load()
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("want invalid config error, got %v", err)
	}
}

func TestLoad_PostgresWithoutURL_Fails(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORE", "postgres")
	t.Setenv("DATABASE_URL", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing for postgres")
	}
}

func TestLoad_MongoStore(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORE", "mongo")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MongoDatabase != "TodoApp" {
		t.Errorf("MongoDatabase = %q, want TodoApp", cfg.MongoDatabase)
	}
}

func TestLoad_MongoWithoutURI_Fails(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORE", "mongo")
	t.Setenv("MONGODB_URI", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error when MONGODB_URI is missing for mongo")
	}
}

func TestLoad_UnknownStore_Fails(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORE", "redis")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for unknown STORE")
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for in, want := range cases {
		cfg := &config.Config{LogLevel: in}
		if got := cfg.SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
