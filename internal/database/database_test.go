package database

import (
	"path/filepath"
	"testing"

	"finanzas/internal/config"
	"finanzas/internal/models"
)

func TestConfigURLs(t *testing.T) {
	cfg := NewConfig(&config.Config{
		DataBackend: config.BackendPostgres,
		DBHost:      "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "disable",
	})

	if got := cfg.DSN(); got != "host=db port=5432 user=u password=p dbname=n sslmode=disable" {
		t.Errorf("unexpected DSN %q", got)
	}
	if got := cfg.MigrateURL(); got != "postgres://u:p@db:5432/n?sslmode=disable" {
		t.Errorf("unexpected migrate URL %q", got)
	}
}

func TestNewManager_SQLite(t *testing.T) {
	cfg := &Config{Backend: config.BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "test.db")}

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m.Close()

	if err := m.RunMigrations(); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}
	if !m.DB().Migrator().HasTable(&models.UserDocument{}) {
		t.Error("expected user_documents table")
	}
}

func TestNewManager_MemoryHasNoDatabase(t *testing.T) {
	if _, err := NewManager(&Config{Backend: config.BackendMemory}); err == nil {
		t.Fatal("expected error for memory backend")
	}
}
