package db

import (
	"os"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	constant "liyu1981.xyz/maternity-monitor-service/pkg/common"
)

func TestWithEnvPath(t *testing.T) {
	common.SetTestLoggerNop()

	if os.Getenv(constant.EnvKeyRunIntegrationTests) != "true" {
		t.Skip("Skipping integration test: RUN_INTEGRATION_TESTS environment variable not set")
	}

	testPath := filepath.Join(t.TempDir(), "test.db")
	t.Setenv(constant.EnvKeyMaternityDbPath, testPath)

	// the package singleton may already hold the memory db, so open directly
	conn, err := gorm.Open(UseSqliteDialector(), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open sqlite file: %v", err)
	}
	if err := Migrate(conn); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	if _, err := os.Stat(testPath); os.IsNotExist(err) {
		t.Errorf("Expected database file to be created at %s", testPath)
	}
	if !indexExists(conn, ActiveSessionIndexName) {
		t.Errorf("Expected index %s on file database", ActiveSessionIndexName)
	}
}

func TestPostgresDialector(t *testing.T) {
	common.SetTestLoggerNop()

	if os.Getenv(constant.EnvKeyRunIntegrationTests) != "true" || os.Getenv(constant.EnvKeyMaternityPostgresDSN) == "" {
		t.Skip("Skipping integration test: RUN_INTEGRATION_TESTS or MATERNITY_POSTGRES_DSN not set")
	}

	conn, err := gorm.Open(UsePostgresDialector(), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	if err := Migrate(conn); err != nil {
		t.Fatalf("Failed to migrate postgres: %v", err)
	}
}
