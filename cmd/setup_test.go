package cmd

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func setupWorkspace(t *testing.T, sqlFiles map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/tanker\n"), 0o644); err != nil {
		t.Fatalf("Failed to write go.mod: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "sql"), 0o755); err != nil {
		t.Fatalf("Failed to create sql dir: %v", err)
	}
	for name, body := range sqlFiles {
		if err := os.WriteFile(filepath.Join(dir, "sql", name), []byte(body), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	t.Chdir(dir)
	t.Cleanup(func() {
		setupEnvName = ""
		setupSQLDir = ""
		setupSchemaOnly = false
	})
	return dir
}

func TestRunSetupAppliesAllFiles(t *testing.T) {
	dir := setupWorkspace(t, map[string]string{
		"schema.sql":   "CREATE TABLE deliveries (id INTEGER PRIMARY KEY, role TEXT NOT NULL);",
		"customer.sql": "INSERT INTO deliveries (role) VALUES ('customer');",
		"supplier.sql": "INSERT INTO deliveries (role) VALUES ('supplier');",
		"driver.sql":   "INSERT INTO deliveries (role) VALUES ('driver');",
	})

	dbPath := filepath.Join(dir, "tanker.db")
	t.Setenv("DATABASE_URL", dbPath)

	if err := runSetup(setupCmd, nil); err != nil {
		t.Fatalf("runSetup returned error: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer func() { _ = db.Close() }()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM deliveries").Scan(&n); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	if n != 3 {
		t.Fatalf("Expected 3 rows, got %d", n)
	}
}

func TestRunSetupSchemaOnly(t *testing.T) {
	dir := setupWorkspace(t, map[string]string{
		"schema.sql": "CREATE TABLE deliveries (id INTEGER PRIMARY KEY, role TEXT NOT NULL);",
	})

	dbPath := filepath.Join(dir, "tanker.db")
	t.Setenv("DATABASE_URL", dbPath)
	setupSchemaOnly = true

	if err := runSetup(setupCmd, nil); err != nil {
		t.Fatalf("runSetup returned error: %v", err)
	}
}

func TestRunSetupReportsMissingFile(t *testing.T) {
	dir := setupWorkspace(t, map[string]string{
		"schema.sql": "CREATE TABLE deliveries (id INTEGER PRIMARY KEY, role TEXT NOT NULL);",
		// customer.sql missing
		"supplier.sql": "INSERT INTO deliveries (role) VALUES ('supplier');",
		"driver.sql":   "INSERT INTO deliveries (role) VALUES ('driver');",
	})

	dbPath := filepath.Join(dir, "tanker.db")
	t.Setenv("DATABASE_URL", dbPath)

	if err := runSetup(setupCmd, nil); err == nil {
		t.Fatalf("Expected runSetup to fail on missing customer.sql")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Schema committed before the failure; no later file executed
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM deliveries").Scan(&n); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	if n != 0 {
		t.Fatalf("Expected no rows, got %d", n)
	}
}

func TestRunSetupMissingDatabaseURL(t *testing.T) {
	setupWorkspace(t, map[string]string{
		"schema.sql": "CREATE TABLE deliveries (id INTEGER PRIMARY KEY);",
	})
	t.Setenv("DATABASE_URL", "")

	if err := runSetup(setupCmd, nil); err == nil {
		t.Fatalf("Expected runSetup to fail without DATABASE_URL")
	}
}
