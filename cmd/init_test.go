package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScaffoldProjectCreatesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	result, err := scaffoldProject(dir, "postgresql://postgres@localhost:5432/tanker", false)
	if err != nil {
		t.Fatalf("scaffoldProject returned error: %v", err)
	}

	if !result.SQLDirCreated {
		t.Fatalf("Expected sql dir to be created")
	}
	info, err := os.Stat(filepath.Join(dir, "sql"))
	if err != nil || !info.IsDir() {
		t.Fatalf("Expected sql directory, got err=%v", err)
	}

	tomlData, err := os.ReadFile(filepath.Join(dir, "dbsetup.toml"))
	if err != nil {
		t.Fatalf("Failed to read dbsetup.toml: %v", err)
	}
	if !strings.Contains(string(tomlData), "[environments.local]") {
		t.Fatalf("Expected local environment in config, got:\n%s", tomlData)
	}

	dotenvData, err := os.ReadFile(filepath.Join(dir, ".env"))
	if err != nil {
		t.Fatalf("Failed to read .env: %v", err)
	}
	if string(dotenvData) != "DATABASE_URL=postgresql://postgres@localhost:5432/tanker\n" {
		t.Fatalf("Unexpected .env contents:\n%s", dotenvData)
	}
}

func TestScaffoldProjectRefusesOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := scaffoldProject(dir, "postgresql://postgres@localhost:5432/tanker", false); err != nil {
		t.Fatalf("First scaffold failed: %v", err)
	}

	_, err := scaffoldProject(dir, "postgresql://postgres@localhost:5432/tanker", false)
	if err == nil {
		t.Fatalf("Expected second scaffold to refuse overwriting")
	}
	if !strings.Contains(err.Error(), "--force") {
		t.Fatalf("Expected overwrite hint, got: %v", err)
	}

	if _, err := scaffoldProject(dir, "postgresql://other@localhost:5432/tanker", true); err != nil {
		t.Fatalf("Expected --force scaffold to succeed: %v", err)
	}
}

func TestScaffoldProjectKeepsExistingSQLDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sql"), 0o755); err != nil {
		t.Fatalf("Failed to pre-create sql dir: %v", err)
	}

	result, err := scaffoldProject(dir, "postgresql://postgres@localhost:5432/tanker", false)
	if err != nil {
		t.Fatalf("scaffoldProject returned error: %v", err)
	}
	if result.SQLDirCreated {
		t.Fatalf("Expected existing sql dir to be left alone")
	}
}
