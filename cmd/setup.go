package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tankerops/dbsetup/internal/config"
	"github.com/tankerops/dbsetup/internal/database"
	"github.com/tankerops/dbsetup/internal/runner"
)

var (
	setupEnvName    string
	setupSQLDir     string
	setupSchemaOnly bool
)

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().StringVar(&setupEnvName, "env", "", "Named environment from dbsetup.toml (default from config)")
	setupCmd.Flags().StringVar(&setupSQLDir, "dir", "", "Directory holding the SQL files (default \"sql\")")
	setupCmd.Flags().BoolVar(&setupSchemaOnly, "schema-only", false, "Apply only schema.sql, skipping the role function files")
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Apply the SQL files to the database in dependency order",
	RunE:  runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	env, err := config.ResolveEnvironment(cfg, setupEnvName)
	if err != nil {
		return err
	}

	sqlDir := setupSQLDir
	if sqlDir == "" {
		sqlDir = env.SQLDir
	}
	if sqlDir == "" {
		sqlDir = "sql"
	}

	files := runner.Manifest(sqlDir, setupSchemaOnly)

	ctx := context.Background()

	fmt.Printf("Connecting to the %s database...\n", env.Name)
	db, err := database.Open(ctx, env.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	fmt.Println("✓ Connected successfully")

	results, runErr := runner.RunAll(ctx, db, files)
	for _, result := range results {
		switch result.Status {
		case runner.Applied:
			fmt.Printf("✓ Executed %s\n", result.File.Path)
		case runner.RolledBack:
			fmt.Printf("✗ Error executing %s: %v\n", result.File.Path, result.Err)
		case runner.Missing:
			fmt.Printf("✗ SQL file not found: %s\n", result.File.Path)
		}
	}
	if runErr != nil {
		return runErr
	}

	fmt.Println("\n✓ Database setup completed successfully")
	return nil
}
