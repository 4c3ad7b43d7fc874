package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const defaultEnvironmentName = "local"

// ConfigError reports a missing or unusable connection string. It is fatal;
// no connection attempt is made once it is returned.
type ConfigError struct {
	Environment string
	Reason      string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for environment %q: %s", e.Environment, e.Reason)
}

// ResolvedEnvironment represents a fully-resolved environment with concrete values.
type ResolvedEnvironment struct {
	Name        string
	DatabaseURL string
	SQLDir      string
	DotenvPath  string
	FromConfig  bool
	FromDotenv  bool
}

// ResolveEnvironment resolves a named environment into a concrete connection
// string and SQL directory. Values from dbsetup.toml are applied first, then a
// .env.<name> (or plain .env) file; DATABASE_URL from dotenv wins over the
// config file. A missing DATABASE_URL after both sources is a ConfigError.
func ResolveEnvironment(config *Config, name string) (*ResolvedEnvironment, error) {
	envName := strings.TrimSpace(name)
	if envName == "" {
		if config != nil && config.DefaultEnvironment != "" {
			envName = config.DefaultEnvironment
		} else {
			envName = defaultEnvironmentName
		}
	}

	var (
		envConfig EnvironmentConfig
		envExists bool
	)
	if config != nil && config.Environments != nil {
		if cfg, ok := config.Environments[envName]; ok {
			envConfig = cfg
			envExists = true
		}
	}

	resolved := &ResolvedEnvironment{Name: envName}

	if config != nil {
		if config.DatabaseURL != "" && envConfig.DatabaseURL == "" {
			envConfig.DatabaseURL = config.DatabaseURL
		}
		if config.SQLDir != "" && envConfig.SQLDir == "" {
			envConfig.SQLDir = config.SQLDir
		}
	}

	resolved.DatabaseURL = envConfig.DatabaseURL
	resolved.SQLDir = envConfig.SQLDir
	if envExists {
		resolved.FromConfig = true
	}

	var baseDir string
	if config != nil && config.ConfigDir() != "" {
		baseDir = config.ConfigDir()
	} else if cwd, err := os.Getwd(); err == nil {
		baseDir = cwd
	}

	resolved.DotenvPath = dotenvPath(baseDir, ".env."+envName)
	if _, err := os.Stat(resolved.DotenvPath); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to access %s: %w", resolved.DotenvPath, err)
		}
		// Fall back to a plain .env next to the config
		resolved.DotenvPath = dotenvPath(baseDir, ".env")
	}

	if info, err := os.Stat(resolved.DotenvPath); err == nil && !info.IsDir() {
		values, err := godotenv.Read(resolved.DotenvPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", resolved.DotenvPath, err)
		}
		resolved.FromDotenv = true

		if value := values["DATABASE_URL"]; value != "" {
			resolved.DatabaseURL = value
		}
		if resolved.SQLDir == "" {
			if value := values["SQL_DIR"]; value != "" {
				resolved.SQLDir = value
			}
		}
	}

	// Process environment wins when the dotenv file did not set it
	if resolved.DatabaseURL == "" {
		resolved.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if strings.TrimSpace(resolved.DatabaseURL) == "" {
		return nil, &ConfigError{
			Environment: envName,
			Reason:      "DATABASE_URL is not set (checked dbsetup.toml, " + filepath.Base(resolved.DotenvPath) + ", and the process environment)",
		}
	}

	if resolved.SQLDir != "" {
		base := ""
		if config != nil {
			base = config.ConfigDir()
		}
		if base != "" && !filepath.IsAbs(resolved.SQLDir) {
			resolved.SQLDir = filepath.Join(base, resolved.SQLDir)
		}
	}

	return resolved, nil
}

func dotenvPath(baseDir, fileName string) string {
	if baseDir != "" {
		return filepath.Join(baseDir, fileName)
	}
	return fileName
}
