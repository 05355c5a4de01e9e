package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aaronsb/claude-knowledge-converter/internal/config"
	"github.com/aaronsb/claude-knowledge-converter/internal/logging"
)

// ckcDirName is the dot directory holding config, template, and catalog.
const ckcDirName = ".ckc"

// newLogger builds a logger matching the requested output format so log
// lines never corrupt piped JSON output.
func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(cfg.Logging.Level),
	})
}

// getVaultRoot resolves the vault root from the --vault flag or the
// working directory.
func getVaultRoot() (string, error) {
	if vaultFlag != "" {
		return filepath.Abs(vaultFlag)
	}
	return os.Getwd()
}

// mustGetVaultRoot returns the vault root or exits on error.
func mustGetVaultRoot() string {
	root, err := getVaultRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return root
}

// mustLoadConfig loads the vault configuration or falls back to defaults.
func mustLoadConfig(vaultRoot string) *config.Config {
	cfg, err := config.LoadConfig(vaultRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// ckcDir returns the dot directory path under the vault root.
func ckcDir(vaultRoot string) string {
	return filepath.Join(vaultRoot, ckcDirName)
}

// resolveUnder resolves a possibly relative config path against the vault
// root.
func resolveUnder(vaultRoot, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(vaultRoot, path)
}
