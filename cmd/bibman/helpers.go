package main

import (
	"github.com/mr91i/bibmanager/internal/config"
	"github.com/mr91i/bibmanager/internal/storage"
)

// mustLoadConfig loads the global config, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenDatabase loads the bibliography database for the configured
// data root, exits on error.
func mustOpenDatabase(cfg *config.Config) *storage.Database {
	root, err := cfg.Root()
	if err != nil {
		exitWithError(ExitConfigError, "resolving data directory: %v", err)
	}
	db, err := storage.LoadDatabase(root)
	if err != nil {
		exitWithError(ExitDataError, "loading database: %v", err)
	}
	return db
}
