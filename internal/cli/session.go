// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/cmdconsole/internal/config"
	"github.com/jeranaias/cmdconsole/internal/history"
	"github.com/jeranaias/cmdconsole/internal/interpreter"
	"github.com/jeranaias/cmdconsole/internal/kv"
	"github.com/jeranaias/cmdconsole/internal/logging"
)

// session bundles the resources one invocation needs.
type session struct {
	cfg        *config.Config
	configPath string
	store      kv.Store
	logger     logging.Logger
	logCloser  io.Closer
}

// openSession loads configuration, applies flag overrides and opens the
// history store and logger.
func openSession(opts *rootOptions) (*session, error) {
	cfg, path, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logPath := ""
	if cfg.Logging.Enabled {
		if logPath, err = cfg.LogPath(); err != nil {
			return nil, err
		}
	}
	logger, logCloser, err := logging.New(logging.Config{
		Enabled: cfg.Logging.Enabled,
		Level:   cfg.Logging.Level,
		Path:    logPath,
	})
	if err != nil {
		return nil, err
	}

	storePath := ""
	if cfg.Storage.Backend != kv.BackendMemory {
		if storePath, err = cfg.StoragePath(); err != nil {
			logCloser.Close()
			return nil, err
		}
	}
	store, err := kv.Open(cfg.Storage.Backend, storePath)
	if err != nil {
		logCloser.Close()
		return nil, err
	}
	logger.Debug("session opened", "backend", cfg.Storage.Backend, "path", storePath)

	return &session{
		cfg:        cfg,
		configPath: path,
		store:      store,
		logger:     logger,
		logCloser:  logCloser,
	}, nil
}

// loadConfig returns the configuration and the file it came from, which is
// empty when only defaults were used.
func loadConfig(opts *rootOptions) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path = opts.configPath
		err  error
	)
	if path == "" {
		if def, pathErr := config.ConfigPath(); pathErr == nil {
			if _, statErr := os.Stat(def); statErr == nil {
				path = def
			}
		}
	}
	// Flags override the environment, so validation waits until both apply.
	cfg, err = config.Read(path)
	if err != nil {
		return nil, "", err
	}

	if opts.store != "" {
		cfg.Storage.Backend = opts.store
	}
	if opts.storePath != "" {
		cfg.Storage.Path = opts.storePath
	}
	if opts.historySize != 0 {
		cfg.Console.HistorySize = opts.historySize
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid options: %w", err)
	}
	return cfg, path, nil
}

// interpreterOptions maps configuration onto interpreter options.
func (s *session) interpreterOptions() interpreter.Options {
	return interpreter.Options{
		PromptSymbol:   s.cfg.Console.PromptSymbol,
		WelcomeMessage: s.cfg.Console.WelcomeMessage,
		AboutText:      s.cfg.Console.AboutText,
		HistorySize:    s.cfg.Console.HistorySize,
		HistoryKey:     s.cfg.Console.HistoryKey,
		Store:          s.store,
		Logger:         s.logger,
	}
}

// history opens the persisted history outside of an interpreter.
func (s *session) history() *history.Store {
	return history.New(s.store,
		history.WithCapacity(s.cfg.Console.HistorySize),
		history.WithKey(s.cfg.Console.HistoryKey),
		history.WithLogger(s.logger),
	)
}

// Close releases the store and the log file.
func (s *session) Close() error {
	return errors.Join(s.store.Close(), s.logCloser.Close())
}
