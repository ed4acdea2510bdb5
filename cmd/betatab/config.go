package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/on-the-ground/betafn/internal/logging"
	"github.com/on-the-ground/betafn/tabulate"
)

const envPrefix = "BETATAB"

// ErrInvalidConfig is returned for settings the memo table cannot be built with.
var ErrInvalidConfig = fmt.Errorf("invalid config")

// Config is read from BETATAB_* environment variables.
type Config struct {
	AMin float64 `envconfig:"A_MIN" default:"0.5"`
	AMax float64 `envconfig:"A_MAX" default:"5"`
	ANum int     `envconfig:"A_NUM" default:"10"`
	BMin float64 `envconfig:"B_MIN" default:"0.5"`
	BMax float64 `envconfig:"B_MAX" default:"5"`
	BNum int     `envconfig:"B_NUM" default:"10"`

	Symmetric bool `envconfig:"SYMMETRIC" default:"true"`

	MemoSize   uint32 `envconfig:"MEMO_SIZE" default:"1024"`
	MemoShards int    `envconfig:"MEMO_SHARDS" default:"4"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogDev   bool   `envconfig:"LOG_DEV" default:"false"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.MemoSize == 0 {
		return Config{}, fmt.Errorf("%w: %s_MEMO_SIZE must be positive", ErrInvalidConfig, envPrefix)
	}
	if cfg.MemoShards < 1 {
		return Config{}, fmt.Errorf("%w: %s_MEMO_SHARDS must be positive, got %d", ErrInvalidConfig, envPrefix, cfg.MemoShards)
	}
	// more shards than entries only inflate the capacity
	if uint64(cfg.MemoShards) > uint64(cfg.MemoSize) {
		return Config{}, fmt.Errorf("%w: %s_MEMO_SHARDS %d exceeds %s_MEMO_SIZE %d",
			ErrInvalidConfig, envPrefix, cfg.MemoShards, envPrefix, cfg.MemoSize)
	}
	if err := cfg.grid().Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) grid() tabulate.Config {
	return tabulate.Config{
		AMin: c.AMin, AMax: c.AMax, ANum: c.ANum,
		BMin: c.BMin, BMax: c.BMax, BNum: c.BNum,
		Symmetric: c.Symmetric,
	}
}

func (c Config) loggingConfig() logging.Config {
	return logging.Config{Level: c.LogLevel, Development: c.LogDev}
}
