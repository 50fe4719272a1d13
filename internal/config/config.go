package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	LogsRoot   string `toml:"logs_root"`
	DBPath     string `toml:"db_path"`
	SampleRate int    `toml:"sample_rate"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogsRoot:   filepath.Join(home, "realtime-logs"),
		DBPath:     filepath.Join(home, ".config", "olv", "olv.db"),
		SampleRate: 24000,
	}

	cfgPath := filepath.Join(home, ".config", "olv", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.LogsRoot = expandHome(cfg.LogsRoot, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
