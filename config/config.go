package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// Config holds user-configurable defaults.
type Config struct {
	IntervalSec int         `json:"interval_sec"`
	PurgeRetain int         `json:"purge_retain"`
	TrimRetain  int         `json:"trim_retain"`
	Alerts      AlertConfig `json:"alerts"`
}

// AlertConfig defines optional alert destinations.
type AlertConfig struct {
	Webhook string `json:"webhook"`
	Command string `json:"command"`
}

// Default returns a config with sensible defaults.
func Default() Config {
	return Config{
		IntervalSec: 5,
		PurgeRetain: 0,
		TrimRetain:  1,
	}
}

// Path returns ~/.config/memsweep/config.json (or XDG_CONFIG_HOME).
// Returns empty string if the home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "memsweep", "config.json")
}

// Load loads config from disk; returns defaults on any error.
func Load() Config {
	cfg := Default()
	p := Path()
	if p == "" {
		return cfg
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("memsweep: warning: config parse error: %v", err)
		return Default()
	}
	if cfg.IntervalSec <= 0 {
		cfg.IntervalSec = 5
	}
	return cfg
}

// Save writes the config to its default path, creating the directory.
func Save(cfg Config) error {
	p := Path()
	if p == "" {
		return os.ErrNotExist
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}
