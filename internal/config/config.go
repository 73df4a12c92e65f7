package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port      int              `json:"port"`
	JWTSecret string           `json:"jwt_secret"`
	Backend   BackendConfig    `json:"backend"`
	Upload    UploadConfig     `json:"upload"`
	Cache     CacheConfig      `json:"cache"`
	LogConfig logger.LogConfig `json:"log_config"`
}

type BackendConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type UploadConfig struct {
	MaxRetries              int    `json:"max_retries"`
	PollIntervalSeconds     int    `json:"poll_interval_seconds"`
	SessionRetentionMinutes int    `json:"session_retention_minutes"`
	SpoolDir                string `json:"spool_dir"`
}

type CacheConfig struct {
	Size       int `json:"size"`
	TTLSeconds int `json:"ttl_seconds"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend.base_url is required")
	}
	if cfg.Backend.TimeoutSeconds <= 0 {
		cfg.Backend.TimeoutSeconds = 30
	}
	if cfg.Upload.MaxRetries <= 0 {
		cfg.Upload.MaxRetries = 3
	}
	if cfg.Upload.PollIntervalSeconds <= 0 {
		cfg.Upload.PollIntervalSeconds = 2
	}
	if cfg.Upload.SessionRetentionMinutes <= 0 {
		cfg.Upload.SessionRetentionMinutes = 60
	}
	if cfg.Upload.SpoolDir == "" {
		cfg.Upload.SpoolDir = os.TempDir()
	}
	if cfg.Cache.Size <= 0 {
		cfg.Cache.Size = 1024
	}
	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = 60
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	return &cfg, nil
}
