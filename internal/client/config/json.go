package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/daastan/internal/flagx"
)

// jsonConfig is the on-disk shape. Empty fields leave cfg untouched.
type jsonConfig struct {
	APIBaseURL  string      `json:"api_base_url"`
	SessionDSN  string      `json:"session_dsn"`
	LogLevel    string      `json:"log_level"`
	StorageKeys StorageKeys `json:"storage_keys"`
	Trace       *bool       `json:"trace"`
}

// parseJSON overlays cfg with the file named by -c/-config in args.
// No flag means no change.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	overlay(&cfg.APIBaseURL, jc.APIBaseURL)
	overlay(&cfg.SessionDSN, jc.SessionDSN)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.StorageKeys.AccessToken, jc.StorageKeys.AccessToken)
	overlay(&cfg.StorageKeys.RefreshToken, jc.StorageKeys.RefreshToken)
	overlay(&cfg.StorageKeys.User, jc.StorageKeys.User)
	overlay(&cfg.StorageKeys.Cart, jc.StorageKeys.Cart)
	if jc.Trace != nil {
		cfg.Trace = *jc.Trace
	}
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
