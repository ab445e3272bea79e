package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Env variable names. Env always wins over file values.
const (
	EnvListen         = "LOCKDROP_LISTEN"
	EnvDataDir        = "LOCKDROP_DATA_DIR"
	EnvKeyDir         = "LOCKDROP_KEY_DIR"
	EnvIngestKey      = "LOCKDROP_INGEST_KEY"
	EnvPanelKey       = "LOCKDROP_PANEL_KEY"
	EnvPublicKey      = "LOCKDROP_PUBLIC_KEY"
	EnvPrivateKey     = "LOCKDROP_PRIVATE_KEY"
	EnvMaxBodyMB      = "LOCKDROP_MAX_BODY_MB"
	EnvRateLimitRPS   = "LOCKDROP_RATE_RPS"
	EnvRateLimitBurst = "LOCKDROP_RATE_BURST"
)

// Config is the resolved runtime configuration for the daemon.
type Config struct {
	Listen    string  `yaml:"listen"`
	DataDir   string  `yaml:"dataDir"`
	KeyDir    string  `yaml:"keyDir"`
	IngestKey string  `yaml:"ingestKey"`
	PanelKey  string  `yaml:"panelKey"`
	MaxBodyMB int     `yaml:"maxBodyMB"`
	RateRPS   float64 `yaml:"rateRPS"`
	RateBurst int     `yaml:"rateBurst"`
}

// DefaultConfig returns the baseline configuration before file and env
// merging.
func DefaultConfig() Config {
	return Config{
		Listen:    ":8080",
		DataDir:   "data",
		KeyDir:    "keys",
		MaxBodyMB: 32,
		RateRPS:   20,
		RateBurst: 40,
	}
}

// LoadConfig resolves configuration: defaults, then the first readable YAML
// file among configPath and the conventional locations, then env overrides.
func LoadConfig(configPath string) Config {
	cfg := DefaultConfig()

	candidates := make([]string, 0, 2)
	if configPath != "" {
		candidates = append(candidates, configPath)
	} else {
		candidates = append(candidates, "configs/config.yaml", "config.yaml")
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var parsed Config
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			continue
		}
		merge(&cfg, parsed)
		break
	}

	applyEnvOverrides(&cfg)
	return cfg
}

func merge(dst *Config, src Config) {
	if src.Listen != "" {
		dst.Listen = src.Listen
	}
	if src.DataDir != "" {
		dst.DataDir = src.DataDir
	}
	if src.KeyDir != "" {
		dst.KeyDir = src.KeyDir
	}
	if src.IngestKey != "" {
		dst.IngestKey = src.IngestKey
	}
	if src.PanelKey != "" {
		dst.PanelKey = src.PanelKey
	}
	if src.MaxBodyMB != 0 {
		dst.MaxBodyMB = src.MaxBodyMB
	}
	if src.RateRPS != 0 {
		dst.RateRPS = src.RateRPS
	}
	if src.RateBurst != 0 {
		dst.RateBurst = src.RateBurst
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvListen)); v != "" {
		cfg.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvKeyDir)); v != "" {
		cfg.KeyDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvIngestKey)); v != "" {
		cfg.IngestKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPanelKey)); v != "" {
		cfg.PanelKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMaxBodyMB)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxBodyMB = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvRateLimitRPS)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RateRPS = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvRateLimitBurst)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateBurst = n
		}
	}
}

// Validate checks the invariants the daemon cannot start without.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.IngestKey) == "" {
		errs = append(errs, fmt.Errorf("ingest secret is required (%s or ingestKey)", EnvIngestKey))
	}
	if strings.TrimSpace(c.PanelKey) == "" {
		errs = append(errs, fmt.Errorf("panel secret is required (%s or panelKey)", EnvPanelKey))
	}
	if c.IngestKey != "" && c.IngestKey == c.PanelKey {
		errs = append(errs, errors.New("ingest and panel secrets must differ"))
	}
	return errors.Join(errs...)
}
