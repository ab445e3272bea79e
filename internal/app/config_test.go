package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv blanks every override so a developer's shell cannot leak into
// the assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		EnvListen, EnvDataDir, EnvKeyDir, EnvIngestKey, EnvPanelKey,
		EnvPublicKey, EnvPrivateKey, EnvMaxBodyMB, EnvRateLimitRPS, EnvRateLimitBurst,
	} {
		t.Setenv(name, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	want := DefaultConfig()
	if cfg != want {
		t.Fatalf("cfg = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadConfig_FileMerge(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := strings.Join([]string{
		`listen: ":9000"`,
		`ingestKey: "file-ingest"`,
		`rateRPS: 5`,
	}, "\n")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig(path)
	if cfg.Listen != ":9000" || cfg.IngestKey != "file-ingest" || cfg.RateRPS != 5 {
		t.Fatalf("file values not merged: %+v", cfg)
	}
	// Values the file leaves out keep their defaults.
	if cfg.DataDir != "data" || cfg.MaxBodyMB != 32 || cfg.RateBurst != 40 {
		t.Fatalf("defaults lost in merge: %+v", cfg)
	}
}

func TestLoadConfig_EnvWinsOverFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(`listen: ":9000"`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvListen, ":7000")
	t.Setenv(EnvPanelKey, "env-panel")
	t.Setenv(EnvMaxBodyMB, "8")
	t.Setenv(EnvRateLimitRPS, "not-a-number") // ignored, keeps default

	cfg := LoadConfig(path)
	if cfg.Listen != ":7000" {
		t.Fatalf("Listen = %q, env should beat file", cfg.Listen)
	}
	if cfg.PanelKey != "env-panel" || cfg.MaxBodyMB != 8 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.RateRPS != DefaultConfig().RateRPS {
		t.Fatalf("RateRPS = %v, malformed env value should be ignored", cfg.RateRPS)
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		ingest  string
		panel   string
		wantErr string
	}{
		{"ok", "a", "b", ""},
		{"missing ingest", "", "b", "ingest secret is required"},
		{"missing panel", "a", "", "panel secret is required"},
		{"same secret", "a", "a", "must differ"},
		{"both missing", "", "", "required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.IngestKey = tc.ingest
			cfg.PanelKey = tc.panel
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tc.wantErr)
			}
		})
	}
}
