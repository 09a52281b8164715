package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearSettingsEnv keeps ambient environment variables from leaking into
// Load, and restores them when the test finishes.
func clearSettingsEnv(t *testing.T) {
	t.Helper()
	for _, key := range SettingsKeys {
		t.Setenv(key, "")
	}
	t.Setenv("CLI_TIMEOUT", "")
	t.Setenv("DASHBOARD_PORT", "")
}

func TestLoadDefaults(t *testing.T) {
	clearSettingsEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	cfg, err := Load(envFile)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Domain != DefaultDomain {
		t.Fatalf("expected default domain %q, got %q", DefaultDomain, cfg.Domain)
	}
	if cfg.DomainSet {
		t.Fatal("a defaulted domain must not count as configured")
	}
	if cfg.SettingsFile != envFile {
		t.Fatalf("expected settings file %q recorded, got %q", envFile, cfg.SettingsFile)
	}
	if cfg.CLITimeout != 60 || cfg.Dashboard.Port != 8501 || cfg.Dashboard.CacheTTLSeconds != 300 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Metrics.Enabled {
		t.Fatal("metrics should default to disabled")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	clearSettingsEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	contents := strings.Join([]string{
		"DEFAULT_EMAIL=trainer@tinkertanker.com",
		"GOOGLE_GROUP_DOMAIN=example.org",
		"ADMIN_EMAIL=admin@example.org",
		"CLI_TIMEOUT=30",
	}, "\n")
	if err := os.WriteFile(envFile, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultEmail != "trainer@tinkertanker.com" {
		t.Fatalf("unexpected default email %q", cfg.DefaultEmail)
	}
	if cfg.Domain != "example.org" {
		t.Fatalf("unexpected domain %q", cfg.Domain)
	}
	if !cfg.DomainSet {
		t.Fatal("a domain from the file should count as configured")
	}
	if cfg.CLITimeout != 30 {
		t.Fatalf("unexpected timeout %d", cfg.CLITimeout)
	}
}

func TestLoadEnvVarOverridesFile(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("GOOGLE_GROUP_DOMAIN", "env.example.com")

	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("GOOGLE_GROUP_DOMAIN=file.example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Domain != "env.example.com" {
		t.Fatalf("environment should win over the file, got %q", cfg.Domain)
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	clearSettingsEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	err := SaveSettings(envFile, map[string]string{
		"DEFAULT_EMAIL":       "  trainer@tinkertanker.com  ",
		"GOOGLE_GROUP_DOMAIN": "example.org",
		"NOT_A_SETTING":       "ignored",
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultEmail != "trainer@tinkertanker.com" {
		t.Fatalf("expected trimmed value, got %q", cfg.DefaultEmail)
	}
	if cfg.Domain != "example.org" {
		t.Fatalf("unexpected domain %q", cfg.Domain)
	}

	data, err := os.ReadFile(envFile)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "NOT_A_SETTING") {
		t.Fatal("unknown keys must not be persisted")
	}
}

func TestSaveSettingsEmptyValueDeletes(t *testing.T) {
	clearSettingsEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	if err := SaveSettings(envFile, map[string]string{"ADMIN_EMAIL": "admin@example.org"}); err != nil {
		t.Fatal(err)
	}
	if err := SaveSettings(envFile, map[string]string{"ADMIN_EMAIL": ""}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AdminEmail != "" {
		t.Fatalf("expected ADMIN_EMAIL removed, got %q", cfg.AdminEmail)
	}
}

func validConfig() *Config {
	return &Config{
		DefaultEmail: "trainer@tinkertanker.com",
		Domain:       "tinkertanker.com",
		CLITimeout:   60,
		Dashboard:    DashboardConfig{Port: 8501, CacheTTLSeconds: 300},
		Metrics:      MetricsConfig{Namespace: "GroupMaker"},
		Log:          LogConfig{Level: "info", Format: "text"},
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr []string
	}{
		{"valid", func(c *Config) {}, nil},
		{"missing default email", func(c *Config) { c.DefaultEmail = "" }, []string{"DEFAULT_EMAIL is required"}},
		{"bad default email", func(c *Config) { c.DefaultEmail = "not-an-email" }, []string{"DEFAULT_EMAIL must be a valid email"}},
		{"bad admin email", func(c *Config) { c.AdminEmail = "nope" }, []string{"ADMIN_EMAIL must be a valid email"}},
		{"domain is an email", func(c *Config) { c.Domain = "x@y.com" }, []string{"bare domain"}},
		{"zero timeout", func(c *Config) { c.CLITimeout = 0 }, []string{"CLI_TIMEOUT"}},
		{"bad port", func(c *Config) { c.Dashboard.Port = 70000 }, []string{"DASHBOARD_PORT"}},
		{"negative cache ttl", func(c *Config) { c.Dashboard.CacheTTLSeconds = -1 }, []string{"CACHE_TTL_SECONDS"}},
		{"metrics without namespace", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Namespace = "" }, []string{"METRICS_NAMESPACE"}},
		{
			"accumulates all problems",
			func(c *Config) { c.DefaultEmail = ""; c.Domain = ""; c.CLITimeout = -1 },
			[]string{"DEFAULT_EMAIL is required", "GOOGLE_GROUP_DOMAIN is required", "CLI_TIMEOUT"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := Validate(cfg)
			if len(tc.wantErr) == 0 {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			for _, want := range tc.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Fatalf("error %q missing %q", err, want)
				}
			}
		})
	}
}

func TestDelegate(t *testing.T) {
	cfg := validConfig()
	if cfg.Delegate() != cfg.DefaultEmail {
		t.Fatal("delegate should fall back to the default email")
	}
	cfg.AdminEmail = "admin@tinkertanker.com"
	if cfg.Delegate() != "admin@tinkertanker.com" {
		t.Fatal("explicit admin email should win")
	}
}

func TestIssues(t *testing.T) {
	cfg := validConfig()
	issues := Issues(cfg, false)
	found := false
	for _, issue := range issues {
		if strings.Contains(issue, "credentials") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a credentials issue, got %v", issues)
	}

	cfg.DomainSet = true
	if issues := Issues(cfg, true); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestIssuesWarnOnUnconfiguredDomain(t *testing.T) {
	// The warning keys on whether the domain was configured, not on its
	// value: explicitly setting it to the default is fine.
	cfg := validConfig()
	cfg.Domain = DefaultDomain

	found := false
	for _, issue := range Issues(cfg, true) {
		if strings.Contains(issue, "GOOGLE_GROUP_DOMAIN") {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a domain warning when GOOGLE_GROUP_DOMAIN is absent")
	}

	cfg.DomainSet = true
	for _, issue := range Issues(cfg, true) {
		if strings.Contains(issue, "GOOGLE_GROUP_DOMAIN") {
			t.Fatalf("unexpected domain warning: %v", issue)
		}
	}
}
