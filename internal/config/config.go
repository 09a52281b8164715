package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DefaultEnvFile is where dashboard-editable settings are persisted.
const DefaultEnvFile = ".env"

// DefaultDomain is used when GOOGLE_GROUP_DOMAIN is not configured.
const DefaultDomain = "tinkertanker.com"

// SettingsKeys are the keys the dashboard settings page may read and write.
var SettingsKeys = []string{"DEFAULT_EMAIL", "GOOGLE_GROUP_DOMAIN", "ADMIN_EMAIL"}

// Load reads configuration from the env-format settings file, environment
// variables, and defaults. A missing settings file is not an error.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("cli_timeout", 60)
	v.SetDefault("dashboard_port", 8501)
	v.SetDefault("cache_ttl_seconds", 300)
	v.SetDefault("metrics_enabled", false)
	v.SetDefault("metrics_namespace", "GroupMaker")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if envFile == "" {
		envFile = DefaultEnvFile
	}
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(envFile); statErr == nil {
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	cfg := &Config{SettingsFile: envFile}
	cfg.DefaultEmail = v.GetString("default_email")

	// Distinguish "not configured" from "explicitly set to the default";
	// only the former is worth warning about.
	cfg.Domain = v.GetString("google_group_domain")
	cfg.DomainSet = cfg.Domain != ""
	if cfg.Domain == "" {
		cfg.Domain = DefaultDomain
	}

	cfg.AdminEmail = v.GetString("admin_email")
	cfg.CredentialsFile = v.GetString("google_credentials_file")
	cfg.CLITimeout = v.GetInt("cli_timeout")

	cfg.Dashboard.Port = v.GetInt("dashboard_port")
	cfg.Dashboard.CLIPath = v.GetString("dashboard_cli_path")
	cfg.Dashboard.CacheTTLSeconds = v.GetInt("cache_ttl_seconds")

	cfg.Metrics.Enabled = v.GetBool("metrics_enabled")
	cfg.Metrics.Namespace = v.GetString("metrics_namespace")
	cfg.Metrics.Region = v.GetString("metrics_region")

	cfg.Log.Level = v.GetString("log_level")
	cfg.Log.Format = v.GetString("log_format")

	return cfg, nil
}

// SaveSettings persists the dashboard-editable keys to the settings file.
// Empty values remove the key; non-empty values are trimmed and also applied
// to the process environment so subsequent Loads see them immediately.
func SaveSettings(envFile string, values map[string]string) error {
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	current := map[string]string{}
	existing := viper.New()
	existing.SetConfigFile(envFile)
	existing.SetConfigType("env")
	if err := existing.ReadInConfig(); err == nil {
		for _, key := range SettingsKeys {
			if val := existing.GetString(strings.ToLower(key)); val != "" {
				current[key] = val
			}
		}
	}

	for key, val := range values {
		if !isSettingsKey(key) {
			continue
		}
		val = strings.TrimSpace(val)
		if val == "" {
			delete(current, key)
			os.Unsetenv(key)
			continue
		}
		current[key] = val
		os.Setenv(key, val)
	}

	out := viper.New()
	out.SetConfigFile(envFile)
	out.SetConfigType("env")
	for key, val := range current {
		out.Set(key, val)
	}
	if err := out.WriteConfigAs(envFile); err != nil {
		return fmt.Errorf("write %s: %w", envFile, err)
	}
	return nil
}

func isSettingsKey(key string) bool {
	for _, k := range SettingsKeys {
		if k == key {
			return true
		}
	}
	return false
}
