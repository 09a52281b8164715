package config

// Config holds all settings for the CLI and the dashboard.
type Config struct {
	DefaultEmail    string          `json:"default_email"`
	Domain          string          `json:"domain"`
	AdminEmail      string          `json:"admin_email,omitempty"`
	CredentialsFile string          `json:"credentials_file,omitempty"`
	CLITimeout      int             `json:"cli_timeout"`
	Dashboard       DashboardConfig `json:"dashboard"`
	Metrics         MetricsConfig   `json:"metrics"`
	Log             LogConfig       `json:"log"`

	// DomainSet records whether the domain was configured explicitly rather
	// than falling back to the default.
	DomainSet bool `json:"-"`
	// SettingsFile is the env-format file this config was loaded from;
	// settings updates persist back to the same file.
	SettingsFile string `json:"-"`
}

// DashboardConfig holds web dashboard settings.
type DashboardConfig struct {
	Port            int    `json:"port"`
	CLIPath         string `json:"cli_path,omitempty"`
	CacheTTLSeconds int    `json:"cache_ttl_seconds"`
}

// MetricsConfig holds CloudWatch metrics settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace"`
	Region    string `json:"region,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// Delegate returns the email the service account impersonates: the explicit
// admin email when set, otherwise the default email.
func (c *Config) Delegate() string {
	if c.AdminEmail != "" {
		return c.AdminEmail
	}
	return c.DefaultEmail
}
