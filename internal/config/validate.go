package config

import (
	"fmt"
	"net/mail"
	"strings"
)

// Validate ensures configuration is complete and well-formed, accumulating
// every problem instead of stopping at the first.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	var errs []string

	requireEmail := func(value string, field string, required bool) {
		if value == "" {
			if required {
				errs = append(errs, fmt.Sprintf("%s is required", field))
			}
			return
		}
		if _, err := mail.ParseAddress(value); err != nil {
			errs = append(errs, fmt.Sprintf("%s must be a valid email", field))
		}
	}

	requireEmail(cfg.DefaultEmail, "DEFAULT_EMAIL", true)
	requireEmail(cfg.AdminEmail, "ADMIN_EMAIL", false)

	if cfg.Domain == "" {
		errs = append(errs, "GOOGLE_GROUP_DOMAIN is required")
	} else if strings.Contains(cfg.Domain, "@") {
		errs = append(errs, "GOOGLE_GROUP_DOMAIN must be a bare domain, not an email")
	}

	if cfg.CLITimeout <= 0 {
		errs = append(errs, "CLI_TIMEOUT must be positive")
	}
	if cfg.Dashboard.Port <= 0 || cfg.Dashboard.Port > 65535 {
		errs = append(errs, "DASHBOARD_PORT must be between 1 and 65535")
	}
	if cfg.Dashboard.CacheTTLSeconds < 0 {
		errs = append(errs, "CACHE_TTL_SECONDS must not be negative")
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Namespace == "" {
		errs = append(errs, "METRICS_NAMESPACE is required when metrics are enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// Issues reports advisory configuration problems for the settings page.
// Unlike Validate these do not block operations.
func Issues(cfg *Config, credentialsPresent bool) []string {
	var issues []string
	if cfg.DefaultEmail == "" {
		issues = append(issues, "DEFAULT_EMAIL is required")
	}
	if !cfg.DomainSet {
		issues = append(issues, fmt.Sprintf("GOOGLE_GROUP_DOMAIN is not set (using default: %s)", DefaultDomain))
	}
	if !credentialsPresent {
		issues = append(issues, "Service account credentials file not found (service-account-credentials.json)")
	}
	return issues
}
