package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSettings(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// withEnvFile points the root command at a settings file and keeps ambient
// environment variables from leaking in.
func withEnvFile(t *testing.T, path string) {
	t.Helper()
	orig := envFile
	envFile = path
	t.Cleanup(func() { envFile = orig })
	for _, key := range []string{"DEFAULT_EMAIL", "GOOGLE_GROUP_DOMAIN", "ADMIN_EMAIL", "CLI_TIMEOUT"} {
		t.Setenv(key, "")
	}
}

func TestPreRunRejectsInvalidConfig(t *testing.T) {
	withEnvFile(t, writeSettings(t, "DEFAULT_EMAIL=not-an-email\n"))

	err := rootCmd.PersistentPreRunE(listCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "DEFAULT_EMAIL") {
		t.Fatalf("expected a DEFAULT_EMAIL validation error, got %v", err)
	}
}

func TestPreRunAcceptsValidConfig(t *testing.T) {
	withEnvFile(t, writeSettings(t, "DEFAULT_EMAIL=trainer@tinkertanker.com\n"))

	if err := rootCmd.PersistentPreRunE(listCmd, nil); err != nil {
		t.Fatal(err)
	}
}

func TestPreRunSkipsValidationForDashboard(t *testing.T) {
	// A fresh install has no DEFAULT_EMAIL yet; the dashboard still starts
	// so its settings page can fix the config.
	withEnvFile(t, writeSettings(t, ""))

	if err := rootCmd.PersistentPreRunE(dashboardCmd, nil); err != nil {
		t.Fatal(err)
	}
}
