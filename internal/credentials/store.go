package credentials

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FileExists reports whether the flat JSON credentials file is present.
func FileExists(path string) bool {
	if path == "" {
		path = DefaultCredentialsFile
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// SaveCredentialsFile writes uploaded credentials to the flat JSON location.
func SaveCredentialsFile(path string, data []byte) error {
	if path == "" {
		path = DefaultCredentialsFile
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials file: %w", err)
	}
	return nil
}

// WriteSecretsSection replaces the [google_service_account] section of the
// local secrets file with the given candidate. Other sections are preserved.
func WriteSecretsSection(path string, creds Candidate) error {
	if path == "" {
		path = DefaultSecretsFile
	}

	sections := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &sections); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// New file, start with just our section.
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}

	sections[SecretsSection] = map[string]any(creds)

	out, err := toml.Marshal(sections)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
