package credentials

import (
	"encoding/json"
	"fmt"
	"os"
)

// PrepareCLIEnv validates the candidate and serializes it for the CLI
// subprocess environment. Unlike the chain, an invalid candidate here is a
// hard failure: the caller asked to launch a subprocess with these exact
// credentials.
func PrepareCLIEnv(creds Candidate) (map[string]string, error) {
	if errs := Validate(creds); len(errs) > 0 {
		return nil, &InvalidError{Errors: errs}
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("serialize credentials: %w", err)
	}
	return map[string]string{EnvVar: string(data)}, nil
}

// FromEnvOrFile returns raw credentials JSON for the CLI itself: the
// environment variable injected by the dashboard wins over the local file.
func FromEnvOrFile(path string) ([]byte, error) {
	if value := os.Getenv(EnvVar); value != "" {
		return []byte(value), nil
	}
	if path == "" {
		path = DefaultCredentialsFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file %s: %w", path, err)
	}
	return data, nil
}
