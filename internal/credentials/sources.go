package credentials

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-secretsmanager-caching-go/v2/secretcache"
	"github.com/pelletier/go-toml/v2"
)

// SecretProvider is the runtime secret store consulted first by the chain.
// Implemented in production by the Secrets Manager cache.
type SecretProvider interface {
	GetSecretString(secretID string) (string, error)
}

// NewSecretsManagerProvider creates a caching Secrets Manager provider.
func NewSecretsManagerProvider() (SecretProvider, error) {
	cache, err := secretcache.New()
	if err != nil {
		return nil, fmt.Errorf("secrets manager cache: %w", err)
	}
	return cache, nil
}

// loadFromRuntimeSecrets fetches the candidate from the runtime secret store
// under the fixed section name. The secret value is the candidate JSON.
func loadFromRuntimeSecrets(provider SecretProvider) (Candidate, SourceMetadata) {
	meta := SourceMetadata{SourceDetail: SourceRuntimeSecrets}

	if provider == nil {
		meta.Errors = append(meta.Errors, ValidationError{
			Field: "runtime",
			Issue: "Runtime secret store not available",
			Hint:  "Configure the secret store or use file-based credentials",
		})
		return nil, meta
	}

	value, err := provider.GetSecretString(SecretsSection)
	if err != nil {
		meta.Errors = append(meta.Errors, ValidationError{
			Field: SecretsSection,
			Issue: fmt.Sprintf("Error accessing runtime secrets: %v", err),
			Hint:  fmt.Sprintf("Ensure the '%s' secret exists", SecretsSection),
		})
		return nil, meta
	}

	var creds Candidate
	if err := json.Unmarshal([]byte(value), &creds); err != nil {
		meta.Errors = append(meta.Errors, ValidationError{
			Field: SecretsSection,
			Issue: fmt.Sprintf("Invalid JSON in secrets: %v", err),
			Hint:  "Ensure credentials are valid JSON format",
		})
		return nil, meta
	}

	return creds, meta
}

// loadFromLocalSecrets reads the candidate from the [google_service_account]
// section of the local TOML secrets file.
func loadFromLocalSecrets(path string) (Candidate, SourceMetadata) {
	meta := SourceMetadata{SourceDetail: SourceLocalSecrets}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			meta.Errors = append(meta.Errors, ValidationError{
				Field: "file",
				Issue: fmt.Sprintf("Local secrets file not found: %s", path),
				Hint:  fmt.Sprintf("Create %s or use runtime secrets", path),
			})
		} else {
			meta.Errors = append(meta.Errors, ValidationError{
				Field: "file",
				Issue: fmt.Sprintf("Error reading %s: %v", path, err),
				Hint:  "Check file format and permissions",
			})
		}
		return nil, meta
	}

	var sections map[string]any
	if err := toml.Unmarshal(data, &sections); err != nil {
		meta.Errors = append(meta.Errors, ValidationError{
			Field: "file",
			Issue: fmt.Sprintf("Error reading %s: %v", path, err),
			Hint:  "Check file format and permissions",
		})
		return nil, meta
	}

	section, ok := sections[SecretsSection].(map[string]any)
	if !ok {
		meta.Errors = append(meta.Errors, ValidationError{
			Field: SecretsSection,
			Issue: fmt.Sprintf("[%s] section not found in %s", SecretsSection, path),
			Hint:  fmt.Sprintf("Add [%s] section to local secrets file", SecretsSection),
		})
		return nil, meta
	}

	return Candidate(section), meta
}

// loadFromFile reads the flat JSON credentials file; the whole document is
// the candidate.
func loadFromFile(path string) (Candidate, SourceMetadata) {
	meta := SourceMetadata{SourceDetail: SourceFile}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			meta.Errors = append(meta.Errors, ValidationError{
				Field: "file",
				Issue: fmt.Sprintf("Credentials file not found: %s", path),
				Hint:  "Upload credentials file or configure secrets",
			})
		} else {
			meta.Errors = append(meta.Errors, ValidationError{
				Field: "file",
				Issue: fmt.Sprintf("Error reading %s: %v", path, err),
				Hint:  "Check file permissions",
			})
		}
		return nil, meta
	}

	var creds Candidate
	if err := json.Unmarshal(data, &creds); err != nil {
		meta.Errors = append(meta.Errors, ValidationError{
			Field: "file",
			Issue: fmt.Sprintf("Invalid JSON in %s: %v", path, err),
			Hint:  "Re-download credentials from Google Cloud Console",
		})
		return nil, meta
	}

	return creds, meta
}
