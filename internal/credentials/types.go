// Package credentials resolves Google service account credentials from
// multiple sources with structured, per-source error reporting.
//
// Priority order:
//  1. runtime secret store (AWS Secrets Manager)
//  2. local secrets.toml, [google_service_account] section
//  3. service-account-credentials.json
//
// Loaders never return hard errors for absence or malformed input; every
// problem is captured as a diagnostic so the dashboard can tell the user
// exactly which source was tried and why it failed.
package credentials

import (
	"fmt"
	"strings"
)

// Source labels reported by the resolution chain.
const (
	SourceRuntimeSecrets = "runtime_secrets"
	SourceLocalSecrets   = "local_secrets"
	SourceFile           = "file"
	SourceNone           = "none"
)

// Fixed locations and keys shared with the original deployment layout.
const (
	// SecretsSection is the section/secret name holding the candidate in
	// both the runtime store and the local secrets file.
	SecretsSection = "google_service_account"

	// DefaultSecretsFile is the local structured secrets file.
	DefaultSecretsFile = "secrets.toml"

	// DefaultCredentialsFile is the flat JSON credentials file.
	DefaultCredentialsFile = "service-account-credentials.json"

	// EnvVar carries serialized credentials into the CLI subprocess.
	EnvVar = "GOOGLE_SERVICE_ACCOUNT_JSON"
)

// Candidate is an untyped bag of credential fields from a JSON or TOML source.
type Candidate map[string]any

// RequiredFields must all be present for a candidate to validate.
var RequiredFields = []string{"type", "project_id", "private_key", "client_email"}

// ValidationError describes one problem with a credential source or candidate.
type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
	Hint  string `json:"hint,omitempty"`
}

// SourceMetadata carries diagnostics for one source attempt.
type SourceMetadata struct {
	Errors           []ValidationError `json:"errors"`
	ValidationErrors []ValidationError `json:"validation_errors"`
	SourceDetail     string            `json:"source_detail"`
}

// Resolution is the outcome of a full chain walk. Credentials is nil and
// Source is "none" when no source produced a valid candidate; that is a
// normal return, not an error. Attempts keeps the diagnostics of every
// source tried, in order, so earlier failures are not silently discarded.
type Resolution struct {
	Credentials Candidate        `json:"credentials,omitempty"`
	Source      string           `json:"source"`
	Metadata    SourceMetadata   `json:"metadata"`
	Attempts    []SourceMetadata `json:"attempts,omitempty"`
}

// FormatErrors joins validation errors into a single human-readable message.
func FormatErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return "Unknown validation error"
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("%s: %s", e.Field, e.Issue)
		if e.Hint != "" {
			msg += fmt.Sprintf(" (%s)", e.Hint)
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}

// InvalidError is raised by callers that need a hard failure (e.g. preparing
// the CLI environment) when a candidate does not validate.
type InvalidError struct {
	Errors []ValidationError
}

func (e *InvalidError) Error() string {
	return "invalid credentials: " + FormatErrors(e.Errors)
}
