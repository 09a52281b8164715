package credentials

// Resolver walks the credential sources in priority order. Zero-value fields
// fall back to the fixed default paths; Provider may be nil when no runtime
// secret store is configured.
type Resolver struct {
	Provider        SecretProvider
	SecretsFile     string
	CredentialsFile string
}

// NewResolver creates a resolver with the default file locations.
func NewResolver(provider SecretProvider) *Resolver {
	return &Resolver{
		Provider:        provider,
		SecretsFile:     DefaultSecretsFile,
		CredentialsFile: DefaultCredentialsFile,
	}
}

func (r *Resolver) secretsFile() string {
	if r.SecretsFile != "" {
		return r.SecretsFile
	}
	return DefaultSecretsFile
}

func (r *Resolver) credentialsFile() string {
	if r.CredentialsFile != "" {
		return r.CredentialsFile
	}
	return DefaultCredentialsFile
}

// Resolve returns the first candidate that both loads and validates,
// together with its source label and diagnostics. When every source is
// absent or invalid it returns a nil candidate with source "none" and the
// diagnostics of the last attempt; callers must check, this is not an error.
func (r *Resolver) Resolve() Resolution {
	sources := []struct {
		load  func() (Candidate, SourceMetadata)
		label string
	}{
		{func() (Candidate, SourceMetadata) { return loadFromRuntimeSecrets(r.Provider) }, SourceRuntimeSecrets},
		{func() (Candidate, SourceMetadata) { return loadFromLocalSecrets(r.secretsFile()) }, SourceLocalSecrets},
		{func() (Candidate, SourceMetadata) { return loadFromFile(r.credentialsFile()) }, SourceFile},
	}

	var attempts []SourceMetadata
	var latest *SourceMetadata
	for _, source := range sources {
		creds, meta := source.load()
		if meta.SourceDetail == "" {
			meta.SourceDetail = source.label
		}

		if creds != nil {
			meta.ValidationErrors = Validate(creds)
		}
		attempts = append(attempts, meta)
		latest = &meta

		if creds != nil && len(meta.ValidationErrors) == 0 {
			return Resolution{
				Credentials: creds,
				Source:      source.label,
				Metadata:    meta,
				Attempts:    attempts,
			}
		}
	}

	notFound := ValidationError{
		Field: "credentials",
		Issue: "No credentials found in any source",
		Hint:  "Upload credentials or configure the secret store",
	}
	if latest == nil {
		return Resolution{
			Source: SourceNone,
			Metadata: SourceMetadata{
				Errors:       []ValidationError{notFound},
				SourceDetail: SourceNone,
			},
		}
	}
	if len(latest.Errors) == 0 && len(latest.ValidationErrors) == 0 {
		latest.Errors = []ValidationError{notFound}
	}
	return Resolution{Source: SourceNone, Metadata: *latest, Attempts: attempts}
}
