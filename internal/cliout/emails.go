package cliout

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether the (trimmed) string is a well-formed address.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// emailDelimiters in priority order. The first one present in the input is
// used to split the whole text; mixed-delimiter input is not supported.
var emailDelimiters = []string{"\n", ",", ";", " "}

// ParseEmailList splits free-form text into a deduplicated, order-preserving
// list of valid email addresses. Empty input or no valid addresses yields an
// empty slice.
func ParseEmailList(text string) []string {
	if text == "" {
		return nil
	}

	var candidates []string
	split := false
	for _, delimiter := range emailDelimiters {
		if !strings.Contains(text, delimiter) {
			continue
		}
		for _, part := range strings.Split(text, delimiter) {
			part = strings.TrimSpace(part)
			if part != "" && strings.Contains(part, "@") {
				candidates = append(candidates, part)
			}
		}
		split = true
		break
	}
	if !split {
		trimmed := strings.TrimSpace(text)
		if trimmed != "" && strings.Contains(trimmed, "@") {
			candidates = append(candidates, trimmed)
		}
	}

	var valid []string
	seen := make(map[string]bool, len(candidates))
	for _, email := range candidates {
		if seen[email] || !ValidEmail(email) {
			continue
		}
		seen[email] = true
		valid = append(valid, email)
	}

	return valid
}

var groupNamePattern = regexp.MustCompile(`^[a-zA-Z0-9.\-_]+$`)

// ValidateGroupName checks a group identifier before it is passed to any
// external call. Full email addresses are allowed; bare names are restricted
// to a safe character set. Returns "" when valid, otherwise the problem.
func ValidateGroupName(name string) string {
	if name == "" {
		return "Group name is required"
	}
	if strings.Contains(name, "@") {
		if !ValidEmail(name) {
			return "Invalid email format for group"
		}
		return ""
	}
	if !groupNamePattern.MatchString(name) {
		return "Group name can only contain letters, numbers, periods, hyphens, and underscores"
	}
	if len(name) > 100 {
		return "Group name must be less than 100 characters"
	}
	if strings.ContainsRune(".-_", rune(name[0])) || strings.ContainsRune(".-_", rune(name[len(name)-1])) {
		return "Group name cannot start or end with special characters"
	}
	return ""
}
