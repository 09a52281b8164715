// Package cliout parses the fixed-width table output of the groupmaker CLI
// into structured records.
//
// The CLI prints tables meant for terminal viewing: a header row, a separator
// line of dashes, then rows with columns at fixed character offsets. The
// dashboard reuses that same text as its machine interface, so the column
// math here must match the rendering side exactly (see internal/render).
//
// Groups table:   EMAIL ADDRESS (40) | NAME (30) | DESCRIPTION (rest)
// Members table:  EMAIL ADDRESS (45) | NAME (25) | ROLE (15) | TYPE (10) | STATUS (rest)
//
// Parsing never fails: malformed or truncated rows are dropped.
package cliout

import (
	"strings"

	"github.com/tinkertanker/groupmaker/internal/models"
)

const (
	headerLabel   = "EMAIL ADDRESS"
	summaryPrefix = "Summary:"

	// Role decorations added by the members table renderer.
	ownerMarker   = "\U0001F451 " // 👑
	managerMarker = "⭐ "
)

// separator matches the dashed line between the table header and its rows.
var separator = strings.Repeat("-", 20)

// ParseGroups extracts group records from the `list` subcommand output.
// Input with no separator line or no data rows yields an empty slice.
func ParseGroups(output string) []models.Group {
	var groups []models.Group

	headerFound := false
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if strings.HasPrefix(line, separator) {
			headerFound = true
			continue
		}
		if !headerFound || strings.TrimSpace(line) == "" || strings.HasPrefix(line, "-") {
			continue
		}

		// Column offsets are measured in characters, not bytes: the
		// renderer pads with character-width fields.
		row := []rune(line)
		if len(row) < 40 {
			continue
		}
		email := strings.TrimSpace(string(row[:40]))
		remaining := row[40:]

		var name, description string
		if len(remaining) >= 30 {
			name = strings.TrimSpace(string(remaining[:30]))
			description = strings.TrimSpace(string(remaining[30:]))
		} else {
			name = strings.TrimSpace(string(remaining))
		}

		if email == "" || email == headerLabel {
			continue
		}
		groups = append(groups, models.Group{
			Email:       email,
			Name:        name,
			Description: description,
		})
	}

	return groups
}

// ParseMembers extracts member records from the `members` subcommand output.
// The 👑 (owner) and ⭐ (manager) decorations are stripped from the role
// column; a trailing "Summary:" line is skipped.
func ParseMembers(output string) []models.Member {
	var members []models.Member

	headerFound := false
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if strings.HasPrefix(line, separator) {
			headerFound = true
			continue
		}
		if !headerFound || strings.TrimSpace(line) == "" ||
			strings.HasPrefix(line, "-") || strings.HasPrefix(line, summaryPrefix) {
			continue
		}

		row := []rune(line)
		if len(row) < 45 {
			continue
		}
		email := strings.TrimSpace(string(row[:45]))
		remaining := row[45:]

		var name, role, memberType, status string
		if len(remaining) >= 25 {
			name = strings.TrimSpace(string(remaining[:25]))
			remaining = remaining[25:]

			if len(remaining) >= 15 {
				role = strings.TrimSpace(string(remaining[:15]))
				role = strings.ReplaceAll(role, ownerMarker, "")
				role = strings.ReplaceAll(role, managerMarker, "")
				role = strings.TrimSpace(role)
				remaining = remaining[15:]

				if len(remaining) >= 10 {
					memberType = strings.TrimSpace(string(remaining[:10]))
					status = strings.TrimSpace(string(remaining[10:]))
				} else {
					memberType = strings.TrimSpace(string(remaining))
				}
			} else {
				role = strings.TrimSpace(string(remaining))
			}
		} else {
			name = strings.TrimSpace(string(remaining))
		}

		if email == "" || email == headerLabel {
			continue
		}
		members = append(members, models.Member{
			Email:  email,
			Name:   name,
			Role:   role,
			Type:   memberType,
			Status: status,
		})
	}

	return members
}
