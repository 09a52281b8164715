// Package render formats groups and members as fixed-width terminal tables.
//
// The dashboard parses this exact output (internal/cliout), so column widths
// here are a contract, not a presentation detail.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/tinkertanker/groupmaker/internal/models"
)

// Column widths shared with the parser.
const (
	groupEmailWidth = 40
	groupNameWidth  = 30

	memberEmailWidth = 45
	memberNameWidth  = 25
	memberRoleWidth  = 15
	memberTypeWidth  = 10
)

const (
	ownerMarker   = "\U0001F451 " // 👑
	managerMarker = "⭐ "
)

// pad right-pads s with spaces to the given character width. Padding counts
// characters rather than bytes so that the emoji role markers do not shift
// later columns.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// Groups writes the groups table.
func Groups(w io.Writer, groups []models.Group) {
	fmt.Fprintf(w, "%s%s%s\n", pad("EMAIL ADDRESS", groupEmailWidth), pad("NAME", groupNameWidth), "DESCRIPTION")
	fmt.Fprintln(w, strings.Repeat("-", groupEmailWidth+groupNameWidth+len("DESCRIPTION")))
	for _, g := range groups {
		fmt.Fprintf(w, "%s%s%s\n", pad(g.Email, groupEmailWidth), pad(g.Name, groupNameWidth), g.Description)
	}
}

// Members writes the members table followed by a summary line. Owners and
// managers are decorated with 👑 and ⭐ in the role column.
func Members(w io.Writer, members []models.Member) {
	fmt.Fprintf(w, "%s%s%s%s%s\n",
		pad("EMAIL ADDRESS", memberEmailWidth),
		pad("NAME", memberNameWidth),
		pad("ROLE", memberRoleWidth),
		pad("TYPE", memberTypeWidth),
		"STATUS",
	)
	fmt.Fprintln(w, strings.Repeat("-", memberEmailWidth+memberNameWidth+memberRoleWidth+memberTypeWidth+len("STATUS")))

	for _, m := range members {
		role := m.Role
		switch m.Role {
		case models.RoleOwner:
			role = ownerMarker + role
		case models.RoleManager:
			role = managerMarker + role
		}
		fmt.Fprintf(w, "%s%s%s%s%s\n",
			pad(m.Email, memberEmailWidth),
			pad(m.Name, memberNameWidth),
			pad(role, memberRoleWidth),
			pad(m.Type, memberTypeWidth),
			m.Status,
		)
	}

	owners, managers, _ := models.CountByRole(members)
	fmt.Fprintf(w, "Summary: %d members (%d owners, %d managers)\n", len(members), owners, managers)
}
