package models

import "sort"

// Member roles as reported by the Directory API.
const (
	RoleOwner   = "OWNER"
	RoleManager = "MANAGER"
	RoleMember  = "MEMBER"
)

// Member represents a member of a Google Workspace Group.
type Member struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// IsActive returns true if the member is an active user account.
func (m *Member) IsActive() bool {
	return m.Type == "USER" && m.Status == "ACTIVE"
}

// roleRank orders roles for display: OWNER < MANAGER < MEMBER < anything else.
func roleRank(role string) int {
	switch role {
	case RoleOwner:
		return 0
	case RoleManager:
		return 1
	case RoleMember:
		return 2
	default:
		return 3
	}
}

// SortMembersByRole sorts members in display order (owners first), keeping
// the original order within each role.
func SortMembersByRole(members []Member) {
	sort.SliceStable(members, func(i, j int) bool {
		return roleRank(members[i].Role) < roleRank(members[j].Role)
	})
}

// CountByRole returns how many members hold each of the three known roles.
func CountByRole(members []Member) (owners, managers, plain int) {
	for i := range members {
		switch members[i].Role {
		case RoleOwner:
			owners++
		case RoleManager:
			managers++
		case RoleMember:
			plain++
		}
	}
	return owners, managers, plain
}
