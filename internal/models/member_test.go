package models

import "testing"

func TestSortMembersByRole(t *testing.T) {
	members := []Member{
		{Email: "m1@x.com", Role: RoleMember},
		{Email: "bot@x.com", Role: "CUSTOM"},
		{Email: "o@x.com", Role: RoleOwner},
		{Email: "m2@x.com", Role: RoleMember},
		{Email: "mgr@x.com", Role: RoleManager},
	}
	SortMembersByRole(members)

	wantOrder := []string{"o@x.com", "mgr@x.com", "m1@x.com", "m2@x.com", "bot@x.com"}
	for i, want := range wantOrder {
		if members[i].Email != want {
			t.Fatalf("position %d: got %s, want %s", i, members[i].Email, want)
		}
	}
}

func TestCountByRole(t *testing.T) {
	members := []Member{
		{Role: RoleOwner},
		{Role: RoleManager},
		{Role: RoleManager},
		{Role: RoleMember},
		{Role: "CUSTOM"},
	}
	owners, managers, plain := CountByRole(members)
	if owners != 1 || managers != 2 || plain != 1 {
		t.Fatalf("got (%d, %d, %d), want (1, 2, 1)", owners, managers, plain)
	}
}

func TestIsActive(t *testing.T) {
	active := Member{Type: "USER", Status: "ACTIVE"}
	if !active.IsActive() {
		t.Fatal("active user should be active")
	}
	suspended := Member{Type: "USER", Status: "SUSPENDED"}
	if suspended.IsActive() {
		t.Fatal("suspended user is not active")
	}
	group := Member{Type: "GROUP", Status: "ACTIVE"}
	if group.IsActive() {
		t.Fatal("nested group is not an active user")
	}
}
