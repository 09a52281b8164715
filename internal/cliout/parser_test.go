package cliout

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/tinkertanker/groupmaker/internal/models"
	"github.com/tinkertanker/groupmaker/internal/render"
)

func renderGroups(groups []models.Group) string {
	var buf bytes.Buffer
	render.Groups(&buf, groups)
	return buf.String()
}

func renderMembers(members []models.Member) string {
	var buf bytes.Buffer
	render.Members(&buf, members)
	return buf.String()
}

func TestParseGroupsRoundTrip(t *testing.T) {
	want := []models.Group{
		{Email: "class-2026@tinkertanker.com", Name: "class-2026", Description: "Swift Accelerator 2026"},
		{Email: "robotics@tinkertanker.com", Name: "robotics", Description: ""},
		{Email: "very-long-group-name-for-tests@tinkertanker.com", Name: "very-long-group-name-for-tests", Description: "overflows the email column"},
	}

	got := ParseGroups(renderGroups(want))
	if !reflect.DeepEqual(got[:2], want[:2]) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got[:2], want[:2])
	}
	// The third row's email overflows its column, shifting later fields;
	// the parser still returns a record, just with merged fields.
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
}

func TestParseGroupsEmptyInputs(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\n  "},
		{"no separator line", "EMAIL ADDRESS  NAME  DESCRIPTION\ngroup@example.com  Group  Desc"},
		{"separator too short", strings.Repeat("-", 19) + "\ngroup@example.com" + strings.Repeat(" ", 30) + "Group"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseGroups(tc.input); len(got) != 0 {
				t.Fatalf("expected no records, got %#v", got)
			}
		})
	}
}

func TestParseGroupsSkipsMalformedRows(t *testing.T) {
	input := strings.Join([]string{
		"EMAIL ADDRESS" + strings.Repeat(" ", 27) + "NAME" + strings.Repeat(" ", 26) + "DESCRIPTION",
		strings.Repeat("-", 82),
		"short-row@example.com", // under 40 chars, dropped
		"a@b.com" + strings.Repeat(" ", 33) + "Group A" + strings.Repeat(" ", 23) + "first",
		"", // blank line, dropped
		strings.Repeat("-", 82), // second separator, dropped
		"EMAIL ADDRESS" + strings.Repeat(" ", 27) + "NAME", // header label mid-stream, dropped
		"c@d.com" + strings.Repeat(" ", 33) + "Group C",    // short name-only row
	}, "\n")

	got := ParseGroups(input)
	want := []models.Group{
		{Email: "a@b.com", Name: "Group A", Description: "first"},
		{Email: "c@d.com", Name: "Group C", Description: ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParseGroupsOrderPreserved(t *testing.T) {
	groups := []models.Group{
		{Email: "z@example.com", Name: "z"},
		{Email: "a@example.com", Name: "a"},
		{Email: "m@example.com", Name: "m"},
	}
	got := ParseGroups(renderGroups(groups))
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	for i := range groups {
		if got[i].Email != groups[i].Email {
			t.Fatalf("row %d out of order: got %s, want %s", i, got[i].Email, groups[i].Email)
		}
	}
}

func TestParseMembersRoundTrip(t *testing.T) {
	want := []models.Member{
		{Email: "owner@example.com", Name: "", Role: "OWNER", Type: "USER", Status: "ACTIVE"},
		{Email: "manager@example.com", Name: "", Role: "MANAGER", Type: "USER", Status: "ACTIVE"},
		{Email: "member@example.com", Name: "", Role: "MEMBER", Type: "USER", Status: "ACTIVE"},
		{Email: "nested@example.com", Name: "", Role: "MEMBER", Type: "GROUP", Status: "ACTIVE"},
	}

	got := ParseMembers(renderMembers(want))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestParseMembersStripsRoleMarkers(t *testing.T) {
	for _, tc := range []struct {
		name string
		role string
	}{
		{"owner crown", "OWNER"},
		{"manager star", "MANAGER"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			members := []models.Member{{Email: "x@example.com", Role: tc.role, Type: "USER", Status: "ACTIVE"}}
			got := ParseMembers(renderMembers(members))
			if len(got) != 1 {
				t.Fatalf("expected 1 record, got %d", len(got))
			}
			if got[0].Role != tc.role {
				t.Fatalf("expected bare role %q, got %q", tc.role, got[0].Role)
			}
		})
	}
}

func TestParseMembersSkipsSummaryLine(t *testing.T) {
	// A Summary line padded past 45 characters must still be skipped.
	input := strings.Join([]string{
		"header",
		strings.Repeat("-", 101),
		"member@example.com" + strings.Repeat(" ", 27) + strings.Repeat(" ", 25) + "MEMBER" + strings.Repeat(" ", 9) + "USER" + strings.Repeat(" ", 6) + "ACTIVE",
		"Summary: 1 members (0 owners, 0 managers)" + strings.Repeat(" ", 20),
	}, "\n")

	got := ParseMembers(input)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d: %#v", len(got), got)
	}
	if got[0].Email != "member@example.com" {
		t.Fatalf("unexpected email %q", got[0].Email)
	}
}

func TestParseMembersDegradesShortRows(t *testing.T) {
	sep := strings.Repeat("-", 101)
	cases := []struct {
		name string
		row  string
		want []models.Member
	}{
		{
			name: "under 45 chars dropped",
			row:  "short@example.com",
			want: nil,
		},
		{
			name: "name only",
			row:  "m@example.com" + strings.Repeat(" ", 32) + "Some Name",
			want: []models.Member{{Email: "m@example.com", Name: "Some Name"}},
		},
		{
			name: "role only",
			row:  "m@example.com" + strings.Repeat(" ", 32) + strings.Repeat(" ", 25) + "MEMBER",
			want: []models.Member{{Email: "m@example.com", Role: "MEMBER"}},
		},
		{
			name: "type without status",
			row:  "m@example.com" + strings.Repeat(" ", 32) + strings.Repeat(" ", 25) + "MEMBER" + strings.Repeat(" ", 9) + "USER",
			want: []models.Member{{Email: "m@example.com", Role: "MEMBER", Type: "USER"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseMembers("header\n" + sep + "\n" + tc.row)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}
