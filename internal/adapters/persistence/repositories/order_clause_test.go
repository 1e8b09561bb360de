package repositories

import "testing"

func TestOrderClause(t *testing.T) {
	cases := []struct {
		sortBy  string
		sortDir string
		want    string
	}{
		{"", "", "full_name ASC"},
		{"fullname", "asc", "full_name ASC"},
		{"full_name", "desc", "full_name DESC"},
		{"id", "desc", "id DESC"},
		{"position", "asc", "position ASC"},
		{"salary", "desc", "full_name DESC"},
		{"ID", "DESC", "id DESC"},
	}

	for _, tc := range cases {
		if got := orderClause(tc.sortBy, tc.sortDir); got != tc.want {
			t.Errorf("orderClause(%q, %q) = %q, want %q", tc.sortBy, tc.sortDir, got, tc.want)
		}
	}
}

func TestCompanyOrderClause(t *testing.T) {
	cases := []struct {
		sortBy  string
		sortDir string
		want    string
	}{
		{"", "", "name ASC"},
		{"name", "asc", "name ASC"},
		{"name", "desc", "name DESC"},
		{"id", "desc", "id DESC"},
		{"ID", "ASC", "id ASC"},
		{"address", "asc", "name ASC"},
	}

	for _, tc := range cases {
		if got := companyOrderClause(tc.sortBy, tc.sortDir); got != tc.want {
			t.Errorf("companyOrderClause(%q, %q) = %q, want %q", tc.sortBy, tc.sortDir, got, tc.want)
		}
	}
}

func TestProjectOrderClause(t *testing.T) {
	cases := []struct {
		sortBy  string
		sortDir string
		want    string
	}{
		{"", "", "title ASC"},
		{"title", "asc", "title ASC"},
		{"title", "desc", "title DESC"},
		{"id", "desc", "id DESC"},
		{"ID", "ASC", "id ASC"},
		{"duration", "asc", "title ASC"},
	}

	for _, tc := range cases {
		if got := projectOrderClause(tc.sortBy, tc.sortDir); got != tc.want {
			t.Errorf("projectOrderClause(%q, %q) = %q, want %q", tc.sortBy, tc.sortDir, got, tc.want)
		}
	}
}
