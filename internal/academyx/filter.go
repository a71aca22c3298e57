// ABOUTME: Client-side search and sort helpers for API listings
// ABOUTME: Case-insensitive substring matching and stable ordering by field

package academyx

import (
	"cmp"
	"slices"
	"strings"
)

// SortField selects the key for sorting listings.
type SortField string

const (
	SortByName    SortField = "name"
	SortByEmail   SortField = "email"
	SortByRole    SortField = "role"
	SortByCompany SortField = "company"
	SortByCreated SortField = "created"
)

// ParseSortField maps a user-supplied key to a SortField. Unknown keys sort
// by name.
func ParseSortField(s string) SortField {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortByEmail, SortByRole, SortByCompany, SortByCreated:
		return f
	default:
		return SortByName
	}
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// FilterCompanies keeps companies whose name contains query.
func FilterCompanies(companies []Company, query string) []Company {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return companies
	}
	var out []Company
	for _, c := range companies {
		if contains(c.Name, q) {
			out = append(out, c)
		}
	}
	return out
}

// FilterSurveys keeps surveys whose title or description contains query.
func FilterSurveys(surveys []Survey, query string) []Survey {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return surveys
	}
	var out []Survey
	for _, s := range surveys {
		if contains(s.Title, q) || contains(s.Description, q) {
			out = append(out, s)
		}
	}
	return out
}

// FilterUsers keeps users matching query on name, email or company name,
// and role when role is non-empty.
func FilterUsers(users []User, query, role string) []User {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []User
	for _, u := range users {
		if role != "" && !strings.EqualFold(u.Role, role) && !strings.EqualFold(u.CompanyRole, role) {
			continue
		}
		if q != "" {
			company := ""
			if u.Company != nil {
				company = u.Company.Name
			}
			if !contains(u.FirstName, q) && !contains(u.LastName, q) &&
				!contains(u.Email, q) && !contains(company, q) {
				continue
			}
		}
		out = append(out, u)
	}
	return out
}

// SortUsers orders users in place.
func SortUsers(users []User, by SortField, desc bool) {
	key := func(u User) string {
		switch by {
		case SortByEmail:
			return strings.ToLower(u.Email)
		case SortByRole:
			return u.Role
		case SortByCompany:
			if u.Company != nil {
				return strings.ToLower(u.Company.Name)
			}
			return ""
		default:
			return strings.ToLower(u.FullName())
		}
	}
	slices.SortStableFunc(users, func(a, b User) int {
		var c int
		if by == SortByCreated {
			c = a.CreatedAt.Compare(b.CreatedAt)
		} else {
			c = cmp.Compare(key(a), key(b))
		}
		if desc {
			return -c
		}
		return c
	})
}

// SortCompanies orders companies in place by name or creation time.
func SortCompanies(companies []Company, by SortField, desc bool) {
	slices.SortStableFunc(companies, func(a, b Company) int {
		var c int
		if by == SortByCreated {
			c = a.CreatedAt.Compare(b.CreatedAt)
		} else {
			c = cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
		if desc {
			return -c
		}
		return c
	})
}

// SortSurveys orders surveys in place by title or creation time.
func SortSurveys(surveys []Survey, by SortField, desc bool) {
	slices.SortStableFunc(surveys, func(a, b Survey) int {
		var c int
		if by == SortByCreated {
			c = a.CreatedAt.Compare(b.CreatedAt)
		} else {
			c = cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
		if desc {
			return -c
		}
		return c
	})
}

// MoveQuestion returns a copy of questions with the item at from moved to
// index to. Out of range indexes return an unchanged copy.
func MoveQuestion(questions []Question, from, to int) []Question {
	out := slices.Clone(questions)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	q := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, q)
}
