package compensation

import (
	"sort"
	"strings"
)

// Table is the loaded reference dataset.
type Table struct {
	profiles map[string]Profile
	it       map[string]struct{}
	nonIT    map[string]struct{}
	fresher  string
	courses  map[string][]Course
	generic  []Course
}

// normalize folds a role name to its lookup key.
func normalize(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// Lookup returns the profile for role. Roles without an entry get the
// placeholder profile; absence of data is a valid state, not an error.
func (t *Table) Lookup(role string) Profile {
	if p, ok := t.profiles[normalize(role)]; ok {
		return p
	}
	return Placeholder(strings.TrimSpace(role))
}

// Known reports whether role has an entry in the table.
func (t *Table) Known(role string) bool {
	_, ok := t.profiles[normalize(role)]
	return ok
}

// Roles returns every profile sorted by role name.
func (t *Table) Roles() []Profile {
	out := make([]Profile, 0, len(t.profiles))
	for _, p := range t.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Role) < strings.ToLower(out[j].Role)
	})
	return out
}

// Len returns the number of roles in the table.
func (t *Table) Len() int { return len(t.profiles) }

// IsIT reports whether role belongs to the IT category.
func (t *Table) IsIT(role string) bool {
	_, ok := t.it[normalize(role)]
	return ok
}

// IsNonIT reports whether role belongs to the non-IT category.
func (t *Table) IsNonIT(role string) bool {
	_, ok := t.nonIT[normalize(role)]
	return ok
}

// IsFresher reports whether role is the fresher sentinel.
func (t *Table) IsFresher(role string) bool {
	return t.fresher != "" && normalize(role) == t.fresher
}

// Courses returns recommended courses for a target role, falling back to
// the generic list.
func (t *Table) Courses(role string) []Course {
	if cs, ok := t.courses[normalize(role)]; ok && len(cs) > 0 {
		return append([]Course(nil), cs...)
	}
	return append([]Course(nil), t.generic...)
}
