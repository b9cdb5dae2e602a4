// Package compensation holds the static role -> CTC reference table.
//
// The table is loaded once from a YAML dataset (embedded by default) and is
// read-only afterwards, so a *Table is safe for concurrent use.
package compensation

// Placeholder metadata for roles without reference data.
const (
	PlaceholderRange  = "N/A"
	PlaceholderSource = "Research required"
	PlaceholderTips   = "No reliable data available"
)

// Profile is the reference compensation for one role. A nil figure means no
// data is available, which is not the same as a figure of zero.
type Profile struct {
	Role        string   `json:"role"`
	Entry       *float64 `json:"entry"`
	Average     *float64 `json:"average"`
	Experienced *float64 `json:"experienced"`
	Range       string   `json:"range"`
	Source      string   `json:"source"`
	Tips        string   `json:"tips"`
}

// HasData reports whether any compensation figure is present.
func (p Profile) HasData() bool {
	return p.Entry != nil || p.Average != nil || p.Experienced != nil
}

// EntryValue returns the entry figure and whether it is present.
func (p Profile) EntryValue() (float64, bool) { return deref(p.Entry) }

// AverageValue returns the average figure and whether it is present.
func (p Profile) AverageValue() (float64, bool) { return deref(p.Average) }

// ExperiencedValue returns the experienced figure and whether it is present.
func (p Profile) ExperiencedValue() (float64, bool) { return deref(p.Experienced) }

// Placeholder returns the no-data profile for role.
func Placeholder(role string) Profile {
	return Profile{
		Role:   role,
		Range:  PlaceholderRange,
		Source: PlaceholderSource,
		Tips:   PlaceholderTips,
	}
}

// Course is a recommended course or certification.
type Course struct {
	Name string `json:"name" koanf:"name"`
	URL  string `json:"url" koanf:"url"`
}

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Float returns a pointer to v, for building profiles in code.
func Float(v float64) *float64 { return &v }
