package simulation

import "strings"

// Category is a salary band used to seed a standalone simulation.
type Category struct {
	Name    string  `json:"name"`
	Default float64 `json:"default"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	// Fixed categories ignore the requested starting value.
	Fixed bool `json:"fixed"`
}

// Built-in categories.
var (
	CategoryIT      = Category{Name: "IT", Default: 600000, Min: 200000, Max: 5000000}
	CategoryNonIT   = Category{Name: "Non-IT", Default: 400000, Min: 200000, Max: 3000000}
	CategoryFresher = Category{Name: "Fresher", Default: 350000, Min: 350000, Max: 350000, Fixed: true}
)

// Categories returns the built-in categories in display order.
func Categories() []Category {
	return []Category{CategoryIT, CategoryNonIT, CategoryFresher}
}

// LookupCategory finds a category by name, ignoring case, spaces, dashes
// and underscores.
func LookupCategory(name string) (Category, bool) {
	key := categoryKey(name)
	for _, c := range Categories() {
		if categoryKey(c.Name) == key {
			return c, true
		}
	}
	return Category{}, false
}

// Start resolves the starting compensation for a requested value. Fixed
// categories always return their default; zero selects the default; any
// other value is clamped into [Min, Max].
func (c Category) Start(requested float64) float64 {
	if c.Fixed || requested == 0 || !finite(requested) {
		return c.Default
	}
	if requested < c.Min {
		return c.Min
	}
	if requested > c.Max {
		return c.Max
	}
	return requested
}

func categoryKey(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}
