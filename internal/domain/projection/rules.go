// Package projection estimates expected compensation for a role transition
// and builds what-if salary scenarios.
package projection

import "github.com/okian/pathwise/internal/domain/model"

// Basis selects which figure a scenario multiplier is applied to.
type Basis int

// Scenario bases.
const (
	// BasisCurrent uses the user's current compensation, or the target's
	// entry figure when current is zero.
	BasisCurrent Basis = iota
	// BasisEntry uses the target's entry figure.
	BasisEntry
	// BasisAverage uses the target's average figure.
	BasisAverage
)

// ScenarioRule describes one what-if scenario.
type ScenarioRule struct {
	Label       string
	Description string
	Basis       Basis
	Multiplier  float64
}

// Rules holds every multiplier the projector uses.
type Rules struct {
	// HikePercent is the expected hike per transition, capped at the target
	// average. NonItToIt and Unknown are not listed.
	HikePercent map[model.TransitionType]float64

	// Scenarios lists exactly three scenarios per transition.
	Scenarios map[model.TransitionType][3]ScenarioRule
}

// Default hike percentages per transition.
const (
	DefaultItToItHikePercent       = 20
	DefaultNonItToNonItHikePercent = 15
	DefaultItToNonItHikePercent    = 10
	DefaultSameDomainHikePercent   = 35

	// CareerSwitchUpliftPercent is the growth over entry after 1-2 years in a
	// new IT role.
	CareerSwitchUpliftPercent = 30
)

// DefaultRules returns the canonical rule set.
func DefaultRules() Rules {
	return Rules{
		HikePercent: map[model.TransitionType]float64{
			model.ItToIt:       DefaultItToItHikePercent,
			model.NonItToNonIt: DefaultNonItToNonItHikePercent,
			model.ItToNonIt:    DefaultItToNonItHikePercent,
			model.SameDomain:   DefaultSameDomainHikePercent,
		},
		Scenarios: map[model.TransitionType][3]ScenarioRule{
			model.NonItToIt: {
				{Label: "Entry Level", Description: "Starting salary as a career switcher", Basis: BasisEntry, Multiplier: 1},
				{Label: "After 1-2 years", Description: "With experience and proven skills", Basis: BasisEntry, Multiplier: 1 + CareerSwitchUpliftPercent/100.0},
				{Label: "Senior Level", Description: "With 3-5 years of experience", Basis: BasisAverage, Multiplier: 1},
			},
			model.ItToIt: {
				{Label: "Conservative", Description: "10% hike (minimum expected)", Multiplier: 1.10},
				{Label: "Expected", Description: "20% hike (typical for domain switch)", Multiplier: 1.20},
				{Label: "Optimistic", Description: "30% hike (with strong skills)", Multiplier: 1.30},
			},
			model.NonItToNonIt: {
				{Label: "Conservative", Description: "5% hike (lateral move)", Multiplier: 1.05},
				{Label: "Expected", Description: "15% hike (typical for a new field)", Multiplier: 1.15},
				{Label: "Optimistic", Description: "25% hike (with transferable skills)", Multiplier: 1.25},
			},
			model.ItToNonIt: {
				{Label: "Conservative", Description: "5% hike (fresh start in a new field)", Multiplier: 1.05},
				{Label: "Expected", Description: "10% hike (technical edge carried over)", Multiplier: 1.10},
				{Label: "Optimistic", Description: "20% hike (tech-enabled specialist role)", Multiplier: 1.20},
			},
			model.SameDomain: {
				{Label: "Standard Upskilling", Description: "25% hike with new skills", Multiplier: 1.25},
				{Label: "Advanced Skills", Description: "35% hike with premium skills", Multiplier: 1.35},
				{Label: "Leadership Track", Description: "50% hike for senior positions", Multiplier: 1.50},
			},
		},
	}
}

// WithHike returns a copy of r with the hike for tt replaced.
func (r Rules) WithHike(tt model.TransitionType, percent float64) Rules {
	hikes := make(map[model.TransitionType]float64, len(r.HikePercent)+1)
	for k, v := range r.HikePercent {
		hikes[k] = v
	}
	hikes[tt] = percent
	r.HikePercent = hikes
	return r
}
