package projection

import (
	"fmt"
	"math"

	"github.com/okian/pathwise/internal/domain/compensation"
	"github.com/okian/pathwise/internal/domain/model"
)

// Projector computes the single-point expected compensation and the
// scenario guidance for a transition. It holds no mutable state.
type Projector struct {
	rules Rules
}

// Option applies a configuration option to the Projector.
type Option func(*Projector)

// WithRules replaces the full rule set.
func WithRules(r Rules) Option {
	return func(p *Projector) {
		if r.HikePercent != nil {
			p.rules.HikePercent = r.HikePercent
		}
		if r.Scenarios != nil {
			p.rules.Scenarios = r.Scenarios
		}
	}
}

// WithHikePercent overrides the capped hike for one transition type.
func WithHikePercent(tt model.TransitionType, percent float64) Option {
	return func(p *Projector) {
		if percent >= 0 && !math.IsNaN(percent) && !math.IsInf(percent, 0) {
			p.rules = p.rules.WithHike(tt, percent)
		}
	}
}

// NewProjector creates a projector using DefaultRules unless overridden.
func NewProjector(opts ...Option) *Projector {
	p := &Projector{rules: DefaultRules()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Rules returns the rule set in use.
func (p *Projector) Rules() Rules { return p.rules }

// Project returns the expected compensation for moving into target.
//
// NonItToIt restarts at the target's entry figure. The growth transitions
// apply their hike to current (entry when current is zero) and cap the
// result at the target average. Unknown falls back to the average. A
// target without any reference data projects to 0. The result is rounded
// to the nearest integer.
func (p *Projector) Project(tt model.TransitionType, target compensation.Profile, current float64) (float64, error) {
	if !validAmount(current) {
		return 0, fmt.Errorf("%w: current compensation %v", model.ErrIncompleteInput, current)
	}
	if !target.HasData() {
		return 0, nil
	}

	switch tt {
	case model.NonItToIt:
		entry, ok := target.EntryValue()
		if !ok {
			return 0, missingFigure(target, "entry")
		}
		return math.Round(entry), nil

	case model.ItToIt, model.NonItToNonIt, model.ItToNonIt, model.SameDomain:
		base, err := currentOrEntry(target, current)
		if err != nil {
			return 0, err
		}
		avg, ok := target.AverageValue()
		if !ok {
			return 0, missingFigure(target, "average")
		}
		hike := p.rules.HikePercent[tt]
		return math.Round(math.Min(base+base*hike/100, avg)), nil

	default:
		avg, ok := target.AverageValue()
		if !ok {
			return 0, nil
		}
		return math.Round(avg), nil
	}
}

// Scenario is one what-if outcome.
type Scenario struct {
	Label        string  `json:"label"`
	Compensation float64 `json:"compensation"`
	Description  string  `json:"description"`
}

// ScenarioSet is the salary guidance block for a target role.
type ScenarioSet struct {
	Title     string     `json:"title"`
	Range     string     `json:"range"`
	Source    string     `json:"source"`
	Tip       string     `json:"tip"`
	Scenarios []Scenario `json:"scenarios"`
}

// Scenarios returns three what-if scenarios for the transition. It returns
// nil without error when the target has no reference data or the
// transition is Unknown.
func (p *Projector) Scenarios(tt model.TransitionType, target compensation.Profile, current float64) (*ScenarioSet, error) {
	if !validAmount(current) {
		return nil, fmt.Errorf("%w: current compensation %v", model.ErrIncompleteInput, current)
	}
	rules, ok := p.rules.Scenarios[tt]
	if !ok || !target.HasData() {
		return nil, nil
	}

	set := &ScenarioSet{
		Title:     fmt.Sprintf("Salary Expectations for %s", target.Role),
		Range:     target.Range,
		Source:    target.Source,
		Tip:       target.Tips,
		Scenarios: make([]Scenario, 0, len(rules)),
	}
	for _, r := range rules {
		base, err := p.basis(r.Basis, target, current)
		if err != nil {
			return nil, err
		}
		set.Scenarios = append(set.Scenarios, Scenario{
			Label:        r.Label,
			Compensation: math.Round(base * r.Multiplier),
			Description:  r.Description,
		})
	}
	return set, nil
}

func (p *Projector) basis(b Basis, target compensation.Profile, current float64) (float64, error) {
	switch b {
	case BasisEntry:
		v, ok := target.EntryValue()
		if !ok {
			return 0, missingFigure(target, "entry")
		}
		return v, nil
	case BasisAverage:
		v, ok := target.AverageValue()
		if !ok {
			return 0, missingFigure(target, "average")
		}
		return v, nil
	default:
		return currentOrEntry(target, current)
	}
}

// currentOrEntry substitutes the target entry figure for a zero current.
func currentOrEntry(target compensation.Profile, current float64) (float64, error) {
	if current > 0 {
		return current, nil
	}
	entry, ok := target.EntryValue()
	if !ok {
		return 0, fmt.Errorf("%w: no current compensation and %q has no entry figure", model.ErrIncompleteInput, target.Role)
	}
	return entry, nil
}

func missingFigure(target compensation.Profile, figure string) error {
	return fmt.Errorf("%w: %q has no %s compensation", model.ErrIncompleteInput, target.Role, figure)
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
