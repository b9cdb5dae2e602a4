// Package simulation models multi-year salary growth with and without
// periodic job switches.
package simulation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/okian/pathwise/internal/domain/model"
)

const (
	// DefaultBaselineRaisePercent is the annual raise applied in years
	// without a switch.
	DefaultBaselineRaisePercent = 8.0
	// DefaultMaxYears bounds the simulation horizon.
	DefaultMaxYears = 50
)

var hundred = decimal.NewFromInt(100)

// Params are the inputs of a single simulation.
type Params struct {
	StartingCompensation float64 `json:"starting_compensation"`
	SwitchHikePercent    float64 `json:"switch_hike_percent"`
	Years                int     `json:"years"`
	SwitchIntervalYears  int     `json:"switch_interval_years"`
}

// Result holds both trajectories and their earnings totals. Each
// trajectory has Years+1 entries; index 0 is the starting compensation.
type Result struct {
	Params                     Params    `json:"params"`
	BaselineRaisePercent       float64   `json:"baseline_raise_percent"`
	TrajectoryWithSwitching    []float64 `json:"trajectory_with_switching"`
	TotalEarningsWithSwitching float64   `json:"total_earnings_with_switching"`
	TrajectoryNoSwitch         []float64 `json:"trajectory_no_switch"`
	TotalEarningsNoSwitch      float64   `json:"total_earnings_no_switch"`
	ExtraGain                  float64   `json:"extra_gain"`
	SwitchYears                []int     `json:"switch_years"`
}

// Simulator runs salary simulations. It keeps no state between calls.
type Simulator struct {
	baseline decimal.Decimal
	maxYears int
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithBaselineRaisePercent sets the annual non-switch raise.
func WithBaselineRaisePercent(percent float64) Option {
	return func(s *Simulator) {
		if percent >= 0 && finite(percent) {
			s.baseline = decimal.NewFromFloat(percent)
		}
	}
}

// WithMaxYears sets the longest accepted horizon.
func WithMaxYears(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.maxYears = n
		}
	}
}

// NewSimulator creates a simulator with the default baseline raise.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		baseline: decimal.NewFromFloat(DefaultBaselineRaisePercent),
		maxYears: DefaultMaxYears,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BaselineRaisePercent returns the configured annual raise.
func (s *Simulator) BaselineRaisePercent() float64 {
	return s.baseline.InexactFloat64()
}

// MaxYears returns the longest accepted horizon.
func (s *Simulator) MaxYears() int { return s.maxYears }

// Validate reports whether p can be simulated.
func (s *Simulator) Validate(p Params) error {
	switch {
	case p.SwitchIntervalYears < 1:
		return fmt.Errorf("%w: switch interval must be at least 1 year, got %d", model.ErrInvalidSimulation, p.SwitchIntervalYears)
	case p.Years < 0:
		return fmt.Errorf("%w: years must not be negative, got %d", model.ErrInvalidSimulation, p.Years)
	case p.Years > s.maxYears:
		return fmt.Errorf("%w: years must not exceed %d, got %d", model.ErrInvalidSimulation, s.maxYears, p.Years)
	case p.StartingCompensation < 0 || !finite(p.StartingCompensation):
		return fmt.Errorf("%w: invalid starting compensation %v", model.ErrInvalidSimulation, p.StartingCompensation)
	case p.SwitchHikePercent < 0 || !finite(p.SwitchHikePercent):
		return fmt.Errorf("%w: invalid switch hike %v", model.ErrInvalidSimulation, p.SwitchHikePercent)
	}
	return nil
}

// Simulate runs the switching and non-switching passes over p.Years years.
func (s *Simulator) Simulate(p Params) (Result, error) {
	if err := s.Validate(p); err != nil {
		return Result{}, err
	}

	start := decimal.NewFromFloat(p.StartingCompensation)
	hike := decimal.NewFromFloat(p.SwitchHikePercent)

	with, withTotal, switches := s.run(start, p.Years, func(year int) (decimal.Decimal, bool) {
		if year%p.SwitchIntervalYears == 0 {
			return hike, true
		}
		return s.baseline, false
	})
	without, withoutTotal, _ := s.run(start, p.Years, func(int) (decimal.Decimal, bool) {
		return s.baseline, false
	})

	return Result{
		Params:                     p,
		BaselineRaisePercent:       s.BaselineRaisePercent(),
		TrajectoryWithSwitching:    with,
		TotalEarningsWithSwitching: withTotal.InexactFloat64(),
		TrajectoryNoSwitch:         without,
		TotalEarningsNoSwitch:      withoutTotal.InexactFloat64(),
		ExtraGain:                  withTotal.Sub(withoutTotal).InexactFloat64(),
		SwitchYears:                switches,
	}, nil
}

// run applies raise(year) to a running salary. The year's salary is added
// to the total before the raise.
func (s *Simulator) run(start decimal.Decimal, years int, raise func(year int) (decimal.Decimal, bool)) ([]float64, decimal.Decimal, []int) {
	trajectory := make([]float64, 0, years+1)
	trajectory = append(trajectory, start.InexactFloat64())
	switches := []int{}

	salary, total := start, decimal.Zero
	for year := 1; year <= years; year++ {
		total = total.Add(salary)
		pct, switched := raise(year)
		if switched {
			switches = append(switches, year)
		}
		salary = salary.Add(salary.Mul(pct).Div(hundred))
		trajectory = append(trajectory, salary.Round(0).InexactFloat64())
	}
	return trajectory, total, switches
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
