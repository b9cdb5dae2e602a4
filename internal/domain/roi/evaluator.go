// Package roi evaluates the return of a planned role transition.
package roi

import (
	"fmt"
	"math"

	"github.com/okian/pathwise/internal/domain/model"
)

// Breakeven labels.
const (
	LabelImmediate        = "Immediate"
	LabelCareerTransition = "Career Transition"
	LabelLifestyleChoice  = "Lifestyle Choice"
	LabelCareerGrowth     = "Career Growth"
)

// Advisory notes attached when a lower salary is accepted.
const (
	AdvisoryLifestyle = "Expected salary is lower than current. This may reflect a lifestyle choice."
	AdvisoryGrowth    = "Expected salary is lower than current. This may reflect a long-term career growth move."
)

// Result is the outcome of an ROI evaluation.
type Result struct {
	CurrentCompensation  float64              `json:"current_compensation"`
	ExpectedCompensation float64              `json:"expected_compensation"`
	Gain                 float64              `json:"gain"`
	RoiPercent           float64              `json:"roi_percent"`
	BreakevenLabel       string               `json:"breakeven_label"`
	TransitionType       model.TransitionType `json:"transition_type"`
	Advisory             string               `json:"advisory,omitempty"`
}

// Evaluate computes gain and ROI for moving from current to expected
// compensation under tt.
//
// Both values must be positive. A non-positive gain is accepted for
// NonItToIt, ItToNonIt and NonItToNonIt; every other transition reports
// ErrNonPositiveGain.
func Evaluate(current, expected float64, tt model.TransitionType) (Result, error) {
	if !positive(current) || !positive(expected) {
		return Result{}, fmt.Errorf("%w: current %v, expected %v", model.ErrIncompleteInput, current, expected)
	}

	gain := expected - current
	res := Result{
		CurrentCompensation:  current,
		ExpectedCompensation: expected,
		Gain:                 gain,
		RoiPercent:           gain / current * 100,
		BreakevenLabel:       LabelImmediate,
		TransitionType:       tt,
	}
	if gain > 0 {
		return res, nil
	}

	switch tt {
	case model.NonItToIt:
		res.BreakevenLabel = LabelCareerTransition
	case model.ItToNonIt:
		res.BreakevenLabel = LabelLifestyleChoice
		res.Advisory = AdvisoryLifestyle
	case model.NonItToNonIt:
		res.BreakevenLabel = LabelCareerGrowth
		res.Advisory = AdvisoryGrowth
	default:
		return Result{}, fmt.Errorf("%w: expected %v does not exceed current %v for %s", model.ErrNonPositiveGain, expected, current, tt)
	}
	return res, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
