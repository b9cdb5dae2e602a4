package service

import (
	"github.com/okian/pathwise/internal/domain/compensation"
	"github.com/okian/pathwise/internal/domain/model"
	"github.com/okian/pathwise/internal/domain/projection"
	"github.com/okian/pathwise/internal/domain/roi"
	"github.com/okian/pathwise/internal/domain/simulation"
)

// Assessment is the combined classification, projection and scenario
// guidance for a role transition.
type Assessment struct {
	CurrentRole          string                  `json:"current_role"`
	TargetRole           string                  `json:"target_role"`
	TransitionType       model.TransitionType    `json:"transition_type"`
	CurrentCompensation  float64                 `json:"current_compensation"`
	ExpectedCompensation float64                 `json:"expected_compensation"`
	TargetKnown          bool                    `json:"target_known"`
	Target               compensation.Profile    `json:"target"`
	Guidance             *projection.ScenarioSet `json:"guidance,omitempty"`
}

// SimulationRequest asks for a multi-year simulation. Nil fields take the
// configured defaults. When Category is set the starting compensation is
// resolved through that category's band.
type SimulationRequest struct {
	Category             string   `json:"category,omitempty"`
	StartingCompensation *float64 `json:"starting_compensation,omitempty"`
	SwitchHikePercent    *float64 `json:"switch_hike_percent,omitempty"`
	Years                *int     `json:"years,omitempty"`
	SwitchIntervalYears  *int     `json:"switch_interval_years,omitempty"`
}

// SimulationDefaults fill omitted simulation request fields.
type SimulationDefaults struct {
	SwitchHikePercent   float64
	Years               int
	SwitchIntervalYears int
}

// ROIRequest asks for an ROI evaluation. When ExpectedCompensation is nil
// the projector's estimate for the target role is used.
type ROIRequest struct {
	CurrentRole          string   `json:"current_role"`
	TargetRole           string   `json:"target_role"`
	CurrentCompensation  float64  `json:"current_compensation"`
	ExpectedCompensation *float64 `json:"expected_compensation,omitempty"`
}

// ROIOutcome is an ROI result plus where the expected figure came from.
type ROIOutcome struct {
	roi.Result
	Projected bool `json:"projected"`
}

// SummaryRequest asks for the share summary of a transition.
type SummaryRequest = ROIRequest

// Summary is the share text together with the values it was built from.
type Summary struct {
	Text    string                `json:"text"`
	Result  roi.Result            `json:"result"`
	Courses []compensation.Course `json:"courses"`
}

// defaultCategory is used when a simulation request names no category and
// gives no starting value.
var defaultCategory = simulation.CategoryIT
