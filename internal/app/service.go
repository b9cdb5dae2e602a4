// Package service wires the compensation table, classifier, projector,
// simulator and ROI evaluator behind the operations the HTTP API needs.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/okian/pathwise/internal/domain/compensation"
	"github.com/okian/pathwise/internal/domain/model"
	"github.com/okian/pathwise/internal/domain/projection"
	"github.com/okian/pathwise/internal/domain/roi"
	"github.com/okian/pathwise/internal/domain/simulation"
	"github.com/okian/pathwise/internal/domain/summary"
	"github.com/okian/pathwise/internal/domain/transition"
	"github.com/okian/pathwise/pkg/logger"
	"github.com/okian/pathwise/pkg/metrics"
)

// Service implements the API dependencies for the ROI engine. Computation
// is lock-free; the mutex only guards Start and Stop.
type Service struct {
	mu sync.Mutex

	// Core components, built in Start.
	table      *compensation.Table
	classifier *transition.Classifier
	projector  *projection.Projector
	simulator  *simulation.Simulator

	// Configuration
	datasetPath   string
	rules         projection.Rules
	hikeOverrides map[model.TransitionType]float64
	baselineRaise float64
	maxYears      int
	simDefaults   SimulationDefaults
	presetTable   *compensation.Table

	// State
	started atomic.Bool

	assessments atomic.Int64
	simulations atomic.Int64
	evaluations atomic.Int64
	summaries   atomic.Int64
	failures    atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTable uses an already loaded compensation table.
func WithTable(t *compensation.Table) Option {
	return func(s *Service) {
		if t != nil {
			s.presetTable = t
		}
	}
}

// WithDatasetPath loads the compensation table from a YAML file on Start.
func WithDatasetPath(path string) Option {
	return func(s *Service) { s.datasetPath = path }
}

// WithRules replaces the projection rule set.
func WithRules(r projection.Rules) Option {
	return func(s *Service) { s.rules = r }
}

// WithHikePercent overrides the projection hike for one transition type.
func WithHikePercent(tt model.TransitionType, percent float64) Option {
	return func(s *Service) {
		if s.hikeOverrides == nil {
			s.hikeOverrides = make(map[model.TransitionType]float64)
		}
		s.hikeOverrides[tt] = percent
	}
}

// WithBaselineRaise sets the simulator's annual non-switch raise.
func WithBaselineRaise(percent float64) Option {
	return func(s *Service) {
		if percent >= 0 {
			s.baselineRaise = percent
		}
	}
}

// WithSimulationDefaults sets the values used for omitted simulation fields.
func WithSimulationDefaults(d SimulationDefaults) Option {
	return func(s *Service) {
		if d.SwitchIntervalYears >= 1 && d.Years >= 0 && d.SwitchHikePercent >= 0 {
			s.simDefaults = d
		}
	}
}

// WithMaxSimulationYears caps the simulation horizon.
func WithMaxSimulationYears(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxYears = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		rules:         projection.DefaultRules(),
		baselineRaise: simulation.DefaultBaselineRaisePercent,
		maxYears:      simulation.DefaultMaxYears,
		simDefaults: SimulationDefaults{
			SwitchHikePercent:   30,
			Years:               5,
			SwitchIntervalYears: 2,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the compensation table and builds the engine components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started.Load() {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting pathwise service...")

	if s.table != nil {
		s.started.Store(true)
		s.logger.Info(ctx, "pathwise service restarted")
		return nil
	}

	table := s.presetTable
	if table == nil {
		var opts []compensation.Option
		if s.datasetPath != "" {
			opts = append(opts, compensation.WithDatasetPath(s.datasetPath))
		}
		t, err := compensation.Load(ctx, opts...)
		if err != nil {
			return fmt.Errorf("load compensation dataset: %w", err)
		}
		table = t
	}

	popts := []projection.Option{projection.WithRules(s.rules)}
	for tt, pct := range s.hikeOverrides {
		popts = append(popts, projection.WithHikePercent(tt, pct))
	}

	s.table = table
	s.classifier = transition.NewClassifier(table)
	s.projector = projection.NewProjector(popts...)
	s.simulator = simulation.NewSimulator(
		simulation.WithBaselineRaisePercent(s.baselineRaise),
		simulation.WithMaxYears(s.maxYears),
	)
	metrics.UpdateDatasetRoles(table.Len())

	s.started.Store(true)
	s.logger.Info(ctx, "pathwise service started",
		logger.Int("roles", table.Len()),
		logger.Float64("baselineRaisePercent", s.baselineRaise),
		logger.Int("maxSimulationYears", s.maxYears),
		logger.Bool("customDataset", s.datasetPath != "" || s.presetTable != nil),
	)

	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started.Load() {
		return
	}
	s.started.Store(false)
	s.logger.Info(context.Background(), "pathwise service stopped")
}

func (s *Service) ready() error {
	if !s.started.Load() {
		return ErrNotStarted
	}
	return nil
}

// Roles returns every profile in the dataset sorted by role name.
func (s *Service) Roles(_ context.Context) ([]compensation.Profile, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.table.Roles(), nil
}

// Lookup returns the profile for role and whether it is in the dataset.
// Unknown roles get the placeholder profile.
func (s *Service) Lookup(ctx context.Context, role string) (compensation.Profile, bool, error) {
	if err := s.ready(); err != nil {
		return compensation.Profile{}, false, err
	}
	known := s.table.Known(role)
	if !known {
		metrics.RecordUnknownRole()
		s.logger.Debug(ctx, "unknown role", logger.String("role", role))
	}
	return s.table.Lookup(role), known, nil
}

// Assess classifies the transition, projects the expected compensation and
// builds scenario guidance.
func (s *Service) Assess(ctx context.Context, in model.ProjectionInput) (Assessment, error) {
	if err := s.ready(); err != nil {
		return Assessment{}, err
	}

	tt := s.classifier.Classify(in.CurrentRole, in.TargetRole)
	target, known, _ := s.Lookup(ctx, in.TargetRole)

	guidance, err := s.projector.Scenarios(tt, target, in.CurrentCompensation)
	if err != nil {
		return Assessment{}, s.fail(ctx, "assess", err)
	}
	expected, err := s.projector.Project(tt, target, in.CurrentCompensation)
	if err != nil {
		// Scenarios do not depend on the projection and are still returned.
		return Assessment{
			CurrentRole:         in.CurrentRole,
			TargetRole:          in.TargetRole,
			TransitionType:      tt,
			CurrentCompensation: in.CurrentCompensation,
			TargetKnown:         known,
			Target:              target,
			Guidance:            guidance,
		}, s.fail(ctx, "assess", err)
	}

	s.assessments.Add(1)
	metrics.RecordAssessment(tt.String())
	s.logger.Debug(ctx, "assessed transition",
		logger.String("current", in.CurrentRole),
		logger.String("target", in.TargetRole),
		logger.String("transition", tt.String()),
		logger.Float64("expected", expected),
	)

	return Assessment{
		CurrentRole:          in.CurrentRole,
		TargetRole:           in.TargetRole,
		TransitionType:       tt,
		CurrentCompensation:  in.CurrentCompensation,
		ExpectedCompensation: expected,
		TargetKnown:          known,
		Target:               target,
		Guidance:             guidance,
	}, nil
}

// Simulate fills omitted fields from the defaults and runs the simulator.
func (s *Service) Simulate(ctx context.Context, req SimulationRequest) (simulation.Result, error) {
	if err := s.ready(); err != nil {
		return simulation.Result{}, err
	}

	p, err := s.simulationParams(req)
	if err != nil {
		return simulation.Result{}, s.fail(ctx, "simulate", err)
	}
	res, err := s.simulator.Simulate(p)
	if err != nil {
		return simulation.Result{}, s.fail(ctx, "simulate", err)
	}

	s.simulations.Add(1)
	metrics.RecordSimulation(p.Years)
	s.logger.Debug(ctx, "simulated salary",
		logger.Float64("start", p.StartingCompensation),
		logger.Int("years", p.Years),
		logger.Int("interval", p.SwitchIntervalYears),
		logger.Float64("extraGain", res.ExtraGain),
	)
	return res, nil
}

func (s *Service) simulationParams(req SimulationRequest) (simulation.Params, error) {
	p := simulation.Params{
		SwitchHikePercent:   s.simDefaults.SwitchHikePercent,
		Years:               s.simDefaults.Years,
		SwitchIntervalYears: s.simDefaults.SwitchIntervalYears,
	}
	if req.SwitchHikePercent != nil {
		p.SwitchHikePercent = *req.SwitchHikePercent
	}
	if req.Years != nil {
		p.Years = *req.Years
	}
	if req.SwitchIntervalYears != nil {
		p.SwitchIntervalYears = *req.SwitchIntervalYears
	}

	var requested float64
	if req.StartingCompensation != nil {
		requested = *req.StartingCompensation
	}
	switch {
	case req.Category != "":
		c, ok := simulation.LookupCategory(req.Category)
		if !ok {
			return p, fmt.Errorf("%w: %w %q", model.ErrInvalidSimulation, ErrUnknownCategory, req.Category)
		}
		if requested < 0 {
			return p, fmt.Errorf("%w: invalid starting compensation %v", model.ErrInvalidSimulation, requested)
		}
		p.StartingCompensation = c.Start(requested)
	case req.StartingCompensation == nil:
		p.StartingCompensation = defaultCategory.Default
	default:
		p.StartingCompensation = requested
	}
	return p, nil
}

// EvaluateROI classifies the transition and evaluates the ROI. When the
// request carries no expected compensation the projection is used.
func (s *Service) EvaluateROI(ctx context.Context, req ROIRequest) (ROIOutcome, error) {
	if err := s.ready(); err != nil {
		return ROIOutcome{}, err
	}

	tt := s.classifier.Classify(req.CurrentRole, req.TargetRole)
	out := ROIOutcome{}

	var expected float64
	if req.ExpectedCompensation != nil {
		expected = *req.ExpectedCompensation
	} else {
		target, _, _ := s.Lookup(ctx, req.TargetRole)
		p, err := s.projector.Project(tt, target, req.CurrentCompensation)
		if err != nil {
			return ROIOutcome{}, s.fail(ctx, "roi", err)
		}
		expected = p
		out.Projected = true
	}

	res, err := roi.Evaluate(req.CurrentCompensation, expected, tt)
	if err != nil {
		return ROIOutcome{}, s.fail(ctx, "roi", err)
	}

	s.evaluations.Add(1)
	metrics.RecordROIOutcome(res.BreakevenLabel)
	out.Result = res
	return out, nil
}

// Summary evaluates the ROI and renders the share text with course
// recommendations for the target role.
func (s *Service) Summary(ctx context.Context, req SummaryRequest) (Summary, error) {
	out, err := s.EvaluateROI(ctx, req)
	if err != nil {
		return Summary{}, err
	}
	courses := s.table.Courses(req.TargetRole)
	text := summary.Text(summary.Input{
		CurrentRole: req.CurrentRole,
		TargetRole:  req.TargetRole,
		Result:      out.Result,
		Courses:     courses,
	})
	s.summaries.Add(1)
	return Summary{Text: text, Result: out.Result, Courses: courses}, nil
}

// fail records a failed operation and returns err unchanged.
func (s *Service) fail(ctx context.Context, op string, err error) error {
	s.failures.Add(1)
	kind := ErrorKind(err)
	metrics.RecordError(op, kind)
	s.logger.Warn(ctx, "operation failed",
		logger.String("operation", op),
		logger.String("kind", kind),
		logger.Error(err),
	)
	return err
}

// ErrorKind maps an engine error to a short machine-readable tag.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, model.ErrIncompleteInput):
		return "incomplete_input"
	case errors.Is(err, model.ErrNonPositiveGain):
		return "non_positive_gain"
	case errors.Is(err, model.ErrInvalidSimulation):
		return "invalid_simulation"
	case errors.Is(err, model.ErrInvalidDataset):
		return "invalid_dataset"
	case errors.Is(err, ErrNotStarted):
		return "not_started"
	default:
		return "internal"
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	stats := map[string]interface{}{
		"started":              s.started.Load(),
		"assessments":          int(s.assessments.Load()),
		"simulations":          int(s.simulations.Load()),
		"roiEvaluations":       int(s.evaluations.Load()),
		"summaries":            int(s.summaries.Load()),
		"failures":             int(s.failures.Load()),
		"baselineRaisePercent": s.baselineRaise,
		"maxSimulationYears":   s.maxYears,
	}
	if s.started.Load() {
		stats["roles"] = s.table.Len()
	}
	return stats
}
