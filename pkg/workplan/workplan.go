package workplan

import (
	"context"

	"github.com/strtupify/simkit/pkg/logging"
	"github.com/strtupify/simkit/pkg/observability"
	"github.com/strtupify/simkit/pkg/oracle"
)

// Plan is the full planning result: enriched items plus their schedule.
type Plan struct {
	Items    []WorkItem
	Schedule Schedule
}

// Planner runs the end-to-end pipeline: normalize drafts, infer blockers,
// estimate effort, compute the schedule.
type Planner struct {
	estimator *Estimator
	log       logging.Logger
	tracer    *observability.Tracer
	metrics   *Metrics
}

// PlannerOption configures optional planner collaborators.
type PlannerOption func(*Planner)

// WithMetrics attaches Prometheus planning metrics.
func WithMetrics(m *Metrics) PlannerOption {
	return func(p *Planner) { p.metrics = m }
}

// NewPlanner creates a planner over the shared oracle and estimate cache.
func NewPlanner(o oracle.Oracle, cache Cache, log logging.Logger, opts ...PlannerOption) *Planner {
	if log == nil {
		log = logging.NewNopLogger()
	}
	p := &Planner{
		log:    log,
		tracer: observability.NewTracer(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.estimator = NewEstimator(o, cache, log, p.metrics)
	return p
}

// PlanSchedule turns drafts into a fully scheduled plan. Unusable drafts
// (all untitled, or none at all) are replaced by the deterministic fallback
// plan so planning always yields work.
func (p *Planner) PlanSchedule(ctx context.Context, drafts []Draft, team []Employee) (Plan, error) {
	items := NormalizeDrafts(drafts, team)
	if len(items) == 0 {
		p.log.Info("no usable drafts, using fallback plan")
		items = NormalizeDrafts(FallbackPlan(team), team)
	}

	ctx, span := p.tracer.StartScheduleSpan(ctx, len(items))
	defer span.End()

	AssignBlockers(items)

	byName := make(map[string]Employee, len(team))
	for _, e := range team {
		byName[e.Name] = e
	}
	for i := range items {
		p.estimator.Estimate(ctx, &items[i], byName[items[i].Assignee])
	}

	schedule, err := ComputeSchedule(items)
	if err != nil {
		observability.RecordError(span, err)
		return Plan{}, err
	}
	p.metrics.scheduleComputed()
	p.log.Info("schedule computed",
		logging.F("items", len(items)),
		logging.F("horizon_hours", schedule.Horizon))
	return Plan{Items: items, Schedule: schedule}, nil
}
