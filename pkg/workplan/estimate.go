package workplan

import (
	"context"
	"math"

	"github.com/strtupify/simkit/pkg/logging"
	"github.com/strtupify/simkit/pkg/oracle"
)

const (
	baseHoursFloor      = 6.0
	baseHoursPerUnit    = 8.0
	multiplierFloor     = 0.6
	multiplierCeil      = 1.4
	neutralMultiplier   = 1.0
	skillPivotLevel     = 5.0
	skillLevelDiscount  = 0.05
	hourlyBudgetDollars = 100.0
)

// BaseHours converts complexity into a raw duration before any multiplier.
func BaseHours(complexity int) float64 {
	return baseHoursFloor + baseHoursPerUnit*float64(clampComplexity(complexity))
}

// SkillMultiplier discounts or penalizes effort by the assignee's average
// skill level relative to the pivot level 5. No skills means no adjustment.
func SkillMultiplier(skills map[string]int) float64 {
	if len(skills) == 0 {
		return neutralMultiplier
	}
	var sum float64
	for _, level := range skills {
		sum += float64(level)
	}
	avg := sum / float64(len(skills))
	return clampMultiplier(1 - (avg-skillPivotLevel)*skillLevelDiscount)
}

// RatePerHour spreads a fixed per-task budget over the estimated duration,
// rounded to four decimals.
func RatePerHour(estimatedHours float64) float64 {
	if estimatedHours <= 0 {
		return 0
	}
	return math.Round(hourlyBudgetDollars/estimatedHours*10000) / 10000
}

func clampMultiplier(m float64) float64 {
	return math.Max(multiplierFloor, math.Min(multiplierCeil, m))
}

// Estimator computes per-item effort: base hours scaled by the assignee's
// skill multiplier and an oracle-refined multiplier. Oracle results are
// cached by task/skills digest; failures fall back to the neutral 1.0.
type Estimator struct {
	oracle  oracle.Oracle
	cache   Cache
	log     logging.Logger
	metrics *Metrics
}

// NewEstimator creates an estimator. cache may be nil to disable caching.
func NewEstimator(o oracle.Oracle, cache Cache, log logging.Logger, metrics *Metrics) *Estimator {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Estimator{oracle: o, cache: cache, log: log, metrics: metrics}
}

// Estimate fills EstimatedHours and RatePerHour on the item for the given
// assignee. It never fails: oracle and cache trouble degrade to the neutral
// multiplier.
func (e *Estimator) Estimate(ctx context.Context, item *WorkItem, assignee Employee) {
	mult := e.oracleMultiplier(ctx, *item, assignee)
	hours := BaseHours(item.Complexity) * SkillMultiplier(assignee.Skills) * mult
	item.EstimatedHours = math.Round(hours*100) / 100
	item.RatePerHour = RatePerHour(item.EstimatedHours)
}

func (e *Estimator) oracleMultiplier(ctx context.Context, item WorkItem, assignee Employee) float64 {
	key := EstimateKey(item, assignee.Skills)
	if e.cache != nil {
		if v, ok, err := e.cache.Get(ctx, key); err != nil {
			e.log.Warn("estimate cache unavailable", logging.Err(err))
		} else if ok {
			e.metrics.cacheHit()
			return clampMultiplier(v)
		}
		e.metrics.cacheMiss()
	}

	skills := make([]oracle.Skill, 0, len(assignee.Skills))
	for name, level := range assignee.Skills {
		skills = append(skills, oracle.Skill{Skill: name, Level: level})
	}
	resp, err := e.oracle.GenerateMultiplier(ctx, oracle.MultiplierRequest{
		TaskTitle:       item.Title,
		TaskDescription: item.Description,
		TaskCategory:    item.Category,
		Complexity:      item.Complexity,
		AssigneeTitle:   assignee.Title,
		AssigneeSkills:  skills,
	})
	if err != nil {
		e.log.Warn("multiplier oracle unavailable, using neutral multiplier",
			logging.F("item", item.Title), logging.Err(err))
		e.metrics.oracleFallback()
		return neutralMultiplier
	}

	mult := clampMultiplier(resp.Multiplier)
	if e.cache != nil {
		if err := e.cache.Set(ctx, key, mult); err != nil {
			e.log.Warn("estimate cache write failed", logging.Err(err))
		}
	}
	return mult
}
