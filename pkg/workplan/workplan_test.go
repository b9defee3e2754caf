package workplan

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strtupify/simkit/pkg/oracle"
)

func TestPlanScheduleEndToEnd(t *testing.T) {
	planner := NewPlanner(oracle.NewScriptedOracle(), NewMemoryCache(), nil)

	drafts := []Draft{
		{Title: "Write MVP spec", Category: "product", Assignee: "bob", Complexity: 2},
		{Title: "Create wireframes", Category: "design", Assignee: "cam", Complexity: 3},
		{Title: "Build core feature", Category: "engineering", Assignee: "ada", Complexity: 4},
		{Title: "Regression pass", Category: "qa", Assignee: "ada", Complexity: 2},
	}
	plan, err := planner.PlanSchedule(context.Background(), drafts, testTeam)
	require.NoError(t, err)
	require.Len(t, plan.Items, 4)

	for _, item := range plan.Items {
		assert.Greater(t, item.EstimatedHours, 0.0, item.Title)
		assert.Greater(t, item.RatePerHour, 0.0, item.Title)
		for _, b := range item.Blockers {
			assert.Less(t, b, item.ID)
			assert.GreaterOrEqual(t, plan.Schedule.Finish[item.ID], plan.Schedule.Finish[b])
		}
	}
	assert.Equal(t, []int{0}, plan.Items[1].Blockers)
	assert.Equal(t, []int{0, 1}, plan.Items[2].Blockers)
	assert.Greater(t, plan.Schedule.Horizon, 0.0)
}

func TestPlanScheduleFallsBackWhenDraftsUnusable(t *testing.T) {
	planner := NewPlanner(oracle.NewScriptedOracle(), nil, nil)

	plan, err := planner.PlanSchedule(context.Background(), []Draft{{Title: "   "}}, testTeam)
	require.NoError(t, err)

	assert.Len(t, plan.Items, 5)
	assert.Equal(t, "Set up repository and CI", plan.Items[0].Title)
	assert.Greater(t, plan.Schedule.Horizon, 0.0)
}

func TestPlanScheduleMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics("simkit", reg)
	planner := NewPlanner(oracle.NewScriptedOracle(), NewMemoryCache(), nil, WithMetrics(metrics))

	_, err := planner.PlanSchedule(context.Background(), nil, testTeam)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.schedulesComputed))
	assert.Equal(t, 5.0, testutil.ToFloat64(metrics.estimateCacheHits.WithLabelValues("miss")))
}
