package workplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTeam = []Employee{
	{Name: "ada", Title: "Senior Engineer", Skills: map[string]int{"go": 7}},
	{Name: "bob", Title: "Product Manager"},
	{Name: "cam", Title: "Designer"},
	{Name: "dee", Title: "Growth Marketer"},
}

func TestNormalizeDrafts(t *testing.T) {
	drafts := []Draft{
		{Title: "  Build API  ", Description: " rest endpoints ", Category: " Engineering ", Assignee: "ada", Complexity: 3},
		{Title: "", Category: "design", Assignee: "cam", Complexity: 2},
		{Title: "Logo", Category: "design", Assignee: "nobody", Complexity: 9},
		{Title: "Outreach", Category: "marketing", Assignee: "dee", Complexity: -4},
	}
	items := NormalizeDrafts(drafts, testTeam)
	require.Len(t, items, 3, "untitled drafts are dropped")

	assert.Equal(t, 0, items[0].ID)
	assert.Equal(t, "Build API", items[0].Title)
	assert.Equal(t, "rest endpoints", items[0].Description)
	assert.Equal(t, "engineering", items[0].Category)
	assert.Equal(t, "ada", items[0].Assignee)

	assert.Equal(t, 1, items[1].ID, "ids stay sequential after a drop")
	assert.Equal(t, "", items[1].Assignee, "unknown assignees are blanked")
	assert.Equal(t, maxComplexity, items[1].Complexity)

	assert.Equal(t, minComplexity, items[2].Complexity)
}

func TestFallbackPlanAssignsByTitle(t *testing.T) {
	drafts := FallbackPlan(testTeam)
	require.Len(t, drafts, 5)

	byTitle := make(map[string]Draft, len(drafts))
	for _, d := range drafts {
		byTitle[d.Title] = d
	}
	assert.Equal(t, "ada", byTitle["Set up repository and CI"].Assignee)
	assert.Equal(t, "ada", byTitle["Build core feature"].Assignee)
	assert.Equal(t, "bob", byTitle["Write MVP spec"].Assignee)
	assert.Equal(t, "cam", byTitle["Create wireframes"].Assignee)
	assert.Equal(t, "dee", byTitle["Draft launch plan"].Assignee)
}

func TestFallbackPlanWithMissingRoles(t *testing.T) {
	drafts := FallbackPlan([]Employee{{Name: "solo", Title: "Engineer"}})
	for _, d := range drafts {
		if d.Category == "setup" || d.Category == "engineering" {
			assert.Equal(t, "solo", d.Assignee, d.Title)
		} else {
			assert.Equal(t, "", d.Assignee, d.Title)
		}
	}
}

func TestFallbackPlanNormalizes(t *testing.T) {
	// The fallback plan must survive its own normalization untouched.
	items := NormalizeDrafts(FallbackPlan(testTeam), testTeam)
	assert.Len(t, items, 5)
	for i, item := range items {
		assert.Equal(t, i, item.ID)
		assert.NotEmpty(t, item.Title)
	}
}
