package workplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryRank(t *testing.T) {
	tests := []struct {
		category string
		want     int
	}{
		{category: "product", want: 0},
		{category: "Project setup", want: 0},
		{category: "design", want: 1},
		{category: "UX wireframes", want: 1},
		{category: "engineering", want: 2},
		{category: "backend build", want: 2},
		{category: "QA", want: 3},
		{category: "testing", want: 3},
		{category: "marketing", want: 4},
		{category: "Growth", want: 4},
		{category: "launch", want: 5},
		{category: "release", want: 5},
		{category: "something else entirely", want: defaultRank},
		{category: "", want: defaultRank},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryRank(tt.category))
		})
	}
}

func itemsWithCategories(categories ...string) []WorkItem {
	items := make([]WorkItem, len(categories))
	for i, c := range categories {
		items[i] = WorkItem{ID: i, Title: "t", Category: c}
	}
	return items
}

func TestAssignBlockersPhaseOrdering(t *testing.T) {
	items := itemsWithCategories("product", "design", "engineering", "qa")
	AssignBlockers(items)

	assert.Empty(t, items[0].Blockers)
	assert.Equal(t, []int{0}, items[1].Blockers)
	assert.Equal(t, []int{0, 1}, items[2].Blockers)
	assert.Equal(t, []int{0, 1, 2}, items[3].Blockers)
}

func TestAssignBlockersCapsAtThree(t *testing.T) {
	// Five lower-rank predecessors; only the first three found become
	// blockers, in discovery order.
	items := itemsWithCategories("product", "product", "design", "design", "engineering", "launch")
	AssignBlockers(items)

	assert.Equal(t, []int{0, 1, 2}, items[5].Blockers)
}

func TestAssignBlockersEqualRankNeverBlocks(t *testing.T) {
	items := itemsWithCategories("engineering", "engineering", "engineering")
	AssignBlockers(items)

	for _, item := range items {
		assert.Empty(t, item.Blockers)
	}
}

func TestAssignBlockersAcyclicByConstruction(t *testing.T) {
	items := itemsWithCategories(
		"launch", "product", "marketing", "qa", "design",
		"engineering", "release", "setup", "growth", "testing",
	)
	AssignBlockers(items)

	for _, item := range items {
		assert.LessOrEqual(t, len(item.Blockers), maxBlockers)
		for _, b := range item.Blockers {
			assert.Less(t, b, item.ID, "blocker must precede its dependent")
		}
	}
}
