package workplan

import "strings"

// maxBlockers bounds each item's in-degree; blockers beyond the first three
// candidates are dropped.
const maxBlockers = 3

// defaultRank is the "build"-equivalent bucket for unrecognized categories.
const defaultRank = 2

// rankBuckets maps category keywords to phase buckets, scanned in bucket
// order so earlier phases win when a category matches several keywords.
var rankBuckets = []struct {
	rank     int
	keywords []string
}{
	{0, []string{"product", "setup", "foundation", "spec"}},
	{1, []string{"design", "wireframe", "ux"}},
	{2, []string{"engineering", "build", "develop", "backend", "frontend"}},
	{3, []string{"qa", "test", "quality"}},
	{4, []string{"marketing", "growth", "sales"}},
	{5, []string{"launch", "release"}},
}

// CategoryRank buckets a free-text category into the phase ordering used
// for precedence inference. Product and setup work come first, launch last.
func CategoryRank(category string) int {
	c := strings.ToLower(category)
	for _, bucket := range rankBuckets {
		for _, kw := range bucket.keywords {
			if strings.Contains(c, kw) {
				return bucket.rank
			}
		}
	}
	return defaultRank
}

// AssignBlockers infers precedence for each item in creation order: the
// first three earlier items with a strictly lower category rank become its
// blockers. This is a coarse phase-ordering heuristic, not a full
// precedence solver; because blockers only ever point at earlier items the
// result is a DAG with bounded in-degree.
func AssignBlockers(items []WorkItem) {
	ranks := make([]int, len(items))
	for i, item := range items {
		ranks[i] = CategoryRank(item.Category)
	}
	for j := range items {
		var blockers []int
		for i := 0; i < j && len(blockers) < maxBlockers; i++ {
			if ranks[i] < ranks[j] {
				blockers = append(blockers, items[i].ID)
			}
		}
		items[j].Blockers = blockers
	}
}
