// Package workplan turns a meeting's product idea into an executable plan:
// work item normalization, precedence inference, effort estimation, and a
// business-hours completion schedule.
package workplan

import "strings"

// Employee is an assignee considered for work items and effort estimation.
type Employee struct {
	Name   string         `json:"name" yaml:"name"`
	Title  string         `json:"title" yaml:"title"`
	Skills map[string]int `json:"skills,omitempty" yaml:"skills,omitempty"`
}

// Draft is an unvalidated work item proposal, either generated text or a
// deterministic fallback entry. Normalization turns drafts into WorkItems.
type Draft struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Assignee    string `json:"assignee" yaml:"assignee"`
	Complexity  int    `json:"complexity" yaml:"complexity"`
}

// WorkItem is a validated, estimable unit of work. ID is a monotonic
// sequence number encoding creation order; every blocker ID is strictly
// smaller than the dependent's ID, so the blocker graph is acyclic by
// construction.
type WorkItem struct {
	ID             int      `json:"id" yaml:"id"`
	Title          string   `json:"title" yaml:"title"`
	Description    string   `json:"description" yaml:"description"`
	Category       string   `json:"category" yaml:"category"`
	Assignee       string   `json:"assignee" yaml:"assignee"`
	Complexity     int      `json:"complexity" yaml:"complexity"`
	EstimatedHours float64  `json:"estimated_hours" yaml:"estimated_hours"`
	RatePerHour    float64  `json:"rate_per_hour" yaml:"rate_per_hour"`
	Blockers       []int   `json:"blockers,omitempty" yaml:"blockers,omitempty"`
}

const (
	minComplexity = 1
	maxComplexity = 5
)

// NormalizeDrafts validates drafts into sequentially numbered WorkItems:
// titles and categories are trimmed, complexity is clamped to [1, 5],
// assignees not on the team are blanked, and untitled drafts are dropped.
func NormalizeDrafts(drafts []Draft, team []Employee) []WorkItem {
	known := make(map[string]struct{}, len(team))
	for _, e := range team {
		known[e.Name] = struct{}{}
	}

	items := make([]WorkItem, 0, len(drafts))
	for _, d := range drafts {
		title := strings.TrimSpace(d.Title)
		if title == "" {
			continue
		}
		assignee := strings.TrimSpace(d.Assignee)
		if _, ok := known[assignee]; !ok {
			assignee = ""
		}
		items = append(items, WorkItem{
			ID:          len(items),
			Title:       title,
			Description: strings.TrimSpace(d.Description),
			Category:    strings.ToLower(strings.TrimSpace(d.Category)),
			Assignee:    assignee,
			Complexity:  clampComplexity(d.Complexity),
		})
	}
	return items
}

func clampComplexity(c int) int {
	if c < minComplexity {
		return minComplexity
	}
	if c > maxComplexity {
		return maxComplexity
	}
	return c
}

// FallbackPlan is the deterministic five-item plan used when no usable
// drafts exist. Assignees are picked from the team by title keyword; items
// whose role is missing from the team stay unassigned.
func FallbackPlan(team []Employee) []Draft {
	return []Draft{
		{Title: "Set up repository and CI", Description: "Initialize the codebase, tooling, and a deploy pipeline.", Category: "setup", Assignee: byTitle(team, "engineer", "developer"), Complexity: 2},
		{Title: "Write MVP spec", Description: "Define the minimum feature set and success criteria.", Category: "product", Assignee: byTitle(team, "product", "founder", "ceo"), Complexity: 2},
		{Title: "Create wireframes", Description: "Sketch the core screens and user flow.", Category: "design", Assignee: byTitle(team, "design"), Complexity: 3},
		{Title: "Build core feature", Description: "Implement the primary user-facing capability.", Category: "engineering", Assignee: byTitle(team, "engineer", "developer"), Complexity: 4},
		{Title: "Draft launch plan", Description: "Outline channels, messaging, and a release checklist.", Category: "marketing", Assignee: byTitle(team, "marketing", "growth", "sales"), Complexity: 2},
	}
}

func byTitle(team []Employee, keywords ...string) string {
	for _, e := range team {
		title := strings.ToLower(e.Title)
		for _, kw := range keywords {
			if strings.Contains(title, kw) {
				return e.Name
			}
		}
	}
	return ""
}
