package boardroom

import "strings"

// GoalKind identifies how a stage can complete ahead of its time budget.
type GoalKind int

const (
	// GoalEveryoneSpoke completes once every participant has spoken.
	GoalEveryoneSpoke GoalKind = iota
	// GoalIdeaFromEach completes once every participant has pitched an idea.
	GoalIdeaFromEach
	// GoalConsensus completes once the outcome is non-empty.
	GoalConsensus
	// GoalTimeOnly never completes early; only the time budget advances it.
	GoalTimeOnly
)

// Stage is one fixed meeting phase with a time budget and a completion goal.
type Stage struct {
	Name          string
	BudgetMinutes int
	Goal          GoalKind
}

// TurnMinutes is the fixed simulated-time increment per turn.
const TurnMinutes = 2

// ideaMarker is the keyword that satisfies GoalIdeaFromEach, matched
// case-insensitively anywhere in a participant's messages.
const ideaMarker = "idea"

// Stages are the four ordered meeting phases, shared across all meetings.
var Stages = []Stage{
	{Name: "INTRODUCTIONS", BudgetMinutes: 10, Goal: GoalEveryoneSpoke},
	{Name: "IDEATION", BudgetMinutes: 20, Goal: GoalIdeaFromEach},
	{Name: "CONSENSUS", BudgetMinutes: 20, Goal: GoalConsensus},
	{Name: "WRAP_UP", BudgetMinutes: 10, Goal: GoalTimeOnly},
}

// StageClock tracks progression through the fixed stage sequence. It owns no
// meeting state of its own; the stage index and elapsed minutes live on the
// MeetingState and only ever move forward.
type StageClock struct {
	stages []Stage
}

// NewStageClock returns a clock over the shared stage sequence.
func NewStageClock() *StageClock {
	return &StageClock{stages: Stages}
}

// Stage returns the stage at idx, capped to the terminal stage.
func (c *StageClock) Stage(idx int) Stage {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.stages) {
		idx = len(c.stages) - 1
	}
	return c.stages[idx]
}

// LastIndex returns the index of the terminal stage.
func (c *StageClock) LastIndex() int {
	return len(c.stages) - 1
}

// cumulativeBudget sums the budgets of all stages up to and including idx.
func (c *StageClock) cumulativeBudget(idx int) int {
	total := 0
	for i := 0; i <= idx && i < len(c.stages); i++ {
		total += c.stages[i].BudgetMinutes
	}
	return total
}

// Advance applies the transition rule after a turn: move to the next stage
// when the cumulative time budget is spent or the current stage's goal is
// met. The stage index never decreases and never exceeds the last stage.
func (c *StageClock) Advance(state *MeetingState) {
	if state.StageIndex >= c.LastIndex() {
		return
	}
	stage := c.Stage(state.StageIndex)
	if state.ElapsedMinutes >= c.cumulativeBudget(state.StageIndex) || c.goalMet(stage, state) {
		state.StageIndex++
	}
}

// Runaway reports whether the terminal stage has been active past its own
// time ceiling. The orchestrator uses this as bounded runaway protection.
func (c *StageClock) Runaway(state *MeetingState) bool {
	return state.StageIndex >= c.LastIndex() &&
		state.ElapsedMinutes >= c.cumulativeBudget(c.LastIndex())
}

func (c *StageClock) goalMet(stage Stage, state *MeetingState) bool {
	switch stage.Goal {
	case GoalEveryoneSpoke:
		spoken := spokenCounts(state.Transcript)
		for _, p := range state.Participants {
			if spoken[p.Name] == 0 {
				return false
			}
		}
		return true
	case GoalIdeaFromEach:
		for _, p := range state.Participants {
			if !participantPitchedIdea(state.Transcript, p.Name) {
				return false
			}
		}
		return true
	case GoalConsensus:
		return !state.Outcome.Empty()
	default:
		return false
	}
}

func participantPitchedIdea(transcript []Turn, name string) bool {
	for _, t := range transcript {
		if t.Speaker == name && strings.Contains(strings.ToLower(t.Message), ideaMarker) {
			return true
		}
	}
	return false
}
