// Package oracle defines the generative text oracle consumed by the
// simulation core, plus an OpenAI-backed implementation.
//
// The oracle is modeled purely as a request/response dependency: swapping
// the text-generation backend must not change any orchestration logic.
// Every method may fail (timeout, malformed output); callers own the
// fallback values and never abort a meeting turn on oracle failure.
package oracle

import (
	"context"
	"strings"
)

// Participant is the roster entry the oracle reasons about.
type Participant struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Personality string `json:"personality"`
}

// DialogueLine is one prior transcript line handed to the oracle as context.
type DialogueLine struct {
	Speaker string `json:"speaker"`
	Message string `json:"message"`
}

// WeightsRequest asks for a per-participant confidence score.
type WeightsRequest struct {
	Directive      string
	Participants   []Participant
	RecentDialogue []DialogueLine
}

// LineRequest asks for a single line of meeting dialogue.
type LineRequest struct {
	Speaker        Participant
	Directive      string
	CompanyContext string
	Stage          string
	RecentDialogue []DialogueLine
}

// VerdictRequest asks whether the transcript shows consensus on a product idea.
type VerdictRequest struct {
	Transcript       []DialogueLine
	ParticipantCount int
	// Summarize requests a best-effort summary of the most concrete idea
	// discussed instead of a strict consensus check. Used for the
	// turn-exhaustion fallback outcome.
	Summarize bool
}

// Verdict is the oracle's consensus call. Empty fields signal "no consensus yet".
type Verdict struct {
	ProductName string `json:"product_name"`
	Description string `json:"description"`
}

// Empty reports whether the verdict carries no accepted idea.
func (v Verdict) Empty() bool {
	return strings.TrimSpace(v.ProductName) == "" || strings.TrimSpace(v.Description) == ""
}

// Skill is one assignee skill considered during effort estimation.
type Skill struct {
	Skill string `json:"skill"`
	Level int    `json:"level"`
}

// MultiplierRequest asks for an effort multiplier for a task/assignee pair.
type MultiplierRequest struct {
	TaskTitle       string
	TaskDescription string
	TaskCategory    string
	Complexity      int
	AssigneeTitle   string
	AssigneeSkills  []Skill
}

// Multiplier is the oracle's effort adjustment. Callers clamp it to [0.6, 1.4].
type Multiplier struct {
	Multiplier float64 `json:"multiplier"`
	Reason     string  `json:"reason"`
}

// Oracle is the generative text collaborator behind the simulation.
//
// Implementations must be safe for concurrent use by independent meetings.
type Oracle interface {
	// GenerateWeights returns a name→score map. Scores are raw model output;
	// the caller clamps to [0,1] and repairs degenerate distributions.
	GenerateWeights(ctx context.Context, req WeightsRequest) (map[string]float64, error)

	// GenerateLine returns one line of dialogue for the requested speaker.
	// The text may start with the speaker's own name; the caller strips it.
	GenerateLine(ctx context.Context, req LineRequest) (string, error)

	// GenerateVerdict returns the consensus verdict for the transcript.
	GenerateVerdict(ctx context.Context, req VerdictRequest) (Verdict, error)

	// GenerateMultiplier returns an effort multiplier for a task assignment.
	GenerateMultiplier(ctx context.Context, req MultiplierRequest) (Multiplier, error)
}
