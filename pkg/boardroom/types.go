// Package boardroom implements the turn-based meeting orchestrator: speaker
// selection, stage progression, and consensus detection for one simulated
// company meeting.
package boardroom

import (
	"strings"
	"time"

	"github.com/strtupify/simkit/pkg/oracle"
)

// Participant is one meeting attendee. Immutable for the duration of a meeting.
type Participant struct {
	Name        string `json:"name" yaml:"name"`
	Title       string `json:"title" yaml:"title"`
	Personality string `json:"personality" yaml:"personality"`
}

// WeightMap maps participant name to a confidence score in [0,1].
// Recomputed every turn; never allowed to collapse to zero variance.
type WeightMap map[string]float64

// Turn is one atomic step of the meeting loop: one speaker, one message.
// Once appended to the transcript a turn is immutable.
type Turn struct {
	Speaker   string    `json:"speaker"`
	Message   string    `json:"message"`
	Stage     string    `json:"stage"`
	Weights   WeightMap `json:"weights"`
	Timestamp time.Time `json:"timestamp"`
}

// Outcome is the accepted product idea. Both fields empty until the meeting
// reaches consensus; once both are non-empty the meeting is complete.
type Outcome struct {
	ProductName string `json:"product_name"`
	Description string `json:"description"`
}

// Empty reports whether no idea has been accepted yet.
func (o Outcome) Empty() bool {
	return strings.TrimSpace(o.ProductName) == "" || strings.TrimSpace(o.Description) == ""
}

// MeetingState is the full mutable state of one meeting. It is owned by a
// single meeting instance and mutated only by the Orchestrator.
type MeetingState struct {
	ID             string        `json:"id"`
	Participants   []Participant `json:"participants"`
	Directive      string        `json:"directive"`
	CompanyContext string        `json:"company_context,omitempty"`
	Transcript     []Turn        `json:"transcript"`
	StageIndex     int           `json:"stage_index"`
	ElapsedMinutes int           `json:"elapsed_minutes"`
	Outcome        Outcome       `json:"outcome"`
}

// Complete reports whether the meeting reached a terminal outcome.
func (s *MeetingState) Complete() bool {
	return !s.Outcome.Empty()
}

// spokenCounts tallies prior turns per speaker.
func spokenCounts(transcript []Turn) map[string]int {
	counts := make(map[string]int, len(transcript))
	for _, t := range transcript {
		counts[t.Speaker]++
	}
	return counts
}

// recentDialogue converts the tail of the transcript into oracle context.
func recentDialogue(transcript []Turn, window int) []oracle.DialogueLine {
	start := 0
	if len(transcript) > window {
		start = len(transcript) - window
	}
	lines := make([]oracle.DialogueLine, 0, len(transcript)-start)
	for _, t := range transcript[start:] {
		lines = append(lines, oracle.DialogueLine{Speaker: t.Speaker, Message: t.Message})
	}
	return lines
}

// fullDialogue converts the whole transcript into oracle context.
func fullDialogue(transcript []Turn) []oracle.DialogueLine {
	return recentDialogue(transcript, len(transcript))
}

// rosterForOracle converts participants into the oracle's roster shape.
func rosterForOracle(participants []Participant) []oracle.Participant {
	out := make([]oracle.Participant, 0, len(participants))
	for _, p := range participants {
		out = append(out, oracle.Participant{Name: p.Name, Title: p.Title, Personality: p.Personality})
	}
	return out
}
