package oracle

import (
	"encoding/json"
	"fmt"
	"strings"
)

const weightsInstructions = `You assign each participant a confidence weight between 0 and 1 based on their title, personality, the meeting directive, and the recent dialogue. Return JSON with a "weights" list of {name, score} entries, one entry per participant.`

const verdictInstructions = `You judge whether the meeting transcript shows that the team has agreed on a single product idea. Only report an idea when a qualified super-majority (at least two-thirds of the participants) expressed explicit agreement with it. If there is no such agreement yet, return empty strings for both fields. Return JSON with keys "product_name" and "description".`

const summaryInstructions = `The meeting ended without formal agreement. Summarize the most concrete product idea discussed in the transcript. Return JSON with keys "product_name" and "description"; keep both short and specific.`

const multiplierInstructions = `You estimate effort multipliers for tasks given an assignee's skills. Respond as JSON: {"multiplier": number, "reason": string}. "multiplier" must be between 0.6 and 1.4 inclusive. Interpret higher skill alignment as lower multiplier.`

// lineInstructions renders the per-speaker system prompt for one dialogue turn.
func lineInstructions(req LineRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a %s at a brand-new startup.", req.Speaker.Name, req.Speaker.Title)
	if req.Speaker.Personality != "" {
		fmt.Fprintf(&b, " Personality: %s.", req.Speaker.Personality)
	}
	if req.CompanyContext != "" {
		fmt.Fprintf(&b, " Company context: %s.", req.CompanyContext)
	}
	fmt.Fprintf(&b, " Keep your sentences concise. The meeting goal is: %s.", req.Directive)
	if req.Stage != "" {
		fmt.Fprintf(&b, " The meeting is currently in its %s phase.", req.Stage)
	}
	b.WriteString(" Reply with EXACTLY one sentence, without repeating your own name.")
	return b.String()
}

// weightsInput serializes the roster and dialogue window for the weights call.
func weightsInput(req WeightsRequest) string {
	payload := struct {
		Directive      string         `json:"directive"`
		Participants   []Participant  `json:"participants"`
		RecentDialogue []DialogueLine `json:"recent_dialogue,omitempty"`
	}{
		Directive:      req.Directive,
		Participants:   req.Participants,
		RecentDialogue: req.RecentDialogue,
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

// transcriptInput flattens dialogue lines into "Speaker: message" rows.
func transcriptInput(lines []DialogueLine) string {
	rows := make([]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, fmt.Sprintf("%s: %s", l.Speaker, l.Message))
	}
	return strings.Join(rows, "\n")
}

// multiplierInput serializes the task/assignee pair for the estimate call.
func multiplierInput(req MultiplierRequest) string {
	skills := req.AssigneeSkills
	if len(skills) > 8 {
		skills = skills[:8]
	}
	payload := struct {
		Task struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Category    string `json:"category"`
			Complexity  int    `json:"complexity"`
		} `json:"task"`
		Assignee struct {
			Title  string  `json:"title"`
			Skills []Skill `json:"skills"`
		} `json:"assignee"`
	}{}
	payload.Task.Title = req.TaskTitle
	payload.Task.Description = req.TaskDescription
	payload.Task.Category = req.TaskCategory
	payload.Task.Complexity = req.Complexity
	payload.Assignee.Title = req.AssigneeTitle
	payload.Assignee.Skills = skills
	b, _ := json.Marshal(payload)
	return string(b)
}
