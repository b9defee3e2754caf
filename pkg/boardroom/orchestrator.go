package boardroom

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	skerrors "github.com/strtupify/simkit/pkg/errors"
	"github.com/strtupify/simkit/pkg/logging"
	"github.com/strtupify/simkit/pkg/observability"
	"github.com/strtupify/simkit/pkg/oracle"
)

// DefaultMaxTurns bounds a meeting run when the caller does not say otherwise.
const DefaultMaxTurns = 40

// Orchestrator drives the full meeting turn loop: weights, speaker selection,
// dialogue, consensus detection, and stage progression. One orchestrator
// serves one meeting at a time; run independent meetings on separate
// orchestrators (see Runner).
type Orchestrator struct {
	oracle   oracle.Oracle
	assigner *WeightAssigner
	selector *SpeakerSelector
	clock    *StageClock
	log      logging.Logger
	tracer   *observability.Tracer
	metrics  *Metrics
	now      func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMetrics attaches Prometheus meeting metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithNow overrides the timestamp source, for reproducible transcripts.
func WithNow(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator creates an orchestrator. The oracle and random source are
// injected; there are no process-wide singletons.
func NewOrchestrator(o oracle.Oracle, rng *rand.Rand, log logging.Logger, opts ...Option) *Orchestrator {
	if log == nil {
		log = logging.NewNopLogger()
	}
	orch := &Orchestrator{
		oracle:   o,
		assigner: NewWeightAssigner(o, rng),
		selector: NewSpeakerSelector(rng),
		clock:    NewStageClock(),
		log:      log,
		tracer:   observability.NewTracer(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(orch)
	}
	return orch
}

// Start validates the roster, creates fresh meeting state, and takes the
// first turn. An empty roster is the only fatal precondition.
func (o *Orchestrator) Start(ctx context.Context, participants []Participant, directive, companyContext string) (*MeetingState, Turn, error) {
	if len(participants) == 0 {
		return nil, Turn{}, skerrors.ErrNoParticipants
	}
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if strings.TrimSpace(p.Name) == "" {
			return nil, Turn{}, fmt.Errorf("%w: participant with empty name", skerrors.ErrValidation)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, Turn{}, fmt.Errorf("%w: duplicate participant %q", skerrors.ErrValidation, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	state := &MeetingState{
		ID:             uuid.New().String(),
		Participants:   participants,
		Directive:      directive,
		CompanyContext: companyContext,
	}
	turn, err := o.Step(ctx, state)
	if err != nil {
		return nil, Turn{}, err
	}
	return state, turn, nil
}

// Step advances the meeting by exactly one turn. Oracle instability degrades
// to neutral fallbacks; only a completed meeting refuses to advance.
func (o *Orchestrator) Step(ctx context.Context, state *MeetingState) (Turn, error) {
	if state.Complete() {
		return Turn{}, skerrors.ErrMeetingComplete
	}
	ctx, span := o.tracer.StartTurnSpan(ctx, len(state.Transcript), o.clock.Stage(state.StageIndex).Name)
	defer span.End()

	log := o.log.With(logging.F("meeting_id", state.ID), logging.F("turn", len(state.Transcript)))

	weights, err := o.assigner.Assign(ctx, state.Participants, state.Directive, recentDialogue(state.Transcript, dialogueWindow))
	if err != nil {
		if skerrors.IsNoParticipants(err) {
			return Turn{}, err
		}
		log.Warn("weight oracle unavailable, using uniform fallback", logging.Err(err))
		o.metrics.oracleFallback("weights")
		weights = UniformWeights(state.Participants)
	}

	var speaker Participant
	if len(state.Transcript) == 0 {
		speaker = o.selector.PickFirst(state.Participants, weights)
	} else {
		speaker = o.selector.PickNext(state.Participants, state.Transcript, weights)
	}

	stage := o.clock.Stage(state.StageIndex)
	line := o.generateLine(ctx, state, speaker, stage, log)

	turn := Turn{
		Speaker:   speaker.Name,
		Message:   line,
		Stage:     stage.Name,
		Weights:   snapshot(weights),
		Timestamp: o.now(),
	}
	state.Transcript = append(state.Transcript, turn)
	state.ElapsedMinutes += TurnMinutes

	if stage.Goal == GoalConsensus {
		o.checkConsensus(ctx, state, log)
	}

	o.clock.Advance(state)
	o.metrics.turnTaken()
	return turn, nil
}

// Run executes the full loop up to maxTurns and always terminates with a
// non-empty outcome: consensus, an oracle summary, or a neutral placeholder.
func (o *Orchestrator) Run(ctx context.Context, participants []Participant, directive, companyContext string, maxTurns int) (*MeetingState, error) {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	state, _, err := o.Start(ctx, participants, directive, companyContext)
	if err != nil {
		return nil, err
	}
	ctx, span := o.tracer.StartMeetingSpan(ctx, state.ID)
	defer span.End()

	for len(state.Transcript) < maxTurns && !state.Complete() && !o.clock.Runaway(state) {
		if _, err := o.Step(ctx, state); err != nil {
			observability.RecordError(span, err)
			return nil, err
		}
	}

	switch {
	case state.Complete():
		o.metrics.meetingFinished("consensus")
	default:
		resolution := o.fallbackOutcome(ctx, state)
		o.metrics.meetingFinished(resolution)
	}
	o.log.Info("meeting finished",
		logging.F("meeting_id", state.ID),
		logging.F("turns", len(state.Transcript)),
		logging.F("product", state.Outcome.ProductName))
	return state, nil
}

func (o *Orchestrator) generateLine(ctx context.Context, state *MeetingState, speaker Participant, stage Stage, log logging.Logger) string {
	line, err := o.oracle.GenerateLine(ctx, oracle.LineRequest{
		Speaker:        oracle.Participant{Name: speaker.Name, Title: speaker.Title, Personality: speaker.Personality},
		Directive:      state.Directive,
		CompanyContext: state.CompanyContext,
		Stage:          stage.Name,
		RecentDialogue: recentDialogue(state.Transcript, dialogueWindow),
	})
	if err != nil {
		log.Warn("dialogue oracle unavailable, using placeholder line", logging.Err(err))
		o.metrics.oracleFallback("line")
		return fmt.Sprintf("I'll defer to the team on this one and follow whatever we decide about %s.", state.Directive)
	}
	return stripNameEcho(rosterNames(state.Participants), line)
}

func (o *Orchestrator) checkConsensus(ctx context.Context, state *MeetingState, log logging.Logger) {
	verdict, err := o.oracle.GenerateVerdict(ctx, oracle.VerdictRequest{
		Transcript:       fullDialogue(state.Transcript),
		ParticipantCount: len(state.Participants),
	})
	if err != nil {
		log.Warn("verdict oracle unavailable, treating as no consensus", logging.Err(err))
		o.metrics.oracleFallback("verdict")
		return
	}
	if !verdict.Empty() {
		state.Outcome = Outcome{
			ProductName: strings.TrimSpace(verdict.ProductName),
			Description: strings.TrimSpace(verdict.Description),
		}
	}
}

// fallbackOutcome synthesizes an outcome after turn exhaustion: first via the
// oracle summarizer, then a hard-coded neutral placeholder. A meeting always
// returns some product idea once it terminates.
func (o *Orchestrator) fallbackOutcome(ctx context.Context, state *MeetingState) string {
	verdict, err := o.oracle.GenerateVerdict(ctx, oracle.VerdictRequest{
		Transcript:       fullDialogue(state.Transcript),
		ParticipantCount: len(state.Participants),
		Summarize:        true,
	})
	if err == nil && !verdict.Empty() {
		state.Outcome = Outcome{
			ProductName: strings.TrimSpace(verdict.ProductName),
			Description: strings.TrimSpace(verdict.Description),
		}
		return "summary"
	}
	if err != nil {
		o.metrics.oracleFallback("summary")
	}
	state.Outcome = placeholderOutcome(state.Directive)
	return "placeholder"
}

var titleCaser = cases.Title(language.English)

// placeholderOutcome builds the neutral outcome used when even the summary
// oracle fails. The name is derived from the directive so two meetings with
// different goals don't produce identical placeholders.
func placeholderOutcome(directive string) Outcome {
	name := "Untitled Product"
	words := strings.Fields(directive)
	if len(words) > 0 {
		if len(words) > 3 {
			words = words[len(words)-3:]
		}
		name = titleCaser.String(strings.Join(words, " "))
	}
	return Outcome{
		ProductName: name,
		Description: "The team ran out of meeting time before a formal agreement; this captures the working direction discussed in the room.",
	}
}

// nameEchoSeparators are the characters that may follow a leading name echo.
const nameEchoSeparators = ":,.- "

// stripNameEcho removes a leading roster-name echo the oracle may emit,
// either a "Name: ..." prefix or a direct address like "Ada, ..." or
// "Ada - ...". Full names are checked before first names so "Ada Lovelace:"
// strips whole. A name embedded in a longer word is left alone.
func stripNameEcho(names []string, line string) string {
	line = strings.TrimSpace(line)
	for _, name := range names {
		first, _, _ := strings.Cut(name, " ")
		for _, prefix := range []string{name, first} {
			rest, ok := cutNamePrefix(line, prefix)
			if ok {
				return rest
			}
		}
	}
	return line
}

func cutNamePrefix(line, name string) (string, bool) {
	if name == "" || len(line) < len(name) || !strings.EqualFold(line[:len(name)], name) {
		return line, false
	}
	rest := line[len(name):]
	if rest != "" && !strings.ContainsRune(nameEchoSeparators, rune(rest[0])) {
		return line, false
	}
	return strings.TrimSpace(strings.TrimLeft(rest, nameEchoSeparators)), true
}

func rosterNames(participants []Participant) []string {
	names := make([]string, len(participants))
	for i, p := range participants {
		names[i] = p.Name
	}
	return names
}

func snapshot(weights WeightMap) WeightMap {
	copied := make(WeightMap, len(weights))
	for k, v := range weights {
		copied[k] = v
	}
	return copied
}
