package boardroom

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	skerrors "github.com/strtupify/simkit/pkg/errors"
	"github.com/strtupify/simkit/pkg/oracle"
)

const (
	// neutralWeight is the uniform fallback score when the oracle is unavailable.
	neutralWeight = 0.45

	// noiseMean and noiseSigma parameterize the repair distribution injected
	// when the oracle returns a degenerate (zero-variance) weight map.
	noiseMean  = 0.5
	noiseSigma = 0.15

	// dialogueWindow bounds how much recent dialogue the oracle sees.
	dialogueWindow = 6
)

// WeightAssigner turns a roster plus recent dialogue into per-participant
// confidence scores via the oracle, with a deterministic degeneracy repair.
type WeightAssigner struct {
	oracle oracle.Oracle
	rng    *rand.Rand
}

// NewWeightAssigner creates an assigner. The random source is injected so
// noise repair is reproducible in tests.
func NewWeightAssigner(o oracle.Oracle, rng *rand.Rand) *WeightAssigner {
	return &WeightAssigner{oracle: o, rng: rng}
}

// Assign computes a weight map for the roster. Oracle failures propagate as
// ErrOracleUnavailable; the caller substitutes UniformWeights rather than
// aborting the meeting.
func (a *WeightAssigner) Assign(ctx context.Context, participants []Participant, directive string, dialogue []oracle.DialogueLine) (WeightMap, error) {
	if len(participants) == 0 {
		return nil, skerrors.ErrNoParticipants
	}

	window := dialogue
	if len(window) > dialogueWindow {
		window = window[len(window)-dialogueWindow:]
	}

	raw, err := a.oracle.GenerateWeights(ctx, oracle.WeightsRequest{
		Directive:      directive,
		Participants:   rosterForOracle(participants),
		RecentDialogue: window,
	})
	if err != nil {
		return nil, fmt.Errorf("assign weights: %w", err)
	}

	weights := make(WeightMap, len(raw))
	for name, score := range raw {
		weights[name] = clamp01(score)
	}

	if degenerate(weights) {
		weights = a.repair(participants)
	}
	return weights, nil
}

// UniformWeights returns the neutral fallback map for oracle outages.
func UniformWeights(participants []Participant) WeightMap {
	weights := make(WeightMap, len(participants))
	for _, p := range participants {
		weights[p.Name] = neutralWeight
	}
	return weights
}

// repair replaces every participant's score with an independent Gaussian
// sample, guaranteeing the distribution has variance.
func (a *WeightAssigner) repair(participants []Participant) WeightMap {
	weights := make(WeightMap, len(participants))
	for _, p := range participants {
		weights[p.Name] = clamp01(noiseMean + a.rng.NormFloat64()*noiseSigma)
	}
	return weights
}

// degenerate reports whether the map is empty or every retained value rounds
// to the same score.
func degenerate(weights WeightMap) bool {
	if len(weights) == 0 {
		return true
	}
	var first float64
	initialized := false
	for _, v := range weights {
		rounded := math.Round(v*100) / 100
		if !initialized {
			first = rounded
			initialized = true
			continue
		}
		if rounded != first {
			return false
		}
	}
	return true
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
