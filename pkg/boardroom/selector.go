package boardroom

import "math/rand"

// jitterSigma is the standard deviation of the per-candidate selection jitter.
// Continuous jitter makes exact ties have probability ~0.
const jitterSigma = 0.05

// defaultScore is assumed for participants the weight map does not cover.
const defaultScore = 0.4

// SpeakerSelector picks the next speaker from the roster using weighted
// argmax with Gaussian jitter and a repetition penalty.
type SpeakerSelector struct {
	rng *rand.Rand
}

// NewSpeakerSelector creates a selector over the injected random source.
func NewSpeakerSelector(rng *rand.Rand) *SpeakerSelector {
	return &SpeakerSelector{rng: rng}
}

// PickFirst selects the opening speaker: argmax of weight plus jitter.
func (s *SpeakerSelector) PickFirst(participants []Participant, weights WeightMap) Participant {
	return s.argmax(participants, func(p Participant) float64 {
		return score(weights, p.Name)
	})
}

// PickNext selects a follow-up speaker. A participant who has spoken k times
// scores weight/(1+k), so monopolizing the floor needs proportionally higher
// underlying weight. The previous speaker may win again; the decay alone is
// the anti-repetition mechanism.
func (s *SpeakerSelector) PickNext(participants []Participant, transcript []Turn, weights WeightMap) Participant {
	spoken := spokenCounts(transcript)
	return s.argmax(participants, func(p Participant) float64 {
		return score(weights, p.Name) / float64(1+spoken[p.Name])
	})
}

func (s *SpeakerSelector) argmax(participants []Participant, base func(Participant) float64) Participant {
	best := participants[0]
	bestScore := base(best) + s.rng.NormFloat64()*jitterSigma
	for _, p := range participants[1:] {
		if sc := base(p) + s.rng.NormFloat64()*jitterSigma; sc > bestScore {
			best = p
			bestScore = sc
		}
	}
	return best
}

func score(weights WeightMap, name string) float64 {
	if w, ok := weights[name]; ok {
		return w
	}
	return defaultScore
}
