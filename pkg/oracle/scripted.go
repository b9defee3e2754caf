package oracle

import (
	"context"
	"sync"
)

// ScriptedOracle is a deterministic Oracle for tests and offline runs.
// Each behavior can be overridden per call; unset behaviors return neutral
// defaults. Call counts are tracked per method.
type ScriptedOracle struct {
	WeightsFn    func(req WeightsRequest) (map[string]float64, error)
	LineFn       func(req LineRequest) (string, error)
	VerdictFn    func(req VerdictRequest) (Verdict, error)
	MultiplierFn func(req MultiplierRequest) (Multiplier, error)

	mu    sync.Mutex
	calls map[string]int
}

// NewScriptedOracle returns a ScriptedOracle with neutral defaults.
func NewScriptedOracle() *ScriptedOracle {
	return &ScriptedOracle{calls: make(map[string]int)}
}

// Calls returns how many times the named method has been invoked.
func (s *ScriptedOracle) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *ScriptedOracle) record(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[method]++
}

// GenerateWeights implements Oracle.
func (s *ScriptedOracle) GenerateWeights(ctx context.Context, req WeightsRequest) (map[string]float64, error) {
	s.record("GenerateWeights")
	if s.WeightsFn != nil {
		return s.WeightsFn(req)
	}
	out := make(map[string]float64, len(req.Participants))
	for i, p := range req.Participants {
		out[p.Name] = 0.3 + 0.1*float64(i%5)
	}
	return out, nil
}

// GenerateLine implements Oracle.
func (s *ScriptedOracle) GenerateLine(ctx context.Context, req LineRequest) (string, error) {
	s.record("GenerateLine")
	if s.LineFn != nil {
		return s.LineFn(req)
	}
	return "I think we should keep this simple and ship quickly.", nil
}

// GenerateVerdict implements Oracle.
func (s *ScriptedOracle) GenerateVerdict(ctx context.Context, req VerdictRequest) (Verdict, error) {
	s.record("GenerateVerdict")
	if s.VerdictFn != nil {
		return s.VerdictFn(req)
	}
	return Verdict{}, nil
}

// GenerateMultiplier implements Oracle.
func (s *ScriptedOracle) GenerateMultiplier(ctx context.Context, req MultiplierRequest) (Multiplier, error) {
	s.record("GenerateMultiplier")
	if s.MultiplierFn != nil {
		return s.MultiplierFn(req)
	}
	return Multiplier{Multiplier: 1.0, Reason: "scripted"}, nil
}
