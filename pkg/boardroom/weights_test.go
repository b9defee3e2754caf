package boardroom

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	skerrors "github.com/strtupify/simkit/pkg/errors"
	"github.com/strtupify/simkit/pkg/oracle"
)

func weightsOracle(fn func(oracle.WeightsRequest) (map[string]float64, error)) *oracle.ScriptedOracle {
	return &oracle.ScriptedOracle{WeightsFn: fn}
}

func TestAssignClampsScores(t *testing.T) {
	o := weightsOracle(func(oracle.WeightsRequest) (map[string]float64, error) {
		return map[string]float64{"ada": 1.7, "bob": -0.3, "cam": 0.42}, nil
	})
	assigner := NewWeightAssigner(o, rand.New(rand.NewSource(1)))

	weights, err := assigner.Assign(context.Background(), []Participant{{Name: "ada"}, {Name: "bob"}, {Name: "cam"}}, "build something", nil)
	require.NoError(t, err)

	assert.Equal(t, 1.0, weights["ada"])
	assert.Equal(t, 0.0, weights["bob"])
	assert.Equal(t, 0.42, weights["cam"])
}

func TestAssignRepairsDegenerateMap(t *testing.T) {
	// An all-equal map must come back with injected variance,
	// not the flat {0.5, 0.5} the oracle handed us.
	o := weightsOracle(func(oracle.WeightsRequest) (map[string]float64, error) {
		return map[string]float64{"a": 0.5, "b": 0.5}, nil
	})
	assigner := NewWeightAssigner(o, rand.New(rand.NewSource(7)))

	weights, err := assigner.Assign(context.Background(), []Participant{{Name: "a"}, {Name: "b"}}, "d", nil)
	require.NoError(t, err)
	require.Len(t, weights, 2)

	assert.False(t, weights["a"] == 0.5 && weights["b"] == 0.5)
	for name, w := range weights {
		assert.GreaterOrEqual(t, w, 0.0, name)
		assert.LessOrEqual(t, w, 1.0, name)
	}
}

func TestAssignRepairsEmptyMap(t *testing.T) {
	o := weightsOracle(func(oracle.WeightsRequest) (map[string]float64, error) {
		return map[string]float64{}, nil
	})
	assigner := NewWeightAssigner(o, rand.New(rand.NewSource(3)))

	weights, err := assigner.Assign(context.Background(), []Participant{{Name: "ada"}, {Name: "bob"}}, "d", nil)
	require.NoError(t, err)

	assert.Len(t, weights, 2)
	assert.Contains(t, weights, "ada")
	assert.Contains(t, weights, "bob")
}

func TestAssignTrimsDialogueWindow(t *testing.T) {
	var seen int
	o := weightsOracle(func(req oracle.WeightsRequest) (map[string]float64, error) {
		seen = len(req.RecentDialogue)
		return map[string]float64{"ada": 0.3, "bob": 0.6}, nil
	})
	assigner := NewWeightAssigner(o, rand.New(rand.NewSource(1)))

	dialogue := make([]oracle.DialogueLine, 10)
	for i := range dialogue {
		dialogue[i] = oracle.DialogueLine{Speaker: "ada", Message: "m"}
	}
	_, err := assigner.Assign(context.Background(), []Participant{{Name: "ada"}, {Name: "bob"}}, "d", dialogue)
	require.NoError(t, err)
	assert.Equal(t, dialogueWindow, seen)
}

func TestAssignEmptyRoster(t *testing.T) {
	assigner := NewWeightAssigner(&oracle.ScriptedOracle{}, rand.New(rand.NewSource(1)))
	_, err := assigner.Assign(context.Background(), nil, "d", nil)
	assert.True(t, skerrors.IsNoParticipants(err))
}

func TestAssignPropagatesOracleFailure(t *testing.T) {
	o := weightsOracle(func(oracle.WeightsRequest) (map[string]float64, error) {
		return nil, skerrors.ErrOracleUnavailable
	})
	assigner := NewWeightAssigner(o, rand.New(rand.NewSource(1)))

	_, err := assigner.Assign(context.Background(), []Participant{{Name: "ada"}}, "d", nil)
	assert.True(t, skerrors.IsOracleUnavailable(err))
}

func TestUniformWeights(t *testing.T) {
	weights := UniformWeights([]Participant{{Name: "ada"}, {Name: "bob"}})
	assert.Equal(t, WeightMap{"ada": neutralWeight, "bob": neutralWeight}, weights)
}

func TestDegenerate(t *testing.T) {
	tests := []struct {
		name    string
		weights WeightMap
		want    bool
	}{
		{name: "empty", weights: WeightMap{}, want: true},
		{name: "all equal", weights: WeightMap{"a": 0.5, "b": 0.5}, want: true},
		{name: "equal after rounding", weights: WeightMap{"a": 0.501, "b": 0.499}, want: true},
		{name: "distinct", weights: WeightMap{"a": 0.2, "b": 0.8}, want: false},
		{name: "single value", weights: WeightMap{"a": 0.5}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, degenerate(tt.weights))
		})
	}
}
