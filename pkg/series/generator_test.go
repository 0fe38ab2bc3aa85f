package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianbland/gasrisk/pkg/randomizer"
)

func TestGenerateStartsAtMeanLevel(t *testing.T) {
	fees, err := Generate(10, 100, randomizer.NewSeeded(1))
	require.NoError(t, err)
	require.Len(t, fees, 10)
	assert.Equal(t, 100.0, fees[0])
}

func TestGenerateSingleStep(t *testing.T) {
	fees, err := Generate(1, 42, randomizer.NewSequence())
	require.NoError(t, err)
	assert.Equal(t, []float64{42}, fees)
}

func TestGenerateTickDirection(t *testing.T) {
	// At the mean level the up-tick probability is exp(-1) ~ 0.368.
	fees, err := Generate(3, 100, randomizer.NewSequence(0.1, 0.99))
	require.NoError(t, err)

	assert.InDelta(t, 100*UpTick, fees[1], 1e-12)
	// 112.5 gives exp(-1.125) ~ 0.325, so 0.99 is a down-tick.
	assert.InDelta(t, 100*UpTick*DownTick, fees[2], 1e-12)
}

func TestGenerateIsStrictlyPositive(t *testing.T) {
	for _, seed := range []int64{1, 7, 12345, 987654321} {
		fees, err := Generate(50_000, 100, randomizer.NewSeeded(seed))
		require.NoError(t, err)
		for i, v := range fees {
			if v <= 0 {
				t.Fatalf("seed %d: fee at step %d is %v", seed, i, v)
			}
		}
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	a, err := Generate(5_000, 100, randomizer.NewSeeded(99))
	require.NoError(t, err)
	b, err := Generate(5_000, 100, randomizer.NewSeeded(99))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateMeanReverts(t *testing.T) {
	fees, err := Generate(100_000, 100, randomizer.NewSeeded(3))
	require.NoError(t, err)

	var sum float64
	for _, v := range fees {
		sum += v
	}
	mean := sum / float64(len(fees))
	// The walk hovers around the level where exp(-v/mean) ~ 0.5.
	assert.Greater(t, mean, 30.0)
	assert.Less(t, mean, 200.0)
}

func TestGenerateRejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		length int
		mean   float64
		src    randomizer.Source
	}{
		{"zero length", 0, 100, randomizer.NewSeeded(1)},
		{"negative length", -5, 100, randomizer.NewSeeded(1)},
		{"zero mean", 10, 0, randomizer.NewSeeded(1)},
		{"negative mean", 10, -1, randomizer.NewSeeded(1)},
		{"nil source", 10, 100, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.length, tt.mean, tt.src)
			assert.ErrorIs(t, err, ErrInvalidSeriesParams)
		})
	}
}
