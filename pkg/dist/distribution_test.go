package dist_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/pips/pkg/dist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d6(t *testing.T) *dist.Distribution {
	t.Helper()
	die, err := dist.Uniform(6)
	require.NoError(t, err)
	return die
}

func TestFromMap_RoundTrip(t *testing.T) {
	mapping := map[float64]float64{-2: 0.5, 0: 1, 3.5: 2}

	d, err := dist.FromMap(mapping)
	require.NoError(t, err)

	assert.Equal(t, mapping, d.Mapping())
	assert.Equal(t, []float64{-2, 0, 3.5}, d.Outcomes())
}

func TestFromMap_RejectsNegativeWeight(t *testing.T) {
	_, err := dist.FromMap(map[float64]float64{1: -0.1})
	assert.ErrorIs(t, err, dist.ErrNegativeWeight)
}

func TestUniform(t *testing.T) {
	tests := []struct {
		name  string
		faces int
		err   error
	}{
		{name: "d6", faces: 6},
		{name: "d20", faces: 20},
		{name: "zero faces", faces: 0, err: dist.ErrInvalidFaces},
		{name: "negative faces", faces: -4, err: dist.ErrInvalidFaces},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			die, err := dist.Uniform(tc.faces)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.faces, die.Len())
			assert.Equal(t, float64(tc.faces), die.TotalWeight())
			assert.Equal(t, 1.0, die.Weight(1))
			assert.Equal(t, 1.0, die.Weight(float64(tc.faces)))
		})
	}
}

func TestPool(t *testing.T) {
	pool, err := dist.Pool(2, 6)
	require.NoError(t, err)

	assert.Equal(t, 36.0, pool.TotalWeight())
	assert.Equal(t, 6.0, pool.Weight(7))
	assert.Equal(t, []float64{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, pool.Outcomes())

	_, err = dist.Pool(0, 6)
	assert.ErrorIs(t, err, dist.ErrInvalidCount)

	_, err = dist.Pool(1, 0)
	assert.ErrorIs(t, err, dist.ErrInvalidFaces)
}

func TestAddEvent(t *testing.T) {
	d := dist.New()

	require.NoError(t, d.AddEvent(4, 1))
	require.NoError(t, d.AddEvent(4, 2.5))
	require.NoError(t, d.AddEvent(7, 0))

	assert.Equal(t, 3.5, d.Weight(4))
	assert.Equal(t, 2, d.Len(), "explicit zero entries are retained")
	assert.ErrorIs(t, d.AddEvent(1, -1), dist.ErrNegativeWeight)
}

func TestExpectedValue(t *testing.T) {
	die := d6(t)
	ev, err := die.ExpectedValue()
	require.NoError(t, err)
	assert.InDelta(t, 3.5, ev, 1e-12)

	_, err = dist.New().ExpectedValue()
	assert.ErrorIs(t, err, dist.ErrEmptyDistribution)
}

func TestVariance(t *testing.T) {
	die := d6(t)
	v, err := die.Variance()
	require.NoError(t, err)
	assert.InDelta(t, 35.0/12.0, v, 1e-12)

	_, err = dist.New().Variance()
	assert.ErrorIs(t, err, dist.ErrEmptyDistribution)
}

func TestNormalized(t *testing.T) {
	pool := d6(t).Add(d6(t))

	normalized, err := pool.Normalized(1.0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, normalized.TotalWeight(), 1e-12)
	assert.InDelta(t, 6.0/36.0, normalized.Weight(7), 1e-12)

	percent, err := pool.Normalized(100.0)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, percent.TotalWeight(), 1e-9)

	_, err = dist.New().Normalized(1.0)
	assert.ErrorIs(t, err, dist.ErrEmptyDistribution)
}

func TestEqualsValue(t *testing.T) {
	a, err := dist.FromMap(map[float64]float64{1: 2, 2: 3})
	require.NoError(t, err)
	b, err := dist.FromMap(map[float64]float64{2: 3, 1: 2})
	require.NoError(t, err)
	assert.True(t, a.EqualsValue(b))

	// A retained zero entry is part of the value.
	withZero, err := dist.FromMap(map[float64]float64{1: 2, 2: 3, 9: 0})
	require.NoError(t, err)
	assert.False(t, a.EqualsValue(withZero))
}

func TestJSONRoundTrip(t *testing.T) {
	original := d6(t).Add(d6(t)).Shift(1)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded dist.Distribution
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.EqualsValue(&decoded))
}

func TestJSONRejectsNegativeWeight(t *testing.T) {
	var decoded dist.Distribution
	err := json.Unmarshal([]byte(`[[1, -2]]`), &decoded)
	assert.ErrorIs(t, err, dist.ErrNegativeWeight)
}
