package compiler_test

import (
	"math"
	"testing"

	"github.com/aretw0/pips/internal/compiler"
	"github.com/aretw0/pips/pkg/dist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TotalWeightAndSupport(t *testing.T) {
	tests := []struct {
		expr  string
		count int
		faces int
	}{
		{expr: "1D6", count: 1, faces: 6},
		{expr: "2D6", count: 2, faces: 6},
		{expr: "3D4", count: 3, faces: 4},
		{expr: "2D10", count: 2, faces: 10},
	}

	p := compiler.NewParser()
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			d, err := p.Parse(tc.expr)
			require.NoError(t, err)

			// Total weight faces^count, support exactly [count, count*faces].
			assert.InDelta(t, math.Pow(float64(tc.faces), float64(tc.count)), d.TotalWeight(), 1e-9)
			outcomes := d.Outcomes()
			assert.Equal(t, float64(tc.count), outcomes[0])
			assert.Equal(t, float64(tc.count*tc.faces), outcomes[len(outcomes)-1])
			assert.Len(t, outcomes, tc.count*tc.faces-tc.count+1)
		})
	}
}

func TestParse_CountDefaultsToOne(t *testing.T) {
	p := compiler.NewParser()

	implicit, err := p.Parse("D6")
	require.NoError(t, err)
	explicit, err := p.Parse("1D6")
	require.NoError(t, err)

	assert.True(t, implicit.EqualsValue(explicit))
}

func TestParse_CaseInsensitiveMarker(t *testing.T) {
	p := compiler.NewParser()

	lower, err := p.Parse("2d6")
	require.NoError(t, err)
	upper, err := p.Parse("2D6")
	require.NoError(t, err)

	assert.True(t, lower.EqualsValue(upper))
}

func TestParse_ModifierShiftsSupport(t *testing.T) {
	p := compiler.NewParser()

	d, err := p.Parse("2D6+1")
	require.NoError(t, err)

	ev, err := d.ExpectedValue()
	require.NoError(t, err)
	assert.Equal(t, 8.0, ev)
	assert.Equal(t, []float64{3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}, d.Outcomes())
}

func TestParse_SubtractionAndUnaryMinus(t *testing.T) {
	p := compiler.NewParser()

	d, err := p.Parse("1D6-2")
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 0, 1, 2, 3, 4}, d.Outcomes())

	neg, err := p.Parse("-1D4")
	require.NoError(t, err)
	assert.Equal(t, []float64{-4, -3, -2, -1}, neg.Outcomes())
}

func TestParse_MultiTermFoldMatchesManualConvolution(t *testing.T) {
	p := compiler.NewParser()

	three, err := p.Parse("3D6")
	require.NoError(t, err)
	two, err := p.Parse("2D6")
	require.NoError(t, err)
	one, err := p.Parse("1D6")
	require.NoError(t, err)

	assert.True(t, three.EqualsValue(two.Add(one)))
}

func TestParse_SelfSubtraction(t *testing.T) {
	p := compiler.NewParser()

	pool, err := p.Parse("2D6")
	require.NoError(t, err)
	diff, err := p.Parse("2D6-2D6")
	require.NoError(t, err)

	var sumSquares float64
	for _, w := range pool.Mapping() {
		sumSquares += w * w
	}
	assert.Equal(t, sumSquares, diff.Weight(0))
}

func TestParse_WhitespaceIgnored(t *testing.T) {
	p := compiler.NewParser()

	spaced, err := p.Parse(" 2D6 + 1 ")
	require.NoError(t, err)
	compact, err := p.Parse("2D6+1")
	require.NoError(t, err)

	assert.True(t, spaced.EqualsValue(compact))
}

func TestParse_Rejections(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "empty", expr: ""},
		{name: "blank", expr: "   "},
		{name: "zero faces", expr: "D0"},
		{name: "zero count", expr: "0D6"},
		{name: "bare marker", expr: "D"},
		{name: "letters", expr: "abc"},
		{name: "trailing operator", expr: "2D6+"},
		{name: "doubled operator", expr: "1++2"},
		{name: "float faces", expr: "1D6.5"},
		{name: "overflowing count", expr: "99999999999999999999D6"},
		{name: "overflowing faces", expr: "3D99999999999999999999"},
		{name: "overflowing constant", expr: "1D6+99999999999999999999"},
	}

	p := compiler.NewParser()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Parse(tc.expr)
			require.Error(t, err)

			var parseErr *compiler.ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParse_ConstantOnly(t *testing.T) {
	p := compiler.NewParser()

	d, err := p.Parse("7")
	require.NoError(t, err)
	assert.True(t, d.EqualsValue(dist.FromValue(7)))
}
