package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pips/internal/compiler"
)

func TestResolveExpression(t *testing.T) {
	defs := map[string]string{
		"dmg":   "2D6+1",
		"bonus": "3",
		"total": "dmg+bonus",
	}

	tests := []struct {
		name       string
		expression string
		want       string
	}{
		{"passthrough", "2D6+1", "2D6+1"},
		{"simple name", "dmg", "2D6+1"},
		{"name with term", "dmg+1D4", "2D6+1+1D4"},
		{"negative name flips all signs", "1D20-dmg", "1D20-2D6-1"},
		{"nested names", "total", "2D6+1+3"},
		{"lone die is not a name", "d6", "d6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveExpression(defs, tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveExpression_NegationIsExact(t *testing.T) {
	defs := map[string]string{"dmg": "2D6+1"}

	resolved, err := ResolveExpression(defs, "1D20-dmg")
	require.NoError(t, err)

	parser := compiler.NewParser()
	direct, err := parser.Parse("1D20-2D6-1")
	require.NoError(t, err)
	viaName, err := parser.Parse(resolved)
	require.NoError(t, err)

	assert.True(t, direct.EqualsValue(viaName))
}

func TestResolveExpression_Undefined(t *testing.T) {
	_, err := ResolveExpression(nil, "attack+1")
	assert.ErrorContains(t, err, "undefined name")
}

func TestResolveExpression_Cycle(t *testing.T) {
	defs := map[string]string{
		"a": "b+1",
		"b": "a+1",
	}
	_, err := ResolveExpression(defs, "a")
	assert.ErrorContains(t, err, "cycle")
}
