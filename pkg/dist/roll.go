package dist

import (
	"math/rand"
	"time"
)

// Source is the randomness provider for rolls. *math/rand.Rand satisfies
// it; tests inject deterministic implementations.
type Source interface {
	// Float64 returns a random value in [0, 1).
	Float64() float64
}

// NewSeededSource returns a Source with reproducible output for the given
// seed. Rolls are deterministic with respect to the seed and call order.
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewRandomSource returns a time-seeded Source.
func NewRandomSource() Source {
	return NewSeededSource(time.Now().UnixNano())
}

// Roll draws one outcome at random with probability proportional to its
// weight, by inverting the CDF over the ascending outcome order.
// Returns ErrEmptyDistribution when the total weight is zero.
func (d *Distribution) Roll(src Source) (float64, error) {
	outcomes, weights, total := d.sorted()
	if total == 0 {
		return 0, ErrEmptyDistribution
	}

	target := src.Float64() * total
	cumulative := 0.0
	for i, outcome := range outcomes {
		cumulative += weights[i]
		if target < cumulative {
			return outcome, nil
		}
	}
	// Float64() < 1 keeps target below the total; reachable only through
	// accumulated rounding on the last step.
	return outcomes[len(outcomes)-1], nil
}
