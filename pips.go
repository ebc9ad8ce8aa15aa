package pips

import (
	"log/slog"

	"github.com/aretw0/pips/internal/compiler"
	"github.com/aretw0/pips/internal/logging"
	"github.com/aretw0/pips/pkg/dist"
	"github.com/aretw0/pips/pkg/ports"
)

// Version is the library version reported by the CLI and the adapters.
const Version = "0.3.0"

// Dice is the high-level entry point for the library. It binds a parsed
// expression to its exact distribution and a randomness source.
type Dice struct {
	expression string
	dist       *dist.Distribution
	source     dist.Source
	logger     *slog.Logger
}

// Option defines a functional option for configuring Dice.
type Option func(*Dice)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dice) {
		d.logger = logger
	}
}

// WithSource injects the randomness source used by Roll. Use
// dist.NewSeededSource for reproducible rolls.
func WithSource(source dist.Source) Option {
	return func(d *Dice) {
		d.source = source
	}
}

// New parses a dice expression like "2D6+1" and returns the bound Dice.
// The distribution is computed eagerly; parse errors surface here.
func New(expression string, opts ...Option) (*Dice, error) {
	d := &Dice{
		expression: expression,
		source:     dist.NewRandomSource(),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	parsed, err := compiler.NewParser().Parse(expression)
	if err != nil {
		return nil, err
	}
	d.dist = parsed

	d.logger.Debug("expression compiled",
		"expression", expression,
		"outcomes", parsed.Len(),
		"total_weight", parsed.TotalWeight(),
	)
	return d, nil
}

// FromDistribution wraps an existing distribution in the facade.
func FromDistribution(d *dist.Distribution, opts ...Option) *Dice {
	dice := &Dice{
		expression: d.String(),
		dist:       d,
		source:     dist.NewRandomSource(),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(dice)
	}
	return dice
}

// Expression returns the original expression text.
func (d *Dice) Expression() string {
	return d.expression
}

// Distribution returns the underlying distribution.
func (d *Dice) Distribution() *dist.Distribution {
	return d.dist
}

// ExpectedValue returns the weighted mean outcome.
func (d *Dice) ExpectedValue() (float64, error) {
	return d.dist.ExpectedValue()
}

// StdDev returns the population standard deviation of the outcomes.
func (d *Dice) StdDev() (float64, error) {
	return d.dist.StdDev()
}

// Roll samples one outcome using the configured source.
func (d *Dice) Roll() (float64, error) {
	return d.dist.Roll(d.source)
}

// RollN samples n outcomes using the configured source.
func (d *Dice) RollN(n int) ([]float64, error) {
	results := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v, err := d.dist.Roll(d.source)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}

// ChanceBeats returns the probability that this roll strictly exceeds
// the other roll, in [0, 1].
func (d *Dice) ChanceBeats(other *Dice) float64 {
	outcome := d.dist.Compare(dist.Greater, other.dist)
	normalized, err := outcome.Normalized(1.0)
	if err != nil {
		return 0
	}
	return normalized.Weight(1)
}

// Compare applies the predicate pairwise against the other roll and
// returns the two-outcome distribution over {1, 0}.
func (d *Dice) Compare(pred dist.Predicate, other *Dice) *dist.Distribution {
	return d.dist.Compare(pred, other.dist)
}

// Chart renders the distribution through the given renderer, titled
// with the expression.
func (d *Dice) Chart(renderer ports.ChartRenderer) (string, error) {
	return renderer.RenderChart(d.dist, d.expression)
}
