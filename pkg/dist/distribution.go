package dist

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Distribution is a finite mapping from outcome value to non-negative weight.
// The zero value is not usable; construct via New, FromMap, FromValue or
// Uniform.
type Distribution struct {
	weights map[float64]float64
}

// New creates an empty distribution, typically used as an accumulator
// target for AddEvent.
func New() *Distribution {
	return &Distribution{weights: make(map[float64]float64)}
}

// FromMap creates a distribution copying the given outcome -> weight mapping.
// Returns ErrNegativeWeight if any weight is negative.
func FromMap(mapping map[float64]float64) (*Distribution, error) {
	d := &Distribution{weights: make(map[float64]float64, len(mapping))}
	for outcome, weight := range mapping {
		if weight < 0 {
			return nil, fmt.Errorf("outcome %v: %w", outcome, ErrNegativeWeight)
		}
		d.weights[outcome] = weight
	}
	return d, nil
}

// FromValue creates a certain (single-outcome) distribution {value: 1}.
func FromValue(value float64) *Distribution {
	return &Distribution{weights: map[float64]float64{value: 1}}
}

// Uniform creates the distribution of a single fair die: outcomes 1..faces,
// each with weight 1.
func Uniform(faces int) (*Distribution, error) {
	if faces <= 0 {
		return nil, fmt.Errorf("faces %d: %w", faces, ErrInvalidFaces)
	}
	d := New()
	for side := 1; side <= faces; side++ {
		d.weights[float64(side)] = 1
	}
	return d, nil
}

// Pool creates the distribution of `count` independent fair dice added
// together: Uniform(faces) convolved count times.
func Pool(count, faces int) (*Distribution, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count %d: %w", count, ErrInvalidCount)
	}
	die, err := Uniform(faces)
	if err != nil {
		return nil, err
	}
	pool := die
	for i := 1; i < count; i++ {
		pool = pool.Add(die)
	}
	return pool, nil
}

// AddEvent adds weight to the given outcome, creating the key if absent.
// This is the builder mutation; every other operation treats the receiver
// as immutable. Returns ErrNegativeWeight if weight < 0.
func (d *Distribution) AddEvent(outcome, weight float64) error {
	if weight < 0 {
		return fmt.Errorf("outcome %v: %w", outcome, ErrNegativeWeight)
	}
	d.weights[outcome] += weight
	return nil
}

// Outcomes returns the outcome values in ascending order.
func (d *Distribution) Outcomes() []float64 {
	outcomes := make([]float64, 0, len(d.weights))
	for outcome := range d.weights {
		outcomes = append(outcomes, outcome)
	}
	sort.Float64s(outcomes)
	return outcomes
}

// Weight returns the weight of the given outcome, 0 if absent.
func (d *Distribution) Weight(outcome float64) float64 {
	return d.weights[outcome]
}

// Mapping returns a copy of the outcome -> weight mapping.
func (d *Distribution) Mapping() map[float64]float64 {
	mapping := make(map[float64]float64, len(d.weights))
	for outcome, weight := range d.weights {
		mapping[outcome] = weight
	}
	return mapping
}

// Len returns the number of distinct outcomes, including explicit zeros.
func (d *Distribution) Len() int {
	return len(d.weights)
}

// TotalWeight returns the sum of all weights (the size of the sample space
// for count-weighted distributions).
func (d *Distribution) TotalWeight() float64 {
	total := 0.0
	for _, weight := range d.weights {
		total += weight
	}
	return total
}

// ExpectedValue returns the weighted mean of the outcomes.
// Returns ErrEmptyDistribution when the total weight is zero.
func (d *Distribution) ExpectedValue() (float64, error) {
	outcomes, weights, total := d.sorted()
	if total == 0 {
		return 0, ErrEmptyDistribution
	}
	return stat.Mean(outcomes, weights), nil
}

// Variance returns the weighted population variance of the outcomes.
// Returns ErrEmptyDistribution when the total weight is zero.
func (d *Distribution) Variance() (float64, error) {
	outcomes, weights, total := d.sorted()
	if total == 0 {
		return 0, ErrEmptyDistribution
	}
	mean := stat.Mean(outcomes, weights)
	return stat.MomentAbout(2, outcomes, mean, weights), nil
}

// StdDev returns the weighted population standard deviation.
func (d *Distribution) StdDev() (float64, error) {
	variance, err := d.Variance()
	if err != nil {
		return 0, err
	}
	return math.Sqrt(variance), nil
}

// Normalized returns a new distribution with every weight scaled so the
// total equals target. Returns ErrEmptyDistribution on zero total weight.
func (d *Distribution) Normalized(target float64) (*Distribution, error) {
	total := d.TotalWeight()
	if total == 0 {
		return nil, ErrEmptyDistribution
	}
	scaled := &Distribution{weights: make(map[float64]float64, len(d.weights))}
	for outcome, weight := range d.weights {
		scaled.weights[outcome] = weight * target / total
	}
	return scaled, nil
}

// EqualsValue reports structural equality: same outcome keys (explicit
// zeros included) with exactly equal weights. This is value equality,
// distinct from Compare(EqualTo, other) which yields a distribution of the
// probability that two rolls tie.
func (d *Distribution) EqualsValue(other *Distribution) bool {
	if len(d.weights) != len(other.weights) {
		return false
	}
	for outcome, weight := range d.weights {
		otherWeight, ok := other.weights[outcome]
		if !ok || otherWeight != weight {
			return false
		}
	}
	return true
}

// sorted returns parallel outcome/weight slices in ascending outcome order
// together with the total weight.
func (d *Distribution) sorted() (outcomes, weights []float64, total float64) {
	outcomes = d.Outcomes()
	weights = make([]float64, len(outcomes))
	for i, outcome := range outcomes {
		weights[i] = d.weights[outcome]
		total += weights[i]
	}
	return outcomes, weights, total
}

// MarshalJSON encodes the distribution as a sorted [[outcome, weight], ...]
// pair list so serialized forms are deterministic and order-stable.
func (d *Distribution) MarshalJSON() ([]byte, error) {
	outcomes := d.Outcomes()
	pairs := make([][2]float64, len(outcomes))
	for i, outcome := range outcomes {
		pairs[i] = [2]float64{outcome, d.weights[outcome]}
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON decodes the pair-list form produced by MarshalJSON.
// Duplicate outcomes accumulate; negative weights are rejected.
func (d *Distribution) UnmarshalJSON(data []byte) error {
	var pairs [][2]float64
	if err := json.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("failed to decode distribution: %w", err)
	}
	d.weights = make(map[float64]float64, len(pairs))
	for _, pair := range pairs {
		if err := d.AddEvent(pair[0], pair[1]); err != nil {
			return err
		}
	}
	return nil
}

// String renders the sorted mapping, mainly for test failures and logs.
func (d *Distribution) String() string {
	outcomes := d.Outcomes()
	s := "{"
	for i, outcome := range outcomes {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%g: %g", outcome, d.weights[outcome])
	}
	return s + "}"
}
