package dist

import "errors"

// ErrNegativeWeight is returned when an event is added with weight < 0.
var ErrNegativeWeight = errors.New("event weight must be non-negative")

// ErrEmptyDistribution is returned when a statistic or a roll is requested
// on a distribution with zero total weight.
var ErrEmptyDistribution = errors.New("distribution has zero total weight")

// ErrInvalidFaces is returned when a die is constructed with faces <= 0.
var ErrInvalidFaces = errors.New("die must have a positive number of faces")

// ErrInvalidCount is returned when a dice pool is constructed with count <= 0.
var ErrInvalidCount = errors.New("dice count must be positive")
