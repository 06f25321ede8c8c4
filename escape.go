package mandel

// Iteration defaults of the escape-time evaluator.
const (
	DefaultMaxIterations    = 1024
	DefaultThresholdSquared = 10.0
)

// Counter computes the escape count of a point of the complex plane.
// Implementations must be pure: the same point always yields the same count.
type Counter interface {
	Count(c Complex) int
}

// CounterFunc adapts an ordinary function to the Counter interface.
type CounterFunc func(c Complex) int

// Count calls f(c).
func (f CounterFunc) Count(c Complex) int { return f(c) }

// Evaluator is the Mandelbrot escape-time evaluator.
//
// Starting at z = 0, Count repeatedly applies z ← z² + c and returns the
// zero-based index of the first iteration where |z|² exceeds
// ThresholdSquared. A point that survives MaxIterations iterations is
// considered part of the set and reports 0, so every result lies in
// [0, MaxIterations).
type Evaluator struct {
	MaxIterations    int
	ThresholdSquared float64
}

// DefaultEvaluator returns an Evaluator with DefaultMaxIterations and
// DefaultThresholdSquared.
func DefaultEvaluator() Evaluator {
	return Evaluator{
		MaxIterations:    DefaultMaxIterations,
		ThresholdSquared: DefaultThresholdSquared,
	}
}

// Count returns the escape count of c.
func (e Evaluator) Count(c Complex) int {
	var z Complex
	for i := 0; i < e.MaxIterations; i++ {
		z = z.Square().Add(c)
		if z.AbsSq() > e.ThresholdSquared {
			return i
		}
	}
	return 0
}
