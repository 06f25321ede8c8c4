package mandel

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Strategy selects the order and granularity in which a scan evaluates and
// writes pixels. Every strategy produces the same final image except where
// DivideAndConquer's border heuristic fills an area without evaluating it.
type Strategy int

const (
	// LineByLine evaluates every pixel in raster order.
	LineByLine Strategy = iota

	// ProgressiveRefinement paints a coarse block preview first and halves
	// the block size on every pass until it reaches single pixels.
	ProgressiveRefinement

	// DivideAndConquer evaluates rectangle borders and fills rectangles
	// whose border is a single color without evaluating their interior.
	DivideAndConquer
)

// Strategies lists every strategy in menu order.
var Strategies = []Strategy{LineByLine, ProgressiveRefinement, DivideAndConquer}

var strategyNames = [...]string{
	LineByLine:            "line",
	ProgressiveRefinement: "progressive",
	DivideAndConquer:      "divide",
}

// String returns the short name of s, as accepted by ParseStrategy.
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s >= 0 && int(s) < len(strategyNames)
}

// ParseStrategy returns the strategy called name. Matching ignores case.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if strings.EqualFold(name, n) {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ScanStatus is the final state of one scan.
type ScanStatus int

const (
	// Completed means every pixel of the region was written.
	Completed ScanStatus = iota
	// Cancelled means the scan observed cancellation and stopped early.
	Cancelled
)

func (s ScanStatus) String() string {
	switch s {
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("ScanStatus(%d)", int(s))
}

// ScanReport describes a finished scan.
type ScanReport struct {
	Strategy    Strategy
	Status      ScanStatus
	Writes      int // pixel stores performed
	Evaluations int // escape counts computed
	Elapsed     time.Duration
}

// Scan renders t.Region() with strategy s. It polls ctx before every pixel
// write and returns as soon as ctx is done, reporting Cancelled; after that
// it never touches the buffer again. An empty region completes immediately
// without writing anything.
func (s Strategy) Scan(ctx context.Context, t *Target) ScanReport {
	start := time.Now()
	t.writes, t.evals = 0, 0

	ok := true
	if r := t.Region(); !r.Empty() {
		switch s {
		case ProgressiveRefinement:
			ok = scanProgressive(ctx, t, r)
		case DivideAndConquer:
			ok = scanDivide(ctx, t, r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1)
		default:
			ok = scanLines(ctx, t, r)
		}
	}

	report := ScanReport{
		Strategy:    s,
		Status:      Completed,
		Writes:      t.writes,
		Evaluations: t.evals,
		Elapsed:     time.Since(start),
	}
	if !ok {
		report.Status = Cancelled
	}
	return report
}
