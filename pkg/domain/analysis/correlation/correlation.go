package correlation

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/statops/tabstat/pkg/domain/analysis/frame"
)

// ErrEmptyTable rejects analysis over a table with no rows or no columns.
var ErrEmptyTable = errors.New("empty table: no rows or no columns")

// Strength of a correlation pair, bucketed by |r|.
type Strength string

const (
	StrengthVeryHigh Strength = "very_high" // 0.9 <= |r|
	StrengthHigh     Strength = "high"      // 0.7 <= |r| < 0.9
	StrengthModerate Strength = "moderate"  // 0.5 <= |r| < 0.7
	StrengthLow      Strength = "low"       // |r| < 0.5
)

type Direction string

const (
	Positive Direction = "positive"
	Negative Direction = "negative"
)

// Severity of a multicollinearity signal.
type Severity string

const (
	SeverityAcceptable Severity = "acceptable"
	SeverityModerate   Severity = "moderate"
	SeverityHigh       Severity = "high"
)

var severityRank = map[Severity]int{
	SeverityAcceptable: 0,
	SeverityModerate:   1,
	SeverityHigh:       2,
}

func maxSeverity(a, b Severity) Severity {
	if severityRank[a] < severityRank[b] {
		return b
	}
	return a
}

// Pair is an unordered pair of distinct numeric features
// with their Pearson correlation coefficient.
type Pair struct {
	First  string
	Second string
	R      float64
}

func (p Pair) Abs() float64 {
	return math.Abs(p.R)
}

func (p Pair) Strength() Strength {
	switch abs := p.Abs(); {
	case 0.9 <= abs:
		return StrengthVeryHigh
	case 0.7 <= abs:
		return StrengthHigh
	case 0.5 <= abs:
		return StrengthModerate
	default:
		return StrengthLow
	}
}

func (p Pair) Direction() Direction {
	if p.R < 0 {
		return Negative
	}
	return Positive
}

// sortPairs orders pairs by descending |r|;
// ties are broken by the first feature name, then the second.
func sortPairs(pairs []Pair) {
	sort.Slice(pairs, func(i, j int) bool {
		ai, aj := pairs[i].Abs(), pairs[j].Abs()
		if ai != aj {
			return aj < ai
		}
		if pairs[i].First != pairs[j].First {
			return pairs[i].First < pairs[j].First
		}
		return pairs[i].Second < pairs[j].Second
	})
}

// Analyzer computes correlation and multicollinearity reports
// over the numeric columns of one table.
//
// The pairwise Pearson matrix is computed once at construction and
// shared by every operation, so that the sub-reports of a complete
// analysis are always consistent with each other.
type Analyzer struct {
	// all numeric features, in table order
	features []string

	// numeric features with enough observations and non-zero variance,
	// in table order. Only these take part in pairwise computation.
	active []string

	index   map[string]int
	columns map[string][]float64

	// matrix[i][j] is the correlation of active[i] and active[j].
	// Cells which cannot be computed (no overlapping observations,
	// constant overlap) are NaN and never leave this package.
	matrix [][]float64
}

// New builds an Analyzer over the numeric columns of f.
//
// # Returns
//
// - *Analyzer
//
// - error: ErrEmptyTable when f has no rows or no columns.
// Having fewer than 2 numeric columns is not an error; operations
// just return empty reports then.
func New(f *frame.Frame) (*Analyzer, error) {
	if f.Rows() == 0 || f.Width() == 0 {
		return nil, ErrEmptyTable
	}

	features := f.NumericNames()

	a := &Analyzer{
		features: features,
		active:   []string{},
		index:    map[string]int{},
		columns:  map[string][]float64{},
	}

	for _, name := range features {
		values, _ := f.Numeric(name)
		if !hasVariance(values) {
			continue
		}
		a.index[name] = len(a.active)
		a.active = append(a.active, name)
		a.columns[name] = values
	}

	n := len(a.active)
	a.matrix = make([][]float64, n)
	for i := range a.matrix {
		a.matrix[i] = make([]float64, n)
		a.matrix[i][i] = 1.0
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r, ok := pearson(a.columns[a.active[i]], a.columns[a.active[j]])
			if !ok {
				r = math.NaN()
			}
			a.matrix[i][j] = r
			a.matrix[j][i] = r
		}
	}

	return a, nil
}

// TotalFeatures returns how many numeric columns the table has,
// degenerate ones included.
func (a *Analyzer) TotalFeatures() int {
	return len(a.features)
}

// Features returns all numeric feature names, in table order.
func (a *Analyzer) Features() []string {
	names := make([]string, len(a.features))
	copy(names, a.features)
	return names
}

// at returns the correlation of two active features.
func (a *Analyzer) at(i, j int) (float64, bool) {
	r := a.matrix[i][j]
	return r, !math.IsNaN(r)
}

// pairs lists every computable unordered pair, unsorted.
func (a *Analyzer) pairs() []Pair {
	ps := []Pair{}
	for i := 0; i < len(a.active); i++ {
		for j := i + 1; j < len(a.active); j++ {
			if r, ok := a.at(i, j); ok {
				ps = append(ps, Pair{First: a.active[i], Second: a.active[j], R: r})
			}
		}
	}
	return ps
}

// hasVariance reports whether values carry usable signal:
// at least 2 observations which are not all equal.
func hasVariance(values []float64) bool {
	observed := compact(values)
	if len(observed) < 2 {
		return false
	}
	return stat.Variance(observed, nil) > 0
}

// compact drops missing (NaN) values.
func compact(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// pearson computes the correlation of x and y over rows where
// both are observed.
//
// It reports false when fewer than 2 such rows exist or either side
// is constant over them.
func pearson(x, y []float64) (float64, bool) {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}

	if len(xs) < 2 {
		return 0, false
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return 0, false
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0, false
	}

	// guard rounding drift out of [-1, 1]
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, true
}
