package correlation

import (
	"math"
	"sort"
)

const (
	// insightTopN caps the strongest-pair lists.
	insightTopN = 5

	// uncorrelatedCutoff is the |r| below which a pair counts as
	// practically independent.
	uncorrelatedCutoff = 0.05

	// connectedCutoff is the |r| from which a pair counts as a link
	// for the connectivity pattern.
	connectedCutoff = 0.5
)

// Connectivity counts how many other features one feature is
// moderately or more strongly correlated with.
type Connectivity struct {
	Feature string
	Links   int
}

// InsightsReport is a qualitative digest of the correlation matrix.
type InsightsReport struct {
	// StrongestPositive holds up to 5 pairs with positive r,
	// most positive first.
	StrongestPositive []Pair

	// StrongestNegative holds up to 5 pairs with negative r,
	// most negative first.
	StrongestNegative []Pair

	// Uncorrelated pairs with |r| < 0.05, most independent first.
	Uncorrelated []Pair

	// Patterns ranks features by how many others they link to with
	// |r| >= 0.5. Features with no such link are left out.
	Patterns []Connectivity
}

// RelationshipInsights digests the matrix into headline findings.
func (a *Analyzer) RelationshipInsights() InsightsReport {
	rep := InsightsReport{
		StrongestPositive: []Pair{},
		StrongestNegative: []Pair{},
		Uncorrelated:      []Pair{},
		Patterns:          []Connectivity{},
	}

	all := a.pairs()

	positive := []Pair{}
	negative := []Pair{}
	links := map[string]int{}
	for _, p := range all {
		if 0 < p.R {
			positive = append(positive, p)
		}
		if p.R < 0 {
			negative = append(negative, p)
		}
		if math.Abs(p.R) < uncorrelatedCutoff {
			rep.Uncorrelated = append(rep.Uncorrelated, p)
		}
		if connectedCutoff <= math.Abs(p.R) {
			links[p.First] += 1
			links[p.Second] += 1
		}
	}

	sort.Slice(positive, func(i, j int) bool {
		if positive[i].R != positive[j].R {
			return positive[j].R < positive[i].R
		}
		return lessByName(positive[i], positive[j])
	})
	sort.Slice(negative, func(i, j int) bool {
		if negative[i].R != negative[j].R {
			return negative[i].R < negative[j].R
		}
		return lessByName(negative[i], negative[j])
	})
	sort.Slice(rep.Uncorrelated, func(i, j int) bool {
		ai, aj := rep.Uncorrelated[i].Abs(), rep.Uncorrelated[j].Abs()
		if ai != aj {
			return ai < aj
		}
		return lessByName(rep.Uncorrelated[i], rep.Uncorrelated[j])
	})

	rep.StrongestPositive = append(rep.StrongestPositive, head(positive, insightTopN)...)
	rep.StrongestNegative = append(rep.StrongestNegative, head(negative, insightTopN)...)

	for feature, n := range links {
		rep.Patterns = append(rep.Patterns, Connectivity{Feature: feature, Links: n})
	}
	sort.Slice(rep.Patterns, func(i, j int) bool {
		if rep.Patterns[i].Links != rep.Patterns[j].Links {
			return rep.Patterns[j].Links < rep.Patterns[i].Links
		}
		return rep.Patterns[i].Feature < rep.Patterns[j].Feature
	})

	return rep
}

func lessByName(a, b Pair) bool {
	if a.First != b.First {
		return a.First < b.First
	}
	return a.Second < b.Second
}

func head(pairs []Pair, n int) []Pair {
	if len(pairs) < n {
		n = len(pairs)
	}
	return pairs[:n]
}
