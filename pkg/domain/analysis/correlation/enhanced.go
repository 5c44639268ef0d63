package correlation

// EnhancedReport is the full correlation analysis of a table.
//
// Pairs honours the caller's threshold. HighPairs, VeryHighPairs and
// MulticollinearPairs are independent fixed-cutoff views over the same
// matrix: a pair below the caller's threshold still shows up there
// when its |r| clears the fixed cutoff.
type EnhancedReport struct {
	// Matrix maps first feature name -> second feature name -> r,
	// for every computable cell including the unit diagonal.
	Matrix map[string]map[string]float64

	// Pairs with |r| >= the requested threshold.
	Pairs []Pair

	// HighPairs with |r| > 0.7.
	HighPairs []Pair

	// VeryHighPairs with |r| > 0.9.
	VeryHighPairs []Pair

	// MulticollinearPairs with |r| > 0.9, the redundancy candidates.
	MulticollinearPairs []Pair

	// StrengthDistribution counts every computable pair by strength
	// bucket, regardless of the threshold.
	StrengthDistribution map[Strength]int

	Statistics PairStatistics
}

// PairStatistics summarises the off-diagonal correlation values.
type PairStatistics struct {
	// MeanAbsolute is the mean of |r| over every computable pair.
	MeanAbsolute float64

	// Max and Min are the extreme signed r values over the pairs.
	Max float64
	Min float64
}

// EnhancedCorrelations reports every pair view of the matrix at once.
//
// # Args
//
// - threshold: minimum |r| for a pair to enter Pairs. The fixed-cutoff
// views ignore it.
func (a *Analyzer) EnhancedCorrelations(threshold float64) EnhancedReport {
	rep := EnhancedReport{
		Matrix:              a.matrixByName(),
		Pairs:               []Pair{},
		HighPairs:           []Pair{},
		VeryHighPairs:       []Pair{},
		MulticollinearPairs: []Pair{},
		StrengthDistribution: map[Strength]int{
			StrengthVeryHigh: 0,
			StrengthHigh:     0,
			StrengthModerate: 0,
			StrengthLow:      0,
		},
	}

	all := a.pairs()
	sortPairs(all)

	absSum := 0.0
	for i, p := range all {
		abs := p.Abs()
		absSum += abs
		if i == 0 {
			rep.Statistics.Max = p.R
			rep.Statistics.Min = p.R
		} else {
			if rep.Statistics.Max < p.R {
				rep.Statistics.Max = p.R
			}
			if p.R < rep.Statistics.Min {
				rep.Statistics.Min = p.R
			}
		}

		rep.StrengthDistribution[p.Strength()] += 1

		if threshold <= abs {
			rep.Pairs = append(rep.Pairs, p)
		}
		if 0.7 < abs {
			rep.HighPairs = append(rep.HighPairs, p)
		}
		if 0.9 < abs {
			rep.VeryHighPairs = append(rep.VeryHighPairs, p)
			rep.MulticollinearPairs = append(rep.MulticollinearPairs, p)
		}
	}
	if 0 < len(all) {
		rep.Statistics.MeanAbsolute = absSum / float64(len(all))
	}

	return rep
}

func (a *Analyzer) matrixByName() map[string]map[string]float64 {
	m := map[string]map[string]float64{}
	for i, name := range a.active {
		row := map[string]float64{}
		for j, other := range a.active {
			if r, ok := a.at(i, j); ok {
				row[other] = r
			}
		}
		m[name] = row
	}
	return m
}
