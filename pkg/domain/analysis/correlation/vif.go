package correlation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// vifSentinel stands in for an infinite VIF when a feature is an
// exact linear combination of the others. It is finite so that it
// survives JSON encoding, and large enough to always classify as high.
const vifSentinel = 1e10

// VIFScore is the variance inflation factor of one feature.
//
// VIF_j = 1 / (1 - R²_j), where R²_j comes from regressing feature j
// on every other usable numeric feature.
type VIFScore struct {
	Feature  string
	VIF      float64
	Severity Severity
}

// VIFReport scores each usable numeric feature for multicollinearity.
type VIFReport struct {
	// Scores in descending VIF order, ties broken by feature name.
	Scores []VIFScore

	// Problematic lists features with VIF > 5, in Scores order.
	Problematic []string

	// Overall is the worst severity among Scores,
	// or acceptable when there is nothing to report.
	Overall Severity

	// Interpretation explains the severity tiers.
	Interpretation map[Severity]string
}

// VIF computes variance inflation factors over the rows where every
// usable numeric feature is observed.
//
// The report is empty when fewer than 3 such features exist, or when
// there are too few complete rows to fit the regressions.
func (a *Analyzer) VIF() VIFReport {
	rep := VIFReport{
		Scores:      []VIFScore{},
		Problematic: []string{},
		Overall:     SeverityAcceptable,
		Interpretation: map[Severity]string{
			SeverityAcceptable: "VIF below 5: low multicollinearity",
			SeverityModerate:   "VIF between 5 and 10: moderate multicollinearity, keep an eye on these features",
			SeverityHigh:       "VIF above 10: high multicollinearity, consider removing or combining features",
		},
	}

	p := len(a.active)
	if p < 3 {
		return rep
	}
	rows := a.completeRows()
	if len(rows) <= p {
		// regressions would fit the data exactly
		return rep
	}

	for _, feature := range a.active {
		vif, ok := a.vifOf(feature, rows)
		if !ok {
			continue
		}
		rep.Scores = append(rep.Scores, VIFScore{
			Feature:  feature,
			VIF:      vif,
			Severity: vifSeverity(vif),
		})
	}

	sort.Slice(rep.Scores, func(i, j int) bool {
		if rep.Scores[i].VIF != rep.Scores[j].VIF {
			return rep.Scores[j].VIF < rep.Scores[i].VIF
		}
		return rep.Scores[i].Feature < rep.Scores[j].Feature
	})

	for _, s := range rep.Scores {
		if 5 < s.VIF {
			rep.Problematic = append(rep.Problematic, s.Feature)
		}
		rep.Overall = maxSeverity(rep.Overall, s.Severity)
	}

	return rep
}

// vifOf regresses feature on every other active feature over the
// given complete rows by ordinary least squares.
//
// It reports false when the feature is constant over those rows,
// so no VIF is defined for it.
func (a *Analyzer) vifOf(feature string, rows []int) (float64, bool) {
	predictors := make([]string, 0, len(a.active)-1)
	for _, name := range a.active {
		if name != feature {
			predictors = append(predictors, name)
		}
	}

	n := len(rows)
	design := mat.NewDense(n, len(predictors)+1, nil)
	response := mat.NewVecDense(n, nil)
	for ri, row := range rows {
		design.Set(ri, 0, 1)
		for ci, name := range predictors {
			design.Set(ri, ci+1, a.columns[name][row])
		}
		response.SetVec(ri, a.columns[feature][row])
	}

	mean := stat.Mean(response.RawVector().Data, nil)
	sst := 0.0
	for i := 0; i < n; i++ {
		d := response.AtVec(i) - mean
		sst += d * d
	}
	if sst == 0 {
		return 0, false
	}

	var theta mat.VecDense
	if err := theta.SolveVec(design, response); err != nil {
		if _, nearSingular := err.(mat.Condition); !nearSingular {
			// exactly singular design: the feature is an exact
			// combination of the others
			return vifSentinel, true
		}
	}

	var fitted mat.VecDense
	fitted.MulVec(design, &theta)
	ssr := 0.0
	for i := 0; i < n; i++ {
		d := response.AtVec(i) - fitted.AtVec(i)
		ssr += d * d
	}
	if math.IsNaN(ssr) || math.IsInf(ssr, 0) {
		return vifSentinel, true
	}

	r2 := 1 - ssr/sst
	if r2 < 0 {
		r2 = 0
	}
	if 1-r2 < 1/vifSentinel {
		return vifSentinel, true
	}
	return 1 / (1 - r2), true
}

func vifSeverity(vif float64) Severity {
	switch {
	case vif < 5:
		return SeverityAcceptable
	case vif <= 10:
		return SeverityModerate
	default:
		return SeverityHigh
	}
}

// completeRows lists the row indexes where every active feature
// is observed.
func (a *Analyzer) completeRows() []int {
	if len(a.active) == 0 {
		return nil
	}
	rows := []int{}
	for i := range a.columns[a.active[0]] {
		complete := true
		for _, name := range a.active {
			if math.IsNaN(a.columns[name][i]) {
				complete = false
				break
			}
		}
		if complete {
			rows = append(rows, i)
		}
	}
	return rows
}
