package correlation_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/statops/tabstat/pkg/domain/analysis/correlation"
	"github.com/statops/tabstat/pkg/domain/analysis/frame"
	"github.com/statops/tabstat/pkg/utils/cmp"
	"github.com/statops/tabstat/pkg/utils/try"
)

func analyzerOver(t *testing.T, csv string) *correlation.Analyzer {
	t.Helper()
	f := try.To(frame.FromCSV(strings.NewReader(csv))).OrFatal(t)
	return try.To(correlation.New(f)).OrFatal(t)
}

func names(pairs []correlation.Pair) []string {
	ss := make([]string, len(pairs))
	for i, p := range pairs {
		ss[i] = p.First + ":" + p.Second
	}
	return ss
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// linearTable has b = 2a (r = 1), c = 11 - a (r = -1) and a column d
// chosen so that r(a, d) = -0.2 exactly.
const linearTable = `a,b,c,d
1,2,10,5
2,4,9,3
3,6,8,8
4,8,7,1
5,10,6,9
6,12,5,2
7,14,4,7
8,16,3,4
9,18,2,6
10,20,1,0
`

// orthogonalTable has three mutually uncorrelated columns.
const orthogonalTable = `u,v,w
1,1,1
-1,1,1
1,-1,1
-1,-1,1
1,1,-1
-1,1,-1
1,-1,-1
-1,-1,-1
`

// chainTable has b = a + c with a and c uncorrelated, so that
// r(a, b) = r(b, c) = 1/sqrt(2) ~ 0.707 while r(a, c) = 0.
// d is uncorrelated with all of them and e is constant.
const chainTable = `a,b,c,d,e
1,2,1,9,7
-1,0,1,1,7
1,0,-1,9,7
-1,-2,-1,1,7
1,2,1,1,7
-1,0,1,9,7
1,0,-1,1,7
-1,-2,-1,9,7
`

func TestNew(t *testing.T) {
	t.Run("it rejects a table with no rows", func(t *testing.T) {
		f := try.To(frame.FromCSV(strings.NewReader("a,b\n"))).OrFatal(t)
		if _, err := correlation.New(f); !errors.Is(err, correlation.ErrEmptyTable) {
			t.Errorf("error should be ErrEmptyTable, but is %v", err)
		}
	})

	t.Run("it accepts a table without numeric columns", func(t *testing.T) {
		f := try.To(frame.FromCSV(strings.NewReader("word\nfoo\nbar\n"))).OrFatal(t)
		a := try.To(correlation.New(f)).OrFatal(t)
		if a.TotalFeatures() != 0 {
			t.Errorf("total features should be 0, but is %d", a.TotalFeatures())
		}
	})

	t.Run("it counts degenerate numeric columns as features", func(t *testing.T) {
		a := analyzerOver(t, chainTable)
		if a.TotalFeatures() != 5 {
			t.Errorf("total features should be 5, but is %d", a.TotalFeatures())
		}
		if !cmp.SliceEq(a.Features(), []string{"a", "b", "c", "d", "e"}) {
			t.Errorf("features are listed in table order: %v", a.Features())
		}
	})
}

func TestPair(t *testing.T) {
	t.Run("strength buckets split at 0.5, 0.7 and 0.9 by absolute value", func(t *testing.T) {
		for _, testcase := range []struct {
			r    float64
			want correlation.Strength
		}{
			{r: 1.0, want: correlation.StrengthVeryHigh},
			{r: 0.9, want: correlation.StrengthVeryHigh},
			{r: -0.95, want: correlation.StrengthVeryHigh},
			{r: 0.89999, want: correlation.StrengthHigh},
			{r: 0.7, want: correlation.StrengthHigh},
			{r: -0.7, want: correlation.StrengthHigh},
			{r: 0.69999, want: correlation.StrengthModerate},
			{r: 0.5, want: correlation.StrengthModerate},
			{r: 0.49999, want: correlation.StrengthLow},
			{r: 0.0, want: correlation.StrengthLow},
		} {
			got := correlation.Pair{First: "x", Second: "y", R: testcase.r}.Strength()
			if got != testcase.want {
				t.Errorf("strength of r=%v should be %s, but is %s", testcase.r, testcase.want, got)
			}
		}
	})

	t.Run("direction follows the sign of r", func(t *testing.T) {
		if d := (correlation.Pair{R: 0.2}).Direction(); d != correlation.Positive {
			t.Errorf("direction of r=0.2 should be positive, but is %s", d)
		}
		if d := (correlation.Pair{R: -0.2}).Direction(); d != correlation.Negative {
			t.Errorf("direction of r=-0.2 should be negative, but is %s", d)
		}
	})
}

func TestEnhancedCorrelations(t *testing.T) {
	t.Run("it reports pairs at or above the threshold, strongest first", func(t *testing.T) {
		a := analyzerOver(t, linearTable)
		rep := a.EnhancedCorrelations(0.5)

		if !cmp.SliceEq(names(rep.Pairs), []string{"a:b", "a:c", "b:c"}) {
			t.Errorf("unexpected pairs: %v", names(rep.Pairs))
		}
		if !approx(rep.Pairs[0].R, 1.0) {
			t.Errorf("r(a, b) should be 1.0, but is %v", rep.Pairs[0].R)
		}
		if !approx(rep.Pairs[1].R, -1.0) {
			t.Errorf("r(a, c) should be -1.0, but is %v", rep.Pairs[1].R)
		}
	})

	t.Run("it breaks ties in |r| by feature names", func(t *testing.T) {
		a := analyzerOver(t, linearTable)
		rep := a.EnhancedCorrelations(0)

		want := []string{"a:b", "a:c", "b:c", "a:d", "b:d", "c:d"}
		if !cmp.SliceEq(names(rep.Pairs), want) {
			t.Errorf("pairs should be %v, but are %v", want, names(rep.Pairs))
		}
	})

	t.Run("lowering the threshold only ever adds pairs", func(t *testing.T) {
		a := analyzerOver(t, linearTable)

		loose := a.EnhancedCorrelations(0).Pairs
		middle := a.EnhancedCorrelations(0.3).Pairs
		tight := a.EnhancedCorrelations(0.95).Pairs

		if len(loose) != 6 || len(middle) != 3 || len(tight) != 3 {
			t.Errorf(
				"pair counts should shrink as the threshold grows: %d, %d, %d",
				len(loose), len(middle), len(tight),
			)
		}
		if !cmp.SliceSubsetWith(loose, middle, cmp.EqEq[correlation.Pair]) {
			t.Errorf("pairs at 0.3 should all appear at 0: %v vs %v", middle, loose)
		}
		if !cmp.SliceSubsetWith(middle, tight, cmp.EqEq[correlation.Pair]) {
			t.Errorf("pairs at 0.95 should all appear at 0.3: %v vs %v", tight, middle)
		}
	})

	t.Run("fixed-cutoff views ignore the requested threshold", func(t *testing.T) {
		a := analyzerOver(t, linearTable)
		rep := a.EnhancedCorrelations(0.99999)

		high := []string{"a:b", "a:c", "b:c"}
		if !cmp.SliceEq(names(rep.HighPairs), high) {
			t.Errorf("high pairs should be %v, but are %v", high, names(rep.HighPairs))
		}
		if !cmp.SliceEq(names(rep.VeryHighPairs), high) {
			t.Errorf("very high pairs should be %v, but are %v", high, names(rep.VeryHighPairs))
		}
		if !cmp.SliceEq(names(rep.MulticollinearPairs), high) {
			t.Errorf("multicollinear pairs should be %v, but are %v", high, names(rep.MulticollinearPairs))
		}
	})

	t.Run("strength distribution and statistics cover every pair", func(t *testing.T) {
		a := analyzerOver(t, linearTable)
		rep := a.EnhancedCorrelations(0.5)

		if n := rep.StrengthDistribution[correlation.StrengthVeryHigh]; n != 3 {
			t.Errorf("3 pairs are very high, but %d reported", n)
		}
		if n := rep.StrengthDistribution[correlation.StrengthLow]; n != 3 {
			t.Errorf("3 pairs are low, but %d reported", n)
		}
		if !approx(rep.Statistics.MeanAbsolute, 0.6) {
			t.Errorf("mean |r| should be 0.6, but is %v", rep.Statistics.MeanAbsolute)
		}
		if !approx(rep.Statistics.Max, 1.0) || !approx(rep.Statistics.Min, -1.0) {
			t.Errorf(
				"extremes should be 1 and -1, but are %v and %v",
				rep.Statistics.Max, rep.Statistics.Min,
			)
		}
	})

	t.Run("the matrix is symmetric with a unit diagonal", func(t *testing.T) {
		a := analyzerOver(t, linearTable)
		m := a.EnhancedCorrelations(0.5).Matrix

		for _, x := range []string{"a", "b", "c", "d"} {
			if !approx(m[x][x], 1.0) {
				t.Errorf("r(%s, %s) should be 1, but is %v", x, x, m[x][x])
			}
			for _, y := range []string{"a", "b", "c", "d"} {
				if m[x][y] != m[y][x] {
					t.Errorf("matrix is asymmetric at (%s, %s)", x, y)
				}
				if math.Abs(m[x][y]) > 1 {
					t.Errorf("r(%s, %s) is out of range: %v", x, y, m[x][y])
				}
			}
		}
	})

	t.Run("a table with a single numeric column yields empty reports", func(t *testing.T) {
		a := analyzerOver(t, "x,word\n1,foo\n2,bar\n3,baz\n")
		rep := a.EnhancedCorrelations(0)

		if len(rep.Pairs) != 0 || len(rep.HighPairs) != 0 {
			t.Errorf("no pairs exist for one column: %v", rep)
		}
		if a.TotalFeatures() != 1 {
			t.Errorf("total features should be 1, but is %d", a.TotalFeatures())
		}
	})
}

func TestVIF(t *testing.T) {
	t.Run("uncorrelated features score close to 1 and stay acceptable", func(t *testing.T) {
		a := analyzerOver(t, orthogonalTable)
		rep := a.VIF()

		if len(rep.Scores) != 3 {
			t.Fatalf("3 features should be scored, but got %v", rep.Scores)
		}
		for _, s := range rep.Scores {
			if !approx(s.VIF, 1.0) {
				t.Errorf("VIF of %s should be 1, but is %v", s.Feature, s.VIF)
			}
			if s.Severity != correlation.SeverityAcceptable {
				t.Errorf("severity of %s should be acceptable, but is %s", s.Feature, s.Severity)
			}
		}
		if len(rep.Problematic) != 0 {
			t.Errorf("no feature is problematic, but got %v", rep.Problematic)
		}
		if rep.Overall != correlation.SeverityAcceptable {
			t.Errorf("overall level should be acceptable, but is %s", rep.Overall)
		}
	})

	t.Run("an exact linear combination is flagged high, not infinite", func(t *testing.T) {
		// b = a + c exactly, so every regression fits perfectly
		a := analyzerOver(t, `a,b,c
1,2,1
-1,0,1
1,0,-1
-1,-2,-1
1,2,1
-1,0,1
1,0,-1
-1,-2,-1
`)
		rep := a.VIF()

		if len(rep.Scores) != 3 {
			t.Fatalf("3 features should be scored, but got %v", rep.Scores)
		}
		for _, s := range rep.Scores {
			if s.VIF < 1e9 {
				t.Errorf("VIF of %s should be near the ceiling, but is %v", s.Feature, s.VIF)
			}
			if math.IsInf(s.VIF, 0) || math.IsNaN(s.VIF) {
				t.Errorf("VIF of %s must stay finite, but is %v", s.Feature, s.VIF)
			}
			if s.Severity != correlation.SeverityHigh {
				t.Errorf("severity of %s should be high, but is %s", s.Feature, s.Severity)
			}
		}
		if !cmp.SliceContentEq(rep.Problematic, []string{"a", "b", "c"}) {
			t.Errorf("all features are problematic, but got %v", rep.Problematic)
		}
		if rep.Overall != correlation.SeverityHigh {
			t.Errorf("overall level should be high, but is %s", rep.Overall)
		}
	})

	t.Run("it is skipped below 3 usable numeric features", func(t *testing.T) {
		a := analyzerOver(t, "x,y\n1,4\n2,6\n3,5\n4,9\n")
		rep := a.VIF()

		if len(rep.Scores) != 0 || len(rep.Problematic) != 0 {
			t.Errorf("VIF needs 3 features, but got %v", rep)
		}
		if rep.Overall != correlation.SeverityAcceptable {
			t.Errorf("overall level should be acceptable, but is %s", rep.Overall)
		}
	})

	t.Run("it is skipped when complete rows cannot support the fit", func(t *testing.T) {
		a := analyzerOver(t, "x,y,z\n1,4,2\n2,6,9\n3,5,4\n")
		if rep := a.VIF(); len(rep.Scores) != 0 {
			t.Errorf("3 rows cannot fit 3 predictors, but got %v", rep.Scores)
		}
	})
}

func TestHeatmapData(t *testing.T) {
	t.Run("it lays the matrix out row-major with observed extremes", func(t *testing.T) {
		a := analyzerOver(t, linearTable)
		h := a.HeatmapData()

		if !cmp.SliceEq(h.Columns, []string{"a", "b", "c", "d"}) {
			t.Errorf("columns should follow table order, but are %v", h.Columns)
		}
		if len(h.Cells) != 4 || len(h.Cells[0]) != 4 {
			t.Fatalf("grid should be 4x4, but is %v", h.Cells)
		}
		if !approx(h.Cells[0][1], 1.0) || !approx(h.Cells[0][2], -1.0) || !approx(h.Cells[0][3], -0.2) {
			t.Errorf("unexpected first row: %v", h.Cells[0])
		}
		if !approx(h.Min, -1.0) || !approx(h.Max, 1.0) {
			t.Errorf("extremes should be -1 and 1, but are %v and %v", h.Min, h.Max)
		}
	})

	t.Run("it leaves out degenerate columns", func(t *testing.T) {
		a := analyzerOver(t, chainTable)
		h := a.HeatmapData()

		if !cmp.SliceEq(h.Columns, []string{"a", "b", "c", "d"}) {
			t.Errorf("constant column e should not be plotted: %v", h.Columns)
		}
	})

	t.Run("it is empty without numeric columns", func(t *testing.T) {
		a := analyzerOver(t, "word\nfoo\nbar\n")
		h := a.HeatmapData()

		if len(h.Columns) != 0 || len(h.Cells) != 0 {
			t.Errorf("nothing to plot, but got %v", h)
		}
		if h.Min != 0 || h.Max != 0 {
			t.Errorf("extremes of an empty grid should be 0, but are %v and %v", h.Min, h.Max)
		}
	})
}

func TestClustering(t *testing.T) {
	t.Run("correlation is transitive across clusters", func(t *testing.T) {
		a := analyzerOver(t, chainTable)
		rep := a.Clustering()

		if rep.Count != 3 {
			t.Fatalf("3 clusters expected, but got %d: %v", rep.Count, rep.Clusters)
		}
		// a-b and b-c clear the cutoff, a-c does not; still one group
		if !cmp.SliceEq(rep.Clusters[0].Features, []string{"a", "b", "c"}) {
			t.Errorf("largest cluster should be a, b, c but is %v", rep.Clusters[0].Features)
		}
		if rep.Clusters[0].Name != "cluster_1" {
			t.Errorf("clusters are named by rank, but got %s", rep.Clusters[0].Name)
		}
	})

	t.Run("isolated and degenerate features form singletons", func(t *testing.T) {
		a := analyzerOver(t, chainTable)
		rep := a.Clustering()

		if !cmp.SliceEq(rep.Clusters[1].Features, []string{"d"}) {
			t.Errorf("d links to nothing, but got %v", rep.Clusters[1].Features)
		}
		if !cmp.SliceEq(rep.Clusters[2].Features, []string{"e"}) {
			t.Errorf("constant e still gets a cluster, but got %v", rep.Clusters[2].Features)
		}
	})

	t.Run("every numeric feature lands in exactly one cluster", func(t *testing.T) {
		a := analyzerOver(t, linearTable)
		rep := a.Clustering()

		seen := []string{}
		for _, c := range rep.Clusters {
			seen = append(seen, c.Features...)
		}
		if !cmp.SliceContentEq(seen, a.Features()) {
			t.Errorf("clusters should partition %v, but cover %v", a.Features(), seen)
		}
	})
}

func TestRelationshipInsights(t *testing.T) {
	t.Run("it picks the strongest pairs per direction", func(t *testing.T) {
		a := analyzerOver(t, linearTable)
		rep := a.RelationshipInsights()

		if !cmp.SliceEq(names(rep.StrongestPositive), []string{"a:b", "c:d"}) {
			t.Errorf("unexpected positive pairs: %v", names(rep.StrongestPositive))
		}
		if !cmp.SliceEq(names(rep.StrongestNegative), []string{"a:c", "b:c", "a:d", "b:d"}) {
			t.Errorf("unexpected negative pairs: %v", names(rep.StrongestNegative))
		}
		if rep.StrongestNegative[0].R > rep.StrongestNegative[2].R {
			t.Errorf("negative pairs should be most negative first: %v", rep.StrongestNegative)
		}
	})

	t.Run("it lists at most 5 pairs per direction", func(t *testing.T) {
		// 6 columns tracking each other yield 15 positive pairs
		a := analyzerOver(t, `p,q,r,s,t,u
1,2,3,4,5,6
2,4,6,8,10,12
3,6,9,12,15,18
4,8,12,16,20,24
`)
		rep := a.RelationshipInsights()

		if len(rep.StrongestPositive) != 5 {
			t.Errorf("positive pairs should be capped at 5, but got %d", len(rep.StrongestPositive))
		}
		if len(rep.StrongestNegative) != 0 {
			t.Errorf("no negative pair exists, but got %v", rep.StrongestNegative)
		}
	})

	t.Run("practically independent pairs are called out", func(t *testing.T) {
		a := analyzerOver(t, orthogonalTable)
		rep := a.RelationshipInsights()

		if !cmp.SliceContentEq(
			names(rep.Uncorrelated),
			[]string{"u:v", "u:w", "v:w"},
		) {
			t.Errorf("all pairs are independent, but got %v", names(rep.Uncorrelated))
		}
		if len(rep.Patterns) != 0 {
			t.Errorf("nothing is connected, but got %v", rep.Patterns)
		}
	})

	t.Run("connectivity counts moderate and stronger links", func(t *testing.T) {
		a := analyzerOver(t, linearTable)
		rep := a.RelationshipInsights()

		want := []correlation.Connectivity{
			{Feature: "a", Links: 2},
			{Feature: "b", Links: 2},
			{Feature: "c", Links: 2},
		}
		if !cmp.SliceEq(rep.Patterns, want) {
			t.Errorf("patterns should be %v, but are %v", want, rep.Patterns)
		}
	})
}

func TestMulticollinearityWarnings(t *testing.T) {
	t.Run("very high pairs and high VIF both raise warnings", func(t *testing.T) {
		a := analyzerOver(t, linearTable)
		rep := a.MulticollinearityWarnings()

		pairWarnings := 0
		vifWarnings := 0
		for _, w := range rep.Warnings {
			switch w.Kind {
			case correlation.WarnHighCorrelation:
				pairWarnings += 1
				if len(w.Features) != 2 {
					t.Errorf("a pair warning names 2 features, but got %v", w.Features)
				}
			case correlation.WarnHighVIF:
				vifWarnings += 1
				if len(w.Features) != 1 {
					t.Errorf("a VIF warning names 1 feature, but got %v", w.Features)
				}
			}
			if w.Severity != correlation.SeverityHigh {
				t.Errorf("warning severity should be high, but is %s", w.Severity)
			}
			if w.Recommendation == "" {
				t.Error("every warning carries a recommendation")
			}
		}
		if pairWarnings != 3 {
			t.Errorf("3 pairs have |r| > 0.9, but %d warnings raised", pairWarnings)
		}
		if vifWarnings == 0 {
			t.Error("perfectly collinear features should raise VIF warnings")
		}
		if rep.Assessment != string(correlation.SeverityHigh) {
			t.Errorf("assessment should be high, but is %s", rep.Assessment)
		}
		if len(rep.Recommendations) != len(rep.Warnings) {
			t.Errorf(
				"recommendations track warnings: %d vs %d",
				len(rep.Recommendations), len(rep.Warnings),
			)
		}
	})

	t.Run("a clean table is assessed good", func(t *testing.T) {
		a := analyzerOver(t, orthogonalTable)
		rep := a.MulticollinearityWarnings()

		if len(rep.Warnings) != 0 {
			t.Errorf("nothing to warn about, but got %v", rep.Warnings)
		}
		if rep.Assessment != correlation.AssessmentGood {
			t.Errorf("assessment should be good, but is %s", rep.Assessment)
		}
	})
}

func TestCompleteAnalysis(t *testing.T) {
	t.Run("each section matches its standalone operation", func(t *testing.T) {
		a := analyzerOver(t, linearTable)
		complete := a.CompleteAnalysis(0.5)

		if !cmp.SliceEq(names(complete.Enhanced.Pairs), names(a.EnhancedCorrelations(0.5).Pairs)) {
			t.Error("enhanced section diverges from the standalone report")
		}
		if want := a.VIF(); !cmp.SliceEq(complete.VIF.Scores, want.Scores) {
			t.Errorf("VIF section should be %v, but is %v", want.Scores, complete.VIF.Scores)
		}
		if want := a.HeatmapData(); !cmp.SliceEq(complete.Heatmap.Columns, want.Columns) {
			t.Error("heatmap section diverges from the standalone report")
		}
		if want := a.Clustering(); complete.Clustering.Count != want.Count {
			t.Error("clustering section diverges from the standalone report")
		}
		if want := a.MulticollinearityWarnings(); complete.Warnings.Assessment != want.Assessment {
			t.Error("warnings section diverges from the standalone report")
		}
	})

	t.Run("repeating the analysis yields identical results", func(t *testing.T) {
		a := analyzerOver(t, linearTable)

		first := a.CompleteAnalysis(0.3)
		second := a.CompleteAnalysis(0.3)

		if !cmp.SliceEq(first.Enhanced.Pairs, second.Enhanced.Pairs) {
			t.Error("pairs should be deterministic")
		}
		if !cmp.SliceEq(first.VIF.Scores, second.VIF.Scores) {
			t.Error("VIF scores should be deterministic")
		}
		if first.Warnings.Assessment != second.Warnings.Assessment {
			t.Error("assessment should be deterministic")
		}
	})
}

func TestPairwiseMissing(t *testing.T) {
	t.Run("pairs are computed over overlapping observations", func(t *testing.T) {
		// x and z never overlap; y overlaps both
		a := analyzerOver(t, `x,y,z
1,1,
2,2,
3,3,
,4,1
,5,2
,6,3
`)
		rep := a.EnhancedCorrelations(0)

		if !cmp.SliceEq(names(rep.Pairs), []string{"x:y", "y:z"}) {
			t.Errorf("x:z has no overlap and must be left out, but got %v", names(rep.Pairs))
		}

		h := a.HeatmapData()
		if !cmp.SliceEq(h.Columns, []string{"x", "y", "z"}) {
			t.Errorf("all three columns are plotted, but got %v", h.Columns)
		}
		if h.Cells[0][2] != 0 {
			t.Errorf("an uncomputable cell renders as 0, but is %v", h.Cells[0][2])
		}

		// x-y and y-z links still pull all three together
		clusters := a.Clustering()
		if clusters.Count != 1 {
			t.Errorf("one cluster expected, but got %v", clusters.Clusters)
		}
	})
}
