package correlation

import "fmt"

// WarningKind tells what triggered a warning.
type WarningKind string

const (
	WarnHighCorrelation WarningKind = "high_correlation" // pair with |r| > 0.9
	WarnHighVIF         WarningKind = "high_vif"         // feature with VIF > 10
)

// AssessmentGood is reported when nothing warranted a warning.
const AssessmentGood = "good"

// Warning flags one redundancy problem in the table.
type Warning struct {
	Kind WarningKind

	// Features names the pair, or the single feature for a VIF
	// warning.
	Features []string

	Severity       Severity
	Recommendation string
}

// WarningsReport collects everything worth fixing about the table's
// numeric features before modelling with them.
type WarningsReport struct {
	// Warnings lists correlation warnings by descending |r| first,
	// then VIF warnings by descending VIF.
	Warnings []Warning

	// Assessment is "good" with no warnings, otherwise the worst
	// severity among them.
	Assessment string

	// Recommendations repeats each warning's advice, in order.
	Recommendations []string
}

// MulticollinearityWarnings turns very high correlations and high VIF
// scores into actionable warnings.
func (a *Analyzer) MulticollinearityWarnings() WarningsReport {
	return buildWarnings(a.EnhancedCorrelations(0).VeryHighPairs, a.VIF())
}

// buildWarnings is shared with CompleteAnalysis so that the complete
// report never recomputes pairs or VIF for its warnings section.
func buildWarnings(veryHigh []Pair, vif VIFReport) WarningsReport {
	rep := WarningsReport{
		Warnings:        []Warning{},
		Assessment:      AssessmentGood,
		Recommendations: []string{},
	}

	for _, p := range veryHigh {
		rep.Warnings = append(rep.Warnings, Warning{
			Kind:     WarnHighCorrelation,
			Features: []string{p.First, p.Second},
			Severity: SeverityHigh,
			Recommendation: fmt.Sprintf(
				"features %q and %q are highly correlated; consider dropping one",
				p.First, p.Second,
			),
		})
	}
	for _, s := range vif.Scores {
		if s.VIF <= 10 {
			continue
		}
		rep.Warnings = append(rep.Warnings, Warning{
			Kind:     WarnHighVIF,
			Features: []string{s.Feature},
			Severity: SeverityHigh,
			Recommendation: fmt.Sprintf(
				"consider removing or combining feature %q", s.Feature,
			),
		})
	}

	if 0 < len(rep.Warnings) {
		worst := SeverityAcceptable
		for _, w := range rep.Warnings {
			worst = maxSeverity(worst, w.Severity)
			rep.Recommendations = append(rep.Recommendations, w.Recommendation)
		}
		rep.Assessment = string(worst)
	}

	return rep
}
