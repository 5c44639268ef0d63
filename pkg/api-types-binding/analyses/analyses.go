package analyses

import (
	"time"

	"github.com/statops/tabstat/pkg/api/types/analyses"
	"github.com/statops/tabstat/pkg/api/types/misc/rfctime"
	"github.com/statops/tabstat/pkg/domain"
	"github.com/statops/tabstat/pkg/domain/analysis/correlation"
	"github.com/statops/tabstat/pkg/utils/slices"
)

// ComposeMeta builds the envelope shared by every analysis response.
func ComposeMeta(
	datasetId string, kind domain.AnalysisKind, at time.Time,
	totalFeatures int, threshold *float64,
) analyses.Meta {
	return analyses.Meta{
		DatasetId:     datasetId,
		ComputedAt:    rfctime.RFC3339(at),
		Threshold:     threshold,
		TotalFeatures: totalFeatures,
		AnalysisType:  kind.String(),
	}
}

func ComposePair(p correlation.Pair) analyses.Pair {
	return analyses.Pair{
		Feature1:    p.First,
		Feature2:    p.Second,
		Correlation: p.R,
		Strength:    string(p.Strength()),
		Direction:   string(p.Direction()),
	}
}

func ComposeEnhanced(r correlation.EnhancedReport) analyses.Enhanced {
	distribution := make(map[string]int, len(r.StrengthDistribution))
	for strength, count := range r.StrengthDistribution {
		distribution[string(strength)] = count
	}

	return analyses.Enhanced{
		Matrix:               r.Matrix,
		Pairs:                slices.Map(r.Pairs, ComposePair),
		HighPairs:            slices.Map(r.HighPairs, ComposePair),
		VeryHighPairs:        slices.Map(r.VeryHighPairs, ComposePair),
		MulticollinearPairs:  slices.Map(r.MulticollinearPairs, ComposePair),
		StrengthDistribution: distribution,
		Statistics: analyses.Statistics{
			MeanAbsolute: r.Statistics.MeanAbsolute,
			Max:          r.Statistics.Max,
			Min:          r.Statistics.Min,
		},
	}
}

func ComposeVIF(r correlation.VIFReport) analyses.VIF {
	interpretation := make(map[string]string, len(r.Interpretation))
	for severity, text := range r.Interpretation {
		interpretation[string(severity)] = text
	}

	return analyses.VIF{
		Scores: slices.Map(r.Scores, func(s correlation.VIFScore) analyses.VIFScore {
			return analyses.VIFScore{
				Feature:  s.Feature,
				VIF:      s.VIF,
				Severity: string(s.Severity),
			}
		}),
		Problematic:    append([]string{}, r.Problematic...),
		Overall:        string(r.Overall),
		Interpretation: interpretation,
	}
}

func ComposeHeatmap(h correlation.Heatmap) analyses.Heatmap {
	return analyses.Heatmap{
		Columns: append([]string{}, h.Columns...),
		Cells: slices.Map(h.Cells, func(row []float64) []float64 {
			return append([]float64{}, row...)
		}),
		Min: h.Min,
		Max: h.Max,
	}
}

func ComposeClustering(r correlation.ClusterReport) analyses.Clustering {
	return analyses.Clustering{
		Clusters: slices.Map(r.Clusters, func(c correlation.Cluster) analyses.Cluster {
			return analyses.Cluster{
				Name:     c.Name,
				Features: append([]string{}, c.Features...),
			}
		}),
		Count: r.Count,
	}
}

func ComposeInsights(r correlation.InsightsReport) analyses.Insights {
	return analyses.Insights{
		StrongestPositive: slices.Map(r.StrongestPositive, ComposePair),
		StrongestNegative: slices.Map(r.StrongestNegative, ComposePair),
		Uncorrelated:      slices.Map(r.Uncorrelated, ComposePair),
		Patterns: slices.Map(r.Patterns, func(c correlation.Connectivity) analyses.Connectivity {
			return analyses.Connectivity{Feature: c.Feature, Links: c.Links}
		}),
	}
}

func ComposeWarnings(r correlation.WarningsReport) analyses.Warnings {
	return analyses.Warnings{
		Warnings: slices.Map(r.Warnings, func(w correlation.Warning) analyses.Warning {
			return analyses.Warning{
				Kind:           string(w.Kind),
				Features:       append([]string{}, w.Features...),
				Severity:       string(w.Severity),
				Recommendation: w.Recommendation,
			}
		}),
		Count:           len(r.Warnings),
		Assessment:      r.Assessment,
		Recommendations: append([]string{}, r.Recommendations...),
	}
}

func ComposeComplete(r correlation.CompleteReport) analyses.Complete {
	return analyses.Complete{
		Enhanced:   ComposeEnhanced(r.Enhanced),
		VIF:        ComposeVIF(r.VIF),
		Heatmap:    ComposeHeatmap(r.Heatmap),
		Clustering: ComposeClustering(r.Clustering),
		Insights:   ComposeInsights(r.Insights),
		Warnings:   ComposeWarnings(r.Warnings),
	}
}
