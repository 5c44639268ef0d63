package analyses

import (
	"github.com/statops/tabstat/pkg/api/types/misc/rfctime"
	"github.com/statops/tabstat/pkg/utils/cmp"
)

// Meta is the envelope shared by every analysis response.
//
// Threshold is set only where the analysis takes one (enhanced and
// complete); other analyses run on fixed internal cutoffs.
type Meta struct {
	DatasetId     string          `json:"dataset_id"`
	ComputedAt    rfctime.RFC3339 `json:"computed_at"`
	Threshold     *float64        `json:"threshold,omitempty"`
	TotalFeatures int             `json:"total_features"`
	AnalysisType  string          `json:"analysis_type"`
}

func (m Meta) Equal(o Meta) bool {
	return m.DatasetId == o.DatasetId &&
		m.ComputedAt.Equal(o.ComputedAt) &&
		cmp.PEqEq(m.Threshold, o.Threshold) &&
		m.TotalFeatures == o.TotalFeatures &&
		m.AnalysisType == o.AnalysisType
}

// Pair is one unordered feature pair and its correlation.
type Pair struct {
	Feature1    string  `json:"feature_1"`
	Feature2    string  `json:"feature_2"`
	Correlation float64 `json:"correlation"`
	Strength    string  `json:"strength"`
	Direction   string  `json:"direction"`
}

type Statistics struct {
	MeanAbsolute float64 `json:"mean_absolute_correlation"`
	Max          float64 `json:"max_correlation"`
	Min          float64 `json:"min_correlation"`
}

type Enhanced struct {
	Matrix               map[string]map[string]float64 `json:"correlation_matrix"`
	Pairs                []Pair                        `json:"correlation_pairs"`
	HighPairs            []Pair                        `json:"high_correlations"`
	VeryHighPairs        []Pair                        `json:"very_high_correlations"`
	MulticollinearPairs  []Pair                        `json:"multicollinearity_pairs"`
	StrengthDistribution map[string]int                `json:"strength_distribution"`
	Statistics           Statistics                    `json:"statistics"`
}

func (e Enhanced) Equal(o Enhanced) bool {
	return cmp.MapEqWith(e.Matrix, o.Matrix, cmp.MapEq[string, float64]) &&
		cmp.SliceEq(e.Pairs, o.Pairs) &&
		cmp.SliceEq(e.HighPairs, o.HighPairs) &&
		cmp.SliceEq(e.VeryHighPairs, o.VeryHighPairs) &&
		cmp.SliceEq(e.MulticollinearPairs, o.MulticollinearPairs) &&
		cmp.MapEq(e.StrengthDistribution, o.StrengthDistribution) &&
		e.Statistics == o.Statistics
}

type EnhancedResponse struct {
	Meta
	Analysis Enhanced `json:"analysis"`
}

func (e EnhancedResponse) Equal(o EnhancedResponse) bool {
	return e.Meta.Equal(o.Meta) && e.Analysis.Equal(o.Analysis)
}

type VIFScore struct {
	Feature  string  `json:"feature"`
	VIF      float64 `json:"vif"`
	Severity string  `json:"severity"`
}

type VIF struct {
	Scores         []VIFScore        `json:"vif_scores"`
	Problematic    []string          `json:"problematic_features"`
	Overall        string            `json:"overall_level"`
	Interpretation map[string]string `json:"interpretation_guide"`
}

func (v VIF) Equal(o VIF) bool {
	return cmp.SliceEq(v.Scores, o.Scores) &&
		cmp.SliceEq(v.Problematic, o.Problematic) &&
		v.Overall == o.Overall &&
		cmp.MapEq(v.Interpretation, o.Interpretation)
}

type VIFResponse struct {
	Meta
	Analysis VIF `json:"analysis"`
}

func (v VIFResponse) Equal(o VIFResponse) bool {
	return v.Meta.Equal(o.Meta) && v.Analysis.Equal(o.Analysis)
}

type Heatmap struct {
	Columns []string    `json:"columns"`
	Cells   [][]float64 `json:"heatmap"`
	Min     float64     `json:"min_value"`
	Max     float64     `json:"max_value"`
}

func (h Heatmap) Equal(o Heatmap) bool {
	return cmp.SliceEq(h.Columns, o.Columns) &&
		cmp.SliceEqWith(h.Cells, o.Cells, cmp.SliceEq[float64]) &&
		h.Min == o.Min &&
		h.Max == o.Max
}

type HeatmapResponse struct {
	Meta
	Analysis Heatmap `json:"analysis"`
}

func (h HeatmapResponse) Equal(o HeatmapResponse) bool {
	return h.Meta.Equal(o.Meta) && h.Analysis.Equal(o.Analysis)
}

type Cluster struct {
	Name     string   `json:"name"`
	Features []string `json:"features"`
}

func (c Cluster) Equal(o Cluster) bool {
	return c.Name == o.Name && cmp.SliceEq(c.Features, o.Features)
}

type Clustering struct {
	Clusters []Cluster `json:"clusters"`
	Count    int       `json:"cluster_count"`
}

func (c Clustering) Equal(o Clustering) bool {
	return cmp.SliceEqWith(c.Clusters, o.Clusters, Cluster.Equal) &&
		c.Count == o.Count
}

type ClusteringResponse struct {
	Meta
	Analysis Clustering `json:"analysis"`
}

func (c ClusteringResponse) Equal(o ClusteringResponse) bool {
	return c.Meta.Equal(o.Meta) && c.Analysis.Equal(o.Analysis)
}

// Connectivity counts how many features a feature is linked with.
type Connectivity struct {
	Feature string `json:"feature"`
	Links   int    `json:"links"`
}

type Insights struct {
	StrongestPositive []Pair         `json:"strongest_positive"`
	StrongestNegative []Pair         `json:"strongest_negative"`
	Uncorrelated      []Pair         `json:"uncorrelated"`
	Patterns          []Connectivity `json:"patterns"`
}

func (i Insights) Equal(o Insights) bool {
	return cmp.SliceEq(i.StrongestPositive, o.StrongestPositive) &&
		cmp.SliceEq(i.StrongestNegative, o.StrongestNegative) &&
		cmp.SliceEq(i.Uncorrelated, o.Uncorrelated) &&
		cmp.SliceEq(i.Patterns, o.Patterns)
}

type InsightsResponse struct {
	Meta
	Analysis Insights `json:"analysis"`
}

func (i InsightsResponse) Equal(o InsightsResponse) bool {
	return i.Meta.Equal(o.Meta) && i.Analysis.Equal(o.Analysis)
}

type Warning struct {
	Kind           string   `json:"type"`
	Features       []string `json:"features"`
	Severity       string   `json:"severity"`
	Recommendation string   `json:"recommendation"`
}

func (w Warning) Equal(o Warning) bool {
	return w.Kind == o.Kind &&
		cmp.SliceEq(w.Features, o.Features) &&
		w.Severity == o.Severity &&
		w.Recommendation == o.Recommendation
}

type Warnings struct {
	Warnings        []Warning `json:"warnings"`
	Count           int       `json:"warning_count"`
	Assessment      string    `json:"assessment"`
	Recommendations []string  `json:"recommendations"`
}

func (w Warnings) Equal(o Warnings) bool {
	return cmp.SliceEqWith(w.Warnings, o.Warnings, Warning.Equal) &&
		w.Count == o.Count &&
		w.Assessment == o.Assessment &&
		cmp.SliceEq(w.Recommendations, o.Recommendations)
}

type WarningsResponse struct {
	Meta
	Analysis Warnings `json:"analysis"`
}

func (w WarningsResponse) Equal(o WarningsResponse) bool {
	return w.Meta.Equal(o.Meta) && w.Analysis.Equal(o.Analysis)
}

type Complete struct {
	Enhanced   Enhanced   `json:"enhanced_correlations"`
	VIF        VIF        `json:"vif_analysis"`
	Heatmap    Heatmap    `json:"heatmap_data"`
	Clustering Clustering `json:"clustering"`
	Insights   Insights   `json:"relationship_insights"`
	Warnings   Warnings   `json:"multicollinearity_warnings"`
}

func (c Complete) Equal(o Complete) bool {
	return c.Enhanced.Equal(o.Enhanced) &&
		c.VIF.Equal(o.VIF) &&
		c.Heatmap.Equal(o.Heatmap) &&
		c.Clustering.Equal(o.Clustering) &&
		c.Insights.Equal(o.Insights) &&
		c.Warnings.Equal(o.Warnings)
}

type CompleteResponse struct {
	Meta
	Analysis Complete `json:"analysis"`
}

func (c CompleteResponse) Equal(o CompleteResponse) bool {
	return c.Meta.Equal(o.Meta) && c.Analysis.Equal(o.Analysis)
}
