package correlation

// CompleteReport bundles every analysis over one shared correlation
// matrix. Each section equals what its standalone operation would
// report for the same table and threshold.
type CompleteReport struct {
	Enhanced   EnhancedReport
	VIF        VIFReport
	Heatmap    Heatmap
	Clustering ClusterReport
	Insights   InsightsReport
	Warnings   WarningsReport
}

// CompleteAnalysis runs every analysis at once.
//
// The matrix is computed once per Analyzer, so asking for everything
// costs little more than asking for one section.
func (a *Analyzer) CompleteAnalysis(threshold float64) CompleteReport {
	enhanced := a.EnhancedCorrelations(threshold)
	vif := a.VIF()

	return CompleteReport{
		Enhanced:   enhanced,
		VIF:        vif,
		Heatmap:    a.HeatmapData(),
		Clustering: a.Clustering(),
		Insights:   a.RelationshipInsights(),
		Warnings:   buildWarnings(enhanced.VeryHighPairs, vif),
	}
}
