package domain

import (
	"bytes"
	"errors"
	"fmt"
	"time"
)

var ErrUnknownAnalysisKind = errors.New("unknown analysis kind")

// AnalysisKind names one analysis operation of the correlation engine.
type AnalysisKind string

var (
	AnalysisEnhanced   AnalysisKind = "enhanced"
	AnalysisVIF        AnalysisKind = "vif"
	AnalysisHeatmap    AnalysisKind = "heatmap"
	AnalysisClustering AnalysisKind = "clustering"
	AnalysisInsights   AnalysisKind = "insights"
	AnalysisWarnings   AnalysisKind = "warnings"
	AnalysisComplete   AnalysisKind = "complete"
)

func (k AnalysisKind) String() string {
	return string(k)
}

func AsAnalysisKind(s string) (AnalysisKind, error) {
	switch AnalysisKind(s) {
	case AnalysisEnhanced:
		return AnalysisEnhanced, nil
	case AnalysisVIF:
		return AnalysisVIF, nil
	case AnalysisHeatmap:
		return AnalysisHeatmap, nil
	case AnalysisClustering:
		return AnalysisClustering, nil
	case AnalysisInsights:
		return AnalysisInsights, nil
	case AnalysisWarnings:
		return AnalysisWarnings, nil
	case AnalysisComplete:
		return AnalysisComplete, nil
	default:
		return AnalysisKind(s), fmt.Errorf("%w: %s", ErrUnknownAnalysisKind, s)
	}
}

// AnalysisRecord is one cached analysis response payload, keyed by
// (DatasetId, Kind, Threshold). Payload is the serialized analysis
// as served, so a cache hit skips reading and analyzing the blob.
type AnalysisRecord struct {
	DatasetId  string
	Kind       AnalysisKind
	Threshold  float64
	Payload    []byte
	ComputedAt time.Time
}

func (a *AnalysisRecord) Equal(o *AnalysisRecord) bool {
	if (a == nil) || (o == nil) {
		return (a == nil) && (o == nil)
	}

	return a.DatasetId == o.DatasetId &&
		a.Kind == o.Kind &&
		a.Threshold == o.Threshold &&
		bytes.Equal(a.Payload, o.Payload) &&
		a.ComputedAt.Equal(o.ComputedAt)
}
