package db

import (
	"context"

	"github.com/statops/tabstat/pkg/domain"
)

type Interface interface {
	// Save upserts a cached analysis payload. An existing record for
	// the same (dataset, kind, threshold) is replaced.
	Save(ctx context.Context, record domain.AnalysisRecord) error

	// Get retrieves the cached payload of one analysis.
	//
	// Args
	//
	// - context.Context
	//
	// - string: dataset id
	//
	// - domain.AnalysisKind
	//
	// - float64: threshold the analysis was requested with
	//
	// Returns
	//
	// - domain.AnalysisRecord
	//
	// - error: dberrors.Missing when nothing is cached.
	Get(ctx context.Context, datasetId string, kind domain.AnalysisKind, threshold float64) (domain.AnalysisRecord, error)

	// Drop removes every cached analysis of a dataset.
	// Dropping a dataset without cached analyses is not an error.
	Drop(ctx context.Context, datasetId string) error
}
