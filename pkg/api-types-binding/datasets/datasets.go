package datasets

import (
	"github.com/statops/tabstat/pkg/api/types/datasets"
	"github.com/statops/tabstat/pkg/api/types/misc/rfctime"
	"github.com/statops/tabstat/pkg/domain"
	"github.com/statops/tabstat/pkg/domain/analysis/frame"
)

func ComposeDetail(d domain.Dataset) datasets.Detail {
	return datasets.Detail{
		DatasetId:     d.DatasetId,
		ProjectId:     d.ProjectId,
		Name:          d.Name,
		Description:   d.Description,
		FileName:      d.FileName,
		FileSizeBytes: d.FileSizeBytes,
		CreatedAt:     rfctime.RFC3339(d.CreatedAt),
	}
}

func ComposePreview(datasetId string, f *frame.Frame, rows int) datasets.Preview {
	data := f.Head(rows)
	return datasets.Preview{
		DatasetId: datasetId,
		Columns:   f.Names(),
		Data:      data,
		Rows:      len(data),
		TotalRows: f.Rows(),
	}
}

func ComposeSummary(d domain.Dataset, f *frame.Frame) datasets.Summary {
	summary := f.Summary()
	return datasets.Summary{
		DatasetId:          d.DatasetId,
		Rows:               summary.Rows,
		Columns:            summary.Columns,
		FileSizeBytes:      d.FileSizeBytes,
		NumericColumns:     summary.NumericColumns,
		CategoricalColumns: summary.CategoricalColumns,
	}
}

func ComposeQuality(datasetId string, f *frame.Frame) datasets.Quality {
	quality := f.Quality()
	return datasets.Quality{
		DatasetId:     datasetId,
		QualityScore:  quality.Score,
		MissingValues: quality.Missing,
		Duplicates:    quality.Duplicates,
		Metrics: datasets.QualityMetrics{
			Completeness: quality.Completeness,
			Consistency:  quality.Consistency,
			Validity:     quality.Validity,
		},
	}
}
