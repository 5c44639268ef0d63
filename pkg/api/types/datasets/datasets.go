package datasets

import (
	"github.com/statops/tabstat/pkg/api/types/misc/rfctime"
	"github.com/statops/tabstat/pkg/utils/cmp"
)

type Detail struct {
	DatasetId     string          `json:"dataset_id"`
	ProjectId     string          `json:"project_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	FileName      string          `json:"file_name"`
	FileSizeBytes int64           `json:"file_size_bytes"`
	CreatedAt     rfctime.RFC3339 `json:"created_at"`
}

func (d Detail) Equal(o Detail) bool {
	return d.DatasetId == o.DatasetId &&
		d.ProjectId == o.ProjectId &&
		d.Name == o.Name &&
		d.Description == o.Description &&
		d.FileName == o.FileName &&
		d.FileSizeBytes == o.FileSizeBytes &&
		d.CreatedAt.Equal(o.CreatedAt)
}

// Preview carries the leading rows of a dataset as raw text cells.
type Preview struct {
	DatasetId string     `json:"dataset_id"`
	Columns   []string   `json:"columns"`
	Data      [][]string `json:"data"`
	Rows      int        `json:"rows"`
	TotalRows int        `json:"total_rows"`
}

func (p Preview) Equal(o Preview) bool {
	return p.DatasetId == o.DatasetId &&
		cmp.SliceEq(p.Columns, o.Columns) &&
		cmp.SliceEqWith(p.Data, o.Data, cmp.SliceEq[string]) &&
		p.Rows == o.Rows &&
		p.TotalRows == o.TotalRows
}

type Summary struct {
	DatasetId          string `json:"dataset_id"`
	Rows               int    `json:"rows"`
	Columns            int    `json:"columns"`
	FileSizeBytes      int64  `json:"file_size_bytes"`
	NumericColumns     int    `json:"numeric_columns"`
	CategoricalColumns int    `json:"categorical_columns"`
}

type QualityMetrics struct {
	Completeness float64 `json:"completeness"`
	Consistency  float64 `json:"consistency"`
	Validity     float64 `json:"validity"`
}

type Quality struct {
	DatasetId     string         `json:"dataset_id"`
	QualityScore  float64        `json:"quality_score"`
	MissingValues map[string]int `json:"missing_values"`
	Duplicates    int            `json:"duplicates"`
	Metrics       QualityMetrics `json:"quality_metrics"`
}

func (q Quality) Equal(o Quality) bool {
	return q.DatasetId == o.DatasetId &&
		q.QualityScore == o.QualityScore &&
		cmp.MapEq(q.MissingValues, o.MissingValues) &&
		q.Duplicates == o.Duplicates &&
		q.Metrics == o.Metrics
}
