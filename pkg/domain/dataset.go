package domain

import "time"

// Dataset is an uploaded table.
//
// The record is metadata only. The CSV payload lives in blob storage
// under BlobKey and is immutable once written; deleting the dataset
// removes both.
type Dataset struct {
	DatasetId     string
	ProjectId     string
	Name          string
	Description   string
	FileName      string
	FileSizeBytes int64
	BlobKey       string
	CreatedAt     time.Time
}

func (d *Dataset) Equal(o *Dataset) bool {
	if (d == nil) || (o == nil) {
		return (d == nil) && (o == nil)
	}

	return d.DatasetId == o.DatasetId &&
		d.ProjectId == o.ProjectId &&
		d.Name == o.Name &&
		d.Description == o.Description &&
		d.FileName == o.FileName &&
		d.FileSizeBytes == o.FileSizeBytes &&
		d.BlobKey == o.BlobKey &&
		d.CreatedAt.Equal(o.CreatedAt)
}
