package db

import (
	"context"

	"github.com/statops/tabstat/pkg/domain"
)

type Interface interface {
	// Register a new dataset record.
	//
	// The blob should be stored before registering, so that a record
	// never points at a missing payload.
	//
	// Args
	//
	// - context.Context
	//
	// - domain.Dataset
	//
	// Returns
	//
	// - error: dberrors.AlreadyExists when the id is taken.
	Register(ctx context.Context, dataset domain.Dataset) error

	// Retrieve datasets by id.
	//
	// Args
	//
	// - context.Context
	//
	// - []string: dataset ids to be searched
	//
	// Returns
	//
	// - map[string]domain.Dataset: mapping dataset id to the found
	// dataset. Ids without a dataset are left out silently.
	//
	// - error
	Get(ctx context.Context, datasetIds []string) (map[string]domain.Dataset, error)

	// Find lists dataset ids, newest first.
	//
	// Args
	//
	// - context.Context
	//
	// - string: project id to filter with. Empty means every dataset.
	//
	// Returns
	//
	// - []string: dataset ids
	//
	// - error
	Find(ctx context.Context, projectId string) ([]string, error)

	// Delete a dataset record by id. Does not touch the blob;
	// the caller removes it from blob storage.
	//
	// Returns
	//
	// - error: dberrors.Missing when no such dataset exists.
	Delete(ctx context.Context, datasetId string) error
}
