package postgres

import (
	"context"
	"fmt"

	kpool "github.com/statops/tabstat/pkg/conn/db/postgres/pool"
	"github.com/statops/tabstat/pkg/domain"
	kdbdataset "github.com/statops/tabstat/pkg/domain/dataset/db"
	kpgerr "github.com/statops/tabstat/pkg/domain/errors/dberrors/postgres"
)

type datasetPG struct { // implements dataset/db.Interface
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbdataset.Interface {
	return &datasetPG{pool: pool}
}

func (d *datasetPG) Register(ctx context.Context, dataset domain.Dataset) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		`
		insert into "dataset"
			("dataset_id", "project_id", "name", "description",
			 "file_name", "file_size_bytes", "blob_key", "created_at")
		values
			($1, $2, $3, $4, $5, $6, $7, $8)
		`,
		dataset.DatasetId, dataset.ProjectId, dataset.Name, dataset.Description,
		dataset.FileName, dataset.FileSizeBytes, dataset.BlobKey, dataset.CreatedAt,
	); err != nil {
		return kpgerr.WrapUniqueViolation(
			err, "dataset", fmt.Sprintf("dataset_id='%s'", dataset.DatasetId),
		)
	}

	return tx.Commit(ctx)
}

func (d *datasetPG) Get(ctx context.Context, datasetIds []string) (map[string]domain.Dataset, error) {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return d.get(ctx, conn, datasetIds)
}

func (d *datasetPG) get(ctx context.Context, conn kpool.Conn, datasetIds []string) (map[string]domain.Dataset, error) {
	result := map[string]domain.Dataset{}
	if len(datasetIds) == 0 {
		return result, nil
	}

	rows, err := conn.Query(
		ctx,
		`
		select
			"dataset_id", "project_id", "name", "description",
			"file_name", "file_size_bytes", "blob_key", "created_at"
		from "dataset"
		where "dataset_id" = any($1::varchar[])
		`,
		datasetIds,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var dataset domain.Dataset
		if err := rows.Scan(
			&dataset.DatasetId, &dataset.ProjectId, &dataset.Name, &dataset.Description,
			&dataset.FileName, &dataset.FileSizeBytes, &dataset.BlobKey, &dataset.CreatedAt,
		); err != nil {
			return nil, err
		}
		result[dataset.DatasetId] = dataset
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (d *datasetPG) Find(ctx context.Context, projectId string) ([]string, error) {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "dataset_id" from "dataset"
		where $1 = '' or "project_id" = $1
		order by "created_at" desc, "dataset_id"
		`,
		projectId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	datasetIds := []string{}
	for rows.Next() {
		var datasetId string
		if err := rows.Scan(&datasetId); err != nil {
			return nil, err
		}
		datasetIds = append(datasetIds, datasetId)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return datasetIds, nil
}

func (d *datasetPG) Delete(ctx context.Context, datasetId string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(
		ctx, `delete from "dataset" where "dataset_id" = $1`, datasetId,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{
			Table: "dataset", Identity: fmt.Sprintf("dataset_id='%s'", datasetId),
		}
	}

	return tx.Commit(ctx)
}
