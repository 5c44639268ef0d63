package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	kpool "github.com/statops/tabstat/pkg/conn/db/postgres/pool"
	"github.com/statops/tabstat/pkg/domain"
	kdbanalysis "github.com/statops/tabstat/pkg/domain/analysis/db"
	kpgerr "github.com/statops/tabstat/pkg/domain/errors/dberrors/postgres"
)

type analysisPG struct { // implements analysis/db.Interface
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbanalysis.Interface {
	return &analysisPG{pool: pool}
}

func (a *analysisPG) Save(ctx context.Context, record domain.AnalysisRecord) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		`
		insert into "analysis_cache"
			("dataset_id", "kind", "threshold", "payload", "computed_at")
		values
			($1, $2, $3, $4, $5)
		on conflict ("dataset_id", "kind", "threshold") do update
			set "payload" = excluded."payload",
			    "computed_at" = excluded."computed_at"
		`,
		record.DatasetId, record.Kind.String(), record.Threshold,
		record.Payload, record.ComputedAt,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (a *analysisPG) Get(ctx context.Context, datasetId string, kind domain.AnalysisKind, threshold float64) (domain.AnalysisRecord, error) {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return domain.AnalysisRecord{}, err
	}
	defer conn.Release()

	record := domain.AnalysisRecord{
		DatasetId: datasetId, Kind: kind, Threshold: threshold,
	}
	if err := conn.QueryRow(
		ctx,
		`
		select "payload", "computed_at" from "analysis_cache"
		where "dataset_id" = $1 and "kind" = $2 and "threshold" = $3
		`,
		datasetId, kind.String(), threshold,
	).Scan(&record.Payload, &record.ComputedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AnalysisRecord{}, kpgerr.Missing{
				Table: "analysis_cache",
				Identity: fmt.Sprintf(
					"dataset_id='%s', kind='%s', threshold=%v", datasetId, kind, threshold,
				),
			}
		}
		return domain.AnalysisRecord{}, err
	}

	return record, nil
}

func (a *analysisPG) Drop(ctx context.Context, datasetId string) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx, `delete from "analysis_cache" where "dataset_id" = $1`, datasetId,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
