package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	kpool "github.com/statops/tabstat/pkg/conn/db/postgres/pool"
	xe "github.com/statops/tabstat/pkg/errors"

	kanalysis "github.com/statops/tabstat/pkg/domain/analysis/db"
	kpganalysis "github.com/statops/tabstat/pkg/domain/analysis/db/postgres"
	kdataset "github.com/statops/tabstat/pkg/domain/dataset/db"
	kpgdataset "github.com/statops/tabstat/pkg/domain/dataset/db/postgres"
	kjob "github.com/statops/tabstat/pkg/domain/job/db"
	kpgjob "github.com/statops/tabstat/pkg/domain/job/db/postgres"
	kproject "github.com/statops/tabstat/pkg/domain/project/db"
	kpgproject "github.com/statops/tabstat/pkg/domain/project/db/postgres"
	kschema "github.com/statops/tabstat/pkg/domain/schema/db"
	kpgschema "github.com/statops/tabstat/pkg/domain/schema/db/postgres"
	dbInterface "github.com/statops/tabstat/pkg/domain/tabstat/db"
	kuser "github.com/statops/tabstat/pkg/domain/user/db"
	kpguser "github.com/statops/tabstat/pkg/domain/user/db/postgres"
)

type tabstatDBPostgres struct {
	pool     *pgxpool.Pool
	projects kproject.Interface
	datasets kdataset.Interface
	jobs     kjob.Interface
	users    kuser.Interface
	analyses kanalysis.Interface
	schema   kschema.SchemaInterface
}

func New(ctx context.Context, url string) (dbInterface.Database, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	p := kpool.Wrap(pool)

	return &tabstatDBPostgres{
		pool:     pool,
		projects: kpgproject.New(p),
		datasets: kpgdataset.New(p),
		jobs:     kpgjob.New(p),
		users:    kpguser.New(p),
		analyses: kpganalysis.New(p),
		schema:   kpgschema.New(p),
	}, nil
}

func (t *tabstatDBPostgres) Projects() kproject.Interface {
	return t.projects
}

func (t *tabstatDBPostgres) Datasets() kdataset.Interface {
	return t.datasets
}

func (t *tabstatDBPostgres) Jobs() kjob.Interface {
	return t.jobs
}

func (t *tabstatDBPostgres) Users() kuser.Interface {
	return t.users
}

func (t *tabstatDBPostgres) Analyses() kanalysis.Interface {
	return t.analyses
}

func (t *tabstatDBPostgres) Schema() kschema.SchemaInterface {
	return t.schema
}

func (t *tabstatDBPostgres) Close() error {
	t.pool.Close()
	return nil
}
