package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	pgerrcode "github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	kpool "github.com/statops/tabstat/pkg/conn/db/postgres/pool"
	kdbschema "github.com/statops/tabstat/pkg/domain/schema/db"
)

type pgSchema struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbschema.SchemaInterface {
	return &pgSchema{pool: pool}
}

// migrations[n] holds the statements lifting the schema from version
// n to n+1. Append only; never edit an applied step.
var migrations = [][]string{
	{
		`
		create table "project" (
			"project_id" varchar(36) primary key,
			"name" varchar(256) not null,
			"description" text not null default '',
			"owner_id" varchar(36) not null,
			"created_at" timestamp with time zone not null
		)
		`,
		`
		create table "account" (
			"user_id" varchar(36) primary key,
			"user_name" varchar(128) not null unique,
			"email" varchar(256) not null default '',
			"password_hash" varchar(128) not null,
			"created_at" timestamp with time zone not null
		)
		`,
		`
		create table "dataset" (
			"dataset_id" varchar(36) primary key,
			"project_id" varchar(36) not null
				references "project" ("project_id") on delete cascade,
			"name" varchar(256) not null,
			"description" text not null default '',
			"file_name" varchar(256) not null,
			"file_size_bytes" bigint not null,
			"blob_key" varchar(512) not null,
			"created_at" timestamp with time zone not null
		)
		`,
		`create index "dataset_project" on "dataset" ("project_id")`,
		`
		create table "job" (
			"job_id" varchar(36) primary key,
			"pipeline_name" varchar(256) not null,
			"user_id" varchar(36) not null,
			"status" varchar(16) not null,
			"parameters" jsonb not null default '{}',
			"results" text not null default '',
			"error_message" text not null default '',
			"created_at" timestamp with time zone not null,
			"started_at" timestamp with time zone,
			"completed_at" timestamp with time zone
		)
		`,
		`create index "job_claim" on "job" ("status", "created_at")`,
		`
		create table "analysis_cache" (
			"dataset_id" varchar(36) not null
				references "dataset" ("dataset_id") on delete cascade,
			"kind" varchar(32) not null,
			"threshold" double precision not null,
			-- the response payload as served. bytea, not jsonb: a cache
			-- hit must serve the very bytes the miss served.
			"payload" bytea not null,
			"computed_at" timestamp with time zone not null,
			primary key ("dataset_id", "kind", "threshold")
		)
		`,
	},
}

func (s *pgSchema) Upgrade(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		`create table if not exists "schema_version" ("version" int not null)`,
	); err != nil {
		return err
	}

	// lock the version row so concurrent upgrades serialize
	var current int
	if err := tx.QueryRow(
		ctx,
		`
		with
		"cur" as (
			select "version" from "schema_version" for update
		),
		"init" as (
			insert into "schema_version" ("version")
			select 0 where not exists (select * from "cur")
			returning "version"
		)
		select * from "cur"
		union all
		select * from "init"
		`,
	).Scan(&current); err != nil {
		return err
	}

	for v := current; v < len(migrations); v++ {
		for _, ddl := range migrations[v] {
			if _, err := tx.Exec(ctx, ddl); err != nil {
				return fmt.Errorf("schema upgrade to version %d: %w", v+1, err)
			}
		}
	}

	if current < len(migrations) {
		if _, err := tx.Exec(
			ctx, `update "schema_version" set "version" = $1`, len(migrations),
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *pgSchema) Version(ctx context.Context) (int, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	var version int
	if err := conn.QueryRow(
		ctx, `select "version" from "schema_version"`,
	).Scan(&version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
			return 0, nil
		}
		return 0, err
	}

	return version, nil
}
