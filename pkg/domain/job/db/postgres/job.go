package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	kpool "github.com/statops/tabstat/pkg/conn/db/postgres/pool"
	"github.com/statops/tabstat/pkg/domain"
	kpgerr "github.com/statops/tabstat/pkg/domain/errors/dberrors/postgres"
	kdbjob "github.com/statops/tabstat/pkg/domain/job/db"
)

type jobPG struct { // implements job/db.Interface
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbjob.Interface {
	return &jobPG{pool: pool}
}

func (j *jobPG) Register(ctx context.Context, job domain.Job) error {
	parameters, err := json.Marshal(job.Parameters)
	if err != nil {
		return err
	}

	tx, err := j.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		`
		insert into "job"
			("job_id", "pipeline_name", "user_id", "status", "parameters",
			 "results", "error_message", "created_at")
		values
			($1, $2, $3, $4, $5, $6, $7, $8)
		`,
		job.JobId, job.PipelineName, job.UserId, job.Status.String(), parameters,
		job.Results, job.ErrorMessage, job.CreatedAt,
	); err != nil {
		return kpgerr.WrapUniqueViolation(
			err, "job", fmt.Sprintf("job_id='%s'", job.JobId),
		)
	}

	return tx.Commit(ctx)
}

func (j *jobPG) Get(ctx context.Context, jobIds []string) (map[string]domain.Job, error) {
	conn, err := j.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return j.get(ctx, conn, jobIds)
}

func (j *jobPG) get(ctx context.Context, conn kpool.Conn, jobIds []string) (map[string]domain.Job, error) {
	result := map[string]domain.Job{}
	if len(jobIds) == 0 {
		return result, nil
	}

	rows, err := conn.Query(
		ctx,
		`
		select
			"job_id", "pipeline_name", "user_id", "status", "parameters",
			"results", "error_message", "created_at", "started_at", "completed_at"
		from "job"
		where "job_id" = any($1::varchar[])
		`,
		jobIds,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result[job.JobId] = job
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (j *jobPG) Find(ctx context.Context, query domain.JobFindQuery) ([]string, error) {
	conn, err := j.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	status := ""
	if query.Status != nil {
		status = query.Status.String()
	}

	// LIMIT NULL means no cap in postgres
	rows, err := conn.Query(
		ctx,
		`
		select "job_id" from "job"
		where ($1 = '' or "status" = $1)
		order by "created_at" desc, "job_id"
		limit $2
		`,
		status, query.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobIds := []string{}
	for rows.Next() {
		var jobId string
		if err := rows.Scan(&jobId); err != nil {
			return nil, err
		}
		jobIds = append(jobIds, jobId)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobIds, nil
}

func (j *jobPG) Claim(ctx context.Context) (*domain.Job, error) {
	tx, err := j.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(
		ctx,
		`
		update "job" set "status" = $1, "started_at" = now()
		where "job_id" in (
			select "job_id" from "job"
			where "status" = $2
			order by "created_at"
			limit 1
			for update skip locked
		)
		returning
			"job_id", "pipeline_name", "user_id", "status", "parameters",
			"results", "error_message", "created_at", "started_at", "completed_at"
		`,
		domain.JobRunning.String(), domain.JobPending.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claimed *domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		claimed = &job
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return claimed, nil
}

func (j *jobPG) Finish(ctx context.Context, jobId string, status domain.JobStatus, results string, errorMessage string) error {
	if !status.HasEnded() {
		return fmt.Errorf("job %s cannot finish into status %s", jobId, status)
	}

	tx, err := j.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(
		ctx,
		`
		update "job"
		set "status" = $2, "results" = $3, "error_message" = $4, "completed_at" = now()
		where "job_id" = $1 and "status" = $5
		`,
		jobId, status.String(), results, errorMessage, domain.JobRunning.String(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{
			Table:    "job",
			Identity: fmt.Sprintf("job_id='%s' (status='%s')", jobId, domain.JobRunning),
		}
	}

	return tx.Commit(ctx)
}

func scanJob(rows pgx.Rows) (domain.Job, error) {
	var job domain.Job
	var status string
	var parameters []byte
	var startedAt, completedAt pgtype.Timestamptz
	if err := rows.Scan(
		&job.JobId, &job.PipelineName, &job.UserId, &status, &parameters,
		&job.Results, &job.ErrorMessage, &job.CreatedAt, &startedAt, &completedAt,
	); err != nil {
		return domain.Job{}, err
	}

	jobStatus, err := domain.AsJobStatus(status)
	if err != nil {
		return domain.Job{}, err
	}
	job.Status = jobStatus

	if len(parameters) != 0 {
		if err := json.Unmarshal(parameters, &job.Parameters); err != nil {
			return domain.Job{}, err
		}
	}

	if startedAt.Status == pgtype.Present {
		t := startedAt.Time
		job.StartedAt = &t
	}
	if completedAt.Status == pgtype.Present {
		t := completedAt.Time
		job.CompletedAt = &t
	}

	return job, nil
}
