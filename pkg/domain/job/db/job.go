package db

import (
	"context"

	"github.com/statops/tabstat/pkg/domain"
)

type Interface interface {
	// Register a new job in pending status.
	//
	// Args
	//
	// - context.Context
	//
	// - domain.Job: job to be queued. JobId, CreatedAt and Status
	// should be set by the caller.
	//
	// Returns
	//
	// - error: dberrors.AlreadyExists when the id is taken.
	Register(ctx context.Context, job domain.Job) error

	// Retrieve jobs by id.
	//
	// Args
	//
	// - context.Context
	//
	// - []string: job ids to be searched
	//
	// Returns
	//
	// - map[string]domain.Job: mapping job id to the found job.
	// Ids without a job are left out silently.
	//
	// - error
	Get(ctx context.Context, jobIds []string) (map[string]domain.Job, error)

	// Find lists job ids matching the query, newest first.
	//
	// Args
	//
	// - context.Context
	//
	// - domain.JobFindQuery
	//
	// Returns
	//
	// - []string: job ids
	//
	// - error
	Find(ctx context.Context, query domain.JobFindQuery) ([]string, error)

	// Claim picks the oldest pending job and marks it running.
	//
	// Concurrent claimers never pick the same job;
	// rows under claim are skipped, not waited for.
	//
	// Returns
	//
	// - *domain.Job: the claimed job with StartedAt set,
	// or nil when nothing is pending.
	//
	// - error
	Claim(ctx context.Context) (*domain.Job, error)

	// Finish moves a running job into a terminal status and records
	// its outcome.
	//
	// Args
	//
	// - context.Context
	//
	// - string: job id
	//
	// - domain.JobStatus: JobCompleted or JobFailed. Other statuses
	// are rejected.
	//
	// - string: results payload (terminal output of the pipeline)
	//
	// - string: error message, empty unless failed
	//
	// Returns
	//
	// - error: dberrors.Missing when no such running job exists.
	Finish(ctx context.Context, jobId string, status domain.JobStatus, results string, errorMessage string) error
}
