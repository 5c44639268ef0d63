package pipeline

import (
	"context"
	"fmt"

	"github.com/statops/tabstat/cmd/tabstat-worker/recurring"
	"github.com/statops/tabstat/pkg/domain"
	kdbjob "github.com/statops/tabstat/pkg/domain/job/db"
)

// Cursor carries loop statistics over cycles.
type Cursor struct {
	// last executed job. Empty when no job has run yet.
	LastJobId string

	// jobs executed since the worker started.
	Executed uint
}

// initial value for task
func Seed() Cursor {
	return Cursor{}
}

// Runner executes a pipeline command and returns the tails of its
// stdout and stderr.
type Runner func(ctx context.Context, argv []string, parameters map[string]string) (stdout string, stderr string, err error)

// Return:
//
// - task: claim one pending job, execute its pipeline command and
// record the outcome. There is no retry; a failed job stays failed
// and rerunning means submitting a new one.
func Task(dbJob kdbjob.Interface, pipelines map[string][]string, run Runner) recurring.Task[Cursor] {
	return func(ctx context.Context, cursor Cursor) (Cursor, bool, error) {
		claimed, err := dbJob.Claim(ctx)
		if err != nil {
			return cursor, false, err
		}
		if claimed == nil {
			return cursor, false, nil
		}

		argv, ok := pipelines[claimed.PipelineName]
		if !ok {
			// submitted before the pipeline was dropped from the config.
			err := dbJob.Finish(
				ctx, claimed.JobId, domain.JobFailed, "",
				fmt.Sprintf("pipeline %q is not configured", claimed.PipelineName),
			)
			if err != nil {
				return cursor, false, err
			}
			return Cursor{LastJobId: claimed.JobId, Executed: cursor.Executed + 1}, true, nil
		}

		stdout, stderr, runErr := run(ctx, argv, claimed.Parameters)

		status := domain.JobCompleted
		errorMessage := ""
		if runErr != nil {
			status = domain.JobFailed
			errorMessage = stderr
			if errorMessage == "" {
				errorMessage = runErr.Error()
			}
		}
		if err := dbJob.Finish(ctx, claimed.JobId, status, stdout, errorMessage); err != nil {
			return cursor, false, err
		}

		return Cursor{LastJobId: claimed.JobId, Executed: cursor.Executed + 1}, true, nil
	}
}
