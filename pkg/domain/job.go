package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/statops/tabstat/pkg/utils/cmp"
)

var ErrUnknownJobStatus = errors.New("unknown job status")

type JobStatus string

var (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

func (s JobStatus) String() string {
	return string(s)
}

func AsJobStatus(s string) (JobStatus, error) {
	switch JobStatus(s) {
	case JobPending:
		return JobPending, nil
	case JobRunning:
		return JobRunning, nil
	case JobCompleted:
		return JobCompleted, nil
	case JobFailed:
		return JobFailed, nil
	default:
		return JobStatus(s), fmt.Errorf("%w: %s", ErrUnknownJobStatus, s)
	}
}

// HasEnded tells whether the status is terminal.
// There is no transition out of a terminal status; rerunning
// means submitting a new job.
func (s JobStatus) HasEnded() bool {
	return s == JobCompleted || s == JobFailed
}

// Job is one requested pipeline execution.
type Job struct {
	JobId        string
	PipelineName string
	UserId       string
	Status       JobStatus

	// Parameters are handed to the pipeline command as environment
	// entries, on top of the configured argv.
	Parameters map[string]string

	// Results carries the pipeline's output once completed.
	Results string

	// ErrorMessage tells why the job failed, empty otherwise.
	ErrorMessage string

	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// ExecutionSeconds is the wall-clock duration of the run,
// or nil while the job has not both started and ended.
func (j *Job) ExecutionSeconds() *float64 {
	if j.StartedAt == nil || j.CompletedAt == nil {
		return nil
	}
	s := j.CompletedAt.Sub(*j.StartedAt).Seconds()
	return &s
}

func (j *Job) Equal(o *Job) bool {
	if (j == nil) || (o == nil) {
		return (j == nil) && (o == nil)
	}

	return j.JobId == o.JobId &&
		j.PipelineName == o.PipelineName &&
		j.UserId == o.UserId &&
		j.Status == o.Status &&
		cmp.MapEq(j.Parameters, o.Parameters) &&
		j.Results == o.Results &&
		j.ErrorMessage == o.ErrorMessage &&
		j.CreatedAt.Equal(o.CreatedAt) &&
		timePointerEqual(j.StartedAt, o.StartedAt) &&
		timePointerEqual(j.CompletedAt, o.CompletedAt)
}

func timePointerEqual(a, b *time.Time) bool {
	if (a == nil) || (b == nil) {
		return (a == nil) && (b == nil)
	}
	return a.Equal(*b)
}

// JobFindQuery filters job listing. Nil fields do not filter.
type JobFindQuery struct {
	Status *JobStatus

	// Limit caps the listing, newest first. Nil means no cap.
	Limit *int
}
