package jobs

import (
	"github.com/statops/tabstat/pkg/api/types/misc/rfctime"
	"github.com/statops/tabstat/pkg/utils/cmp"
)

type Detail struct {
	JobId        string            `json:"job_id"`
	PipelineName string            `json:"pipeline_name"`
	UserId       string            `json:"user_id"`
	Status       string            `json:"status"`
	Parameters   map[string]string `json:"parameters"`
	Results      string            `json:"results,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
	CreatedAt    rfctime.RFC3339   `json:"created_at"`

	// Set once the job has started (and ended, respectively).
	StartedAt   *rfctime.RFC3339 `json:"started_at,omitempty"`
	CompletedAt *rfctime.RFC3339 `json:"completed_at,omitempty"`

	// Wall clock seconds between StartedAt and CompletedAt.
	ExecutionSeconds *float64 `json:"execution_time,omitempty"`
}

func (d Detail) Equal(o Detail) bool {
	timeEq := func(a, b *rfctime.RFC3339) bool {
		if (a == nil) != (b == nil) {
			return false
		}
		return a == nil || a.Equal(*b)
	}

	return d.JobId == o.JobId &&
		d.PipelineName == o.PipelineName &&
		d.UserId == o.UserId &&
		d.Status == o.Status &&
		cmp.MapEq(d.Parameters, o.Parameters) &&
		d.Results == o.Results &&
		d.ErrorMessage == o.ErrorMessage &&
		d.CreatedAt.Equal(o.CreatedAt) &&
		timeEq(d.StartedAt, o.StartedAt) &&
		timeEq(d.CompletedAt, o.CompletedAt) &&
		cmp.PEqEq(d.ExecutionSeconds, o.ExecutionSeconds)
}

// SubmitRequest is the body of a job submission. The pipeline comes
// from the request path.
type SubmitRequest struct {
	Parameters map[string]string `json:"parameters,omitempty"`
}
