package jobs

import (
	"time"

	"github.com/statops/tabstat/pkg/api/types/jobs"
	"github.com/statops/tabstat/pkg/api/types/misc/rfctime"
	"github.com/statops/tabstat/pkg/domain"
)

func ComposeDetail(j domain.Job) jobs.Detail {
	stamp := func(t *time.Time) *rfctime.RFC3339 {
		if t == nil {
			return nil
		}
		s := rfctime.RFC3339(*t)
		return &s
	}

	parameters := j.Parameters
	if parameters == nil {
		parameters = map[string]string{}
	}

	return jobs.Detail{
		JobId:            j.JobId,
		PipelineName:     j.PipelineName,
		UserId:           j.UserId,
		Status:           j.Status.String(),
		Parameters:       parameters,
		Results:          j.Results,
		ErrorMessage:     j.ErrorMessage,
		CreatedAt:        rfctime.RFC3339(j.CreatedAt),
		StartedAt:        stamp(j.StartedAt),
		CompletedAt:      stamp(j.CompletedAt),
		ExecutionSeconds: j.ExecutionSeconds(),
	}
}
