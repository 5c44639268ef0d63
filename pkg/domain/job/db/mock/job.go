// this package provide "mock" implementation of the job store for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/statops/tabstat/pkg/domain"
	dbmock "github.com/statops/tabstat/pkg/domain/internal/db/mock"
	kdbjob "github.com/statops/tabstat/pkg/domain/job/db"
)

type JobInterface struct {
	Impl struct {
		Register func(context.Context, domain.Job) error
		Get      func(context.Context, []string) (map[string]domain.Job, error)
		Find     func(context.Context, domain.JobFindQuery) ([]string, error)
		Claim    func(context.Context) (*domain.Job, error)
		Finish   func(context.Context, string, domain.JobStatus, string, string) error
	}
	Calls struct {
		Register dbmock.CallLog[domain.Job]
		Get      dbmock.CallLog[struct{ JobIds []string }]
		Find     dbmock.CallLog[domain.JobFindQuery]
		Claim    dbmock.CallLog[struct{}]
		Finish   dbmock.CallLog[struct {
			JobId        string
			Status       domain.JobStatus
			Results      string
			ErrorMessage string
		}]
	}
}

func NewJobInterface() *JobInterface {
	return &JobInterface{}
}

var _ kdbjob.Interface = &JobInterface{}

func (m *JobInterface) Register(ctx context.Context, job domain.Job) error {
	m.Calls.Register = append(m.Calls.Register, job)
	if m.Impl.Register != nil {
		return m.Impl.Register(ctx, job)
	}
	panic(errors.New("it should not be called"))
}

func (m *JobInterface) Get(ctx context.Context, jobIds []string) (map[string]domain.Job, error) {
	m.Calls.Get = append(m.Calls.Get, struct{ JobIds []string }{JobIds: jobIds})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, jobIds)
	}
	panic(errors.New("it should not be called"))
}

func (m *JobInterface) Find(ctx context.Context, query domain.JobFindQuery) ([]string, error) {
	m.Calls.Find = append(m.Calls.Find, query)
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, query)
	}
	panic(errors.New("it should not be called"))
}

func (m *JobInterface) Claim(ctx context.Context) (*domain.Job, error) {
	m.Calls.Claim = append(m.Calls.Claim, struct{}{})
	if m.Impl.Claim != nil {
		return m.Impl.Claim(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (m *JobInterface) Finish(ctx context.Context, jobId string, status domain.JobStatus, results string, errorMessage string) error {
	m.Calls.Finish = append(m.Calls.Finish, struct {
		JobId        string
		Status       domain.JobStatus
		Results      string
		ErrorMessage string
	}{
		JobId: jobId, Status: status, Results: results, ErrorMessage: errorMessage,
	})
	if m.Impl.Finish != nil {
		return m.Impl.Finish(ctx, jobId, status, results, errorMessage)
	}
	panic(errors.New("it should not be called"))
}
