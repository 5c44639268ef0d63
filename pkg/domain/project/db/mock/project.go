// this package provide "mock" implementation of the project store for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/statops/tabstat/pkg/domain"
	dbmock "github.com/statops/tabstat/pkg/domain/internal/db/mock"
	kdbproject "github.com/statops/tabstat/pkg/domain/project/db"
)

type ProjectInterface struct {
	Impl struct {
		Register func(context.Context, domain.Project) error
		Get      func(context.Context, []string) (map[string]domain.Project, error)
		Find     func(context.Context) ([]string, error)
		Delete   func(context.Context, string) error
	}
	Calls struct {
		Register dbmock.CallLog[domain.Project]
		Get      dbmock.CallLog[struct{ ProjectIds []string }]
		Find     dbmock.CallLog[struct{}]
		Delete   dbmock.CallLog[struct{ ProjectId string }]
	}
}

func NewProjectInterface() *ProjectInterface {
	return &ProjectInterface{}
}

var _ kdbproject.Interface = &ProjectInterface{}

func (m *ProjectInterface) Register(ctx context.Context, project domain.Project) error {
	m.Calls.Register = append(m.Calls.Register, project)
	if m.Impl.Register != nil {
		return m.Impl.Register(ctx, project)
	}
	panic(errors.New("it should not be called"))
}

func (m *ProjectInterface) Get(ctx context.Context, projectIds []string) (map[string]domain.Project, error) {
	m.Calls.Get = append(m.Calls.Get, struct{ ProjectIds []string }{ProjectIds: projectIds})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, projectIds)
	}
	panic(errors.New("it should not be called"))
}

func (m *ProjectInterface) Find(ctx context.Context) ([]string, error) {
	m.Calls.Find = append(m.Calls.Find, struct{}{})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (m *ProjectInterface) Delete(ctx context.Context, projectId string) error {
	m.Calls.Delete = append(m.Calls.Delete, struct{ ProjectId string }{ProjectId: projectId})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, projectId)
	}
	panic(errors.New("it should not be called"))
}
