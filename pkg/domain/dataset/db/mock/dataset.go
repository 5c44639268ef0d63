// this package provide "mock" implementation of the dataset store for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/statops/tabstat/pkg/domain"
	kdbdataset "github.com/statops/tabstat/pkg/domain/dataset/db"
	dbmock "github.com/statops/tabstat/pkg/domain/internal/db/mock"
)

type DatasetInterface struct {
	Impl struct {
		Register func(context.Context, domain.Dataset) error
		Get      func(context.Context, []string) (map[string]domain.Dataset, error)
		Find     func(context.Context, string) ([]string, error)
		Delete   func(context.Context, string) error
	}
	Calls struct {
		Register dbmock.CallLog[domain.Dataset]
		Get      dbmock.CallLog[struct{ DatasetIds []string }]
		Find     dbmock.CallLog[struct{ ProjectId string }]
		Delete   dbmock.CallLog[struct{ DatasetId string }]
	}
}

func NewDatasetInterface() *DatasetInterface {
	return &DatasetInterface{}
}

var _ kdbdataset.Interface = &DatasetInterface{}

func (m *DatasetInterface) Register(ctx context.Context, dataset domain.Dataset) error {
	m.Calls.Register = append(m.Calls.Register, dataset)
	if m.Impl.Register != nil {
		return m.Impl.Register(ctx, dataset)
	}
	panic(errors.New("it should not be called"))
}

func (m *DatasetInterface) Get(ctx context.Context, datasetIds []string) (map[string]domain.Dataset, error) {
	m.Calls.Get = append(m.Calls.Get, struct{ DatasetIds []string }{DatasetIds: datasetIds})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, datasetIds)
	}
	panic(errors.New("it should not be called"))
}

func (m *DatasetInterface) Find(ctx context.Context, projectId string) ([]string, error) {
	m.Calls.Find = append(m.Calls.Find, struct{ ProjectId string }{ProjectId: projectId})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, projectId)
	}
	panic(errors.New("it should not be called"))
}

func (m *DatasetInterface) Delete(ctx context.Context, datasetId string) error {
	m.Calls.Delete = append(m.Calls.Delete, struct{ DatasetId string }{DatasetId: datasetId})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, datasetId)
	}
	panic(errors.New("it should not be called"))
}
