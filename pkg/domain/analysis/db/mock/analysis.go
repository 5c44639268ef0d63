// this package provide "mock" implementation of the analysis cache for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/statops/tabstat/pkg/domain"
	kdbanalysis "github.com/statops/tabstat/pkg/domain/analysis/db"
	dbmock "github.com/statops/tabstat/pkg/domain/internal/db/mock"
)

type AnalysisInterface struct {
	Impl struct {
		Save func(context.Context, domain.AnalysisRecord) error
		Get  func(context.Context, string, domain.AnalysisKind, float64) (domain.AnalysisRecord, error)
		Drop func(context.Context, string) error
	}
	Calls struct {
		Save dbmock.CallLog[domain.AnalysisRecord]
		Get  dbmock.CallLog[struct {
			DatasetId string
			Kind      domain.AnalysisKind
			Threshold float64
		}]
		Drop dbmock.CallLog[struct{ DatasetId string }]
	}
}

func NewAnalysisInterface() *AnalysisInterface {
	return &AnalysisInterface{}
}

var _ kdbanalysis.Interface = &AnalysisInterface{}

func (m *AnalysisInterface) Save(ctx context.Context, record domain.AnalysisRecord) error {
	m.Calls.Save = append(m.Calls.Save, record)
	if m.Impl.Save != nil {
		return m.Impl.Save(ctx, record)
	}
	panic(errors.New("it should not be called"))
}

func (m *AnalysisInterface) Get(ctx context.Context, datasetId string, kind domain.AnalysisKind, threshold float64) (domain.AnalysisRecord, error) {
	m.Calls.Get = append(m.Calls.Get, struct {
		DatasetId string
		Kind      domain.AnalysisKind
		Threshold float64
	}{
		DatasetId: datasetId, Kind: kind, Threshold: threshold,
	})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, datasetId, kind, threshold)
	}
	panic(errors.New("it should not be called"))
}

func (m *AnalysisInterface) Drop(ctx context.Context, datasetId string) error {
	m.Calls.Drop = append(m.Calls.Drop, struct{ DatasetId string }{DatasetId: datasetId})
	if m.Impl.Drop != nil {
		return m.Impl.Drop(ctx, datasetId)
	}
	panic(errors.New("it should not be called"))
}
