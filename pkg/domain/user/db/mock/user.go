// this package provide "mock" implementation of the user store for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/statops/tabstat/pkg/domain"
	dbmock "github.com/statops/tabstat/pkg/domain/internal/db/mock"
	kdbuser "github.com/statops/tabstat/pkg/domain/user/db"
)

type UserInterface struct {
	Impl struct {
		Register  func(context.Context, domain.User) error
		GetByName func(context.Context, string) (domain.User, error)
	}
	Calls struct {
		Register  dbmock.CallLog[domain.User]
		GetByName dbmock.CallLog[struct{ UserName string }]
	}
}

func NewUserInterface() *UserInterface {
	return &UserInterface{}
}

var _ kdbuser.Interface = &UserInterface{}

func (m *UserInterface) Register(ctx context.Context, user domain.User) error {
	m.Calls.Register = append(m.Calls.Register, user)
	if m.Impl.Register != nil {
		return m.Impl.Register(ctx, user)
	}
	panic(errors.New("it should not be called"))
}

func (m *UserInterface) GetByName(ctx context.Context, userName string) (domain.User, error) {
	m.Calls.GetByName = append(m.Calls.GetByName, struct{ UserName string }{UserName: userName})
	if m.Impl.GetByName != nil {
		return m.Impl.GetByName(ctx, userName)
	}
	panic(errors.New("it should not be called"))
}
