package db

import (
	"context"

	"github.com/statops/tabstat/pkg/domain"
)

type Interface interface {
	// Register a new user.
	//
	// Returns
	//
	// - error: dberrors.AlreadyExists when the id or the username
	// is taken.
	Register(ctx context.Context, user domain.User) error

	// GetByName fetches the user holding the given username.
	//
	// Returns
	//
	// - domain.User
	//
	// - error: dberrors.Missing when no such user exists.
	GetByName(ctx context.Context, userName string) (domain.User, error)
}
