package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	domerr "github.com/statops/tabstat/pkg/domain/errors"
)

// requested record is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s ", m.Identity, m.Table)
}
func (m Missing) Unwrap() error {
	return domerr.ErrMissing
}

// a record with the same identity is already there.
type AlreadyExists struct {
	Table    string
	Identity string
}

var _ error = AlreadyExists{}

func (a AlreadyExists) Error() string {
	return fmt.Sprintf("%s already exists in %s ", a.Identity, a.Table)
}

func (a AlreadyExists) Unwrap() error {
	return domerr.ErrAlreadyExists
}

// WrapUniqueViolation converts postgres unique-violation into AlreadyExists.
//
// Other errors are passed through as they are.
func WrapUniqueViolation(err error, table string, identity string) error {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UniqueViolation {
		return AlreadyExists{Table: table, Identity: identity}
	}
	return err
}
