package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	kpool "github.com/statops/tabstat/pkg/conn/db/postgres/pool"
	"github.com/statops/tabstat/pkg/domain"
	kpgerr "github.com/statops/tabstat/pkg/domain/errors/dberrors/postgres"
	kdbuser "github.com/statops/tabstat/pkg/domain/user/db"
)

type userPG struct { // implements user/db.Interface
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbuser.Interface {
	return &userPG{pool: pool}
}

func (u *userPG) Register(ctx context.Context, user domain.User) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		`
		insert into "account"
			("user_id", "user_name", "email", "password_hash", "created_at")
		values
			($1, $2, $3, $4, $5)
		`,
		user.UserId, user.UserName, user.Email, user.PasswordHash, user.CreatedAt,
	); err != nil {
		return kpgerr.WrapUniqueViolation(
			err, "account", fmt.Sprintf("user_name='%s'", user.UserName),
		)
	}

	return tx.Commit(ctx)
}

func (u *userPG) GetByName(ctx context.Context, userName string) (domain.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return domain.User{}, err
	}
	defer conn.Release()

	var user domain.User
	if err := conn.QueryRow(
		ctx,
		`
		select "user_id", "user_name", "email", "password_hash", "created_at"
		from "account"
		where "user_name" = $1
		`,
		userName,
	).Scan(
		&user.UserId, &user.UserName, &user.Email, &user.PasswordHash, &user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, kpgerr.Missing{
				Table: "account", Identity: fmt.Sprintf("user_name='%s'", userName),
			}
		}
		return domain.User{}, err
	}

	return user, nil
}
