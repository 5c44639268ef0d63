package domain

import "time"

// User is an account which can log in and own projects.
// PasswordHash is a bcrypt hash, never the raw password.
type User struct {
	UserId       string
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

func (u *User) Equal(o *User) bool {
	if (u == nil) || (o == nil) {
		return (u == nil) && (o == nil)
	}

	return u.UserId == o.UserId &&
		u.UserName == o.UserName &&
		u.Email == o.Email &&
		u.PasswordHash == o.PasswordHash &&
		u.CreatedAt.Equal(o.CreatedAt)
}
