package users

import "context"

var (
	ErrNotFound       = errNotFound{}
	ErrUsernameExists = errUsernameExists{}
	ErrEmailExists    = errEmailExists{}
)

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

type errUsernameExists struct{}

func (errUsernameExists) Error() string { return "username already registered" }

type errEmailExists struct{}

func (errEmailExists) Error() string { return "email already registered" }

type Repo interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
