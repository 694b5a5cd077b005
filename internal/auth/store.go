package auth

import "errors"

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID       string
	Email    string
	Username string
	Hash     []byte
}

type UserStore interface {
	Create(email, username, password string) (User, error)
	Verify(email, password string) (User, error)
}

// SeedUser is a demo account installed at startup.
type SeedUser struct {
	Email    string
	Username string
	Password string
}

func DefaultUsers() []SeedUser {
	return []SeedUser{
		{Email: "alan@test.com", Username: "Alan", Password: "123456"},
		{Email: "demo@test.com", Username: "Admin", Password: "1234"},
	}
}
