package basic

import (
	"context"
	"sync"

	"github.com/bornholm/sidenav/internal/authn"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const Provider = "basic"

var ErrInvalidCredentials = errors.New("invalid credentials")

type User struct {
	Username string
}

// UserProvider implements authn.User.
func (u *User) UserProvider() string {
	return Provider
}

// UserSubject implements authn.User.
func (u *User) UserSubject() string {
	return u.Username
}

var _ authn.User = &User{}

// Users maps usernames to bcrypt password hashes.
type Users map[string][]byte

// Authenticate implements UserProvider.
func (u Users) Authenticate(ctx context.Context, username string, password string) (authn.User, error) {
	hash, exists := u[username]
	if !exists {
		// Unknown usernames cost as much as a password mismatch
		unknown, err := unknownUserHash()
		if err != nil {
			return nil, errors.WithStack(err)
		}

		_ = bcrypt.CompareHashAndPassword(unknown, []byte(password))

		return nil, errors.WithStack(ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, errors.WithStack(ErrInvalidCredentials)
		}

		return nil, errors.WithStack(err)
	}

	return &User{Username: username}, nil
}

var _ UserProvider = Users{}

var unknownUserHash = sync.OnceValues(func() ([]byte, error) {
	return HashPassword("unknown")
})

func HashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return hash, nil
}
