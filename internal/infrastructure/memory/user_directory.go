package memory

import (
	"context"

	"github.com/ErlanBelekov/todo-service/internal/domain"
)

// seedUsers is the static user directory. Plaintext passwords, kept for
// parity with the source system.
var seedUsers = []domain.User{
	{Email: "test@example.com", Password: "password123"},
	{Email: "user@domain.com", Password: "password456"},
}

type UserDirectory struct {
	users []domain.User
}

// NewUserDirectory returns the seeded directory. Pass extra users to extend
// it (tests do); the seed entries always come first, first match wins.
func NewUserDirectory(extra ...domain.User) *UserDirectory {
	return &UserDirectory{users: append(append([]domain.User{}, seedUsers...), extra...)}
}

func (d *UserDirectory) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range d.users {
		if u.Email == email {
			c := u
			return &c, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}
