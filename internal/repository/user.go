package repository

import (
	"context"

	"github.com/ErlanBelekov/todo-service/internal/domain"
)

type UserDirectory interface {
	// FindByEmail looks up a user by exact, case-sensitive email match.
	// First match wins; returns domain.ErrInvalidCredentials when absent.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
