package repository

import (
	"context"

	"github.com/ErlanBelekov/todo-service/internal/domain"
)

// Usecases depend on this interface, not a concrete store. This way we get:
// 1) the backing store (memory, postgres) is swappable without touching
// calling code 2) tests can pass a fake implementation.
type TodoStore interface {
	// List returns all todos in insertion order.
	List(ctx context.Context) ([]*domain.Todo, error)
	GetByID(ctx context.Context, id int64) (*domain.Todo, error)
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	// Update replaces the stored record with the given one. The id must
	// already exist; ids never change after creation.
	Update(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	Delete(ctx context.Context, id int64) error
}
