package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/todo-service/internal/domain"
	"github.com/ErlanBelekov/todo-service/internal/repository"
)

type TodoUsecase struct {
	store repository.TodoStore
}

func NewTodoUsecase(store repository.TodoStore) *TodoUsecase {
	return &TodoUsecase{store: store}
}

func (u *TodoUsecase) List(ctx context.Context) ([]*domain.Todo, error) {
	todos, err := u.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	if todos == nil {
		todos = []*domain.Todo{}
	}
	return todos, nil
}

type CreateTodoInput struct {
	Text     string
	Priority string
	DueDate  string
}

func (u *TodoUsecase) Create(ctx context.Context, input CreateTodoInput) (*domain.Todo, error) {
	if input.Text == "" {
		return nil, domain.ErrEmptyText
	}

	todo := &domain.Todo{
		Text:      input.Text,
		Priority:  input.Priority,
		DueDate:   input.DueDate,
		Completed: false,
	}

	created, err := u.store.Create(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return created, nil
}

// UpdateTodoInput carries a partial update: nil fields leave the stored
// value untouched, non-nil fields (including zero values) replace it.
// Toggling completion is an update with only Completed set.
type UpdateTodoInput struct {
	Text      *string
	Priority  *string
	DueDate   *string
	Completed *bool
}

func (u *TodoUsecase) Update(ctx context.Context, id int64, input UpdateTodoInput) (*domain.Todo, error) {
	todo, err := u.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Text != nil {
		todo.Text = *input.Text
	}
	if input.Priority != nil {
		todo.Priority = *input.Priority
	}
	if input.DueDate != nil {
		todo.DueDate = *input.DueDate
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}

	updated, err := u.store.Update(ctx, todo)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *TodoUsecase) Delete(ctx context.Context, id int64) error {
	return u.store.Delete(ctx, id)
}
