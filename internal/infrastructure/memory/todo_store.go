package memory

import (
	"context"
	"sync"

	"github.com/ErlanBelekov/todo-service/internal/domain"
	"github.com/ErlanBelekov/todo-service/internal/idgen"
)

// TodoStore keeps the todo list in process memory. The mutex serializes
// mutations so concurrent requests cannot interleave a read-then-append;
// everything is lost on restart.
type TodoStore struct {
	mu    sync.Mutex
	todos []*domain.Todo
	ids   *idgen.Generator
}

func NewTodoStore() *TodoStore {
	return &TodoStore{ids: idgen.New()}
}

func (s *TodoStore) List(_ context.Context) ([]*domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Todo, len(s.todos))
	for i, t := range s.todos {
		c := *t
		out[i] = &c
	}
	return out, nil
}

func (s *TodoStore) GetByID(_ context.Context, id int64) (*domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.todos {
		if t.ID == id {
			c := *t
			return &c, nil
		}
	}
	return nil, domain.ErrTodoNotFound
}

func (s *TodoStore) Create(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *todo
	c.ID = s.ids.Next()
	s.todos = append(s.todos, &c)

	created := c
	return &created, nil
}

func (s *TodoStore) Update(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.todos {
		if t.ID == todo.ID {
			c := *todo
			s.todos[i] = &c
			updated := c
			return &updated, nil
		}
	}
	return nil, domain.ErrTodoNotFound
}

func (s *TodoStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.todos {
		if t.ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return nil
		}
	}
	return domain.ErrTodoNotFound
}

// Ping satisfies the health checker; an in-process store is always reachable.
func (s *TodoStore) Ping(_ context.Context) error {
	return nil
}
