package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/todo-service/internal/domain"
	"github.com/ErlanBelekov/todo-service/internal/idgen"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TodoStore persists todos in postgres. Ids are still allocated by the
// application (timestamp-derived) so records are wire-compatible with the
// in-memory store.
//
// Schema:
//
//	CREATE TABLE todos (
//	    id         BIGINT PRIMARY KEY,
//	    text       TEXT NOT NULL,
//	    priority   TEXT NOT NULL DEFAULT '',
//	    due_date   TEXT NOT NULL DEFAULT '',
//	    completed  BOOLEAN NOT NULL DEFAULT FALSE,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type TodoStore struct {
	pool *pgxpool.Pool
	ids  *idgen.Generator
}

func NewTodoStore(pool *pgxpool.Pool) *TodoStore {
	return &TodoStore{pool: pool, ids: idgen.New()}
}

func (s *TodoStore) List(ctx context.Context) ([]*domain.Todo, error) {
	query := `
		SELECT id, text, priority, due_date, completed
		FROM todos
		ORDER BY created_at, id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []*domain.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (s *TodoStore) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	query := `
		SELECT id, text, priority, due_date, completed
		FROM todos
		WHERE id = $1`

	return scanTodo(s.pool.QueryRow(ctx, query, id))
}

func (s *TodoStore) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	query := `
		INSERT INTO todos (id, text, priority, due_date, completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, text, priority, due_date, completed`

	id := s.ids.Next()
	row := s.pool.QueryRow(ctx, query, id, todo.Text, todo.Priority, todo.DueDate, todo.Completed)
	return scanTodo(row)
}

func (s *TodoStore) Update(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	query := `
		UPDATE todos
		SET text = $2, priority = $3, due_date = $4, completed = $5
		WHERE id = $1
		RETURNING id, text, priority, due_date, completed`

	row := s.pool.QueryRow(ctx, query, todo.ID, todo.Text, todo.Priority, todo.DueDate, todo.Completed)
	return scanTodo(row)
}

func (s *TodoStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func scanTodo(row pgx.Row) (*domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(&t.ID, &t.Text, &t.Priority, &t.DueDate, &t.Completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	return &t, nil
}
