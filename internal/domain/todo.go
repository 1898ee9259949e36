package domain

import "errors"

var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrEmptyText    = errors.New("text is required")
)

// Todo is a single task entry. Priority and DueDate are free-form strings
// (the browser client sends "" when the field is left blank), Completed
// starts false and only ever changes through an update.
type Todo struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Priority  string `json:"priority"`
	DueDate   string `json:"dueDate"`
	Completed bool   `json:"completed"`
}
