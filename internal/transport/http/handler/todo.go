package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ErlanBelekov/todo-service/internal/domain"
	"github.com/ErlanBelekov/todo-service/internal/metrics"
	"github.com/ErlanBelekov/todo-service/internal/usecase"
	"github.com/gin-gonic/gin"
)

// todoUsecaser is the subset of TodoUsecase the handler needs.
type todoUsecaser interface {
	List(ctx context.Context) ([]*domain.Todo, error)
	Create(ctx context.Context, input usecase.CreateTodoInput) (*domain.Todo, error)
	Update(ctx context.Context, id int64, input usecase.UpdateTodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, id int64) error
}

type TodoHandler struct {
	todoUsecase todoUsecaser
	logger      *slog.Logger
}

func NewTodoHandler(todoUsecase todoUsecaser, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todoUsecase: todoUsecase, logger: logger.With("component", "todo_handler")}
}

type createTodoRequest struct {
	Text     string `json:"text"     binding:"max=1024"`
	Priority string `json:"priority" binding:"max=64"`
	DueDate  string `json:"dueDate"  binding:"max=64"`
}

// updateTodoRequest is a partial update: absent fields keep their stored
// value. The browser's toggle sends only completed; its edit form sends
// text/priority/dueDate.
type updateTodoRequest struct {
	Text      *string `json:"text"      binding:"omitempty,max=1024"`
	Priority  *string `json:"priority"  binding:"omitempty,max=64"`
	DueDate   *string `json:"dueDate"   binding:"omitempty,max=64"`
	Completed *bool   `json:"completed"`
}

// GET /todos
// Returns every record in insertion order; filtering and sorting are a
// client concern.
func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.todoUsecase.List(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list todos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, todos)
}

// POST /todos
func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todoUsecase.Create(c.Request.Context(), usecase.CreateTodoInput{
		Text:     req.Text,
		Priority: req.Priority,
		DueDate:  req.DueDate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errTextRequired})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "create todo", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.TodosCreatedTotal.Inc()
	c.JSON(http.StatusCreated, todo)
}

// PUT /todos?id=N
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todoUsecase.Update(c.Request.Context(), id, usecase.UpdateTodoInput{
		Text:      req.Text,
		Priority:  req.Priority,
		DueDate:   req.DueDate,
		Completed: req.Completed,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "update todo", "todo_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	if req.Completed != nil && *req.Completed {
		metrics.TodosCompletedTotal.Inc()
	}
	c.JSON(http.StatusOK, todo)
}

// DELETE /todos?id=N
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := h.todoUsecase.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "delete todo", "todo_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.TodosDeletedTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted"})
}

// todoID parses the id query parameter. A missing or non-numeric id can
// never address a record, so it reports 404 like any other unknown id.
func todoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
		return 0, false
	}
	return id, true
}
