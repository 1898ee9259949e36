package apiclient_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ErlanBelekov/todo-service/internal/apiclient"
	"github.com/ErlanBelekov/todo-service/internal/domain"
	"github.com/ErlanBelekov/todo-service/internal/infrastructure/memory"
	httptransport "github.com/ErlanBelekov/todo-service/internal/transport/http"
	"github.com/ErlanBelekov/todo-service/internal/transport/http/handler"
	"github.com/ErlanBelekov/todo-service/internal/usecase"
	"github.com/gin-gonic/gin"
)

const testKey = "apiclient-test-secret-is-32-chars"

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestService runs the real router against a fresh memory store so the
// client is exercised over actual HTTP.
func newTestService(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	store := memory.NewTodoStore()
	directory := memory.NewUserDirectory()
	authHandler := handler.NewAuthHandler(usecase.NewAuthUsecase(directory, []byte(testKey), time.Hour), logger)
	todoHandler := handler.NewTodoHandler(usecase.NewTodoUsecase(store), logger)

	srv := httptest.NewServer(httptransport.NewRouter(logger, authHandler, todoHandler, []byte(testKey)))
	t.Cleanup(srv.Close)
	return srv
}

func loggedInClient(t *testing.T, srv *httptest.Server) *apiclient.Client {
	t.Helper()
	token, err := apiclient.New(srv.URL, "").Login(context.Background(), "test@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return apiclient.New(srv.URL, token)
}

func TestLogin_BadCredentials_ReturnsInvalidCredentials(t *testing.T) {
	srv := newTestService(t)

	_, err := apiclient.New(srv.URL, "").Login(context.Background(), "test@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestList_WithoutToken_ReturnsTokenInvalid(t *testing.T) {
	srv := newTestService(t)

	_, err := apiclient.New(srv.URL, "").List(context.Background())
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
}

func TestCRUDRoundTrip(t *testing.T) {
	srv := newTestService(t)
	c := loggedInClient(t, srv)
	ctx := context.Background()

	created, err := c.Create(ctx, "Buy milk", "high", "2026-09-01")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Completed || created.Text != "Buy milk" {
		t.Fatalf("unexpected created record: %+v", created)
	}

	todos, err := c.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != created.ID {
		t.Fatalf("unexpected list: %+v", todos)
	}

	done := true
	updated, err := c.Update(ctx, created.ID, apiclient.UpdatePatch{Completed: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed || updated.Text != "Buy milk" {
		t.Fatalf("patch clobbered fields: %+v", updated)
	}

	if err := c.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	todos, err = c.List(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("list not empty: %+v", todos)
	}
}

func TestUpdate_UnknownID_ReturnsNotFound(t *testing.T) {
	srv := newTestService(t)
	c := loggedInClient(t, srv)

	done := true
	_, err := c.Update(context.Background(), 123456, apiclient.UpdatePatch{Completed: &done})
	if !errors.Is(err, domain.ErrTodoNotFound) {
		t.Errorf("want ErrTodoNotFound, got %v", err)
	}
}

func TestCreate_EmptyText_SurfacesServerMessage(t *testing.T) {
	srv := newTestService(t)
	c := loggedInClient(t, srv)

	_, err := c.Create(context.Background(), "", "", "")
	if err == nil {
		t.Fatal("expected error")
	}
}
