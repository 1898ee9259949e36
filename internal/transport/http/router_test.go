package httptransport_test

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/todo-service/internal/domain"
	"github.com/ErlanBelekov/todo-service/internal/infrastructure/memory"
	httptransport "github.com/ErlanBelekov/todo-service/internal/transport/http"
	"github.com/ErlanBelekov/todo-service/internal/transport/http/handler"
	"github.com/ErlanBelekov/todo-service/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const e2eKey = "router-test-secret-that-is-32ch!!"

func init() {
	gin.SetMode(gin.TestMode)
}

// newServer wires the full stack against a fresh in-memory store, exactly
// as cmd/server does.
func newServer() *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	store := memory.NewTodoStore()
	directory := memory.NewUserDirectory()

	authUsecase := usecase.NewAuthUsecase(directory, []byte(e2eKey), time.Hour)
	todoUsecase := usecase.NewTodoUsecase(store)

	authHandler := handler.NewAuthHandler(authUsecase, logger)
	todoHandler := handler.NewTodoHandler(todoUsecase, logger)

	return httptransport.NewRouter(logger, authHandler, todoHandler, []byte(e2eKey))
}

func do(t *testing.T, r *gin.Engine, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/auth/login", "",
		`{"email":"test@example.com","password":"password123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty token")
	}
	return resp.Token
}

func listTodos(t *testing.T, r *gin.Engine, token string) []domain.Todo {
	t.Helper()
	w := do(t, r, http.MethodGet, "/todos", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var todos []domain.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &todos); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	return todos
}

func TestEndToEnd_FullCRUDRoundTrip(t *testing.T) {
	r := newServer()
	token := login(t, r)

	// Create
	w := do(t, r, http.MethodPost, "/todos", token, `{"text":"Buy milk"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var created domain.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal created: %v", err)
	}
	if created.Completed {
		t.Error("new todo marked completed")
	}
	if created.ID == 0 {
		t.Fatal("no id assigned")
	}

	// List contains exactly the created record
	todos := listTodos(t, r, token)
	if len(todos) != 1 || todos[0].ID != created.ID || todos[0].Text != "Buy milk" {
		t.Fatalf("unexpected list: %+v", todos)
	}

	// Toggle completed
	w = do(t, r, http.MethodPut, fmt.Sprintf("/todos?id=%d", created.ID), token, `{"completed":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d", w.Code)
	}
	var updated domain.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshal updated: %v", err)
	}
	if !updated.Completed || updated.ID != created.ID || updated.Text != "Buy milk" {
		t.Fatalf("unexpected updated record: %+v", updated)
	}

	// Delete
	w = do(t, r, http.MethodDelete, fmt.Sprintf("/todos?id=%d", created.ID), token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	// List is empty again
	if todos := listTodos(t, r, token); len(todos) != 0 {
		t.Fatalf("list not empty after delete: %+v", todos)
	}
}

func TestEndToEnd_NoAuthHeader_Returns401AndLeavesStateUntouched(t *testing.T) {
	r := newServer()
	token := login(t, r)

	for _, tc := range []struct {
		method, target, body string
	}{
		{http.MethodGet, "/todos", ""},
		{http.MethodPost, "/todos", `{"text":"sneaky"}`},
		{http.MethodPut, "/todos?id=1", `{"completed":true}`},
		{http.MethodDelete, "/todos?id=1", ""},
	} {
		w := do(t, r, tc.method, tc.target, "", tc.body)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", tc.method, tc.target, w.Code)
		}
	}

	if todos := listTodos(t, r, token); len(todos) != 0 {
		t.Fatalf("unauthenticated request mutated state: %+v", todos)
	}
}

func TestEndToEnd_WrongPassword_Returns401(t *testing.T) {
	r := newServer()

	w := do(t, r, http.MethodPost, "/auth/login", "",
		`{"email":"test@example.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid email or password") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestEndToEnd_DistinctCreates_GetDistinctIDs(t *testing.T) {
	r := newServer()
	token := login(t, r)

	seen := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		w := do(t, r, http.MethodPost, "/todos", token, fmt.Sprintf(`{"text":"task %d"}`, i))
		if w.Code != http.StatusCreated {
			t.Fatalf("create %d status = %d", i, w.Code)
		}
		var created domain.Todo
		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if seen[created.ID] {
			t.Fatalf("duplicate id %d", created.ID)
		}
		seen[created.ID] = true
	}
}

func TestEndToEnd_UnsupportedVerb_Returns405(t *testing.T) {
	r := newServer()
	token := login(t, r)

	w := do(t, r, http.MethodPatch, "/todos", token, `{}`)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestEndToEnd_ExpiredToken_Returns401(t *testing.T) {
	r := newServer()

	// An expired token cannot be minted through the API, so sign one
	// directly with the server's key.
	claims := jwt.MapClaims{
		"sub": "test@example.com",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(e2eKey))
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}

	w := do(t, r, http.MethodGet, "/todos", expired, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
