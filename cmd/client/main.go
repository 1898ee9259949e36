// client is a small terminal client for the todo service: the counterpart
// of the browser UI. The bearer token is kept in a file under the user
// config dir until logout; the last fetched list is mirrored next to it as
// a cache, never as a source of truth.
//
// Usage:
//
//	client login <email> <password>
//	client logout
//	client list [--filter all|active|completed] [--sort asc|desc]
//	client add <text> [--priority P] [--due YYYY-MM-DD]
//	client toggle <id>
//	client delete <id>
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ErlanBelekov/todo-service/internal/apiclient"
	"github.com/ErlanBelekov/todo-service/internal/domain"
	"github.com/ErlanBelekov/todo-service/internal/listview"
	"github.com/spf13/pflag"
)

var (
	baseURL  = pflag.String("base-url", "http://localhost:8080", "server base URL")
	filter   = pflag.String("filter", "all", "list filter: all, active or completed")
	sortBy   = pflag.String("sort", "", "sort by text: asc or desc (default: storage order)")
	priority = pflag.String("priority", "", "priority for add")
	due      = pflag.String("due", "", "due date for add (YYYY-MM-DD)")
)

func main() {
	pflag.Parse()
	args := pflag.Args()
	if len(args) == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	var err error
	switch args[0] {
	case "login":
		err = runLogin(ctx, args[1:])
	case "logout":
		err = runLogout()
	case "list":
		err = runList(ctx)
	case "add":
		err = runAdd(ctx, args[1:])
	case "toggle":
		err = runToggle(ctx, args[1:])
	case "delete":
		err = runDelete(ctx, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runLogin(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: client login <email> <password>")
	}

	token, err := apiclient.New(*baseURL, "").Login(ctx, args[0], args[1])
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return errors.New("Invalid credentials, please try again.")
		}
		return err
	}

	if err := saveToken(token); err != nil {
		return err
	}
	fmt.Println("logged in")
	return nil
}

func runLogout() error {
	// Logout just discards the token; the server keeps no session state.
	if err := os.Remove(stateFile("token")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func runList(ctx context.Context) error {
	client, err := authedClient()
	if err != nil {
		return err
	}

	todos, err := client.List(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return errors.New("Unauthorized, token may be expired or invalid")
		}
		return err
	}

	cacheTodos(todos)

	todos = listview.Filter(todos, listview.FilterMode(*filter))
	switch *sortBy {
	case "asc":
		todos = listview.Sort(todos, listview.SortAscending)
	case "desc":
		todos = listview.Sort(todos, listview.SortDescending)
	}

	if len(todos) == 0 {
		fmt.Println("no todos")
		return nil
	}
	for _, t := range todos {
		printTodo(t)
	}
	return nil
}

func runAdd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: client add <text>")
	}

	client, err := authedClient()
	if err != nil {
		return err
	}

	created, err := client.Create(ctx, args[0], *priority, *due)
	if err != nil {
		// Mutation failures are logged, not surfaced, matching the
		// browser client.
		log.Printf("error adding todo: %v", err)
		return nil
	}
	printTodo(created)
	return nil
}

func runToggle(ctx context.Context, args []string) error {
	id, err := parseID(args, "toggle")
	if err != nil {
		return err
	}

	client, err := authedClient()
	if err != nil {
		return err
	}

	// The API has no single-record fetch; find the current state in the
	// full list like the browser does.
	todos, err := client.List(ctx)
	if err != nil {
		log.Printf("error updating todo: %v", err)
		return nil
	}
	var current *domain.Todo
	for _, t := range todos {
		if t.ID == id {
			current = t
			break
		}
	}
	if current == nil {
		log.Printf("error updating todo: %v", domain.ErrTodoNotFound)
		return nil
	}

	completed := !current.Completed
	updated, err := client.Update(ctx, id, apiclient.UpdatePatch{Completed: &completed})
	if err != nil {
		log.Printf("error updating todo: %v", err)
		return nil
	}
	printTodo(updated)
	return nil
}

func runDelete(ctx context.Context, args []string) error {
	id, err := parseID(args, "delete")
	if err != nil {
		return err
	}

	client, err := authedClient()
	if err != nil {
		return err
	}

	if err := client.Delete(ctx, id); err != nil {
		log.Printf("error deleting todo: %v", err)
		return nil
	}
	fmt.Println("deleted")
	return nil
}

func parseID(args []string, cmd string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: client %s <id>", cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func printTodo(t *domain.Todo) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] %d  %s", mark, t.ID, t.Text)
	if t.Priority != "" {
		line += fmt.Sprintf("  (priority: %s)", t.Priority)
	}
	if t.DueDate != "" {
		line += fmt.Sprintf("  (due: %s)", t.DueDate)
	}
	fmt.Println(line)
}

func authedClient() (*apiclient.Client, error) {
	data, err := os.ReadFile(stateFile("token"))
	if err != nil {
		return nil, errors.New("not logged in; run: client login <email> <password>")
	}
	return apiclient.New(*baseURL, string(data)), nil
}

func saveToken(token string) error {
	path := stateFile("token")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

// cacheTodos mirrors the last server response to disk, the localStorage
// counterpart. Failures are ignored; the cache is opportunistic.
func cacheTodos(todos []*domain.Todo) {
	data, err := json.Marshal(todos)
	if err != nil {
		return
	}
	_ = os.WriteFile(stateFile("todos.json"), data, 0o600)
}

func stateFile(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "todo-service", name)
}
