// seed logs into a running server and creates a set of demo todos.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"

	"github.com/ErlanBelekov/todo-service/internal/apiclient"
)

const (
	seedEmail    = "test@example.com"
	seedPassword = "password123"
)

type todoSpec struct {
	text     string
	priority string
	dueDate  string
}

var todos = []todoSpec{
	// Everyday items, no priority or date
	{"Buy milk", "", ""},
	{"Walk the dog", "", ""},
	{"Reply to Sam's email", "", ""},

	// Prioritized
	{"File taxes", "high", "2026-04-15"},
	{"Renew passport", "high", "2026-10-01"},
	{"Book dentist appointment", "medium", ""},
	{"Clean the garage", "low", ""},

	// Dated only
	{"Water the plants", "", "2026-09-05"},
	{"Pick up dry cleaning", "", "2026-09-02"},

	// Longer text
	{"Draft the Q4 planning doc and circulate it before the offsite", "medium", "2026-09-20"},
}

func main() {
	ctx := context.Background()

	base := os.Getenv("TODO_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}

	token, err := apiclient.New(base, "").Login(ctx, seedEmail, seedPassword)
	if err != nil {
		log.Fatalf("login: %v", err)
	}
	client := apiclient.New(base, token)

	for _, spec := range todos {
		created, err := client.Create(ctx, spec.text, spec.priority, spec.dueDate)
		if err != nil {
			log.Fatalf("create %q: %v", spec.text, err)
		}
		log.Printf("created todo %d: %s", created.ID, created.Text)
	}

	log.Printf("seeded %d todos at %s", len(todos), base)
}
