// Package listview holds the presentation logic the browser client applies
// to the todo list: a completion filter and a locale-aware text sort. Both
// are pure functions over the server's full list; the server itself never
// filters or sorts.
package listview

import (
	"slices"
	"sort"

	"github.com/ErlanBelekov/todo-service/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterActive    FilterMode = "active"
	FilterCompleted FilterMode = "completed"
)

type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// Filter returns the todos matching mode, preserving input order. Unknown
// modes behave like FilterAll, matching the select control's default.
func Filter(todos []*domain.Todo, mode FilterMode) []*domain.Todo {
	out := make([]*domain.Todo, 0, len(todos))
	for _, t := range todos {
		switch mode {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Sort returns a new slice ordered by text using locale-aware collation,
// the collate counterpart of the browser's localeCompare. The input is not
// mutated. Stability for equal keys is not guaranteed and not relied upon.
func Sort(todos []*domain.Todo, order SortOrder) []*domain.Todo {
	out := slices.Clone(todos)
	c := collate.New(language.Und)

	sort.Slice(out, func(i, j int) bool {
		cmp := c.CompareString(out[i].Text, out[j].Text)
		if order == SortDescending {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}
