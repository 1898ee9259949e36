package idgen

import (
	"sync"
	"time"
)

// Generator allocates millisecond-timestamp ids, bumped past the previous
// value when two allocations land in the same millisecond. Ids are unique
// for the lifetime of the generator and monotonically increasing.
type Generator struct {
	mu   sync.Mutex
	last int64
}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
