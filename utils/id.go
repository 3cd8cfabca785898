package utils

import "sync"

// IDGenerator hands out strictly increasing product ids.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
}

// NewIDGenerator starts counting after floor.
func NewIDGenerator(floor int64) *IDGenerator {
	return &IDGenerator{last: floor}
}

func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.last++
	return g.last
}

// Observe moves the counter past an id that was assigned elsewhere.
func (g *IDGenerator) Observe(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id > g.last {
		g.last = id
	}
}
