// internal/core/services/cache_guard.go
package services

import (
	"sync"

	"github.com/google/uuid"
)

const fillGuardStripes = 64

// fillGuard stops a read-through from caching a row that a write in this
// process superseded while the read was in flight. Ids hash onto a fixed set
// of stripes, so memory stays bounded and an unrelated write on the same
// stripe only costs a skipped cache fill.
type fillGuard struct {
	stripes [fillGuardStripes]struct {
		mu  sync.Mutex
		gen uint64
	}
}

func (g *fillGuard) stripe(id uuid.UUID) int {
	var h uint32
	for _, b := range id {
		h = h*31 + uint32(b)
	}
	return int(h % fillGuardStripes)
}

// snapshot returns the write generation of id's stripe before a store read
func (g *fillGuard) snapshot(id uuid.UUID) uint64 {
	s := &g.stripes[g.stripe(id)]
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// bump records a committed write. It must run before the cache key is deleted.
func (g *fillGuard) bump(id uuid.UUID) {
	s := &g.stripes[g.stripe(id)]
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()
}

// fillIfUnchanged runs fill only when no write landed since snapshot. The
// stripe stays locked across fill so a concurrent bump, and the delete that
// follows it, are ordered after the fill.
func (g *fillGuard) fillIfUnchanged(id uuid.UUID, gen uint64, fill func()) bool {
	s := &g.stripes[g.stripe(id)]
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	fill()
	return true
}
