package location

import (
	"sync"

	"smartestate/server/internal/models"
)

// ScoreCache stores computed location scores by location string. Entries do
// not expire; last write wins on concurrent inserts for the same key.
type ScoreCache interface {
	Get(location string) (models.LocationScore, bool)
	Put(location string, score models.LocationScore)
}

// MemoryCache is a mutex-guarded in-process ScoreCache.
type MemoryCache struct {
	mu     sync.RWMutex
	scores map[string]models.LocationScore
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{scores: make(map[string]models.LocationScore)}
}

func (c *MemoryCache) Get(location string) (models.LocationScore, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	score, ok := c.scores[location]
	return score, ok
}

func (c *MemoryCache) Put(location string, score models.LocationScore) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scores[location] = score
}
