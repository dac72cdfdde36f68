package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/AkaakuHub/moshi-bingo/game"
	"github.com/AkaakuHub/moshi-bingo/utils/logger"
)

// MarkCache keeps the last persisted marking grid per (game, session) in a
// local JSON file, so a reconnecting client gets its marks back before the
// authoritative card row has loaded. A malformed or unreadable file is
// treated as absent, never as an error.
type MarkCache struct {
	mu    sync.Mutex
	path  string
	grids map[string]game.Marks
}

func NewMarkCache(path string) *MarkCache {
	c := &MarkCache{
		path:  path,
		grids: make(map[string]game.Marks),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warnf("mark cache unreadable, starting empty: %v", err)
		}
		return c
	}
	if err := json.Unmarshal(data, &c.grids); err != nil {
		logger.Warnf("mark cache malformed, starting empty: %v", err)
		c.grids = make(map[string]game.Marks)
	}
	return c
}

func cacheKey(gameID, sessionID string) string {
	return gameID + "/" + sessionID
}

// Load returns the cached grid for the pair, or the initial grid with only
// FREE marked when nothing usable is cached.
func (c *MarkCache) Load(gameID, sessionID string) (game.Marks, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.grids[cacheKey(gameID, sessionID)]; ok {
		return m, true
	}
	return game.NewMarks(), false
}

// Save caches the grid and rewrites the backing file.
func (c *MarkCache) Save(gameID, sessionID string, marks game.Marks) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grids[cacheKey(gameID, sessionID)] = marks
	c.flush()
}

// Clear drops the cached grid for the pair, typically when a game finishes.
func (c *MarkCache) Clear(gameID, sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.grids, cacheKey(gameID, sessionID))
	c.flush()
}

// flush writes through a temp file and rename so an interrupted write cannot
// leave a truncated cache. Caller holds the mutex.
func (c *MarkCache) flush() {
	data, err := json.Marshal(c.grids)
	if err != nil {
		logger.Errorf("mark cache marshal failed: %v", err)
		return
	}
	tmp := c.path + ".tmp"
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Errorf("mark cache dir: %v", err)
			return
		}
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		logger.Errorf("mark cache write failed: %v", err)
		return
	}
	if err := os.Rename(tmp, c.path); err != nil {
		logger.Errorf("mark cache rename failed: %v", err)
	}
}
