// Package cooldown enforces the minimum wait between re-downloads of the
// same photo. Timestamps persist in a JSON file so the guard survives
// restarts; stale entries are simply ignored once their window passes.
package cooldown

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// DefaultWindow is the minimum interval between downloads of one photo.
const DefaultWindow = 10 * time.Minute

// Guard remembers the last successful download per (day, number).
type Guard struct {
	mu     sync.Mutex
	window time.Duration
	path   string
	now    func() time.Time
	last   map[string]time.Time
}

// New loads the guard state from path, starting empty if the file does
// not exist yet. A window <= 0 falls back to DefaultWindow.
func New(path string, window time.Duration) (*Guard, error) {
	if window <= 0 {
		window = DefaultWindow
	}
	g := &Guard{
		window: window,
		path:   path,
		now:    time.Now,
		last:   make(map[string]time.Time),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return g, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &g.last); err != nil {
		return nil, fmt.Errorf("corrupt cooldown file %s: %w", path, err)
	}
	return g, nil
}

func key(day string, number int) string {
	return fmt.Sprintf("%s/%d", day, number)
}

// Check returns the whole minutes left before the photo may be downloaded
// again, 0 when no window is active. Partial minutes round up, but only
// while genuinely inside the window.
func (g *Guard) Check(day string, number int) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	last, ok := g.last[key(day, number)]
	if !ok {
		return 0
	}
	remaining := g.window - g.now().Sub(last)
	if remaining <= 0 {
		return 0
	}
	return int((remaining + time.Minute - 1) / time.Minute)
}

// Record stores now as the last download time, overwriting any prior
// record, and persists the map.
func (g *Guard) Record(day string, number int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.last[key(day, number)] = g.now()

	data, err := json.Marshal(g.last)
	if err != nil {
		return err
	}
	return os.WriteFile(g.path, data, 0o644)
}
