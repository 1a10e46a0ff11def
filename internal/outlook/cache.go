package outlook

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache provides file-based caching for generated outlook text, keyed by
// forecast date. Entries are refreshed daily since the underlying forecast
// shifts as new weather data arrives.
type Cache struct {
	dir    string
	maxAge time.Duration
}

func NewCache(dir string) *Cache {
	if err := os.MkdirAll(dir, 0755); err != nil {
		// Log but don't fail - cache is optional
		fmt.Printf("Warning: could not create outlook cache directory: %v\n", err)
	}
	return &Cache{
		dir:    dir,
		maxAge: 24 * time.Hour,
	}
}

func (c *Cache) path(date string) string {
	return filepath.Join(c.dir, fmt.Sprintf("outlook_%s.txt", date))
}

// Get retrieves a cached outlook if present and not stale.
func (c *Cache) Get(date string) (string, bool) {
	path := c.path(date)
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}

	if time.Since(info.ModTime()) > c.maxAge {
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	return string(data), true
}

// Set stores an outlook in the cache.
func (c *Cache) Set(date, text string) error {
	return os.WriteFile(c.path(date), []byte(text), 0644)
}
