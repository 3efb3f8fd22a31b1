package load

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Cache is a content-addressed store of load results, persisted between runs
// with msgpack. Watch sessions consult it to skip re-parsing packages whose
// files have not changed, e.g. when an editor rewrites a file with identical
// contents.
type Cache struct {
	path string

	mu      sync.Mutex
	entries map[string]*cacheEntry
	dirty   bool
}

// cacheEntry is one cached load result, keyed by the content sum of the
// package directory it was parsed from.
type cacheEntry struct {
	Enums    []*Enum   `msgpack:"enums"`
	LoadedAt time.Time `msgpack:"loaded_at"`
}

// OpenCache opens the cache file at path, starting with an empty cache if
// the file does not exist. A file that cannot be decoded is discarded
// rather than reported: it is stale output from an older build.
func OpenCache(path string) (*Cache, error) {
	c := &Cache{path: path, entries: make(map[string]*cacheEntry)}
	buf, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open cache %q: %w", path, err)
	}
	if err := msgpack.Unmarshal(buf, &c.entries); err != nil {
		c.entries = make(map[string]*cacheEntry)
	}
	return c, nil
}

// Get returns the cached load result for the given content sum.
func (c *Cache) Get(sum string) ([]*Enum, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[sum]
	if !ok {
		return nil, false
	}
	return e.Enums, true
}

// Put stores a load result under the given content sum.
func (c *Cache) Put(sum string, enums []*Enum) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[sum] = &cacheEntry{Enums: enums, LoadedAt: time.Now()}
	c.dirty = true
}

// Len returns the number of cached load results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Prune drops entries older than maxAge and reports how many were dropped.
// Edits keep producing new content sums, so without pruning a long watch
// session accumulates entries for file states that will never come back.
func (c *Cache) Prune(maxAge time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	cutoff := time.Now().Add(-maxAge)
	dropped := 0
	for sum, e := range c.entries {
		if e.LoadedAt.Before(cutoff) {
			delete(c.entries, sum)
			dropped++
		}
	}
	if dropped > 0 {
		c.dirty = true
	}
	return dropped
}

// Save persists the cache to its file. The write goes through a temporary
// file and a rename, so a crash mid-write cannot corrupt the cache. Save is
// a no-op when nothing changed since the last Save or OpenCache.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}
	buf, err := msgpack.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache directory: %w", err)
		}
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	c.dirty = false
	return nil
}

// HashDir computes the content sum of every .go file in dir, in lexical
// order. The sum changes exactly when a load of the directory would see
// different input.
func HashDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".go" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", err
		}
		io.WriteString(h, name)
		h.Write([]byte{0})
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
