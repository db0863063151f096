// Package catalog maintains the ordered, mutable list of image paths shown by
// the slideshow. Entries are removed by path rather than position, so a held
// index can never be invalidated by a concurrent removal from the preload
// goroutine.
package catalog

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Scan failure modes. Both are fatal at startup.
var (
	ErrNoDirectory = errors.New("photos directory not found")
	ErrNoImages    = errors.New("no supported images found")
)

// Catalog is an ordered set of image paths. All methods are safe for
// concurrent use; the preload worker removes failed entries while the main
// loop reads.
type Catalog struct {
	mu    sync.RWMutex
	paths []string
}

// Scan builds a Catalog from the supported image files directly inside dir,
// sorted by name. It returns ErrNoDirectory if dir is absent and ErrNoImages
// if nothing matches the extension set.
func Scan(dir string, extensions []string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read photos directory: %w", err)
	}

	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = true
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if exts[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, dir)
	}

	sort.Strings(paths)
	return &Catalog{paths: paths}, nil
}

// New creates a Catalog from an explicit list of paths. Used by tests and by
// callers that already know the entries.
func New(paths []string) *Catalog {
	return &Catalog{paths: append([]string(nil), paths...)}
}

// Shuffle reorders the catalog using the given random source. The one-time
// startup shuffle is the only permitted reordering.
func (c *Catalog) Shuffle(rng *rand.Rand) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rng.Shuffle(len(c.paths), func(i, j int) {
		c.paths[i], c.paths[j] = c.paths[j], c.paths[i]
	})
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.paths)
}

// At returns the path at position i taken modulo the current length, and
// the normalized position. ok is false when the catalog is empty.
func (c *Catalog) At(i int) (path string, pos int, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := len(c.paths)
	if n == 0 {
		return "", 0, false
	}
	pos = ((i % n) + n) % n
	return c.paths[pos], pos, true
}

// Remove deletes the entry with the given path. It reports whether the entry
// was present. Removing by path is idempotent under concurrent repair.
func (c *Catalog) Remove(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.paths {
		if p == path {
			c.paths = append(c.paths[:i], c.paths[i+1:]...)
			return true
		}
	}
	return false
}

// IndexOf returns the current position of path, or -1 if absent.
func (c *Catalog) IndexOf(path string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i, p := range c.paths {
		if p == path {
			return i
		}
	}
	return -1
}

// Paths returns a copy of the current entries in order.
func (c *Catalog) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.paths...)
}
