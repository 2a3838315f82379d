package webshell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// CachePrefix names every cache directory; the version follows it.
const CachePrefix = "aethernote-cache-v"

// CacheName returns the directory name of cache version n.
func CacheName(n int) string {
	return CachePrefix + strconv.Itoa(n)
}

// cacheVersion parses a cache directory name, reporting false for
// anything that is not one of ours.
func cacheVersion(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, CachePrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Cache is the on-disk asset store. Each version lives in its own
// directory under baseDir.
type Cache struct {
	baseDir string
}

// NewCache creates a Cache rooted at baseDir.
func NewCache(baseDir string) *Cache {
	return &Cache{baseDir: baseDir}
}

// Path returns the file backing asset in cache name.
// Layout: <baseDir>/<name>/<file>
func (c *Cache) Path(name, asset string) string {
	return filepath.Join(c.baseDir, name, fileFor(asset))
}

// fileFor maps a request path onto a file name.
func fileFor(asset string) string {
	f := strings.TrimPrefix(asset, "/")
	if f == "" {
		return "_root"
	}
	return strings.ReplaceAll(f, "/", "_")
}

// Exists reports whether asset is cached in name.
func (c *Cache) Exists(name, asset string) bool {
	_, err := os.Stat(c.Path(name, asset))
	return err == nil
}

// Open returns the cached asset.
func (c *Cache) Open(name, asset string) (*os.File, error) {
	return os.Open(c.Path(name, asset))
}

// Store writes r to asset in cache name through a temp file.
func (c *Cache) Store(name, asset string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Join(c.baseDir, name), 0750); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	destPath := c.Path(name, asset)
	tmpPath := destPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing to cache: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Versions lists the cache versions on disk in ascending order.
func (c *Cache) Versions() ([]int, error) {
	entries, err := os.ReadDir(c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if n, ok := cacheVersion(e.Name()); ok {
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out, nil
}

// Prune deletes every cache directory except keep. Directories that are
// not caches are left alone.
func (c *Cache) Prune(keep string) ([]string, error) {
	versions, err := c.Versions()
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, n := range versions {
		name := CacheName(n)
		if name == keep {
			continue
		}
		if err := os.RemoveAll(filepath.Join(c.baseDir, name)); err != nil {
			return removed, fmt.Errorf("removing %s: %w", name, err)
		}
		removed = append(removed, name)
	}
	return removed, nil
}
