package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Summary format changes.
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 content hash used as the cache key for a fixture
// file.
type Digest [sha256.Size]byte

// HashBytes returns the cache digest of raw file content.
func HashBytes(content []byte) Digest {
	return sha256.Sum256(content)
}

// DiskCache memoizes per-function analysis summaries on disk keyed by
// content digest, so re-analyzing an unchanged corpus skips the graph
// construction entirely. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location ($XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Keep the entries in a subdirectory so the cache root stays
	// cleanable by hand.
	return filepath.Join(c.dir, "graphs", hexKey+".mp")
}

// Put serializes and writes a summary to the disk cache.
func (c *DiskCache) Put(key Digest, s *Summary) error {
	if c == nil || s == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	s.Schema = diskCacheSchemaVersion
	data, err := msgpack.Marshal(s)
	if err != nil {
		return err
	}
	path := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Get loads a summary by digest. A miss, a schema mismatch or a corrupt
// entry all report ok=false; only I/O errors other than absence surface.
func (c *DiskCache) Get(key Digest) (*Summary, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var s Summary
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, false, nil
	}
	if s.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return &s, true, nil
}
