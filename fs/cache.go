package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/storyseq/storyseq"
)

// Compile-time interface verification.
var _ storyseq.ImageCache = (*ImageCache)(nil)

// ImageCache stores full-resolution images on disk, keyed by node and
// slot. Node IDs are hashed into directory names so arbitrary IDs never
// produce unsafe paths. Misses are normal; callers fall back to the
// thumbnail embedded in the canonical value.
type ImageCache struct {
	dir string
}

// NewImageCache creates a cache rooted at the given directory.
func NewImageCache(dir string) *ImageCache {
	return &ImageCache{dir: dir}
}

// Get returns the cached image for a node and slot.
func (c *ImageCache) Get(nodeID string, slot int) ([]byte, bool) {
	data, err := os.ReadFile(c.slotPath(nodeID, slot))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores an image for a node and slot.
func (c *ImageCache) Set(nodeID string, slot int, data []byte) error {
	dir := c.nodeDir(nodeID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.slotPath(nodeID, slot), data, 0o644)
}

// Purge removes all entries for a node.
func (c *ImageCache) Purge(nodeID string) error {
	return os.RemoveAll(c.nodeDir(nodeID))
}

func (c *ImageCache) nodeDir(nodeID string) string {
	sum := sha256.Sum256([]byte(nodeID))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:]))
}

func (c *ImageCache) slotPath(nodeID string, slot int) string {
	return filepath.Join(c.nodeDir(nodeID), fmt.Sprintf("%d.bin", slot))
}
