package mock

import "github.com/storyseq/storyseq"

// Compile-time interface verification.
var _ storyseq.ImageCache = (*ImageCache)(nil)

// ImageCache is a mock implementation of storyseq.ImageCache.
type ImageCache struct {
	GetFn   func(nodeID string, slot int) ([]byte, bool)
	SetFn   func(nodeID string, slot int, data []byte) error
	PurgeFn func(nodeID string) error
}

func (c *ImageCache) Get(nodeID string, slot int) ([]byte, bool) {
	return c.GetFn(nodeID, slot)
}

func (c *ImageCache) Set(nodeID string, slot int, data []byte) error {
	return c.SetFn(nodeID, slot, data)
}

func (c *ImageCache) Purge(nodeID string) error {
	return c.PurgeFn(nodeID)
}
