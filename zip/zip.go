// Package zip archives gallery images into a zip file.
package zip

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/storyseq/storyseq"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel image fetches.
const DefaultConcurrency = 4

// FetchFunc returns the image bytes for a frame.
type FetchFunc func(ctx context.Context, frame int) ([]byte, error)

// ProgressFunc reports archive progress after each frame is fetched.
type ProgressFunc func(done, total int)

// FromCache returns a FetchFunc backed by an image cache, using the
// frame number as the node key.
func FromCache(cache storyseq.ImageCache) FetchFunc {
	return func(_ context.Context, frame int) ([]byte, error) {
		data, ok := cache.Get(fmt.Sprintf("frame-%d", frame), 0)
		if !ok {
			return nil, fmt.Errorf("zip: no image cached for frame %d", frame)
		}
		return data, nil
	}
}

// Archiver writes frame images into a zip file. Fetches run with bounded
// concurrency; the archive itself is written sequentially in frame order.
type Archiver struct {
	fetch       FetchFunc
	concurrency int
	progress    ProgressFunc
}

// ArchiverOption configures an Archiver.
type ArchiverOption func(*Archiver)

// WithConcurrency bounds the number of parallel fetches.
func WithConcurrency(n int) ArchiverOption {
	return func(a *Archiver) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithProgress sets a progress callback. It is called from fetch
// goroutines and must be safe for concurrent use.
func WithProgress(fn ProgressFunc) ArchiverOption {
	return func(a *Archiver) {
		a.progress = fn
	}
}

// NewArchiver creates an Archiver over the given fetch function.
func NewArchiver(fetch FetchFunc, opts ...ArchiverOption) *Archiver {
	a := &Archiver{
		fetch:       fetch,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Archive fetches the given frames and writes them to a zip file at
// dest. Entries are named frame-NNN.png in frame order. Any fetch error
// aborts the archive and removes the partial file.
func (a *Archiver) Archive(ctx context.Context, dest string, frames []int) error {
	if len(frames) == 0 {
		return fmt.Errorf("zip: no frames to archive")
	}

	images := make([][]byte, len(frames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	var done atomic.Int64
	for i, frame := range frames {
		g.Go(func() error {
			data, err := a.fetch(ctx, frame)
			if err != nil {
				return err
			}
			images[i] = data
			if a.progress != nil {
				a.progress(int(done.Add(1)), len(frames))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}

	w := zip.NewWriter(f)
	for i, frame := range frames {
		entry, err := w.Create(fmt.Sprintf("frame-%03d.png", frame))
		if err == nil {
			_, err = entry.Write(images[i])
		}
		if err != nil {
			w.Close()
			f.Close()
			os.Remove(dest)
			return fmt.Errorf("zip: write frame %d: %w", frame, err)
		}
	}
	if err := w.Close(); err != nil {
		f.Close()
		os.Remove(dest)
		return err
	}
	return f.Close()
}
