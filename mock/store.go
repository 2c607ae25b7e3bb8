package mock

import (
	"context"

	"github.com/storyseq/storyseq"
)

// Compile-time interface verification.
var _ storyseq.CatalogStore = (*CatalogStore)(nil)
var _ storyseq.DocumentStore = (*DocumentStore)(nil)

// CatalogStore is a mock implementation of storyseq.CatalogStore.
type CatalogStore struct {
	ListFn   func(ctx context.Context) ([]storyseq.CatalogEntry, error)
	SaveFn   func(ctx context.Context, name string, seq *storyseq.Sequence) error
	LoadFn   func(ctx context.Context, name string) (*storyseq.Sequence, error)
	DeleteFn func(ctx context.Context, name string) error
}

func (s *CatalogStore) List(ctx context.Context) ([]storyseq.CatalogEntry, error) {
	return s.ListFn(ctx)
}

func (s *CatalogStore) Save(ctx context.Context, name string, seq *storyseq.Sequence) error {
	return s.SaveFn(ctx, name, seq)
}

func (s *CatalogStore) Load(ctx context.Context, name string) (*storyseq.Sequence, error) {
	return s.LoadFn(ctx, name)
}

func (s *CatalogStore) Delete(ctx context.Context, name string) error {
	return s.DeleteFn(ctx, name)
}

// DocumentStore is a mock implementation of storyseq.DocumentStore.
type DocumentStore struct {
	LoadFn func(path string) (*storyseq.Ingest, error)
	SaveFn func(path string, doc *storyseq.ExportDocument) error
}

func (s *DocumentStore) Load(path string) (*storyseq.Ingest, error) {
	return s.LoadFn(path)
}

func (s *DocumentStore) Save(path string, doc *storyseq.ExportDocument) error {
	return s.SaveFn(path, doc)
}
