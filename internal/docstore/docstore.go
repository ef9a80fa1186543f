// Package docstore defines the collection-style document persistence
// boundary used for server-held carts, orders and reviews on the
// authenticated path.
package docstore

import "context"

type Document struct {
	ID     string
	Fields map[string]any
}

type Store interface {
	// Save upserts a document. An empty id lets the store assign one; the
	// assigned id is returned.
	Save(ctx context.Context, collection, id string, fields map[string]any) (string, error)
	// List returns documents whose fields contain every filter pair.
	// A nil filter returns the whole collection.
	List(ctx context.Context, collection string, filter map[string]any) ([]Document, error)
	Delete(ctx context.Context, collection, id string) error
}
