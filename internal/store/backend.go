// Package store persists the application's collections as wholesale
// JSON snapshots keyed by collection name, mirroring the write-through
// model of browser local storage: every mutation rewrites the full
// snapshot for the collection it touched.
package store

import "context"

// Snapshot keys, one per collection.
const (
	KeyUsers        = "blogUsers"
	KeyPosts        = "blogPosts"
	KeyCategories   = "blogCategories"
	KeyVotes        = "blogVotes"
	KeyCommentVotes = "blogCommentVotes"
)

// Backend is a key-value snapshot store. Get reports found=false for a
// key that has never been written; that is not an error.
type Backend interface {
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, key string, data []byte) error
	Close() error
}
