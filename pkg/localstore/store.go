// Package localstore is the client's persistence layer: a small
// key-value store holding the session token, the cached user profile
// and UI preferences between runs.
package localstore

// Store is the key-value abstraction the session controller depends
// on; nothing above it knows what backs it.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}
