package repositories

import "errors"

// ErrStateNotFound is returned by Load when no record exists under a key.
var ErrStateNotFound = errors.New("state record not found")

// StateStore persists per-identity collections (cart, wishlist, order
// history) as raw JSON payloads under namespaced keys. It is the server-side
// stand-in for the storefront's browser storage: callers treat a missing or
// malformed payload as an empty collection, and writes are best-effort.
type StateStore interface {
	Load(key string) ([]byte, error)
	Save(key string, payload []byte) error
}

// StorageKey derives the store key for a resource owned by an identity.
// The key is a pure function of the identity, so switching identities swaps
// collections wholesale without merging or leaking between buckets. An empty
// identity falls into the shared guest bucket.
func StorageKey(resource, identityID string) string {
	if identityID == "" {
		return resource + "_guest"
	}
	return resource + "_" + identityID
}
