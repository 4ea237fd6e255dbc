package storage

import "context"

// Storage keys used by the stores. Values are JSON or raw strings.
const (
	KeyAuthToken        = "ecommerce.auth.token.v1"
	KeyAuthUsername     = "ecommerce.auth.username.v1"
	KeyCartItems        = "ecommerce.cart.v1"
	KeyTheme            = "ecommerce.theme.v1"
	KeyCatalogMutations = "ecommerce.catalog.mutations.v1"
)

// Store is the persistent key-value port every stateful store writes through.
// The contract is failure-tolerant: implementations never surface errors.
// A failed write is dropped and a failed read behaves as an absent key, so
// callers act as if storage were empty rather than crashing.
type Store interface {
	// Read returns the value for key, or ok=false when absent or unreadable.
	Read(ctx context.Context, key string) (value string, ok bool)

	// Write persists value under key. Failures are swallowed.
	Write(ctx context.Context, key, value string)

	// Remove deletes key. Failures are swallowed.
	Remove(ctx context.Context, key string)
}
