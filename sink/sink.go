// Package sink publishes extracted identifier sets to external stores.
package sink

import "context"

// Sink replaces a named collection with a new set of items. Implementations
// must make the replacement appear atomic to readers.
type Sink interface {
	ReplaceSet(ctx context.Context, name string, items []string) error
}
