// Package index holds the routing indexes the intent router queries.
package index

import "context"

// Entry is one routable intent: its key and the description it is matched on.
type Entry struct {
	Key         string
	Description string
}

// Match is the best entry for a query.
type Match struct {
	Key   string
	Score float64
}

// Index picks the entry closest to a text. The bool result is false when no
// entry is a confident match; the threshold is the index's own business.
// Build replaces any previous entries.
type Index interface {
	Build(ctx context.Context, entries []Entry) error
	Query(ctx context.Context, text string) (Match, bool, error)
}
