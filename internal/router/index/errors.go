package index

import "errors"

var (
	ErrNotBuilt   = errors.New("routing index has not been built")
	ErrNoEntries  = errors.New("routing index needs at least one entry")
	ErrEmbedCount = errors.New("embedder returned the wrong number of vectors")
	ErrVectorSize = errors.New("embedding size does not match the collection")
	ErrUnparsable = errors.New("classifier reply is not valid JSON")
)
