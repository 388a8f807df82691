package index

import "errors"

var (
	// ErrKnowledgeBaseUnavailable indicates the knowledge-base document is
	// missing, unreadable or empty. Callers answer with an
	// insufficient-information message instead of failing.
	ErrKnowledgeBaseUnavailable = errors.New("knowledge base unavailable")

	// ErrCorruptCache indicates the cached index artifact could not be read
	// or does not match the expected layout. It is recovered by rebuilding.
	ErrCorruptCache = errors.New("corrupt index cache")

	errNoCache       = errors.New("no index cache")
	errModelMismatch = errors.New("index cache built with another model")
	errSmallCache    = errors.New("index cache too small")
	errStaleCache    = errors.New("index cache older than knowledge base")
)
