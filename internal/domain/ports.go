package domain

import "context"

// ReviewStore holds canonical reviews plus their mutable moderation
// state, keyed by (source, id). Implementations must be safe for
// concurrent readers; Snapshot returns a consistent copy the query
// pipeline can work on without further synchronization.
type ReviewStore interface {
	Snapshot() []Review
	GetByKey(key Key) (Review, error)
	Upsert(r Review)
	Patch(key Key, p StatePatch) (Review, error)
	Len() int
}

// FetchResult is one provider's normalized output. Excluded counts the
// raw records dropped because a required field was unrecoverable.
type FetchResult struct {
	Reviews  []Review
	Excluded int
}

// ReviewSource fetches and normalizes one provider's reviews.
type ReviewSource interface {
	Source() Source
	Fetch(ctx context.Context) (FetchResult, error)
}

// ReviewState is the persisted moderation record for one review key.
type ReviewState struct {
	Key            Key
	Approved       bool
	SelectedForWeb bool
	Tags           []string
}

// StateRepository is the write-through store for moderation state.
type StateRepository interface {
	UpsertState(ctx context.Context, st ReviewState) error
	LoadStates(ctx context.Context) (map[Key]ReviewState, error)
}

// TagRepository persists custom tags across restarts.
type TagRepository interface {
	InsertCustomTag(ctx context.Context, t ReviewTag) error
	DeleteCustomTag(ctx context.Context, id string) error
	LoadCustomTags(ctx context.Context) ([]ReviewTag, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
