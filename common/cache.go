package common

import "context"

// CacheResult reports how a cache lookup went. A CacheErrored lookup behaves
// exactly like a miss from the caller's point of view; the distinction exists
// so implementations can log storage failures without surfacing them.
type CacheResult int

const (
	CacheMiss CacheResult = iota
	CacheHit
	CacheErrored
)

// CacheRepository defines a minimal interface for a key/value cache of raw
// payloads. The values are stored as raw []byte, which callers can decode
// from JSON or other formats as needed.
//
// Implementations are best-effort: Set and Delete must never fail in a way
// the caller has to handle, and Get reports storage trouble as CacheErrored
// rather than returning an error.
type CacheRepository interface {
	Get(ctx context.Context, key string) (value []byte, result CacheResult)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string)
}

// NopCache is a CacheRepository that stores nothing and always misses.
// It stands in when caching is disabled.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, CacheResult) { return nil, CacheMiss }
func (NopCache) Set(context.Context, string, []byte)               {}
func (NopCache) Delete(context.Context, string)                    {}
