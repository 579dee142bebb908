// Package cache provides a small TTL cache used to front directory
// lookups.
//
// The store is generic over the cached record type and safe for
// concurrent use. Expired entries are evicted lazily on read.
package cache
