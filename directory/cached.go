package directory

import (
	"context"
	"time"

	"github.com/wardenauth/warden/auth"
	"github.com/wardenauth/warden/cache"
)

// Cached is a read-through caching decorator over a principal and
// resource directory. It exists to absorb repeated lookups for hot
// principals; TTLs are kept short because records carry activation
// flags that must take effect promptly. Lookup misses are not cached.
type Cached struct {
	principals auth.PrincipalDirectory
	resources  auth.ResourceDirectory

	principalStore cache.Store[*auth.Principal]
	resourceStore  cache.Store[*auth.Resource]
	ttl            time.Duration
}

// NewCached wraps the given directories with a read-through cache
// using the supplied policy.
func NewCached(principals auth.PrincipalDirectory, resources auth.ResourceDirectory, policy cache.Policy) *Cached {
	return &Cached{
		principals:     principals,
		resources:      resources,
		principalStore: cache.NewMemory[*auth.Principal](policy),
		resourceStore:  cache.NewMemory[*auth.Resource](policy),
		ttl:            policy.DefaultTTL,
	}
}

// LookupPrincipal resolves a principal, serving repeated lookups from
// the cache within the TTL.
func (c *Cached) LookupPrincipal(ctx context.Context, identifier string, kind auth.AccountKind) (*auth.Principal, error) {
	key := string(kind) + "\x00" + identifier
	if p, ok := c.principalStore.Get(ctx, key); ok {
		return p, nil
	}

	p, err := c.principals.LookupPrincipal(ctx, identifier, kind)
	if err != nil {
		return nil, err
	}
	c.principalStore.Set(ctx, key, p, c.ttl)
	return p, nil
}

// LookupResource resolves a resource, serving repeated lookups from
// the cache within the TTL.
func (c *Cached) LookupResource(ctx context.Context, uri string) (*auth.Resource, error) {
	if r, ok := c.resourceStore.Get(ctx, uri); ok {
		return r, nil
	}

	r, err := c.resources.LookupResource(ctx, uri)
	if err != nil {
		return nil, err
	}
	c.resourceStore.Set(ctx, uri, r, c.ttl)
	return r, nil
}

// Ensure Cached implements both directory interfaces
var (
	_ auth.PrincipalDirectory = (*Cached)(nil)
	_ auth.ResourceDirectory  = (*Cached)(nil)
)
