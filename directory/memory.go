package directory

import (
	"context"
	"fmt"
	"sync"

	"github.com/wardenauth/warden/auth"
)

// MinAuthorityLength is the shortest permitted authority string.
const MinAuthorityLength = 3

// Memory is an in-memory principal and resource directory. It stands
// in for the external lookup service; records are registered up front
// and read-only afterwards.
type Memory struct {
	mu         sync.RWMutex
	principals map[principalKey]*auth.Principal
	resources  map[string]*auth.Resource
}

type principalKey struct {
	identifier string
	kind       auth.AccountKind
}

// NewMemory creates an empty in-memory directory.
func NewMemory() *Memory {
	return &Memory{
		principals: make(map[principalKey]*auth.Principal),
		resources:  make(map[string]*auth.Resource),
	}
}

// AddPrincipal registers a principal. The identifier is unique within
// its account-kind namespace; a duplicate registration is rejected.
func (m *Memory) AddPrincipal(p *auth.Principal) error {
	if p == nil || p.Identifier == "" {
		return fmt.Errorf("directory: principal identifier is required")
	}
	if err := validateAuthorities(p.Authorities); err != nil {
		return fmt.Errorf("directory: principal %q: %w", p.Identifier, err)
	}

	key := principalKey{identifier: p.Identifier, kind: p.Kind}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.principals[key]; exists {
		return fmt.Errorf("directory: principal %q already registered for kind %s", p.Identifier, p.Kind)
	}
	m.principals[key] = p
	return nil
}

// AddResource registers a resource by its owning URI.
func (m *Memory) AddResource(r *auth.Resource) error {
	if r == nil || r.URI == "" {
		return fmt.Errorf("directory: resource uri is required")
	}
	if err := validateAuthorities(r.Authorities); err != nil {
		return fmt.Errorf("directory: resource %q: %w", r.URI, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.resources[r.URI]; exists {
		return fmt.Errorf("directory: resource %q already registered", r.URI)
	}
	m.resources[r.URI] = r
	return nil
}

// LookupPrincipal resolves a principal by identifier and account kind.
func (m *Memory) LookupPrincipal(_ context.Context, identifier string, kind auth.AccountKind) (*auth.Principal, error) {
	m.mu.RLock()
	p, ok := m.principals[principalKey{identifier: identifier, kind: kind}]
	m.mu.RUnlock()
	if !ok {
		return nil, auth.ErrPrincipalNotFound
	}
	return p, nil
}

// LookupResource resolves a resource by its owning URI.
func (m *Memory) LookupResource(_ context.Context, uri string) (*auth.Resource, error) {
	m.mu.RLock()
	r, ok := m.resources[uri]
	m.mu.RUnlock()
	if !ok {
		return nil, auth.ErrResourceNotFound
	}
	return r, nil
}

func validateAuthorities(authorities []string) error {
	if len(authorities) == 0 {
		return fmt.Errorf("at least one authority is required")
	}
	for _, a := range authorities {
		if len(a) < MinAuthorityLength {
			return fmt.Errorf("authority %q is shorter than %d characters", a, MinAuthorityLength)
		}
	}
	return nil
}

// Ensure Memory implements both directory interfaces
var (
	_ auth.PrincipalDirectory = (*Memory)(nil)
	_ auth.ResourceDirectory  = (*Memory)(nil)
)
