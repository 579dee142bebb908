package auth

import (
	"context"
	"fmt"
)

// AccountKind discriminates human-user principals from service-account
// principals. The wire values match the account type tags clients send.
type AccountKind string

const (
	KindUser    AccountKind = "USER-ACCOUNT"
	KindService AccountKind = "SERVICE-ACCOUNT"
)

// ParseAccountKind parses a wire tag into an AccountKind.
func ParseAccountKind(s string) (AccountKind, error) {
	switch AccountKind(s) {
	case KindUser:
		return KindUser, nil
	case KindService:
		return KindService, nil
	default:
		return "", fmt.Errorf("auth: unknown account kind %q", s)
	}
}

// Principal is an authenticatable identity record as resolved from the
// principal directory. It is read-only to this package; creation and
// mutation belong to the directory's backing store.
type Principal struct {
	// Identifier is unique within the principal's account-kind namespace.
	Identifier string

	// SecretHash is the bcrypt hash of the principal's secret.
	SecretHash string

	// Kind distinguishes user accounts from service accounts.
	Kind AccountKind

	// Authorities are the permission strings granted to the principal.
	// Every principal carries at least one.
	Authorities []string

	// Activation flags. A principal must be enabled, not locked, not
	// expired, and hold non-expired credentials to authenticate.
	Enabled            bool
	Locked             bool
	AccountExpired     bool
	CredentialsExpired bool
}

// Active reports whether the principal may currently authenticate.
func (p *Principal) Active() bool {
	return p.Enabled && !p.Locked && !p.AccountExpired && !p.CredentialsExpired
}

// HasAuthority checks if the principal holds a specific authority.
func (p *Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// Resource is a protected operation identified by URI and gated by a
// required authority set. Read-only to this package.
type Resource struct {
	// Identifier is the resource's unique ID in the directory.
	Identifier string

	// URI is the owning URI clients name when requesting access.
	URI string

	// Authorities are the permission strings that grant access.
	// At least one is required; access needs any single match.
	Authorities []string
}

// PrincipalDirectory resolves login identifiers to principal records.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: lookups should honor cancellation/deadlines.
// - Errors: a missing principal is reported as ErrPrincipalNotFound
//   (possibly wrapped); any other error is an internal lookup failure.
type PrincipalDirectory interface {
	// LookupPrincipal resolves a principal by identifier and account kind.
	LookupPrincipal(ctx context.Context, identifier string, kind AccountKind) (*Principal, error)
}

// ResourceDirectory resolves resource URIs to resource records.
//
// Contract mirrors PrincipalDirectory; a missing resource is reported
// as ErrResourceNotFound (possibly wrapped).
type ResourceDirectory interface {
	// LookupResource resolves a resource by its owning URI.
	LookupResource(ctx context.Context, uri string) (*Resource, error)
}
