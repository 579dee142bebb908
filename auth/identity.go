package auth

import "time"

// Identity is the per-request binding of a verified principal. It is
// created at most once per inbound request by the authentication
// pipeline, threaded through the request's context, and discarded at
// request end. It is never persisted or shared across requests.
type Identity struct {
	// Principal is the verified principal identifier.
	Principal string

	// Kind is the principal's account kind.
	Kind AccountKind

	// Authorities are the authorities granted to the principal,
	// taken from the freshly resolved directory record.
	Authorities []string

	// IssuedAt is when the presented token was issued.
	IssuedAt time.Time

	// ExpiresAt is when the presented token expires.
	ExpiresAt time.Time
}

// HasAuthority checks if the identity holds a specific authority.
func (id *Identity) HasAuthority(authority string) bool {
	for _, a := range id.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// HasAnyAuthority reports whether the identity holds at least one of
// the required authorities. Duplicates collapse under set semantics.
func (id *Identity) HasAnyAuthority(required []string) bool {
	if len(required) == 0 {
		return false
	}
	held := make(map[string]struct{}, len(id.Authorities))
	for _, a := range id.Authorities {
		held[a] = struct{}{}
	}
	for _, r := range required {
		if _, ok := held[r]; ok {
			return true
		}
	}
	return false
}
