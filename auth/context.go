package auth

import "context"

// Context keys for auth-related values.
type contextKey int

const (
	identityKey contextKey = iota
	challengeKey
)

// WithIdentity returns a new context with the given identity attached.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the identity from the context.
// Returns nil if no identity is bound.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}

// PrincipalFromContext retrieves the principal identifier from the
// context. Returns empty string if no identity is bound.
func PrincipalFromContext(ctx context.Context) string {
	id := IdentityFromContext(ctx)
	if id == nil {
		return ""
	}
	return id.Principal
}

// WithChallenge records why authentication left the request
// unauthenticated. The enforcement boundary reads it to produce a
// precise 401 without the pipeline itself rejecting the request.
func WithChallenge(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, challengeKey, err)
}

// ChallengeFromContext retrieves the recorded authentication failure.
// Returns nil when authentication succeeded or was never attempted.
func ChallengeFromContext(ctx context.Context) error {
	err, _ := ctx.Value(challengeKey).(error)
	return err
}
