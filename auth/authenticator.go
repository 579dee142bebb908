package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wardenauth/warden/observe"
)

// BearerConfig configures the bearer-token authenticator.
type BearerConfig struct {
	// HeaderName is the header containing the token.
	// Default: "Authorization"
	HeaderName string

	// TokenPrefix is the prefix before the token in the header.
	// Default: "Bearer "
	TokenPrefix string
}

// AuthRequest contains the information needed for authentication.
type AuthRequest struct {
	// Headers contains the transport headers (Authorization etc.)
	Headers map[string][]string
}

// GetHeader returns the first value for a header, or empty string.
func (r *AuthRequest) GetHeader(key string) string {
	if r.Headers == nil {
		return ""
	}
	values := r.Headers[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// AuthResult is the result of an authentication attempt.
type AuthResult struct {
	// Authenticated is true if authentication succeeded.
	Authenticated bool

	// Identity is the authenticated identity (only if Authenticated=true).
	Identity *Identity

	// Error is the authentication failure (only if Authenticated=false).
	// Always one of the package sentinel errors, safe to surface.
	Error error
}

// AuthSuccess creates a successful authentication result.
func AuthSuccess(identity *Identity) *AuthResult {
	return &AuthResult{Authenticated: true, Identity: identity}
}

// AuthFailure creates a failed authentication result.
func AuthFailure(err error) *AuthResult {
	return &AuthResult{Authenticated: false, Error: err}
}

// BearerAuthenticator authenticates requests carrying a signed bearer
// token. Verification never trusts token claims alone for current
// account state: the principal is re-resolved from the directory on
// every request so lock/disable/expiry flags take effect immediately.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: Authenticate returns (nil, error) only for internal
//   directory failures; authentication failures come back as a
//   non-authenticated AuthResult.
type BearerAuthenticator struct {
	config     BearerConfig
	codec      *Codec
	principals PrincipalDirectory
	logger     observe.Logger
	metrics    *observe.DecisionMetrics
	now        func() time.Time
}

// NewBearerAuthenticator creates a bearer-token authenticator.
func NewBearerAuthenticator(config BearerConfig, codec *Codec, principals PrincipalDirectory, logger observe.Logger, metrics *observe.DecisionMetrics) *BearerAuthenticator {
	// Apply defaults
	if config.HeaderName == "" {
		config.HeaderName = "Authorization"
	}
	if config.TokenPrefix == "" {
		config.TokenPrefix = "Bearer "
	}
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &BearerAuthenticator{
		config:     config,
		codec:      codec,
		principals: principals,
		logger:     logger,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Token extracts the compact token from the request, reporting whether
// a well-formed bearer header was present.
func (a *BearerAuthenticator) Token(req *AuthRequest) (string, bool) {
	header := req.GetHeader(a.config.HeaderName)
	if !strings.HasPrefix(header, a.config.TokenPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, a.config.TokenPrefix))
	if token == "" {
		return "", false
	}
	return token, true
}

// Authenticate verifies the request's bearer token, re-resolves the
// principal, confirms the claims against the fresh record, and returns
// the identity to bind. Idempotence across re-invocation is handled by
// the transport middleware, which skips requests that already carry an
// identity.
func (a *BearerAuthenticator) Authenticate(ctx context.Context, req *AuthRequest) (*AuthResult, error) {
	tokenString, ok := a.Token(req)
	if !ok {
		return AuthFailure(ErrMissingCredentials), nil
	}

	claims, err := a.codec.Verify(tokenString)
	if err != nil {
		a.logger.Warn(ctx, "bearer token rejected", observe.Field{Key: "reason", Value: err.Error()})
		a.metrics.RecordAuthn(ctx, false)
		return AuthFailure(err), nil
	}

	principal, err := a.principals.LookupPrincipal(ctx, claims.Subject, claims.Kind)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			a.logger.Warn(ctx, "token subject not found in directory",
				observe.Field{Key: "subject", Value: claims.Subject},
				observe.Field{Key: "accountKind", Value: string(claims.Kind)})
			a.metrics.RecordAuthn(ctx, false)
			return AuthFailure(ErrPrincipalNotFound), nil
		}
		return nil, err
	}

	if !principal.Active() {
		a.logger.Warn(ctx, "principal inactive",
			observe.Field{Key: "subject", Value: principal.Identifier})
		a.metrics.RecordAuthn(ctx, false)
		return AuthFailure(ErrPrincipalInactive), nil
	}

	if err := claims.ValidateFor(principal, a.now()); err != nil {
		a.logger.Warn(ctx, "token failed validation against principal",
			observe.Field{Key: "subject", Value: claims.Subject},
			observe.Field{Key: "reason", Value: err.Error()})
		a.metrics.RecordAuthn(ctx, false)
		return AuthFailure(err), nil
	}

	a.metrics.RecordAuthn(ctx, true)
	return AuthSuccess(&Identity{
		Principal:   principal.Identifier,
		Kind:        principal.Kind,
		Authorities: principal.Authorities,
		IssuedAt:    claims.IssuedAt,
		ExpiresAt:   claims.ExpiresAt,
	}), nil
}
