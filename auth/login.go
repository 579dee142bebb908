package auth

import (
	"context"
	"errors"

	"github.com/wardenauth/warden/observe"
)

// LoginResult is the success envelope of a login attempt.
type LoginResult struct {
	// Token is the minted bearer token.
	Token string

	// Identity is the authenticated identity behind the token.
	Identity *Identity
}

// LoginService authenticates raw credentials and mints bearer tokens.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: every credential-level failure (unknown principal, secret
//   mismatch, inactive account) is reported as ErrBadCredentials so the
//   caller cannot learn which field was wrong. Any other error is an
//   internal failure.
type LoginService struct {
	principals PrincipalDirectory
	verifier   SecretVerifier
	codec      *Codec
	logger     observe.Logger
	metrics    *observe.DecisionMetrics
}

// NewLoginService creates a login service.
func NewLoginService(principals PrincipalDirectory, verifier SecretVerifier, codec *Codec, logger observe.Logger, metrics *observe.DecisionMetrics) *LoginService {
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &LoginService{
		principals: principals,
		verifier:   verifier,
		codec:      codec,
		logger:     logger,
		metrics:    metrics,
	}
}

// Login resolves the principal, verifies the secret, and mints a token.
func (s *LoginService) Login(ctx context.Context, identifier, secret string, kind AccountKind) (*LoginResult, error) {
	s.logger.Info(ctx, "login attempt",
		observe.Field{Key: "identifier", Value: identifier},
		observe.Field{Key: "accountKind", Value: string(kind)})

	principal, err := s.principals.LookupPrincipal(ctx, identifier, kind)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			// Indistinguishable from a secret mismatch to the caller.
			s.logger.Warn(ctx, "login rejected: principal not found",
				observe.Field{Key: "identifier", Value: identifier})
			s.metrics.RecordLogin(ctx, string(kind), false)
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if !principal.Active() {
		s.logger.Warn(ctx, "login rejected: principal inactive",
			observe.Field{Key: "identifier", Value: identifier})
		s.metrics.RecordLogin(ctx, string(kind), false)
		return nil, ErrBadCredentials
	}

	if err := s.verifier.VerifySecret(principal.SecretHash, secret); err != nil {
		if errors.Is(err, ErrBadCredentials) {
			s.logger.Warn(ctx, "login rejected: secret mismatch",
				observe.Field{Key: "identifier", Value: identifier})
			s.metrics.RecordLogin(ctx, string(kind), false)
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	token, err := s.codec.Mint(principal.Identifier, principal.Kind, principal.Authorities)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "login succeeded",
		observe.Field{Key: "identifier", Value: principal.Identifier},
		observe.Field{Key: "accountKind", Value: string(principal.Kind)})
	s.metrics.RecordLogin(ctx, string(kind), true)

	return &LoginResult{
		Token: token,
		Identity: &Identity{
			Principal:   principal.Identifier,
			Kind:        principal.Kind,
			Authorities: principal.Authorities,
		},
	}, nil
}
