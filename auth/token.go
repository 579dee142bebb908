package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenValidity is the default lifetime of a minted token.
// It is deliberately short for a bearer token with no refresh
// mechanism; deployments override it via configuration.
const DefaultTokenValidity = 15 * time.Minute

// Claim names used in minted tokens. The subject is stored both as the
// registered "sub" claim and as the explicit "username" claim; reads go
// through the explicit claim.
const (
	claimUsername    = "username"
	claimAccountType = "accountType"
	claimAuthorities = "authorities"
)

// Claims are the verified contents of a token.
type Claims struct {
	// Subject is the principal identifier, read from the explicit
	// username claim.
	Subject string

	// Kind is the account kind the token was minted for.
	Kind AccountKind

	// Authorities is the authority list embedded at mint time.
	Authorities []string

	// IssuedAt is when the token was minted.
	IssuedAt time.Time

	// ExpiresAt is when the token expires.
	ExpiresAt time.Time
}

// ExpiredAt reports whether the claims are expired at the given
// instant. The boundary is inclusive: now == ExpiresAt is expired.
func (c *Claims) ExpiredAt(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// ValidateFor confirms the claims against a freshly resolved principal:
// the subject must match the principal's identifier and the token must
// not be expired at now.
func (c *Claims) ValidateFor(p *Principal, now time.Time) error {
	if p == nil || c.Subject != p.Identifier {
		return ErrSubjectMismatch
	}
	if c.ExpiredAt(now) {
		return ErrTokenExpired
	}
	return nil
}

// Codec mints and verifies signed bearer tokens. Tokens are compact
// HMAC-SHA256 JWTs carrying the subject, account kind, and authority
// list as claims. The codec is stateless and safe for unlimited
// concurrent use.
type Codec struct {
	key      []byte
	validity time.Duration
	now      func() time.Time
}

// NewCodec creates a token codec. The signing key must come from
// external secret configuration and must not be empty; validity <= 0
// falls back to DefaultTokenValidity.
func NewCodec(key []byte, validity time.Duration) (*Codec, error) {
	if len(key) == 0 {
		return nil, errors.New("auth: signing key is required")
	}
	if validity <= 0 {
		validity = DefaultTokenValidity
	}
	return &Codec{
		key:      key,
		validity: validity,
		now:      time.Now,
	}, nil
}

// Validity returns the configured token lifetime.
func (c *Codec) Validity() time.Duration {
	return c.validity
}

// Mint creates a signed token for the given subject, account kind, and
// authority list. Issued-at is now; expiry is now plus the configured
// validity window.
func (c *Codec) Mint(subject string, kind AccountKind, authorities []string) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":            subject,
		claimUsername:    subject,
		claimAccountType: string(kind),
		claimAuthorities: authorities,
		"iat":            now.Unix(),
		"exp":            now.Add(c.validity).Unix(),
	})
	return token.SignedString(c.key)
}

// Verify parses and validates a token, returning its claims. A
// tampered token fails with ErrSignatureInvalid, an unparseable one
// with ErrTokenMalformed, and an elapsed one with ErrTokenExpired.
// Claims are never returned for a token that fails any check.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString,
		func(_ *jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenMalformed
		}
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}
	return claimsFromMap(mapClaims)
}

func claimsFromMap(mc jwt.MapClaims) (*Claims, error) {
	subject, ok := mc[claimUsername].(string)
	if !ok || subject == "" {
		return nil, ErrTokenMalformed
	}

	kindTag, ok := mc[claimAccountType].(string)
	if !ok {
		return nil, ErrTokenMalformed
	}
	kind, err := ParseAccountKind(kindTag)
	if err != nil {
		return nil, ErrTokenMalformed
	}

	raw, ok := mc[claimAuthorities].([]any)
	if !ok {
		return nil, ErrTokenMalformed
	}
	authorities := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, ErrTokenMalformed
		}
		authorities = append(authorities, s)
	}

	exp, ok := mc["exp"].(float64)
	if !ok {
		return nil, ErrTokenMalformed
	}
	claims := &Claims{
		Subject:     subject,
		Kind:        kind,
		Authorities: authorities,
		ExpiresAt:   time.Unix(int64(exp), 0),
	}
	if iat, ok := mc["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	return claims, nil
}
