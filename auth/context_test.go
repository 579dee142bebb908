package auth

import (
	"context"
	"errors"
	"testing"
)

func TestIdentityContext_RoundTrip(t *testing.T) {
	id := &Identity{Principal: "alice", Kind: KindUser, Authorities: []string{"READ"}}
	ctx := WithIdentity(context.Background(), id)

	if got := IdentityFromContext(ctx); got != id {
		t.Errorf("IdentityFromContext() = %v, want %v", got, id)
	}
	if got := PrincipalFromContext(ctx); got != "alice" {
		t.Errorf("PrincipalFromContext() = %q, want %q", got, "alice")
	}
}

func TestIdentityContext_Empty(t *testing.T) {
	ctx := context.Background()

	if got := IdentityFromContext(ctx); got != nil {
		t.Errorf("IdentityFromContext(empty) = %v, want nil", got)
	}
	if got := PrincipalFromContext(ctx); got != "" {
		t.Errorf("PrincipalFromContext(empty) = %q, want empty", got)
	}
}

func TestChallengeContext_RoundTrip(t *testing.T) {
	ctx := WithChallenge(context.Background(), ErrTokenExpired)

	if got := ChallengeFromContext(ctx); !errors.Is(got, ErrTokenExpired) {
		t.Errorf("ChallengeFromContext() = %v, want ErrTokenExpired", got)
	}
	if got := ChallengeFromContext(context.Background()); got != nil {
		t.Errorf("ChallengeFromContext(empty) = %v, want nil", got)
	}
}
