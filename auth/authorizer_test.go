package auth

import (
	"context"
	"errors"
	"testing"
)

func TestAuthzError_Is(t *testing.T) {
	err := &AuthzError{Subject: "alice", ResourceURI: "reports", Reason: "no matching authority"}
	if !errors.Is(err, ErrForbidden) {
		t.Error("errors.Is(AuthzError, ErrForbidden) = false, want true")
	}
}

func TestAuthzError_Error(t *testing.T) {
	err := &AuthzError{Subject: "alice", ResourceURI: "reports", Reason: "no matching authority"}
	want := `authorization denied: subject="alice" resource="reports" reason="no matching authority"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %v, want %v", got, want)
	}
}

func TestResourceAuthorizer_Authorize(t *testing.T) {
	dir := &fakeDirectory{resources: map[string]*Resource{
		"reports": {Identifier: "res-1", URI: "reports", Authorities: []string{"READ", "WRITE"}},
		"admin":   {Identifier: "res-2", URI: "admin", Authorities: []string{"ADMIN"}},
	}}
	authorizer := NewResourceAuthorizer(dir, nil, nil)

	if authorizer.Name() != "resource_authority" {
		t.Errorf("Name() = %v, want resource_authority", authorizer.Name())
	}

	tests := []struct {
		name        string
		subject     *Identity
		resourceURI string
		wantAllow   bool
	}{
		{
			name:        "single overlapping authority",
			subject:     &Identity{Principal: "alice", Authorities: []string{"READ"}},
			resourceURI: "reports",
			wantAllow:   true,
		},
		{
			name:        "full overlap",
			subject:     &Identity{Principal: "alice", Authorities: []string{"READ", "WRITE"}},
			resourceURI: "reports",
			wantAllow:   true,
		},
		{
			name:        "superset of required",
			subject:     &Identity{Principal: "alice", Authorities: []string{"READ", "WRITE", "ADMIN"}},
			resourceURI: "reports",
			wantAllow:   true,
		},
		{
			name:        "disjoint authorities",
			subject:     &Identity{Principal: "alice", Authorities: []string{"DELETE"}},
			resourceURI: "reports",
			wantAllow:   false,
		},
		{
			name:        "no authorities at all",
			subject:     &Identity{Principal: "alice"},
			resourceURI: "reports",
			wantAllow:   false,
		},
		{
			name:        "unknown resource",
			subject:     &Identity{Principal: "alice", Authorities: []string{"READ"}},
			resourceURI: "missing",
			wantAllow:   false,
		},
		{
			name:        "nil subject",
			subject:     nil,
			resourceURI: "reports",
			wantAllow:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authorizer.Authorize(context.Background(), &AuthzRequest{
				Subject:     tt.subject,
				ResourceURI: tt.resourceURI,
			})
			if tt.wantAllow && err != nil {
				t.Errorf("Authorize() error = %v, want allow", err)
			}
			if !tt.wantAllow {
				if err == nil {
					t.Fatal("Authorize() error = nil, want deny")
				}
				if !errors.Is(err, ErrForbidden) {
					t.Errorf("Authorize() error = %v, want ErrForbidden match", err)
				}
			}
		})
	}
}

func TestResourceAuthorizer_Authorize_InternalFailure(t *testing.T) {
	lookupErr := errors.New("directory unavailable")
	authorizer := NewResourceAuthorizer(&fakeDirectory{lookupErr: lookupErr}, nil, nil)

	err := authorizer.Authorize(context.Background(), &AuthzRequest{
		Subject:     &Identity{Principal: "alice", Authorities: []string{"READ"}},
		ResourceURI: "reports",
	})
	if !errors.Is(err, lookupErr) {
		t.Errorf("Authorize() error = %v, want lookup error", err)
	}
	if errors.Is(err, ErrForbidden) {
		t.Error("internal failure reported as ErrForbidden")
	}
}
