package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/wardenauth/warden/auth"
)

func TestMemory_AddPrincipal(t *testing.T) {
	tests := []struct {
		name      string
		principal *auth.Principal
		wantErr   bool
	}{
		{
			name: "valid principal",
			principal: &auth.Principal{
				Identifier:  "alice",
				Kind:        auth.KindUser,
				Authorities: []string{"READ"},
				Enabled:     true,
			},
		},
		{
			name:      "nil principal",
			principal: nil,
			wantErr:   true,
		},
		{
			name: "empty identifier",
			principal: &auth.Principal{
				Kind:        auth.KindUser,
				Authorities: []string{"READ"},
			},
			wantErr: true,
		},
		{
			name: "no authorities",
			principal: &auth.Principal{
				Identifier: "noauth",
				Kind:       auth.KindUser,
			},
			wantErr: true,
		},
		{
			name: "authority too short",
			principal: &auth.Principal{
				Identifier:  "shortauth",
				Kind:        auth.KindUser,
				Authorities: []string{"RW"},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMemory()
			err := m.AddPrincipal(tt.principal)
			if (err != nil) != tt.wantErr {
				t.Errorf("AddPrincipal() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMemory_AddPrincipal_DuplicateRejected(t *testing.T) {
	m := NewMemory()
	p := &auth.Principal{Identifier: "alice", Kind: auth.KindUser, Authorities: []string{"READ"}}
	if err := m.AddPrincipal(p); err != nil {
		t.Fatalf("AddPrincipal() error = %v", err)
	}
	if err := m.AddPrincipal(p); err == nil {
		t.Error("AddPrincipal(duplicate) error = nil, want error")
	}
}

// The same identifier may exist once per account kind.
func TestMemory_PrincipalNamespacedByKind(t *testing.T) {
	m := NewMemory()
	user := &auth.Principal{Identifier: "batch", Kind: auth.KindUser, Authorities: []string{"READ"}}
	service := &auth.Principal{Identifier: "batch", Kind: auth.KindService, Authorities: []string{"WRITE"}}
	if err := m.AddPrincipal(user); err != nil {
		t.Fatalf("AddPrincipal(user) error = %v", err)
	}
	if err := m.AddPrincipal(service); err != nil {
		t.Fatalf("AddPrincipal(service) error = %v", err)
	}

	got, err := m.LookupPrincipal(context.Background(), "batch", auth.KindService)
	if err != nil {
		t.Fatalf("LookupPrincipal() error = %v", err)
	}
	if got.Authorities[0] != "WRITE" {
		t.Errorf("looked up wrong record: authorities = %v", got.Authorities)
	}
}

func TestMemory_LookupPrincipal_NotFound(t *testing.T) {
	m := NewMemory()
	_, err := m.LookupPrincipal(context.Background(), "ghost", auth.KindUser)
	if !errors.Is(err, auth.ErrPrincipalNotFound) {
		t.Errorf("LookupPrincipal() error = %v, want ErrPrincipalNotFound", err)
	}
}

func TestMemory_Resources(t *testing.T) {
	m := NewMemory()
	r := &auth.Resource{Identifier: "res-1", URI: "reports", Authorities: []string{"READ"}}
	if err := m.AddResource(r); err != nil {
		t.Fatalf("AddResource() error = %v", err)
	}
	if err := m.AddResource(r); err == nil {
		t.Error("AddResource(duplicate) error = nil, want error")
	}
	if err := m.AddResource(&auth.Resource{Identifier: "res-2", URI: "bare"}); err == nil {
		t.Error("AddResource(no authorities) error = nil, want error")
	}

	got, err := m.LookupResource(context.Background(), "reports")
	if err != nil {
		t.Fatalf("LookupResource() error = %v", err)
	}
	if got.Identifier != "res-1" {
		t.Errorf("LookupResource() = %v, want res-1", got.Identifier)
	}

	if _, err := m.LookupResource(context.Background(), "missing"); !errors.Is(err, auth.ErrResourceNotFound) {
		t.Errorf("LookupResource(missing) error = %v, want ErrResourceNotFound", err)
	}
}
