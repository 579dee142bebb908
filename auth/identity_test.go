package auth

import "testing"

func TestIdentity_HasAuthority(t *testing.T) {
	id := &Identity{Principal: "alice", Authorities: []string{"READ", "WRITE"}}

	if !id.HasAuthority("READ") {
		t.Error("HasAuthority(READ) = false, want true")
	}
	if id.HasAuthority("ADMIN") {
		t.Error("HasAuthority(ADMIN) = true, want false")
	}
	if id.HasAuthority("read") {
		t.Error("HasAuthority(read) = true, want case-sensitive false")
	}
}

func TestIdentity_HasAnyAuthority(t *testing.T) {
	tests := []struct {
		name     string
		held     []string
		required []string
		want     bool
	}{
		{"one match", []string{"READ"}, []string{"READ", "WRITE"}, true},
		{"disjoint", []string{"DELETE"}, []string{"READ", "WRITE"}, false},
		{"empty required", []string{"READ"}, nil, false},
		{"empty held", nil, []string{"READ"}, false},
		{"duplicates collapse", []string{"READ", "READ"}, []string{"READ"}, true},
		{"match anywhere in required", []string{"WRITE"}, []string{"READ", "WRITE"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := &Identity{Principal: "alice", Authorities: tt.held}
			if got := id.HasAnyAuthority(tt.required); got != tt.want {
				t.Errorf("HasAnyAuthority(%v) = %v, want %v", tt.required, got, tt.want)
			}
		})
	}
}

func TestParseAccountKind(t *testing.T) {
	tests := []struct {
		input   string
		want    AccountKind
		wantErr bool
	}{
		{"USER-ACCOUNT", KindUser, false},
		{"SERVICE-ACCOUNT", KindService, false},
		{"user-account", "", true},
		{"ADMIN-ACCOUNT", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAccountKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAccountKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAccountKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrincipal_Active(t *testing.T) {
	tests := []struct {
		name      string
		principal Principal
		want      bool
	}{
		{"all clear", Principal{Enabled: true}, true},
		{"disabled", Principal{Enabled: false}, false},
		{"locked", Principal{Enabled: true, Locked: true}, false},
		{"account expired", Principal{Enabled: true, AccountExpired: true}, false},
		{"credentials expired", Principal{Enabled: true, CredentialsExpired: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.principal.Active(); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}
