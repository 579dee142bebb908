package httpapi

import "github.com/wardenauth/warden/auth"

// LoginRequest is the login endpoint's body.
type LoginRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	AccountType string `json:"accountType"`
}

// TokenResponse carries a minted token back to the client.
type TokenResponse struct {
	Token string `json:"token"`
}

// AuthorizeRequest names the protected resource being accessed.
type AuthorizeRequest struct {
	ResourceURI string `json:"resourceUri"`
}

// AuthorityView is the wire form of a single granted authority.
type AuthorityView struct {
	Permission string `json:"permission"`
}

// IdentitySummary is the caller's resolved identity returned on a
// successful authorization check.
type IdentitySummary struct {
	Username    string          `json:"username"`
	AccountType string          `json:"accountType"`
	Authorities []AuthorityView `json:"authorities"`
}

// summarizeIdentity converts a bound identity to its wire form. The
// conversion is total: every authority on the identity appears in the
// summary.
func summarizeIdentity(id *auth.Identity) IdentitySummary {
	authorities := make([]AuthorityView, len(id.Authorities))
	for i, a := range id.Authorities {
		authorities[i] = AuthorityView{Permission: a}
	}
	return IdentitySummary{
		Username:    id.Principal,
		AccountType: string(id.Kind),
		Authorities: authorities,
	}
}
