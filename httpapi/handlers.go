package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wardenauth/warden/auth"
	"github.com/wardenauth/warden/observe"
)

// Handlers holds the route handlers and their collaborators.
type Handlers struct {
	login      *auth.LoginService
	authorizer auth.Authorizer
	logger     observe.Logger
}

// NewHandlers creates the route handlers.
func NewHandlers(login *auth.LoginService, authorizer auth.Authorizer, logger observe.Logger) *Handlers {
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &Handlers{
		login:      login,
		authorizer: authorizer,
		logger:     logger,
	}
}

func writeLoginFailure(w http.ResponseWriter) {
	WriteEnvelope(w, NewEnvelope(http.StatusUnauthorized, nil,
		"Invalid username, password, or account type",
		"Authentication Failed",
		"The supplied credentials did not match an active account"))
}

// HandleLogin authenticates raw credentials and mints a bearer token.
// The token is returned both in the body and echoed in the
// Authorization response header.
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteEnvelope(w, NewEnvelope(http.StatusBadRequest, nil,
			"Malformed request body", "Bad Request",
			"The request body could not be parsed as JSON"))
		return
	}
	if req.Username == "" || req.Password == "" {
		writeLoginFailure(w)
		return
	}

	kind, err := auth.ParseAccountKind(req.AccountType)
	if err != nil {
		writeLoginFailure(w)
		return
	}

	result, err := h.login.Login(r.Context(), req.Username, req.Password, kind)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			writeLoginFailure(w)
			return
		}
		h.logger.Error(r.Context(), "login failed",
			observe.Field{Key: "error", Value: err.Error()})
		writeInternalError(w)
		return
	}

	w.Header().Set("Authorization", "Bearer "+result.Token)
	WriteEnvelope(w, NewEnvelope(http.StatusOK, TokenResponse{Token: result.Token},
		"User Successfully authenticated",
		"Authentication Success",
		"A bearer token was issued for the authenticated account"))
}

// HandleAuthorize checks the caller's authorities against a named
// resource. The route is protected, so an identity is always bound by
// the time this runs.
func (h *Handlers) HandleAuthorize(w http.ResponseWriter, r *http.Request) {
	var req AuthorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteEnvelope(w, NewEnvelope(http.StatusBadRequest, nil,
			"Malformed request body", "Bad Request",
			"The request body could not be parsed as JSON"))
		return
	}
	if req.ResourceURI == "" {
		WriteEnvelope(w, NewEnvelope(http.StatusBadRequest, nil,
			"A resource URI is required", "Bad Request",
			"The resourceUri field must be a non-empty string"))
		return
	}

	identity := auth.IdentityFromContext(r.Context())

	err := h.authorizer.Authorize(r.Context(), &auth.AuthzRequest{
		Subject:     identity,
		ResourceURI: req.ResourceURI,
	})
	if err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			WriteEnvelope(w, NewEnvelope(http.StatusForbidden, nil,
				"You do not have permission to access this resource",
				"Access Denied",
				"None of the caller's authorities match the resource's required authorities"))
			return
		}
		h.logger.Error(r.Context(), "authorization failed",
			observe.Field{Key: "error", Value: err.Error()})
		writeInternalError(w)
		return
	}

	WriteEnvelope(w, NewEnvelope(http.StatusOK, summarizeIdentity(identity),
		"Token Successfully validated",
		"Token Validation Success",
		"The caller holds at least one authority required by the resource"))
}

// HandleWelcome is the protected smoke-test route: it returns the
// caller's resolved identity and requires nothing beyond a valid token.
func (h *Handlers) HandleWelcome(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	WriteEnvelope(w, NewEnvelope(http.StatusOK, summarizeIdentity(identity),
		"Welcome "+identity.Principal,
		"Token Validation Success",
		"The bearer token resolved to an active principal"))
}

// HandleRoot is the unauthenticated landing route.
func (h *Handlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	WriteEnvelope(w, NewEnvelope(http.StatusOK, map[string]string{"service": "warden"},
		"Warden identity service", "OK",
		"Authenticate via POST /v1/auth/login"))
}

func writeInternalError(w http.ResponseWriter) {
	WriteEnvelope(w, NewEnvelope(http.StatusInternalServerError, nil,
		"An internal error occurred", "Internal Error",
		"The request could not be processed"))
}
