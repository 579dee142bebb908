package auth

import "net/http"

// Middleware returns HTTP middleware that runs the authentication
// pipeline once per request. A verified identity is bound to the
// request context for the lifetime of that request; every failure mode
// leaves the request unauthenticated and records the reason as a
// challenge, so public routes keep working and the protected-route
// boundary stays the single enforcement point.
//
// If an identity is already bound the pipeline is skipped entirely.
func Middleware(authenticator *BearerAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if IdentityFromContext(ctx) != nil {
				next.ServeHTTP(w, r)
				return
			}

			result, err := authenticator.Authenticate(ctx, &AuthRequest{Headers: r.Header})
			if err != nil {
				// Internal directory failure is terminal for this
				// request's authentication, not for the request.
				ctx = WithChallenge(ctx, ErrPrincipalNotFound)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if !result.Authenticated {
				ctx = WithChallenge(ctx, result.Error)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, result.Identity)))
		})
	}
}
