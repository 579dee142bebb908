package httpapi

import (
	"errors"
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/wardenauth/warden/auth"
)

// Messages for the authentication entry point. The developer message
// distinguishes the failure mode; the user-facing message never does.
const (
	msgUnauthorized     = "Authentication is required to access this resource"
	reasonUnauthorized  = "Authentication Required"
	devMsgTokenAbsent   = "No bearer token was provided with the request"
	devMsgTokenExpired  = "The bearer token has expired"
	devMsgTokenInvalid  = "The bearer token is not valid"
	devMsgTokenRejected = "The bearer token could not be matched to an active principal"
)

// RequireIdentity is the authentication entry point for protected
// routes: requests without a bound identity are terminated with a 401
// envelope whose developer message reflects why authentication did not
// happen. It never fires for public routes, which simply don't mount it.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.IdentityFromContext(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}

		devMsg := devMsgTokenAbsent
		switch challenge := auth.ChallengeFromContext(r.Context()); {
		case challenge == nil, errors.Is(challenge, auth.ErrMissingCredentials):
			devMsg = devMsgTokenAbsent
		case errors.Is(challenge, auth.ErrTokenExpired):
			devMsg = devMsgTokenExpired
		case errors.Is(challenge, auth.ErrTokenMalformed), errors.Is(challenge, auth.ErrSignatureInvalid):
			devMsg = devMsgTokenInvalid
		default:
			devMsg = devMsgTokenRejected
		}

		WriteEnvelope(w, NewEnvelope(http.StatusUnauthorized, nil,
			msgUnauthorized, reasonUnauthorized, devMsg))
	})
}

// loginLimiter rate-limits login attempts per client address.
type loginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newLoginLimiter(rps float64, burst int) *loginLimiter {
	return &loginLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *loginLimiter) allow(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}

	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

// LoginRateLimit throttles credential-guessing against the login
// endpoint. Rejected attempts get a 429 envelope.
func LoginRateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := newLoginLimiter(rps, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(r.RemoteAddr) {
				WriteEnvelope(w, NewEnvelope(http.StatusTooManyRequests, nil,
					"Too many login attempts", "Rate Limited",
					"Login attempts from this address are temporarily throttled"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
