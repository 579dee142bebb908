// Package auth provides the token lifecycle and per-request access
// decision pipeline for warden.
//
// It covers credential verification, signed bearer-token minting and
// verification (HMAC JWT), per-request authentication with fresh
// principal re-resolution, and authority-intersection authorization
// against protected resources. The package is transport-agnostic at its
// core; HTTP binding lives in transport.go and in the httpapi package.
package auth
