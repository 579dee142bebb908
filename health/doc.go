// Package health provides liveness and readiness checks for warden.
//
// Checkers probe the service's collaborators (the principal and
// resource directories); the aggregator combines them into a single
// readiness verdict served over HTTP alongside the public welcome
// route.
package health
