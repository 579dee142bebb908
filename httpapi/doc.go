// Package httpapi exposes warden's HTTP surface: the public login and
// landing routes, the protected welcome and resource-authorization
// routes, health endpoints, and the Prometheus scrape endpoint.
//
// Every response is wrapped in the structured envelope; enforcement of
// authentication happens here at the protected-route boundary, never
// inside the authentication pipeline itself.
package httpapi
