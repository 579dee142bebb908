// Package secret sources key material from external secret
// configuration.
//
// The token signing key must never appear as a literal in code or
// config files; it is referenced as `secretref:<provider>:<ref>` or
// via strict environment expansion, and resolved at startup through a
// registered provider (env, file). Providers must not log secret
// values.
package secret
