// Package directory provides principal and resource lookup backends.
//
// The core treats both directories as external collaborators; this
// package supplies an in-memory implementation seeded from a YAML
// document, plus a read-through caching decorator. Record creation and
// mutation stay out of the authentication core entirely.
package directory
