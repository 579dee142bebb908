// Package observe provides structured logging, metrics, and tracing
// for warden.
//
// It wires OpenTelemetry tracing and metrics behind a single Observer,
// with exporters selected by configuration (otlp, prometheus, stdout,
// none), and exposes a minimal structured JSON Logger that redacts
// credential material.
package observe
