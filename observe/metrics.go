package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DecisionMetrics records authentication and authorization outcomes.
// A nil *DecisionMetrics is valid and records nothing, so callers need
// no guards when metrics are disabled.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: recording must not panic.
type DecisionMetrics struct {
	loginTotal metric.Int64Counter
	authnTotal metric.Int64Counter
	authzTotal metric.Int64Counter
}

// NewDecisionMetrics creates decision metrics on the given meter.
func NewDecisionMetrics(meter metric.Meter) (*DecisionMetrics, error) {
	loginTotal, err := meter.Int64Counter(
		"warden.login.total",
		metric.WithDescription("Total number of login attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	authnTotal, err := meter.Int64Counter(
		"warden.authn.total",
		metric.WithDescription("Total number of request authentication attempts"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	authzTotal, err := meter.Int64Counter(
		"warden.authz.total",
		metric.WithDescription("Total number of authorization decisions"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, err
	}

	return &DecisionMetrics{
		loginTotal: loginTotal,
		authnTotal: authnTotal,
		authzTotal: authzTotal,
	}, nil
}

// RecordLogin records a login attempt outcome for an account kind.
func (m *DecisionMetrics) RecordLogin(ctx context.Context, accountKind string, success bool) {
	if m == nil {
		return
	}
	m.loginTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("account_kind", accountKind),
		attribute.Bool("success", success),
	))
}

// RecordAuthn records a bearer-token authentication outcome.
func (m *DecisionMetrics) RecordAuthn(ctx context.Context, success bool) {
	if m == nil {
		return
	}
	m.authnTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("success", success),
	))
}

// RecordAuthz records an authorization decision.
func (m *DecisionMetrics) RecordAuthz(ctx context.Context, allowed bool) {
	if m == nil {
		return
	}
	m.authzTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("allowed", allowed),
	))
}
