package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/wardenauth/warden/observe"
)

// Authorizer determines if an identity is allowed to access a resource.
type Authorizer interface {
	// Authorize checks if the request is permitted.
	// Returns nil if authorized, or an error (typically *AuthzError) if denied.
	Authorize(ctx context.Context, req *AuthzRequest) error

	// Name returns a unique identifier for this authorizer.
	Name() string
}

// AuthzRequest contains the information needed for authorization.
type AuthzRequest struct {
	// Subject is the identity making the request. Must be non-nil;
	// an unauthenticated request reaching authorization is an
	// enforcement error upstream and is denied.
	Subject *Identity

	// ResourceURI names the protected resource.
	ResourceURI string
}

// AuthzError represents an authorization failure.
type AuthzError struct {
	// Subject is the identity that was denied.
	Subject string

	// ResourceURI is the resource that was denied access to.
	ResourceURI string

	// Reason explains why access was denied.
	Reason string

	// Cause is the underlying error if any.
	Cause error
}

// Error returns the error message.
func (e *AuthzError) Error() string {
	return fmt.Sprintf("authorization denied: subject=%q resource=%q reason=%q",
		e.Subject, e.ResourceURI, e.Reason)
}

// Unwrap returns the cause error for errors.Is/As support.
func (e *AuthzError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches the target.
func (e *AuthzError) Is(target error) bool {
	return target == ErrForbidden
}

// ResourceAuthorizer decides access by authority-set intersection: the
// subject is allowed iff it holds at least one of the authorities the
// resource requires. A resource the directory cannot find is denied.
type ResourceAuthorizer struct {
	resources ResourceDirectory
	logger    observe.Logger
	metrics   *observe.DecisionMetrics
}

// NewResourceAuthorizer creates a resource authorizer.
func NewResourceAuthorizer(resources ResourceDirectory, logger observe.Logger, metrics *observe.DecisionMetrics) *ResourceAuthorizer {
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &ResourceAuthorizer{
		resources: resources,
		logger:    logger,
		metrics:   metrics,
	}
}

// Name returns "resource_authority".
func (a *ResourceAuthorizer) Name() string {
	return "resource_authority"
}

// Authorize checks whether the subject's authorities intersect the
// target resource's required authorities.
func (a *ResourceAuthorizer) Authorize(ctx context.Context, req *AuthzRequest) error {
	if req.Subject == nil {
		return &AuthzError{
			ResourceURI: req.ResourceURI,
			Reason:      "no identity bound",
		}
	}

	resource, err := a.resources.LookupResource(ctx, req.ResourceURI)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			a.metrics.RecordAuthz(ctx, false)
			return &AuthzError{
				Subject:     req.Subject.Principal,
				ResourceURI: req.ResourceURI,
				Reason:      "resource not found",
				Cause:       ErrResourceNotFound,
			}
		}
		return err
	}

	if !req.Subject.HasAnyAuthority(resource.Authorities) {
		a.logger.Warn(ctx, "access denied",
			observe.Field{Key: "subject", Value: req.Subject.Principal},
			observe.Field{Key: "resourceUri", Value: req.ResourceURI})
		a.metrics.RecordAuthz(ctx, false)
		return &AuthzError{
			Subject:     req.Subject.Principal,
			ResourceURI: req.ResourceURI,
			Reason:      "no matching authority",
		}
	}

	a.metrics.RecordAuthz(ctx, true)
	return nil
}

// Ensure ResourceAuthorizer implements Authorizer
var _ Authorizer = (*ResourceAuthorizer)(nil)
