package service

import "errors"

// Sentinel errors returned by the services. Handlers map these onto HTTP
// status codes; anything else is an unclassified server error.
var (
	// ErrTenantNotFound means no registry record matches the identifier
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrApprovalPending means the tenant has not been approved yet and
	// cannot be blocked or unblocked
	ErrApprovalPending = errors.New("tenant approval is pending")

	// ErrPrincipalMissing means the registry record resolved but the
	// distinguished admin record inside the tenant database did not
	ErrPrincipalMissing = errors.New("tenant principal record missing")

	// ErrNotConfigured means no contact record has been created yet
	ErrNotConfigured = errors.New("contact info not configured")
)
