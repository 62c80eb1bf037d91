package ports

import "context"

// IdentityChecker is the external identity-validity capability (SSN check).
// Implementations own transport and caching; callers must treat an error as
// "invalid" (fail-closed) rather than propagating it.
type IdentityChecker interface {
	Valid(ctx context.Context, ssn string) (bool, error)
}
