package ports

//go:generate mockgen -destination=mocks/mocks.go -package=mocks cleanroom/internal/resolution/ports AuditPort,IdentityChecker

import (
	"context"

	"cleanroom/pkg/platform/audit"
)

// AuditPort emits audit events. Defined here rather than importing a
// concrete publisher so the engine stays free of infrastructure choices.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}
