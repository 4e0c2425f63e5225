package templates

import (
	"context"

	"fieldserve/internal/core/id"
	"fieldserve/internal/domain"
)

// Repository defines the interface for Template persistence.
type Repository interface {
	domain.Repository[*Template]

	// GetDefaultForType retrieves the default template for a quote type.
	// Returns a not-found error when no default is configured.
	GetDefaultForType(ctx context.Context, quoteType string) (*Template, error)

	// ClearDefault unsets the default flag on all templates of a quote type.
	ClearDefault(ctx context.Context, quoteType string) error

	// SetDefault sets the default flag on one template.
	SetDefault(ctx context.Context, templateID id.ID) error
}
