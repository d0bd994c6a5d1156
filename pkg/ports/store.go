package ports

import (
	"context"

	"github.com/hepworks/nllfit/pkg/domain"
)

// ResultStore persists fit results by ID.
type ResultStore interface {
	// Save stores or overwrites the result under id.
	Save(ctx context.Context, id string, res *domain.FitResult) error
	// Load retrieves a result, or domain.ErrResultNotFound.
	Load(ctx context.Context, id string) (*domain.FitResult, error)
	// List returns the IDs of all stored results.
	List(ctx context.Context) ([]string, error)
	// Delete removes a result. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}
