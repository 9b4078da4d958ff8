package catalog

import (
	"context"

	"github.com/tunepool/tunepool/internal/models"
)

// Source defines the contract for paginated track catalog providers.
type Source interface {
	// GetPage retrieves one page of popularity-ranked tracks.
	// Pages are 1-based; an empty slice signals the end of the catalog.
	GetPage(ctx context.Context, page int) ([]models.Track, error)

	// Search runs a remote text query against the catalog.
	Search(ctx context.Context, query string) ([]models.Track, error)

	// Name returns the name of the catalog provider.
	Name() string
}
