package port

import (
	"context"

	"github.com/rl1809/warung-pos/internal/core/domain"
)

type CatalogRepository interface {
	// Load returns the persisted catalog, or nil when no record has ever
	// been written.
	Load(ctx context.Context) ([]domain.Product, error)

	// Save overwrites the persisted catalog wholesale. No merge, no
	// versioning; the single register session is the only writer.
	Save(ctx context.Context, products []domain.Product) error
}
