package repositories

import (
	"context"

	"etalase/internal/models"
)

// ProductQuery describes a page of the products collection. Keyword, if
// non-empty, restricts results to text-index matches over title and
// description.
type ProductQuery struct {
	Keyword   string
	SortField string
	SortDesc  bool
	Skip      int64
	Limit     int64
}

// ProductRepository defines the interface for product data access. All
// identifier arguments are the client-facing opaque product ids, never
// the storage-assigned ones.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByProductID(ctx context.Context, productID string) (*models.Product, error)
	List(ctx context.Context, q ProductQuery) ([]models.Product, int64, error)
	Update(ctx context.Context, productID string, fields map[string]interface{}) error
	Delete(ctx context.Context, productID string) error
}
