package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"etalase/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockProductRepository is an in-memory implementation of
// ProductRepository. Keyword filtering is a case-insensitive substring
// match over title and description, standing in for the text index.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// Create adds a new product.
func (r *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.StorageID.IsZero() {
		product.StorageID = primitive.NewObjectID()
	}
	r.products[product.ProductID] = *product
	return nil
}

// GetByProductID returns a product by its opaque identifier.
func (r *MockProductRepository) GetByProductID(ctx context.Context, productID string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[productID]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

// List returns one page of products plus the total matching count.
func (r *MockProductRepository) List(ctx context.Context, q ProductQuery) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Product, 0, len(r.products))
	keyword := strings.ToLower(q.Keyword)
	for _, p := range r.products {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(p.Title), keyword) &&
			!strings.Contains(strings.ToLower(p.Description), keyword) {
			continue
		}
		matched = append(matched, p)
	}

	sortProducts(matched, q.SortField, q.SortDesc)

	total := int64(len(matched))
	if q.Skip >= total {
		return []models.Product{}, total, nil
	}
	matched = matched[q.Skip:]
	if q.Limit > 0 && int64(len(matched)) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

// Update applies the given fields to an existing product.
func (r *MockProductRepository) Update(ctx context.Context, productID string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return ErrNotFound
	}
	for field, value := range fields {
		switch field {
		case "title":
			product.Title = value.(string)
		case "description":
			product.Description = value.(string)
		case "price":
			product.Price = value.(float64)
		case "image":
			product.Image = value.(string)
		case "updatedAt":
			t := value.(time.Time)
			product.UpdatedAt = &t
		}
	}
	r.products[productID] = product
	return nil
}

// Delete removes a product by its opaque identifier.
func (r *MockProductRepository) Delete(ctx context.Context, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[productID]; !ok {
		return ErrNotFound
	}
	delete(r.products, productID)
	return nil
}

func sortProducts(products []models.Product, field string, desc bool) {
	less := func(a, b models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	switch field {
	case "price":
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case "title":
		less = func(a, b models.Product) bool { return a.Title < b.Title }
	case "updatedAt":
		less = func(a, b models.Product) bool {
			au, bu := a.CreatedAt, b.CreatedAt
			if a.UpdatedAt != nil {
				au = *a.UpdatedAt
			}
			if b.UpdatedAt != nil {
				bu = *b.UpdatedAt
			}
			return au.Before(bu)
		}
	}
	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}
