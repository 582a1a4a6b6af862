package services

import (
	"context"
	"log"
	"strings"
	"time"

	"etalase/internal/models"
	"etalase/internal/repositories"

	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
	defaultSort  = "-createdAt"
)

// ListParams are the raw listing inputs taken from the query string.
// Out-of-range values are clamped to defaults rather than rejected.
type ListParams struct {
	Page    int
	Limit   int
	Sort    string
	Keyword string
}

// ProductService handles business logic related to catalog products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
	}
}

// ListProducts returns one page of products with pagination metadata.
// A page past the end of the result set yields an empty list, not an
// error.
func (s *ProductService) ListProducts(ctx context.Context, params ListParams) (*models.ProductPage, error) {
	if params.Page < 1 {
		params.Page = defaultPage
	}
	if params.Limit < 1 || params.Limit > maxLimit {
		params.Limit = defaultLimit
	}
	if params.Sort == "" {
		params.Sort = defaultSort
	}

	field, desc := params.Sort, false
	if strings.HasPrefix(field, "-") {
		field, desc = field[1:], true
	}

	products, total, err := s.repo.List(ctx, repositories.ProductQuery{
		Keyword:   params.Keyword,
		SortField: field,
		SortDesc:  desc,
		Skip:      int64(params.Page-1) * int64(params.Limit),
		Limit:     int64(params.Limit),
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))

	return &models.ProductPage{
		Products: products,
		Pagination: models.Pagination{
			CurrentPage:  params.Page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: params.Limit,
			HasNext:      params.Page < totalPages,
			HasPrev:      params.Page > 1,
		},
		Filters: models.ProductFilters{
			Keyword: params.Keyword,
			Sort:    params.Sort,
		},
	}, nil
}

// CreateProduct stores a new product with a freshly generated opaque
// identifier, recording the creating user and creation time.
func (s *ProductService) CreateProduct(ctx context.Context, userID string, req models.CreateProductRequest) (*models.Product, error) {
	image := req.Image
	if image == "" {
		image = models.DefaultProductImage
	}

	product := &models.Product{
		ProductID:   uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Image:       image,
		CreatedBy:   userID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.publish("product.created", map[string]interface{}{
		"productId": product.ProductID,
		"title":     product.Title,
		"createdBy": product.CreatedBy,
	})

	return product, nil
}

// GetProduct retrieves a product by its opaque identifier.
func (s *ProductService) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	return s.repo.GetByProductID(ctx, productID)
}

// UpdateProduct applies a partial update. Only fields present in the
// request change; a non-positive price rejects the whole update before
// anything is written. updatedAt is stamped on every successful update.
func (s *ProductService) UpdateProduct(ctx context.Context, productID string, req models.UpdateProductRequest) (*models.Product, error) {
	if _, err := s.repo.GetByProductID(ctx, productID); err != nil {
		return nil, err
	}

	if req.Price != nil && *req.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	fields := map[string]interface{}{
		"updatedAt": time.Now().UTC(),
	}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}

	if err := s.repo.Update(ctx, productID, fields); err != nil {
		return nil, err
	}
	return s.repo.GetByProductID(ctx, productID)
}

// DeleteProduct removes a product and returns the deleted record for
// confirmation.
func (s *ProductService) DeleteProduct(ctx context.Context, productID string) (*models.Product, error) {
	product, err := s.repo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return nil, err
	}

	s.publish("product.deleted", map[string]interface{}{
		"productId": product.ProductID,
		"title":     product.Title,
	})

	return product, nil
}

func (s *ProductService) publish(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(event, payload); err != nil {
		log.Printf("Failed to publish %s event: %v", event, err)
	}
}
