package services_test

import (
	"context"
	"testing"

	"etalase/internal/models"
	"etalase/internal/repositories"
	"etalase/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByProductID(ctx context.Context, productID string) (*models.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, q repositories.ProductQuery) ([]models.Product, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Update(ctx context.Context, productID string, fields map[string]interface{}) error {
	args := m.Called(ctx, productID, fields)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func TestProductService_ListProducts_Pagination(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("List", mock.Anything, repositories.ProductQuery{
		SortField: "createdAt",
		SortDesc:  true,
		Skip:      20,
		Limit:     10,
	}).Return([]models.Product{{ProductID: "p-21"}}, int64(25), nil).Once()

	page, err := service.ListProducts(context.Background(), services.ListParams{Page: 3, Limit: 10})
	assert.NoError(t, err)
	assert.Len(t, page.Products, 1)
	assert.Equal(t, 3, page.Pagination.CurrentPage)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, int64(25), page.Pagination.TotalItems)
	assert.Equal(t, 10, page.Pagination.ItemsPerPage)
	assert.False(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListProducts_ClampsInputs(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	// page 0 and an out-of-range limit fall back to the defaults.
	mockRepo.On("List", mock.Anything, repositories.ProductQuery{
		SortField: "createdAt",
		SortDesc:  true,
		Skip:      0,
		Limit:     10,
	}).Return([]models.Product{}, int64(0), nil).Once()

	page, err := service.ListProducts(context.Background(), services.ListParams{Page: 0, Limit: 500})
	assert.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.CurrentPage)
	assert.Equal(t, 10, page.Pagination.ItemsPerPage)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListProducts_SortAndKeyword(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("List", mock.Anything, repositories.ProductQuery{
		Keyword:   "widget",
		SortField: "price",
		SortDesc:  false,
		Skip:      0,
		Limit:     10,
	}).Return([]models.Product{}, int64(0), nil).Once()

	page, err := service.ListProducts(context.Background(), services.ListParams{
		Page:    1,
		Limit:   10,
		Sort:    "price",
		Keyword: "widget",
	})
	assert.NoError(t, err)
	assert.Equal(t, "widget", page.Filters.Keyword)
	assert.Equal(t, "price", page.Filters.Sort)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListProducts_PagePastEnd(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("List", mock.Anything, mock.AnythingOfType("repositories.ProductQuery")).
		Return([]models.Product{}, int64(25), nil).Once()

	page, err := service.ListProducts(context.Background(), services.ListParams{Page: 4, Limit: 10})
	assert.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.False(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	events := &recordingPublisher{}
	service := services.NewProductService(mockRepo, events)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil).Once()

	product, err := service.CreateProduct(context.Background(), "user-1", models.CreateProductRequest{
		Title:       "  Widget  ",
		Description: "A widget",
		Price:       9.99,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Widget", product.Title)
	assert.Equal(t, 9.99, product.Price)
	assert.Equal(t, models.DefaultProductImage, product.Image)
	assert.Equal(t, "user-1", product.CreatedBy)
	assert.False(t, product.CreatedAt.IsZero())
	assert.Nil(t, product.UpdatedAt)

	// The opaque identifier is a fresh UUID, unrelated to the storage id.
	_, err = uuid.Parse(product.ProductID)
	assert.NoError(t, err)
	assert.NotEqual(t, product.StorageID.Hex(), product.ProductID)

	assert.Equal(t, []string{"product.created"}, events.events)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_Partial(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	existing := &models.Product{ProductID: "p-1", Title: "Widget", Price: 9.99}
	mockRepo.On("GetByProductID", mock.Anything, "p-1").Return(existing, nil)

	newTitle := "Gadget"
	mockRepo.On("Update", mock.Anything, "p-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		_, hasStamp := fields["updatedAt"]
		_, hasPrice := fields["price"]
		return fields["title"] == "Gadget" && hasStamp && !hasPrice && len(fields) == 2
	})).Return(nil).Once()

	_, err := service.UpdateProduct(context.Background(), "p-1", models.UpdateProductRequest{Title: &newTitle})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_NegativePrice(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	existing := &models.Product{ProductID: "p-1", Price: 9.99}
	mockRepo.On("GetByProductID", mock.Anything, "p-1").Return(existing, nil).Once()

	badPrice := -5.0
	_, err := service.UpdateProduct(context.Background(), "p-1", models.UpdateProductRequest{Price: &badPrice})
	assert.ErrorIs(t, err, services.ErrInvalidPrice)

	// Nothing may be written when the price is rejected.
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("GetByProductID", mock.Anything, "missing").Return(nil, repositories.ErrNotFound).Once()

	newTitle := "Gadget"
	_, err := service.UpdateProduct(context.Background(), "missing", models.UpdateProductRequest{Title: &newTitle})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	events := &recordingPublisher{}
	service := services.NewProductService(mockRepo, events)

	existing := &models.Product{ProductID: "p-1", Title: "Widget"}
	mockRepo.On("GetByProductID", mock.Anything, "p-1").Return(existing, nil).Once()
	mockRepo.On("Delete", mock.Anything, "p-1").Return(nil).Once()

	deleted, err := service.DeleteProduct(context.Background(), "p-1")
	assert.NoError(t, err)
	assert.Equal(t, "Widget", deleted.Title)
	assert.Equal(t, []string{"product.deleted"}, events.events)

	mockRepo.On("GetByProductID", mock.Anything, "missing").Return(nil, repositories.ErrNotFound).Once()
	_, err = service.DeleteProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
