package services_test

import (
	"fmt"
	"testing"

	"mystore/internal/models"
	"mystore/internal/repositories"
	"mystore/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(id int) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindPage(page, pageSize int, sortBy string, ascending bool) ([]models.Product, error) {
	args := m.Called(page, pageSize, sortBy, ascending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByNameContaining(name string) ([]models.Product, error) {
	args := m.Called(name)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(category string) ([]models.Product, error) {
	args := m.Called(category)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByPriceBetween(minPrice, maxPrice float64) ([]models.Product, error) {
	args := m.Called(minPrice, maxPrice)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByStockBetween(minStock, maxStock int) ([]models.Product, error) {
	args := m.Called(minStock, maxStock)
	return args.Get(0).([]models.Product), args.Error(1)
}

// newServiceOverEmptyStore stubs the constructor's lookup of the
// highest stored ID so the counter starts at zero.
func newServiceOverEmptyStore(mockRepo *MockProductRepository) *services.ProductService {
	mockRepo.On("FindPage", 0, 1, "id", false).Return([]models.Product{}, nil).Once()
	return services.NewProductService(mockRepo)
}

func TestProductService_AddProductAssignsIncreasingIDs(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newServiceOverEmptyStore(mockRepo)

	mockRepo.On("Create", mock.Anything).Return(nil).Times(3)

	first, err := service.AddProduct(&models.Product{Name: "A", Category: "X", Price: 1, StockQuantity: 1})
	assert.NoError(t, err)
	second, err := service.AddProduct(&models.Product{Name: "B", Category: "X", Price: 2, StockQuantity: 2})
	assert.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	// A caller-supplied ID is overwritten, never honored.
	third, err := service.AddProduct(&models.Product{ID: 999, Name: "C", Category: "X", Price: 3, StockQuantity: 3})
	assert.NoError(t, err)
	assert.Equal(t, 3, third.ID)

	mockRepo.AssertExpectations(t)
}

func TestProductService_CounterResumesFromStore(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindPage", 0, 1, "id", false).Return([]models.Product{{ID: 7, Name: "Laptop"}}, nil).Once()
	service := services.NewProductService(mockRepo)

	mockRepo.On("Create", mock.Anything).Return(nil).Once()
	created, err := service.AddProduct(&models.Product{Name: "Mouse", Category: "Electronics", Price: 25, StockQuantity: 50})
	assert.NoError(t, err)
	assert.Equal(t, 8, created.ID)
	mockRepo.AssertExpectations(t)
}

func TestProductService_RestartDoesNotReuseIDs(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	first := services.NewProductService(repo)
	for _, name := range []string{"Laptop", "Keyboard", "Mouse"} {
		_, err := first.AddProduct(&models.Product{Name: name, Category: "Electronics", Price: 10, StockQuantity: 1})
		assert.NoError(t, err)
	}

	// A fresh service over the same store stands in for a process
	// restart: the next ID continues past everything already stored.
	second := services.NewProductService(repo)
	created, err := second.AddProduct(&models.Product{Name: "Monitor", Category: "Electronics", Price: 200, StockQuantity: 5})
	assert.NoError(t, err)
	assert.Equal(t, 4, created.ID)

	stored, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, stored, 4)
}

func TestProductService_AddProductPropagatesRepoError(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newServiceOverEmptyStore(mockRepo)

	mockRepo.On("Create", mock.Anything).Return(fmt.Errorf("database error")).Once()

	product, err := service.AddProduct(&models.Product{Name: "A", Category: "X"})
	assert.Error(t, err)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetAllProductsSortDirection(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newServiceOverEmptyStore(mockRepo)

	page := []models.Product{{ID: 1, Name: "A"}}

	// "asc" in any casing sorts ascending.
	mockRepo.On("FindPage", 0, 10, "price", true).Return(page, nil).Twice()
	_, err := service.GetAllProducts(0, 10, "price", "asc")
	assert.NoError(t, err)
	_, err = service.GetAllProducts(0, 10, "price", "ASC")
	assert.NoError(t, err)

	// Anything else, including unrecognized strings, sorts descending.
	mockRepo.On("FindPage", 0, 10, "price", false).Return(page, nil).Twice()
	_, err = service.GetAllProducts(0, 10, "price", "desc")
	assert.NoError(t, err)
	_, err = service.GetAllProducts(0, 10, "price", "sideways")
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestProductService_GetAllProductsPropagatesSortFieldError(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newServiceOverEmptyStore(mockRepo)

	mockRepo.On("FindPage", 0, 10, "nonsense", true).Return(nil, fmt.Errorf("unsupported sort field %q", "nonsense")).Once()

	products, err := service.GetAllProducts(0, 10, "nonsense", "asc")
	assert.Error(t, err)
	assert.Nil(t, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newServiceOverEmptyStore(mockRepo)

	expected := &models.Product{ID: 1, Name: "Laptop", Category: "Electronics", Price: 1200, StockQuantity: 10}

	mockRepo.On("GetByID", 1).Return(expected, nil).Once()
	product, err := service.GetProduct(1)
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	// Absence is a nil result, not an error.
	mockRepo.On("GetByID", 99).Return(nil, nil).Once()
	product, err = service.GetProduct(99)
	assert.NoError(t, err)
	assert.Nil(t, product)

	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProductMergesFields(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newServiceOverEmptyStore(mockRepo)

	stored := &models.Product{ID: 1, Name: "Laptop", Category: "Electronics", Price: 1200, StockQuantity: 10}
	mockRepo.On("GetByID", 1).Return(stored, nil).Once()
	mockRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == 1 && p.Name == "Gaming Laptop" && p.Category == "Gaming" &&
			p.Price == 1500 && p.StockQuantity == 7
	})).Return(nil).Once()

	// The patch carries a different ID; the stored one must survive.
	patch := &models.Product{ID: 42, Name: "Gaming Laptop", Category: "Gaming", Price: 1500, StockQuantity: 7}
	updated, err := service.UpdateProduct(1, patch)
	assert.NoError(t, err)
	assert.Equal(t, 1, updated.ID)
	assert.Equal(t, "Gaming Laptop", updated.Name)

	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProductNotFoundWritesNothing(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newServiceOverEmptyStore(mockRepo)

	mockRepo.On("GetByID", 99).Return(nil, nil).Once()

	updated, err := service.UpdateProduct(99, &models.Product{Name: "Ghost"})
	assert.NoError(t, err)
	assert.Nil(t, updated)

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestProductService_DeleteProductOutcomes(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newServiceOverEmptyStore(mockRepo)

	stored := &models.Product{ID: 1, Name: "Laptop"}
	mockRepo.On("GetByID", 1).Return(stored, nil).Once()
	mockRepo.On("Delete", stored).Return(nil).Once()

	outcome, err := service.DeleteProduct(1)
	assert.NoError(t, err)
	assert.Equal(t, services.DeleteOutcomeDeleted, outcome)
	assert.Equal(t, "Product Deleted Successfully", outcome.Message())

	// Deleting a missing product is a reported outcome, not an error.
	mockRepo.On("GetByID", 1).Return(nil, nil).Once()
	outcome, err = service.DeleteProduct(1)
	assert.NoError(t, err)
	assert.Equal(t, services.DeleteOutcomeNotFound, outcome)
	assert.Equal(t, "Product Not Found", outcome.Message())

	mockRepo.AssertExpectations(t)
}

func TestProductService_SearchAndFiltersDelegate(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newServiceOverEmptyStore(mockRepo)

	matches := []models.Product{{ID: 2, Name: "T-Shirt", Category: "Apparel", Price: 15, StockQuantity: 30}}

	mockRepo.On("FindByNameContaining", "shirt").Return(matches, nil).Once()
	products, err := service.SearchProductsByName("shirt")
	assert.NoError(t, err)
	assert.Equal(t, matches, products)

	mockRepo.On("FindByCategory", "apparel").Return(matches, nil).Once()
	products, err = service.FilterProductsByCategory("apparel")
	assert.NoError(t, err)
	assert.Equal(t, matches, products)

	mockRepo.On("FindByPriceBetween", 10.0, 20.0).Return(matches, nil).Once()
	products, err = service.FilterProductsByPrice(10.0, 20.0)
	assert.NoError(t, err)
	assert.Equal(t, matches, products)

	mockRepo.On("FindByStockBetween", 10, 50).Return(matches, nil).Once()
	products, err = service.FilterProductsByStock(10, 50)
	assert.NoError(t, err)
	assert.Equal(t, matches, products)

	mockRepo.AssertExpectations(t)
}
