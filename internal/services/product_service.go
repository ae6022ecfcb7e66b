package services

import (
	"log"
	"strings"
	"sync/atomic"

	"mystore/internal/models"
	"mystore/internal/repositories"
)

// DeleteOutcome reports what happened to a delete request. Deleting a
// product that does not exist is a normal outcome, not an error.
type DeleteOutcome int

const (
	DeleteOutcomeDeleted DeleteOutcome = iota
	DeleteOutcomeNotFound
)

// Message returns the human-readable form of the outcome.
func (o DeleteOutcome) Message() string {
	if o == DeleteOutcomeDeleted {
		return "Product Deleted Successfully"
	}
	return "Product Not Found"
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	lastID atomic.Int64
}

// NewProductService creates a new ProductService. The identifier
// counter resumes from the highest ID already in the store, so a
// restart against a populated database never hands out an ID twice.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	s := &ProductService{
		repo: repo,
	}
	newest, err := repo.FindPage(0, 1, "id", false)
	if err != nil {
		log.Printf("Could not read highest product ID, counter starts at 0: %v", err)
		return s
	}
	if len(newest) > 0 {
		s.lastID.Store(int64(newest[0].ID))
	}
	return s
}

// AddProduct assigns the next identifier to the product and persists
// it. Any ID supplied by the caller is overwritten. Identifiers are
// strictly increasing for the lifetime of the service and are never
// reused, even after deletion.
func (s *ProductService) AddProduct(product *models.Product) (*models.Product, error) {
	product.ID = int(s.lastID.Add(1))
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetAllProducts retrieves one zero-based page of products sorted by
// the given field. sortDir is matched case-insensitively against
// "asc"; any other value sorts descending.
func (s *ProductService) GetAllProducts(page, pageSize int, sortBy, sortDir string) ([]models.Product, error) {
	ascending := strings.EqualFold(sortDir, "asc")
	return s.repo.FindPage(page, pageSize, sortBy, ascending)
}

// GetProduct retrieves a single product by its ID, or (nil, nil) when
// no product has that ID.
func (s *ProductService) GetProduct(id int) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// UpdateProduct overwrites the name, price, category and stock quantity
// of the stored product. The stored ID is kept even if the patch
// carries a different one. Returns (nil, nil) when the ID does not
// exist; nothing is written in that case.
func (s *ProductService) UpdateProduct(id int, patch *models.Product) (*models.Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil || existing == nil {
		return nil, err
	}

	existing.Name = patch.Name
	existing.Price = patch.Price
	existing.Category = patch.Category
	existing.StockQuantity = patch.StockQuantity

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteProduct removes a product permanently and reports whether
// anything was deleted.
func (s *ProductService) DeleteProduct(id int) (DeleteOutcome, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return DeleteOutcomeNotFound, err
	}
	if existing == nil {
		return DeleteOutcomeNotFound, nil
	}
	if err := s.repo.Delete(existing); err != nil {
		return DeleteOutcomeNotFound, err
	}
	return DeleteOutcomeDeleted, nil
}

// SearchProductsByName retrieves products whose name contains the given
// substring, case-insensitively.
func (s *ProductService) SearchProductsByName(name string) ([]models.Product, error) {
	return s.repo.FindByNameContaining(name)
}

// FilterProductsByCategory retrieves products whose category equals the
// argument, case-insensitively.
func (s *ProductService) FilterProductsByCategory(category string) ([]models.Product, error) {
	return s.repo.FindByCategory(category)
}

// FilterProductsByPrice retrieves products priced within the closed
// interval [minPrice, maxPrice]. A reversed range yields an empty list.
func (s *ProductService) FilterProductsByPrice(minPrice, maxPrice float64) ([]models.Product, error) {
	return s.repo.FindByPriceBetween(minPrice, maxPrice)
}

// FilterProductsByStock retrieves products stocked within the closed
// interval [minStock, maxStock]. A reversed range yields an empty list.
func (s *ProductService) FilterProductsByStock(minStock, maxStock int) ([]models.Product, error) {
	return s.repo.FindByStockBetween(minStock, maxStock)
}
