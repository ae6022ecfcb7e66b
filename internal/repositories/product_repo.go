package repositories

import (
	"mystore/internal/models"
)

// ProductRepository defines the interface for product data access.
// GetByID returns (nil, nil) when no product has the given ID; absence
// is an ordinary result, not an error.
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id int) (*models.Product, error)
	Update(product *models.Product) error
	Delete(product *models.Product) error
	GetAll() ([]models.Product, error)
	// FindPage returns the zero-based page of products sorted by the
	// given JSON field name. An unknown sort field is an error.
	FindPage(page, pageSize int, sortBy string, ascending bool) ([]models.Product, error)
	FindByNameContaining(name string) ([]models.Product, error)
	FindByCategory(category string) ([]models.Product, error)
	FindByPriceBetween(minPrice, maxPrice float64) ([]models.Product, error)
	FindByStockBetween(minStock, maxStock int) ([]models.Product, error)
}
