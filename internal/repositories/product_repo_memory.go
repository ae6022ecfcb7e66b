package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"mystore/internal/models"
)

// MemoryProductRepository is an in-memory implementation of
// ProductRepository, used in tests and when no database is configured.
type MemoryProductRepository struct {
	products map[int]models.Product
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[int]models.Product),
	}
}

// Create stores a new product. The caller is responsible for assigning
// the ID beforehand; reusing an existing ID is an error, mirroring a
// primary key violation in the database-backed repository.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; exists {
		return fmt.Errorf("product with ID %d already exists", product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// GetByID returns a product by its ID, or (nil, nil) when absent.
func (r *MemoryProductRepository) GetByID(id int) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

// Update overwrites a stored product.
func (r *MemoryProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.ID] = *product
	return nil
}

// Delete removes a product permanently.
func (r *MemoryProductRepository) Delete(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, product.ID)
	return nil
}

// GetAll returns all products in no particular order.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// FindPage returns one zero-based page of products sorted by the given
// field. Negative paging parameters are clamped to zero.
func (r *MemoryProductRepository) FindPage(page, pageSize int, sortBy string, ascending bool) ([]models.Product, error) {
	less, err := lessFunc(sortBy)
	if err != nil {
		return nil, err
	}
	if page < 0 {
		page = 0
	}
	if pageSize < 0 {
		pageSize = 0
	}

	products, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	sort.Slice(products, func(i, j int) bool {
		if ascending {
			return less(products[i], products[j])
		}
		return less(products[j], products[i])
	})

	start := page * pageSize
	if start >= len(products) {
		return []models.Product{}, nil
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end], nil
}

// FindByNameContaining returns products whose name contains the given
// substring, case-insensitively.
func (r *MemoryProductRepository) FindByNameContaining(name string) ([]models.Product, error) {
	needle := strings.ToLower(name)
	return r.filter(func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	})
}

// FindByCategory returns products whose category equals the argument,
// case-insensitively.
func (r *MemoryProductRepository) FindByCategory(category string) ([]models.Product, error) {
	return r.filter(func(p models.Product) bool {
		return strings.EqualFold(p.Category, category)
	})
}

// FindByPriceBetween returns products priced within [minPrice, maxPrice].
func (r *MemoryProductRepository) FindByPriceBetween(minPrice, maxPrice float64) ([]models.Product, error) {
	return r.filter(func(p models.Product) bool {
		return p.Price >= minPrice && p.Price <= maxPrice
	})
}

// FindByStockBetween returns products stocked within [minStock, maxStock].
func (r *MemoryProductRepository) FindByStockBetween(minStock, maxStock int) ([]models.Product, error) {
	return r.filter(func(p models.Product) bool {
		return p.StockQuantity >= minStock && p.StockQuantity <= maxStock
	})
}

func (r *MemoryProductRepository) filter(keep func(models.Product) bool) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]models.Product, 0)
	for _, p := range r.products {
		if keep(p) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func lessFunc(sortBy string) (func(a, b models.Product) bool, error) {
	switch sortBy {
	case "id":
		return func(a, b models.Product) bool { return a.ID < b.ID }, nil
	case "name":
		return func(a, b models.Product) bool { return a.Name < b.Name }, nil
	case "category":
		return func(a, b models.Product) bool { return a.Category < b.Category }, nil
	case "price":
		return func(a, b models.Product) bool { return a.Price < b.Price }, nil
	case "stockQuantity":
		return func(a, b models.Product) bool { return a.StockQuantity < b.StockQuantity }, nil
	default:
		return nil, fmt.Errorf("unsupported sort field %q", sortBy)
	}
}
