package repositories

import (
	"fmt"
	"mystore/internal/models"

	"gorm.io/gorm"
)

// sortColumns maps the JSON field names accepted by the API to their
// database columns. Anything outside this map is rejected before it
// gets near an ORDER BY clause.
var sortColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"category":      "category",
	"price":         "price",
	"stockQuantity": "stock_quantity",
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create inserts a new product into the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a single product by its ID from the database.
// A missing record yields (nil, nil).
func (r *GORMProductRepository) GetByID(id int) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Update writes all fields of an existing product back to the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	// Save updates every column, including zero values.
	if err := r.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete removes a product from the database permanently.
func (r *GORMProductRepository) Delete(product *models.Product) error {
	if err := r.db.Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// FindPage retrieves one zero-based page of products sorted by the
// given field. Negative paging parameters are clamped to zero.
func (r *GORMProductRepository) FindPage(page, pageSize int, sortBy string, ascending bool) ([]models.Product, error) {
	column, ok := sortColumns[sortBy]
	if !ok {
		return nil, fmt.Errorf("unsupported sort field %q", sortBy)
	}
	if page < 0 {
		page = 0
	}
	if pageSize < 0 {
		pageSize = 0
	}
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}

	var products []models.Product
	err := r.db.
		Order(fmt.Sprintf("%s %s", column, direction)).
		Limit(pageSize).
		Offset(page * pageSize).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get product page %d: %w", page, err)
	}
	return products, nil
}

// FindByNameContaining retrieves products whose name contains the given
// substring, case-insensitively.
func (r *GORMProductRepository) FindByNameContaining(name string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to search products by name %q: %w", name, err)
	}
	return products, nil
}

// FindByCategory retrieves products whose category equals the argument,
// case-insensitively.
func (r *GORMProductRepository) FindByCategory(category string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("LOWER(category) = LOWER(?)", category).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to filter products by category %q: %w", category, err)
	}
	return products, nil
}

// FindByPriceBetween retrieves products priced within [minPrice, maxPrice].
func (r *GORMProductRepository) FindByPriceBetween(minPrice, maxPrice float64) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("price BETWEEN ? AND ?", minPrice, maxPrice).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to filter products by price range: %w", err)
	}
	return products, nil
}

// FindByStockBetween retrieves products stocked within [minStock, maxStock].
func (r *GORMProductRepository) FindByStockBetween(minStock, maxStock int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("stock_quantity BETWEEN ? AND ?", minStock, maxStock).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to filter products by stock range: %w", err)
	}
	return products, nil
}
