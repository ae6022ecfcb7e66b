package models

// Product represents a single entry in the store catalog.
// Deletes are permanent, so gorm.Model (and its DeletedAt soft-delete
// column) is deliberately not embedded.
type Product struct {
	ID            int     `json:"id" gorm:"primaryKey"`
	Name          string  `json:"name" gorm:"type:varchar(255)" validate:"required"`
	Category      string  `json:"category" gorm:"type:varchar(100)" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
	StockQuantity int     `json:"stockQuantity" validate:"gte=0"`
}
