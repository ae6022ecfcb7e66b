package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mystore/internal/handlers"
	"mystore/internal/models"
	"mystore/internal/repositories"
	"mystore/internal/services"
)

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "mystore.db")
	viper.SetDefault("SEED_PRODUCTS", true)
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Initialize Repository (database-backed or in-memory) ---
	var productRepo repositories.ProductRepository
	if driver := viper.GetString("DB_DRIVER"); driver == "memory" {
		productRepo = repositories.NewMemoryProductRepository()
	} else {
		db, err := openDatabase(driver, viper.GetString("DB_DSN"))
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.Product{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		productRepo = repositories.NewGORMProductRepository(db)
	}

	// --- Initialize Service and Handler ---
	productService := services.NewProductService(productRepo)
	productHandler := handlers.NewProductHandler(productService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.New().String() },
	}))
	app.Use(logger.New())
	app.Use(recover.New())

	// --- API Routes ---
	productHandler.RegisterRoutes(app)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Seed Data ---
	if viper.GetBool("SEED_PRODUCTS") {
		seedProducts(productService)
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase opens a GORM connection for the configured driver.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// seedProducts populates an empty catalog with some initial data.
// IDs are assigned by the service, so seeding only runs against a
// fresh store.
func seedProducts(service *services.ProductService) {
	existing, err := service.GetAllProducts(0, 1, "id", "asc")
	if err != nil {
		log.Printf("Error checking catalog before seeding: %v", err)
		return
	}
	if len(existing) > 0 {
		log.Println("Catalog already populated, skipping seed")
		return
	}

	products := []models.Product{
		{Name: "Laptop", Category: "Electronics", Price: 1200.00, StockQuantity: 10},
		{Name: "Keyboard", Category: "Electronics", Price: 75.00, StockQuantity: 25},
		{Name: "Office Chair", Category: "Furniture", Price: 180.00, StockQuantity: 8},
	}

	for i := range products {
		created, err := service.AddProduct(&products[i])
		if err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		} else {
			log.Printf("Seeded product: %s (ID: %d)", created.Name, created.ID)
		}
	}
}
