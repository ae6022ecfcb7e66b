package handlers

import (
	"fmt"
	"log"
	"strconv"

	"mystore/internal/models"
	"mystore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleAddProduct)
	productRoutes.Get("/", h.HandleGetAllProducts)
	// Register fixed paths before the :id wildcard.
	productRoutes.Get("/search", h.HandleSearchByName)
	productRoutes.Get("/filter/category", h.HandleFilterByCategory)
	productRoutes.Get("/filter/price", h.HandleFilterByPrice)
	productRoutes.Get("/filter/stock", h.HandleFilterByStock)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// validationErrorMap flattens validator errors into a field -> message
// map. If a field fails several constraints, the last one recorded for
// that field wins.
func validationErrorMap(validationErrors validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return errorMessages
}

// HandleAddProduct creates a new product. The service assigns the ID.
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err.(validator.ValidationErrors)),
		})
	}

	created, err := h.service.AddProduct(&product)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleGetAllProducts retrieves one page of the catalog.
func (h *ProductHandler) HandleGetAllProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	pageSize := c.QueryInt("pageSize", 10)
	sortBy := c.Query("sortBy", "id")
	sortDir := c.Query("sortDir", "asc")

	products, err := h.service.GetAllProducts(page, pageSize, sortBy, sortDir)
	if err != nil {
		log.Printf("Error getting products (page %d): %v", page, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"products": products,
		"page":     page,
		"pageSize": pageSize,
	})
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product ID must be an integer",
		})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		log.Printf("Error getting product by ID %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	if product == nil {
		return c.SendStatus(fiber.StatusNotFound)
	}

	return c.JSON(product)
}

// HandleUpdateProduct replaces the mutable fields of a stored product.
// A missing ID answers 400 with an empty body, matching the original
// API contract (asymmetric with the 404 of HandleGetProduct).
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product ID must be an integer",
		})
	}

	var patch models.Product
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing update product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err.(validator.ValidationErrors)),
		})
	}

	updated, err := h.service.UpdateProduct(id, &patch)
	if err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}
	if updated == nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	return c.JSON(updated)
}

// HandleDeleteProduct removes a product. The response is always 200;
// the body says whether anything was deleted.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product ID must be an integer",
		})
	}

	outcome, err := h.service.DeleteProduct(id)
	if err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": outcome.Message(),
	})
}

// HandleSearchByName retrieves products whose name contains the `name`
// query parameter.
func (h *ProductHandler) HandleSearchByName(c *fiber.Ctx) error {
	name := c.Query("name")

	products, err := h.service.SearchProductsByName(name)
	if err != nil {
		log.Printf("Error searching products by name %q: %v", name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not search products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleFilterByCategory retrieves products matching the `category`
// query parameter exactly, ignoring case.
func (h *ProductHandler) HandleFilterByCategory(c *fiber.Ctx) error {
	category := c.Query("category")

	products, err := h.service.FilterProductsByCategory(category)
	if err != nil {
		log.Printf("Error filtering products by category %q: %v", category, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not filter products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleFilterByPrice retrieves products priced within
// [minPrice, maxPrice].
func (h *ProductHandler) HandleFilterByPrice(c *fiber.Ctx) error {
	minPrice := c.QueryFloat("minPrice", 0)
	maxPrice := c.QueryFloat("maxPrice", 0)

	products, err := h.service.FilterProductsByPrice(minPrice, maxPrice)
	if err != nil {
		log.Printf("Error filtering products by price [%f, %f]: %v", minPrice, maxPrice, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not filter products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleFilterByStock retrieves products stocked within
// [minStock, maxStock].
func (h *ProductHandler) HandleFilterByStock(c *fiber.Ctx) error {
	minStock := c.QueryInt("minStock", 0)
	maxStock := c.QueryInt("maxStock", 0)

	products, err := h.service.FilterProductsByStock(minStock, maxStock)
	if err != nil {
		log.Printf("Error filtering products by stock [%d, %d]: %v", minStock, maxStock, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not filter products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}
