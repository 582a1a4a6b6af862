package handlers

import (
	"errors"
	"log"

	"etalase/internal/models"
	"etalase/internal/repositories"
	"etalase/internal/services"
	"etalase/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for catalog products. All of its
// routes sit behind the bearer-token middleware.
type ProductHandler struct {
	productService *services.ProductService
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       validation.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns a paginated, optionally keyword-filtered
// page of the catalog.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	params := services.ListParams{
		Page:    c.QueryInt("page", 1),
		Limit:   c.QueryInt("limit", 10),
		Sort:    c.Query("sort", "-createdAt"),
		Keyword: c.Query("keyword"),
	}

	page, err := h.productService.ListProducts(c.Context(), params)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"message":    "Products retrieved successfully",
		"products":   page.Products,
		"pagination": page.Pagination,
		"filters":    page.Filters,
	})
}

// HandleCreateProduct validates and stores a new product owned by the
// authenticated user.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No data provided",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": validation.Errors(err),
		})
	}

	userID, _ := c.Locals("user_id").(string)
	product, err := h.productService.CreateProduct(c.Context(), userID, req)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"product": product,
	})
}

// HandleGetProduct returns a product by its opaque identifier.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.productService.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return h.productError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product retrieved successfully",
		"product": product,
	})
}

// HandleUpdateProduct applies a partial update to a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req models.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No data provided",
		})
	}

	product, err := h.productService.UpdateProduct(c.Context(), c.Params("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPrice) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Price must be positive",
			})
		}
		return h.productError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": product,
	})
}

// HandleDeleteProduct deletes a product and confirms with its
// identifying fields.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	product, err := h.productService.DeleteProduct(c.Context(), c.Params("id"))
	if err != nil {
		return h.productError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
		"deletedProduct": fiber.Map{
			"id":    product.ProductID,
			"title": product.Title,
		},
	})
}

func (h *ProductHandler) productError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}
	log.Printf("Product operation failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
