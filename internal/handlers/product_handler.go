package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"attar/internal/models"
	"attar/internal/repositories"
	"attar/internal/services"
	"attar/internal/validation"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Post("/check", h.HandleCheckName)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		log.Printf("Error getting product by ID %s: %v", productID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %s not found", productID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct runs the full intake pipeline for a submission. The
// body may be plain JSON or a multipart form whose "images" parts carry the
// product photos. Every outcome is a {data, error} pair: 201 with the new ID,
// 400 on a malformed body or validation failure, 409 on a name conflict, 500
// on a collaborator failure.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var sub models.ProductSubmission
	if err := c.BodyParser(&sub); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"data":  nil,
			"error": "Invalid request body: " + err.Error(),
		})
	}

	files, err := collectImageFiles(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"data":  nil,
			"error": err.Error(),
		})
	}

	product, err := h.service.CreateProduct(c.Context(), sub, files)
	if err != nil {
		var verrs validation.FieldErrors
		switch {
		case errors.As(err, &verrs):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"data":   nil,
				"error":  verrs.Error(),
				"fields": verrs,
			})
		case errors.Is(err, repositories.ErrDuplicateName):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"data":  nil,
				"error": err.Error(),
			})
		default:
			log.Printf("Error creating product: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"data":  nil,
				"error": err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":  product.ID,
		"error": nil,
	})
}

// HandleCheckName reports whether a product name is still free. It backs the
// form's pre-flight check before any upload work begins.
func (h *ProductHandler) HandleCheckName(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"data":  nil,
			"error": "A non-empty 'name' is required",
		})
	}

	if err := h.service.CheckNameAvailable(strings.TrimSpace(body.Name)); err != nil {
		if errors.Is(err, repositories.ErrDuplicateName) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"data":  nil,
				"error": err.Error(),
			})
		}
		log.Printf("Error checking product name: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"data":  nil,
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data":  nil,
		"error": nil,
	})
}

// collectImageFiles reads every "images" part of a multipart body into
// memory. A non-multipart body simply yields no files.
func collectImageFiles(c *fiber.Ctx) ([]models.FileBlob, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	var files []models.FileBlob
	for _, header := range form.File["images"] {
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file %s: %w", header.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file %s: %w", header.Filename, err)
		}
		files = append(files, models.FileBlob{Name: header.Filename, Data: data})
	}
	return files, nil
}
