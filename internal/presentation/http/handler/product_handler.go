package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/application/service"
	"github.com/marubini/tillpoint-api/internal/domain/repository"
	"github.com/marubini/tillpoint-api/internal/presentation/http/dto/response"
)

// ProductHandler handles catalog-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products with search and category filters
func (h *ProductHandler) List(c *gin.Context) {
	params := &repository.ProductFilterParams{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
		ActiveOnly: c.DefaultQuery("active", "true") == "true",
	}

	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		categoryID, err := uuid.Parse(categoryIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		params.CategoryID = &categoryID
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Get handles retrieving a single product with variations and modifiers
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Categories handles listing all product categories
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.productService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// Stock returns the sellable stock for a product or one of its variations
func (h *ProductHandler) Stock(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var variationID *uuid.UUID
	if variationIDStr := c.Query("variation_id"); variationIDStr != "" {
		vid, err := uuid.Parse(variationIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid variation ID")
			return
		}
		variationID = &vid
	}

	stock, err := h.productService.AvailableStock(c.Request.Context(), id, variationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock retrieved successfully", gin.H{
		"product_id": id,
		"stock":      stock,
	})
}
