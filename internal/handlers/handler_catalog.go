package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/lcodev/ecom_backend/internal/core/ports/services"
	"github.com/lcodev/ecom_backend/internal/dto"
)

type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

func newCatalogHandler(cs portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{catalogService: cs}
}

func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade, auth gin.HandlerFunc) {
	h := newCatalogHandler(catalogService)

	rg.GET("/categories", h.listCategories)
	rg.POST("/categories", auth, h.createCategory)
	rg.GET("/products", h.listProducts)
	rg.POST("/products", auth, h.createProduct)
}

// listCategories godoc
// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.ListCategoriesResponse
// @Router /categories [get]
func (h *catalogHandler) listCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ListCategoriesResponse{Categories: categories})
}

// listProducts godoc
// @Summary List products
// @Description Lists products ordered by name, optionally within one category.
// @Tags catalog
// @Produce json
// @Param category query string false "Category ID"
// @Success 200 {object} dto.ListProductsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /products [get]
func (h *catalogHandler) listProducts(c *gin.Context) {
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	products, err := h.catalogService.ListProducts(c.Request.Context(), params.CategoryID)
	if err != nil {
		respondError(c, err, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, dto.ListProductsResponse{Products: products})
}

// createCategory godoc
// @Summary Create a category
// @Tags catalog
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} domain.Category
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security SessionUser
// @Security SessionToken
// @Router /categories [post]
func (h *catalogHandler) createCategory(c *gin.Context) {
	caller, ok := requireRequester(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// createProduct godoc
// @Summary Create a product
// @Tags catalog
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security SessionUser
// @Security SessionToken
// @Router /products [post]
func (h *catalogHandler) createProduct(c *gin.Context) {
	caller, ok := requireRequester(c)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}
