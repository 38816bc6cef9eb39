package dto

import (
	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"max=250"`
}

// CreateProductRequest defines the data needed to create a product.
type CreateProductRequest struct {
	CategoryID  string          `json:"categoryID" binding:"required,uuid"`
	Name        string          `json:"name" binding:"required,max=50"`
	Description string          `json:"description" binding:"max=250"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"min=0"`
	ImageURL    string          `json:"imageURL" binding:"omitempty,url"`
}

// ListProductsParams filters the product listing.
type ListProductsParams struct {
	CategoryID string `form:"category" binding:"omitempty,uuid"`
}

// ListCategoriesResponse wraps the list of categories.
type ListCategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

// ListProductsResponse wraps the list of products.
type ListProductsResponse struct {
	Products []domain.Product `json:"products"`
}
