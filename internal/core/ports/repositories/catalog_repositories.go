package repositories

import (
	"context"

	"github.com/lcodev/ecom_backend/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	// ListCategories returns all categories ordered by name.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	// ListProducts returns products ordered by name, optionally within one category.
	ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error)
}

// CatalogRepositoryFacade combines category and product access.
type CatalogRepositoryFacade interface {
	CategoryRepository
	ProductRepository
}
