package services

import (
	"context"

	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/lcodev/ecom_backend/internal/dto"
)

// CatalogReaderSvc defines the public catalog listings.
type CatalogReaderSvc interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error)
}

// CatalogWriterSvc defines staff-only catalog maintenance.
type CatalogWriterSvc interface {
	CreateCategory(ctx context.Context, requester *domain.User, req dto.CreateCategoryRequest) (*domain.Category, error)
	CreateProduct(ctx context.Context, requester *domain.User, req dto.CreateProductRequest) (*domain.Product, error)
}

// CatalogSvcFacade combines all catalog-related service interfaces
type CatalogSvcFacade interface {
	CatalogReaderSvc
	CatalogWriterSvc
}
