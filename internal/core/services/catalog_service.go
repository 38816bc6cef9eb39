package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/lcodev/ecom_backend/internal/core/domain"
	portsrepo "github.com/lcodev/ecom_backend/internal/core/ports/repositories"
	portssvc "github.com/lcodev/ecom_backend/internal/core/ports/services"
	"github.com/lcodev/ecom_backend/internal/dto"
)

type catalogService struct {
	BaseService
	catalogRepo portsrepo.CatalogRepositoryFacade
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalogRepo portsrepo.CatalogRepositoryFacade, policy *domain.Policy) portssvc.CatalogSvcFacade {
	return &catalogService{
		BaseService: BaseService{Policy: policy},
		catalogRepo: catalogRepo,
	}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := s.AuthorizeUser(ctx, domain.ActionCatalogRead, nil); err != nil {
		return nil, err
	}
	categories, err := s.catalogRepo.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *catalogService) ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error) {
	if err := s.AuthorizeUser(ctx, domain.ActionCatalogRead, nil); err != nil {
		return nil, err
	}
	products, err := s.catalogRepo.ListProducts(ctx, categoryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products", slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, requester *domain.User, req dto.CreateCategoryRequest) (*domain.Category, error) {
	if err := s.AuthorizeUser(ctx, domain.ActionCatalogWrite, requester); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", apperrors.ErrValidation)
	}

	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        name,
		Description: req.Description,
	}
	category.Touch(s.Now())

	if err := s.catalogRepo.SaveCategory(ctx, category); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save category")
		}
		return nil, err
	}
	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, requester *domain.User, req dto.CreateProductRequest) (*domain.Product, error) {
	if err := s.AuthorizeUser(ctx, domain.ActionCatalogWrite, requester); err != nil {
		return nil, err
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative: %w", apperrors.ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock must not be negative: %w", apperrors.ErrValidation)
	}
	if _, err := s.catalogRepo.FindCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("unknown category %s: %w", req.CategoryID, apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	product := domain.Product{
		ProductID:   uuid.NewString(),
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsActive:    true,
		ImageURL:    req.ImageURL,
	}
	product.Touch(s.Now())

	if err := s.catalogRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to save product", slog.String("category_id", req.CategoryID))
		return nil, err
	}
	s.LogInfo(ctx, "Product created", slog.String("product_id", product.ProductID))
	return &product, nil
}
