package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/lcodev/ecom_backend/internal/core/domain"
	portsrepo "github.com/lcodev/ecom_backend/internal/core/ports/repositories"
)

const (
	insertCategorySQL = `
		INSERT INTO categories (category_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	selectCategoryByIDSQL = `
		SELECT category_id, name, description, created_at, updated_at
		FROM categories WHERE category_id = $1;
	`
	listCategoriesSQL = `
		SELECT category_id, name, description, created_at, updated_at
		FROM categories ORDER BY name;
	`

	productColumns   = `product_id, category_id, name, description, price, stock, is_active, image_url, created_at, updated_at`
	insertProductSQL = `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	// An empty category filter lists every product.
	listProductsSQL = `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR category_id::text = $1)
		ORDER BY name, product_id;
	`
)

type PgxCatalogRepository struct {
	BaseRepository
}

func newPgxCatalogRepository(db *pgxpool.Pool) *PgxCatalogRepository {
	return &PgxCatalogRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.CategoryID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxCatalogRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	_, err := r.Pool.Exec(ctx, insertCategorySQL,
		category.CategoryID, category.Name, category.Description, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "save category")
	}
	return nil
}

func (r *PgxCatalogRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	c, err := scanCategory(r.Pool.QueryRow(ctx, selectCategoryByIDSQL, categoryID))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	return c, nil
}

func (r *PgxCatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.Pool.Query(ctx, listCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *PgxCatalogRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	_, err := r.Pool.Exec(ctx, insertProductSQL,
		product.ProductID,
		product.CategoryID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.IsActive,
		product.ImageURL,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "save product")
	}
	return nil
}

func (r *PgxCatalogRepository) ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error) {
	rows, err := r.Pool.Query(ctx, listProductsSQL, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ProductID,
			&p.CategoryID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.Stock,
			&p.IsActive,
			&p.ImageURL,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}
