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

const orderColumns = `order_id, user_id, product_names, total_products, transaction_id, total_amount, created_at, updated_at`

const (
	insertOrderSQL = `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	selectOrderByIDSQL = `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`
	listOrdersByUserSQL = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, order_id DESC
		LIMIT $2 OFFSET $3;
	`
	listOrdersSQL = `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC, order_id DESC
		LIMIT $1 OFFSET $2;
	`
)

type PgxOrderRepository struct {
	BaseRepository
}

func newPgxOrderRepository(db *pgxpool.Pool) *PgxOrderRepository {
	return &PgxOrderRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.OrderID,
		&o.UserID,
		&o.ProductNames,
		&o.TotalProducts,
		&o.TransactionID,
		&o.TotalAmount,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	_, err := r.Pool.Exec(ctx, insertOrderSQL,
		order.OrderID,
		order.UserID,
		order.ProductNames,
		order.TotalProducts,
		order.TransactionID,
		order.TotalAmount,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "save order")
	}
	return nil
}

func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	o, err := scanOrder(r.Pool.QueryRow(ctx, selectOrderByIDSQL, orderID))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	return o, nil
}

func (r *PgxOrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	return orders, nil
}

func (r *PgxOrderRepository) ListOrdersByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Order, error) {
	return r.queryOrders(ctx, listOrdersByUserSQL, userID, limitArg(limit), offsetArg(offset))
}

func (r *PgxOrderRepository) ListOrders(ctx context.Context, limit int, offset int) ([]domain.Order, error) {
	return r.queryOrders(ctx, listOrdersSQL, limitArg(limit), offsetArg(offset))
}
