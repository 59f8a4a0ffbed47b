package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MBAmbhore007/Order-Tracker/internal/domain"
)

type OrderRepo interface {
	List(ctx context.Context) ([]domain.Order, error)
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Update(ctx context.Context, id int64, totalAmount float64, status domain.OrderStatus) (*domain.Order, error)
	DeleteByIDs(ctx context.Context, ids []int64) error
}

type orderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepo {
	return &orderRepo{db: db}
}

const orderColumns = "id, customer_name, order_date, total_amount, status"

// List returns every order, newest id first.
func (r *orderRepo) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders ORDER BY id DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.CustomerName,
			&order.OrderDate,
			&order.TotalAmount,
			&order.Status,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	var stored domain.Order
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO orders (customer_name, order_date, total_amount, status) VALUES ($1, $2, $3, $4) RETURNING "+orderColumns,
		order.CustomerName, order.OrderDate, order.TotalAmount, order.Status,
	).Scan(
		&stored.ID,
		&stored.CustomerName,
		&stored.OrderDate,
		&stored.TotalAmount,
		&stored.Status,
	)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// Update writes total_amount and status unconditionally. When id matches no
// row it returns (nil, nil): a zero-row update is a no-op, not an error.
func (r *orderRepo) Update(ctx context.Context, id int64, totalAmount float64, status domain.OrderStatus) (*domain.Order, error) {
	var updated domain.Order
	err := r.db.QueryRowContext(ctx,
		"UPDATE orders SET total_amount = $1, status = $2 WHERE id = $3 RETURNING "+orderColumns,
		totalAmount, status, id,
	).Scan(
		&updated.ID,
		&updated.CustomerName,
		&updated.OrderDate,
		&updated.TotalAmount,
		&updated.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteByIDs removes every matching row in one statement. Ids that match
// nothing are silently ignored.
func (r *orderRepo) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = ANY($1)", ids)
	return err
}
