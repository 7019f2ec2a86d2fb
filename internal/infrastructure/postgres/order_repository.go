package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/entity"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con
// pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste una orden nueva.
func (r *OrderRepo) Create(order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO orders (id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, string(order.Status), order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID; nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT id, status, created_at, updated_at FROM orders WHERE id = $1`
	return r.scanOrder(r.q.QueryRow(context.Background(), query, id), "get order")
}

// GetForUpdate obtiene la orden y bloquea la fila (SELECT FOR UPDATE) para
// serializar transiciones concurrentes.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `SELECT id, status, created_at, updated_at FROM orders WHERE id = $1 FOR UPDATE`
	return r.scanOrder(r.q.QueryRow(context.Background(), query, id), "get order for update")
}

// UpdateStatus refresca la caché de estado de la orden desde el log.
func (r *OrderRepo) UpdateStatus(id string, status entity.OrderStatus) error {
	query := `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, string(status))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update order status: orden %s no existe", id)
	}
	return nil
}

func (r *OrderRepo) scanOrder(row pgx.Row, op string) (*entity.Order, error) {
	var o entity.Order
	var status string
	err := row.Scan(&o.ID, &status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}
