package repository

import (
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/entity"
)

// OrderEventRepository define el puerto de persistencia del log de eventos de
// orden. Append-only; lecturas ordenadas por (created_at, id).
type OrderEventRepository interface {
	Create(event *entity.OrderEvent) error
	// ListByOrder devuelve todos los eventos de la orden ascendente por
	// (created_at, id).
	ListByOrder(orderID string) ([]*entity.OrderEvent, error)
	// LastStatusChange devuelve el STATUS_CHANGE más reciente de la orden,
	// o nil si el log no tiene ninguno (fila legada).
	LastStatusChange(orderID string) (*entity.OrderEvent, error)
}
