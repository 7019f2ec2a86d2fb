package repository

import (
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia de órdenes. El campo
// status es una caché de la proyección; UpdateStatus la refresca desde el log.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) para
	// serializar transiciones concurrentes sobre el mismo agregado.
	GetForUpdate(id string) (*entity.Order, error)
	UpdateStatus(id string, status entity.OrderStatus) error
}
