package orders

import (
	"context"

	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el evento y la caché de estado
// de la orden se escriban atómicamente.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		eventRepo repository.OrderEventRepository,
	) error) error
}
