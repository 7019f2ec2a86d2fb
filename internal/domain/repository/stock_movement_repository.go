package repository

import (
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del kardex (DIP).
// El log es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByProduct lista movimientos del producto ascendente por (created_at, id).
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	// AllByProduct devuelve el kardex completo del producto ascendente por
	// (created_at, id); es la entrada del fold de saldo.
	AllByProduct(productID string) ([]*entity.StockMovement, error)
}
