package ledger

import (
	"context"

	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el kardex y su
// proyección de saldo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
	) error) error
}

// BalanceCache caché de lectura best-effort para saldos proyectados.
// Un fallo de caché nunca falla la operación; la implementación registra y
// sigue. Nil deshabilita el caché.
type BalanceCache interface {
	Get(ctx context.Context, productID string) (int64, bool)
	Set(ctx context.Context, productID string, quantity int64)
	Invalidate(ctx context.Context, productID string)
}
