package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/application/dto"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/entity"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/repository"
)

// ReconcileUseCase concilia el saldo proyectado de un producto con un conteo
// físico: calcula el delta contra el fold del kardex y agrega exactamente un
// movimiento ADJUSTMENT. Leer y escribir ocurren dentro de una misma
// transacción con la fila de saldo bloqueada, así un escritor concurrente no
// puede colarse entre el cálculo y el ajuste.
type ReconcileUseCase struct {
	txRunner TxRunner
	cache    BalanceCache // opcional; nil deshabilita
}

// NewReconcileUseCase construye el caso de uso. cache puede ser nil.
func NewReconcileUseCase(txRunner TxRunner, cache BalanceCache) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner, cache: cache}
}

// Reconcile fuerza el saldo del producto al valor contado. Si el conteo
// coincide con el saldo devuelve domain.ErrNoAdjustmentNeeded sin agregar
// nada: es un resultado esperado, no una falla.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, productID string, countedQty int64, reason, actor string) (*dto.ReconcileResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}

	var result dto.ReconcileResponse
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
	) error {
		// Bloquea la fila de saldo; todos los escritores del kardex toman
		// este lock, así el fold de abajo es un snapshot estable.
		balance, err := balanceRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		movements, err := movRepo.AllByProduct(productID)
		if err != nil {
			return err
		}
		current := foldBalance(movements)
		delta := countedQty - current
		if delta == 0 {
			return domain.ErrNoAdjustmentNeeded
		}

		now := time.Now().UTC()
		adjustment := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: productID,
			Type:      entity.MovementTypeAdjustment,
			Quantity:  delta,
			Reason:    fmt.Sprintf("conteo físico: %s", reason),
			Reference: "reconciliation",
			CreatedAt: now,
			CreatedBy: actor,
		}
		if err := movRepo.Create(adjustment); err != nil {
			return err
		}

		balance.Quantity = countedQty
		balance.Version++
		balance.UpdatedAt = now
		if err := balanceRepo.Upsert(balance); err != nil {
			return err
		}

		result = dto.ReconcileResponse{
			MovementID: adjustment.ID,
			Delta:      delta,
			NewBalance: countedQty,
			Adjusted:   true,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, productID)
	}
	return &result, nil
}
