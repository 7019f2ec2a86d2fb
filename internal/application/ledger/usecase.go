package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/application/dto"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/entity"
	domaininv "github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/inventory"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/repository"
)

// LedgerUseCase registra movimientos del kardex de forma transaccional
// (INCOMING, OUTGOING, ADJUSTMENT) con bloqueo de fila (SELECT FOR UPDATE)
// sobre la proyección de saldo, y sirve lecturas derivadas del log.
type LedgerUseCase struct {
	txRunner    TxRunner
	movRepo     repository.StockMovementRepository
	balanceRepo repository.StockBalanceRepository
	cache       BalanceCache // opcional; nil deshabilita
}

// NewLedgerUseCase construye el caso de uso. cache puede ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	cache BalanceCache,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		movRepo:     movRepo,
		balanceRepo: balanceRepo,
		cache:       cache,
	}
}

// MovementInput entrada para registrar un movimiento del kardex.
// Quantity debe ser positiva en INCOMING/OUTGOING y distinta de cero (con
// signo) en ADJUSTMENT. UnitCost solo aplica a INCOMING.
type MovementInput struct {
	ProductID string
	Type      string
	Quantity  int64
	Reason    string
	Reference string
	Actor     string
	UnitCost  *decimal.Decimal
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso.
func (uc *LedgerUseCase) RegisterMovementFromRequest(ctx context.Context, in dto.RegisterMovementRequest) (string, error) {
	return uc.RegisterMovement(ctx, MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Reference: in.Reference,
		Actor:     in.Actor,
		UnitCost:  in.UnitCost,
	})
}

// RegisterMovement valida el movimiento, lo persiste con timestamp del
// servidor y refresca la proyección de saldo en la misma transacción.
// Devuelve el ID del movimiento nuevo.
func (uc *LedgerUseCase) RegisterMovement(ctx context.Context, input MovementInput) (string, error) {
	if input.ProductID == "" {
		return "", domain.ErrInvalidInput
	}
	if !entity.IsValidMovementType(input.Type) {
		return "", domain.ErrInvalidMovementType
	}
	switch input.Type {
	case entity.MovementTypeIncoming, entity.MovementTypeOutgoing:
		if input.Quantity <= 0 {
			return "", domain.ErrInvalidQuantity
		}
	case entity.MovementTypeAdjustment:
		if input.Quantity == 0 {
			return "", domain.ErrInvalidQuantity
		}
	}

	now := time.Now().UTC()
	movement := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		Reason:    input.Reason,
		Reference: input.Reference,
		CreatedAt: now,
		CreatedBy: input.Actor,
		UnitCost:  input.UnitCost,
	}

	var newQty int64
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
	) error {
		// Bloquea la fila de saldo (SELECT FOR UPDATE); serializa a todos
		// los escritores del kardex de este producto.
		balance, err := balanceRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if err := movRepo.Create(movement); err != nil {
			return err
		}
		if input.Type == entity.MovementTypeIncoming && input.UnitCost != nil {
			balance.AvgCost = domaininv.WeightedAverageCost(
				decimal.NewFromInt(balance.Quantity), balance.AvgCost,
				decimal.NewFromInt(input.Quantity), *input.UnitCost,
			)
		}
		balance.Quantity += movement.SignedQuantity()
		balance.Version++
		balance.UpdatedAt = now
		newQty = balance.Quantity
		return balanceRepo.Upsert(balance)
	})
	if err != nil {
		return "", err
	}

	uc.invalidateCache(ctx, input.ProductID)
	if newQty < 0 {
		// El saldo puede quedar negativo; se avisa, no se bloquea.
		log.Warn().Str("product_id", input.ProductID).Int64("balance", newQty).
			Msg("saldo negativo tras registrar movimiento")
	}
	return movement.ID, nil
}

// ListMovements lista el kardex de un producto ascendente por (created_at, id).
func (uc *LedgerUseCase) ListMovements(ctx context.Context, productID string, page dto.PageRequest) ([]*entity.StockMovement, error) {
	page.DefaultPage()
	return uc.movRepo.ListByProduct(productID, page.Limit, page.Offset)
}

// ComputeBalance hace el fold del kardex completo del producto:
// +cantidad en INCOMING, -cantidad en OUTGOING, cantidad con signo en
// ADJUSTMENT. Función pura del log; puede devolver un valor negativo.
func (uc *LedgerUseCase) ComputeBalance(ctx context.Context, productID string) (int64, error) {
	movements, err := uc.movRepo.AllByProduct(productID)
	if err != nil {
		return 0, err
	}
	return foldBalance(movements), nil
}

// foldBalance suma las contribuciones con signo de los movimientos.
func foldBalance(movements []*entity.StockMovement) int64 {
	var total int64
	for _, m := range movements {
		total += m.SignedQuantity()
	}
	return total
}

// GetBalance devuelve el saldo proyectado. Consulta primero el caché;
// en miss recalcula desde el log y repara la fila materializada si quedó
// en desacuerdo (el log siempre gana).
func (uc *LedgerUseCase) GetBalance(ctx context.Context, productID string) (*dto.BalanceResponse, error) {
	now := time.Now().UTC()

	if uc.cache != nil {
		if qty, ok := uc.cache.Get(ctx, productID); ok {
			avgCost := decimal.Zero
			if row, err := uc.balanceRepo.Get(productID); err == nil && row != nil {
				avgCost = row.AvgCost
			}
			return &dto.BalanceResponse{
				ProductID:  productID,
				Quantity:   qty,
				AvgCost:    avgCost,
				Negative:   qty < 0,
				ComputedAt: now,
			}, nil
		}
	}

	computed, err := uc.ComputeBalance(ctx, productID)
	if err != nil {
		return nil, err
	}

	avgCost := decimal.Zero
	row, err := uc.balanceRepo.Get(productID)
	if err != nil {
		return nil, err
	}
	if row != nil {
		avgCost = row.AvgCost
		if row.Quantity != computed {
			// Drift entre proyección y log: se repara desde el log.
			log.Warn().Str("product_id", productID).
				Int64("projected", row.Quantity).Int64("computed", computed).
				Msg("saldo materializado en desacuerdo con el kardex, reparando")
			uc.repairBalance(ctx, productID)
		}
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, productID, computed)
	}
	if computed < 0 {
		log.Warn().Str("product_id", productID).Int64("balance", computed).
			Msg("saldo negativo")
	}
	return &dto.BalanceResponse{
		ProductID:  productID,
		Quantity:   computed,
		AvgCost:    avgCost,
		Negative:   computed < 0,
		ComputedAt: now,
	}, nil
}

// repairBalance recalcula el saldo dentro de una transacción con la fila
// bloqueada y lo persiste. Best effort: un fallo se registra y la lectura
// sigue sirviendo el valor del log.
func (uc *LedgerUseCase) repairBalance(ctx context.Context, productID string) {
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
	) error {
		balance, err := balanceRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		movements, err := movRepo.AllByProduct(productID)
		if err != nil {
			return err
		}
		computed := foldBalance(movements)
		if balance.Quantity == computed {
			return nil
		}
		balance.Quantity = computed
		balance.Version++
		balance.UpdatedAt = time.Now().UTC()
		return balanceRepo.Upsert(balance)
	})
	if err != nil {
		log.Error().Err(err).Str("product_id", productID).Msg("reparación de saldo fallida")
	}
}

// invalidateCache borra la entrada de caché tras un commit. Best effort.
func (uc *LedgerUseCase) invalidateCache(ctx context.Context, productID string) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, productID)
	}
}
