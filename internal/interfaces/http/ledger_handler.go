package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/application/dto"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/application/ledger"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain"
)

// LedgerHandler maneja las peticiones HTTP del kardex: movimientos, saldos y
// conciliación.
type LedgerHandler struct {
	ledgerUC    *ledger.LedgerUseCase
	reconcileUC *ledger.ReconcileUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(ledgerUC *ledger.LedgerUseCase, reconcileUC *ledger.ReconcileUseCase) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, reconcileUC: reconcileUC}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento del kardex
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (INCOMING/OUTGOING/ADJUSTMENT), quantity, reason, unit_cost (entradas)"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *LedgerHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movementID, err := h.ledgerUC.RegisterMovementFromRequest(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidMovementType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de movimiento desconocido"})
		case errors.Is(err, domain.ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidad inválida para el tipo"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"movement_id": movementID})
}

// ListMovements godoc
// @Summary      Kardex de un producto
// @Tags         inventory
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite de página"
// @Param        offset  query  int     false  "Offset de página"
// @Success      200  {array}   dto.MovementDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/movements [get]
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Params("id")
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	movements, err := h.ledgerUC.ListMovements(c.Context(), productID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	list := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		list = append(list, dto.MovementDTO{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reason:    m.Reason,
			Reference: m.Reference,
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
			UnitCost:  m.UnitCost,
		})
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": list})
}

// GetBalance godoc
// @Summary      Saldo proyectado de un producto
// @Tags         inventory
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/balance [get]
func (h *LedgerHandler) GetBalance(c *fiber.Ctx) error {
	balance, err := h.ledgerUC.GetBalance(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(balance)
}

// Reconcile godoc
// @Summary      Conciliar saldo contra conteo físico
// @Description  Calcula el delta entre el conteo y el saldo derivado del
//	kardex y agrega exactamente un movimiento ADJUSTMENT. Si el conteo
//	coincide responde 200 con adjusted=false (no-op esperado).
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del producto"
// @Param        body  body  dto.ReconcileRequest  true  "counted_quantity, reason"
// @Success      200   {object}  dto.ReconcileResponse
// @Success      201   {object}  dto.ReconcileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/reconcile [post]
func (h *LedgerHandler) Reconcile(c *fiber.Ctx) error {
	productID := c.Params("id")
	var in dto.ReconcileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.reconcileUC.Reconcile(c.Context(), productID, in.CountedQuantity, in.Reason, in.Actor)
	if err != nil {
		if errors.Is(err, domain.ErrNoAdjustmentNeeded) {
			// Resultado esperado, no una falla: el conteo coincidía.
			return c.JSON(dto.ReconcileResponse{NewBalance: in.CountedQuantity, Adjusted: false})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}
