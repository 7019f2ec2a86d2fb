package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id"`
	Type      string           `json:"type"`     // INCOMING, OUTGOING, ADJUSTMENT
	Quantity  int64            `json:"quantity"` // positivo en IN/OUT; con signo en ADJUSTMENT
	Reason    string           `json:"reason,omitempty"`
	Reference string           `json:"reference,omitempty"`
	Actor     string           `json:"actor,omitempty"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"` // solo INCOMING
}

// MovementDTO una línea del kardex en respuestas.
type MovementDTO struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Type      string           `json:"type"`
	Quantity  int64            `json:"quantity"`
	Reason    string           `json:"reason,omitempty"`
	Reference string           `json:"reference,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	CreatedBy string           `json:"created_by,omitempty"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
}

// BalanceResponse saldo proyectado de un producto.
// Negative avisa al caller que el fold quedó por debajo de cero; esta capa
// no lo bloquea (decisión de política del caller).
type BalanceResponse struct {
	ProductID  string          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	AvgCost    decimal.Decimal `json:"avg_cost"`
	Negative   bool            `json:"negative,omitempty"`
	ComputedAt time.Time       `json:"computed_at"`
}

// ReconcileRequest body para POST /api/inventory/products/:id/reconcile.
type ReconcileRequest struct {
	CountedQuantity int64  `json:"counted_quantity"`
	Reason          string `json:"reason"`
	Actor           string `json:"actor,omitempty"`
}

// ReconcileResponse resultado de una conciliación de stock.
// Adjusted=false indica el no-op esperado (el conteo coincidía con el saldo).
type ReconcileResponse struct {
	MovementID string `json:"movement_id,omitempty"`
	Delta      int64  `json:"delta"`
	NewBalance int64  `json:"new_balance"`
	Adjusted   bool   `json:"adjusted"`
}
