package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex (value object conceptual).
const (
	MovementTypeIncoming   = "INCOMING"   // entrada de mercancía
	MovementTypeOutgoing   = "OUTGOING"   // salida de mercancía
	MovementTypeAdjustment = "ADJUSTMENT" // ajuste por conciliación o corrección
)

// StockMovement es una línea inmutable del kardex de un producto.
// El log es append-only: los movimientos nunca se actualizan ni se borran.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string // INCOMING, OUTGOING, ADJUSTMENT
	Quantity  int64  // positivo en INCOMING/OUTGOING; con signo en ADJUSTMENT
	Reason    string
	Reference string // documento origen: recepción, factura, nota de conteo, etc.
	CreatedAt time.Time
	CreatedBy string
	// Costo unitario de la entrada; solo aplica a INCOMING (nil en el resto).
	UnitCost *decimal.Decimal
}

// SignedQuantity devuelve la contribución del movimiento al saldo:
// +Quantity en entradas, -Quantity en salidas, Quantity tal cual en ajustes.
func (m *StockMovement) SignedQuantity() int64 {
	switch m.Type {
	case MovementTypeIncoming:
		return m.Quantity
	case MovementTypeOutgoing:
		return -m.Quantity
	case MovementTypeAdjustment:
		return m.Quantity
	}
	return 0
}

// IsValidMovementType valida que el tipo pertenezca al conjunto cerrado.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeIncoming, MovementTypeOutgoing, MovementTypeAdjustment:
		return true
	}
	return false
}
