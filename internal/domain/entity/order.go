package entity

import "time"

// OrderStatus estado del ciclo de vida de una orden.
type OrderStatus string

// Estados del ciclo de vida. El camino feliz es
// Draft → Paid → Confirmed → Packed → Delivery → Complete;
// Cancelled y Refunded son salidas terminales desde cualquier estado no terminal.
const (
	StatusDraft     OrderStatus = "DRAFT"
	StatusPaid      OrderStatus = "PAID"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusPacked    OrderStatus = "PACKED"
	StatusDelivery  OrderStatus = "DELIVERY"
	StatusComplete  OrderStatus = "COMPLETE"
	StatusCancelled OrderStatus = "CANCELLED"
	StatusRefunded  OrderStatus = "REFUNDED"
)

// IsValidOrderStatus valida que el estado pertenezca al conjunto cerrado.
func IsValidOrderStatus(s OrderStatus) bool {
	switch s {
	case StatusDraft, StatusPaid, StatusConfirmed, StatusPacked,
		StatusDelivery, StatusComplete, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// Order es el agregado de orden. Status es una caché de lectura: el valor
// autoritativo es el último evento STATUS_CHANGE del log; ante desacuerdo
// se repara el campo desde el log, nunca al revés.
type Order struct {
	ID        string
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
