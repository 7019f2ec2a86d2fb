package order

import "github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/entity"

// Máquina de estados del ciclo de vida de la orden (servicio de dominio).
// Camino feliz: Draft → Paid → Confirmed → Packed → Delivery → Complete.
// Cancelled y Refunded son salidas terminales alcanzables desde cualquier
// estado no terminal. No hay transiciones hacia atrás.

// happyPath define el orden canónico de los estados del camino feliz.
var happyPath = []entity.OrderStatus{
	entity.StatusDraft,
	entity.StatusPaid,
	entity.StatusConfirmed,
	entity.StatusPacked,
	entity.StatusDelivery,
	entity.StatusComplete,
}

// InitialStatus estado inicial de toda orden.
const InitialStatus = entity.StatusDraft

// Rank posición del estado en el camino feliz (0 = Draft). Devuelve -1 para
// Cancelled/Refunded y estados desconocidos.
func Rank(s entity.OrderStatus) int {
	for i, st := range happyPath {
		if st == s {
			return i
		}
	}
	return -1
}

// IsTerminal indica si el estado no admite más transiciones.
func IsTerminal(s entity.OrderStatus) bool {
	switch s {
	case entity.StatusComplete, entity.StatusCancelled, entity.StatusRefunded:
		return true
	}
	return false
}

// CanTransition valida una transición contra la tabla de la máquina de
// estados: sucesor inmediato del camino feliz, o salida terminal desde un
// estado no terminal. Todo lo demás es ilegal.
func CanTransition(from, to entity.OrderStatus) bool {
	if !entity.IsValidOrderStatus(from) || !entity.IsValidOrderStatus(to) {
		return false
	}
	if IsTerminal(from) {
		return false
	}
	if to == entity.StatusCancelled || to == entity.StatusRefunded {
		return true
	}
	fromRank := Rank(from)
	toRank := Rank(to)
	return fromRank >= 0 && toRank == fromRank+1
}
