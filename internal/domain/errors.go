package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInvalidQuantity      = errors.New("cantidad inválida para el tipo de movimiento")
	ErrInvalidMovementType  = errors.New("tipo de movimiento desconocido")
	ErrNoAdjustmentNeeded   = errors.New("el conteo coincide con el saldo, no se requiere ajuste")
	ErrMissingStatusPayload = errors.New("evento status_change sin old_status/new_status")
	ErrInvalidTransition    = errors.New("transición de estado no permitida")
	ErrUnknownEventType     = errors.New("tipo de evento desconocido")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrConsistency          = errors.New("proyección en desacuerdo con el log de eventos")
)
