package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento de orden (conjunto cerrado).
const (
	EventTypeStatusChange      = "STATUS_CHANGE"
	EventTypeCheckoutCompleted = "CHECKOUT_COMPLETED"
	EventTypeConfirmationSent  = "CONFIRMATION_SENT"
	EventTypeInventoryAdjusted = "INVENTORY_ADJUSTED"
)

// EventPayload es la unión etiquetada de payloads: un struct por tipo de
// evento, en lugar de un blob clave/valor genérico. El consumo hace
// dispatch sobre el tipo concreto, no sobre strings.
type EventPayload interface {
	EventType() string
}

// StatusChangePayload payload de STATUS_CHANGE. OldStatus nil indica el
// evento inicial de la orden (no había estado previo).
type StatusChangePayload struct {
	OldStatus *OrderStatus `json:"old_status"`
	NewStatus OrderStatus  `json:"new_status"`
}

// EventType implementa EventPayload.
func (StatusChangePayload) EventType() string { return EventTypeStatusChange }

// CheckoutCompletedPayload payload de CHECKOUT_COMPLETED.
type CheckoutCompletedPayload struct {
	Items int             `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// EventType implementa EventPayload.
func (CheckoutCompletedPayload) EventType() string { return EventTypeCheckoutCompleted }

// ConfirmationSentPayload payload de CONFIRMATION_SENT (email o SMS enviado
// por un colaborador externo; aquí solo se registra el hecho).
type ConfirmationSentPayload struct {
	Channel   string `json:"channel"` // email, sms
	Recipient string `json:"recipient"`
}

// EventType implementa EventPayload.
func (ConfirmationSentPayload) EventType() string { return EventTypeConfirmationSent }

// InventoryAdjustedPayload payload de INVENTORY_ADJUSTED (descuento o
// reposición de stock asociada a la orden).
type InventoryAdjustedPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"` // con signo
}

// EventType implementa EventPayload.
func (InventoryAdjustedPayload) EventType() string { return EventTypeInventoryAdjusted }

// OrderEvent es una línea inmutable del log de eventos de una orden.
// Los eventos de una orden quedan totalmente ordenados por (CreatedAt, ID).
type OrderEvent struct {
	ID          string
	OrderID     string
	Type        string
	Title       string
	Description string
	Actor       string
	Payload     EventPayload
	CreatedAt   time.Time
}

// EncodePayload serializa el payload a JSON para la columna JSONB.
func EncodePayload(p EventPayload) ([]byte, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload %s: %w", p.EventType(), err)
	}
	return b, nil
}

// DecodePayload deserializa el JSON de la columna al struct del tipo de
// evento. El switch es exhaustivo: un tipo fuera del conjunto cerrado es un
// error, no un fallback silencioso.
func DecodePayload(eventType string, raw []byte) (EventPayload, error) {
	switch eventType {
	case EventTypeStatusChange:
		var p StatusChangePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode status_change payload: %w", err)
		}
		return p, nil
	case EventTypeCheckoutCompleted:
		var p CheckoutCompletedPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode checkout_completed payload: %w", err)
		}
		return p, nil
	case EventTypeConfirmationSent:
		var p ConfirmationSentPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode confirmation_sent payload: %w", err)
		}
		return p, nil
	case EventTypeInventoryAdjusted:
		var p InventoryAdjustedPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode inventory_adjusted payload: %w", err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("tipo de evento desconocido: %q", eventType)
}
