package dto

import (
	"encoding/json"
	"time"
)

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Actor string `json:"actor,omitempty"`
}

// OrderResponse proyección de la orden.
type OrderResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransitionRequest body para POST /api/orders/:id/transition.
type TransitionRequest struct {
	NewStatus   string `json:"new_status"`
	Actor       string `json:"actor,omitempty"`
	Description string `json:"description,omitempty"`
}

// AppendEventRequest body para POST /api/orders/:id/events.
// Payload es el JSON del payload del tipo indicado; se decodifica contra el
// conjunto cerrado de variantes (ver entity.DecodePayload).
type AppendEventRequest struct {
	Type        string          `json:"type"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Actor       string          `json:"actor,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

// Marcadores de estado para las entradas de la línea de tiempo.
const (
	MarkerCompleted = "completed"
	MarkerCurrent   = "current"
	MarkerFuture    = "future"
	MarkerMoot      = "moot"
)

// TimelineEntry entrada render-ready de la línea de tiempo de una orden.
// StatusMarker solo aplica a entradas STATUS_CHANGE.
type TimelineEntry struct {
	Kind         string    `json:"kind"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	Actor        string    `json:"actor,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	StatusMarker string    `json:"status_marker,omitempty"`
}
