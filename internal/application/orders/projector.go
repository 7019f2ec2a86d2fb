package orders

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/application/dto"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/entity"
	domainorder "github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/order"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/repository"
)

// ProjectorUseCase deriva proyecciones de lectura del log de eventos:
// estado actual y línea de tiempo render-ready. Las lecturas no toman locks;
// operan sobre el snapshot del log al momento de la llamada.
type ProjectorUseCase struct {
	orderRepo repository.OrderRepository
	eventRepo repository.OrderEventRepository
}

// NewProjectorUseCase construye el caso de uso.
func NewProjectorUseCase(
	orderRepo repository.OrderRepository,
	eventRepo repository.OrderEventRepository,
) *ProjectorUseCase {
	return &ProjectorUseCase{orderRepo: orderRepo, eventRepo: eventRepo}
}

// CurrentStatus devuelve el new_status del STATUS_CHANGE más reciente.
// Si el log no tiene ninguno (fila legada anterior al log) cae al campo
// almacenado. Si el campo y el log están en desacuerdo se repara el campo
// desde el log — el log siempre gana.
func (uc *ProjectorUseCase) CurrentStatus(ctx context.Context, orderID string) (entity.OrderStatus, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return "", err
	}
	if order == nil {
		return "", domain.ErrNotFound
	}

	last, err := uc.eventRepo.LastStatusChange(orderID)
	if err != nil {
		return "", err
	}
	if last == nil {
		// Migración/back-compat: órdenes sin eventos conservan su campo.
		return order.Status, nil
	}
	payload, ok := last.Payload.(entity.StatusChangePayload)
	if !ok {
		return "", domain.ErrMissingStatusPayload
	}
	status := payload.NewStatus

	if order.Status != status {
		// Drift entre caché y log: reparación best-effort en la lectura.
		log.Warn().Str("order_id", orderID).
			Str("stored", string(order.Status)).Str("derived", string(status)).
			Msg("estado almacenado en desacuerdo con el log, reparando")
		if err := uc.orderRepo.UpdateStatus(orderID, status); err != nil {
			log.Error().Err(err).Str("order_id", orderID).Msg("reparación de estado fallida")
		}
	}
	return status, nil
}

// BuildTimeline fusiona eventos de negocio y STATUS_CHANGE en una secuencia
// cronológica lista para renderizar: una entrada por evento, ascendente por
// (created_at, id). Función pura e idempotente del log más el estado inicial
// de la orden: sin eventos nuevos, repetirla produce un resultado idéntico.
func (uc *ProjectorUseCase) BuildTimeline(ctx context.Context, orderID string) ([]dto.TimelineEntry, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	events, err := uc.eventRepo.ListByOrder(orderID)
	if err != nil {
		return nil, err
	}

	// Estado actual derivado del log; fallback al campo para filas legadas.
	current := order.Status
	lastStatusIdx := -1
	for i, ev := range events {
		if ev.Type != entity.EventTypeStatusChange {
			continue
		}
		if payload, ok := ev.Payload.(entity.StatusChangePayload); ok {
			current = payload.NewStatus
			lastStatusIdx = i
		}
	}
	terminalExit := current == entity.StatusCancelled || current == entity.StatusRefunded

	entries := make([]dto.TimelineEntry, 0, len(events))
	for i, ev := range events {
		entry := renderEntry(ev)
		if ev.Type == entity.EventTypeStatusChange {
			entry.StatusMarker = statusMarker(ev, i, lastStatusIdx, current, terminalExit)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// statusMarker anota una entrada STATUS_CHANGE relativa al ciclo de vida
// canónico: completed / current / future. Con salida terminal (Cancelled o
// Refunded) la entrada terminal es current y todo lo posterior queda moot.
func statusMarker(ev *entity.OrderEvent, idx, lastStatusIdx int, current entity.OrderStatus, terminalExit bool) string {
	payload, ok := ev.Payload.(entity.StatusChangePayload)
	if !ok {
		return ""
	}
	if terminalExit {
		switch {
		case idx == lastStatusIdx:
			return dto.MarkerCurrent
		case idx > lastStatusIdx:
			return dto.MarkerMoot
		default:
			return dto.MarkerCompleted
		}
	}
	currentRank := domainorder.Rank(current)
	switch rank := domainorder.Rank(payload.NewStatus); {
	case idx == lastStatusIdx:
		return dto.MarkerCurrent
	case rank < currentRank:
		return dto.MarkerCompleted
	case rank == currentRank:
		return dto.MarkerCurrent
	default:
		return dto.MarkerFuture
	}
}

// renderEntry traduce un evento a su entrada de línea de tiempo. El dispatch
// es sobre el tipo concreto del payload (unión cerrada), no sobre strings.
func renderEntry(ev *entity.OrderEvent) dto.TimelineEntry {
	entry := dto.TimelineEntry{
		Kind:        ev.Type,
		Title:       ev.Title,
		Description: ev.Description,
		Actor:       ev.Actor,
		Timestamp:   ev.CreatedAt,
	}
	if entry.Title != "" {
		return entry
	}
	switch p := ev.Payload.(type) {
	case entity.StatusChangePayload:
		entry.Title = "Estado: " + string(p.NewStatus)
	case entity.CheckoutCompletedPayload:
		entry.Title = fmt.Sprintf("Checkout completado (%d artículos)", p.Items)
	case entity.ConfirmationSentPayload:
		entry.Title = fmt.Sprintf("Confirmación enviada por %s", p.Channel)
	case entity.InventoryAdjustedPayload:
		entry.Title = fmt.Sprintf("Inventario ajustado: %s %+d", p.ProductID, p.Quantity)
	}
	return entry
}
