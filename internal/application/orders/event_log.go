package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/application/dto"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/entity"
	domainorder "github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/order"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/repository"
)

// EventLogUseCase maneja el log append-only de eventos de orden: creación de
// la orden, eventos de negocio y transiciones de estado guardadas por la
// máquina de estados del ciclo de vida.
type EventLogUseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
	eventRepo repository.OrderEventRepository
}

// NewEventLogUseCase construye el caso de uso.
func NewEventLogUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	eventRepo repository.OrderEventRepository,
) *EventLogUseCase {
	return &EventLogUseCase{txRunner: txRunner, orderRepo: orderRepo, eventRepo: eventRepo}
}

// CreateOrder crea una orden en Draft y agrega el STATUS_CHANGE inicial
// (old=nil, new=Draft) en la misma transacción, de modo que toda orden nueva
// queda respaldada por el log desde el primer momento.
func (uc *EventLogUseCase) CreateOrder(ctx context.Context, actor string) (*entity.Order, error) {
	now := time.Now().UTC()
	order := &entity.Order{
		ID:        uuid.New().String(),
		Status:    domainorder.InitialStatus,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		eventRepo repository.OrderEventRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		initial := domainorder.InitialStatus
		event := &entity.OrderEvent{
			ID:      uuid.New().String(),
			OrderID: order.ID,
			Type:    entity.EventTypeStatusChange,
			Title:   "Orden creada",
			Actor:   actor,
			Payload: entity.StatusChangePayload{OldStatus: nil, NewStatus: initial},
			CreatedAt: now,
		}
		return eventRepo.Create(event)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder devuelve la orden por ID.
func (uc *EventLogUseCase) GetOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// AppendEventInput entrada para agregar un evento de negocio al log.
type AppendEventInput struct {
	OrderID     string
	Type        string
	Title       string
	Description string
	Actor       string
	Payload     entity.EventPayload
}

// AppendEventFromRequest adapta el request HTTP: decodifica el payload crudo
// contra el conjunto cerrado de variantes y delega en AppendEvent.
func (uc *EventLogUseCase) AppendEventFromRequest(ctx context.Context, orderID string, in dto.AppendEventRequest) (string, error) {
	var payload entity.EventPayload
	if len(in.Payload) > 0 {
		p, err := entity.DecodePayload(in.Type, in.Payload)
		if err != nil {
			if in.Type == entity.EventTypeStatusChange {
				return "", domain.ErrMissingStatusPayload
			}
			return "", domain.ErrUnknownEventType
		}
		payload = p
	}
	return uc.AppendEvent(ctx, AppendEventInput{
		OrderID:     orderID,
		Type:        in.Type,
		Title:       in.Title,
		Description: in.Description,
		Actor:       in.Actor,
		Payload:     payload,
	})
}

// AppendEvent agrega un evento al log con timestamp del servidor y devuelve
// su ID. Los STATUS_CHANGE exigen payload old/new y pasan por la máquina de
// estados (misma ruta que TransitionOrder); el resto del conjunto cerrado se
// agrega directo.
func (uc *EventLogUseCase) AppendEvent(ctx context.Context, input AppendEventInput) (string, error) {
	if input.OrderID == "" {
		return "", domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.EventTypeStatusChange:
		payload, ok := input.Payload.(entity.StatusChangePayload)
		if !ok || !entity.IsValidOrderStatus(payload.NewStatus) {
			return "", domain.ErrMissingStatusPayload
		}
		// Toda escritura de estado pasa por la FSM; así la cadena
		// old[i+1] == new[i] se cumple por construcción.
		return uc.TransitionOrder(ctx, input.OrderID, payload.NewStatus, input.Actor, input.Description)
	case entity.EventTypeCheckoutCompleted, entity.EventTypeConfirmationSent, entity.EventTypeInventoryAdjusted:
		// evento de negocio, sigue abajo
	default:
		return "", domain.ErrUnknownEventType
	}

	event := &entity.OrderEvent{
		ID:          uuid.New().String(),
		OrderID:     input.OrderID,
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Actor:       input.Actor,
		Payload:     input.Payload,
		CreatedAt:   time.Now().UTC(),
	}
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		eventRepo repository.OrderEventRepository,
	) error {
		order, err := orderRepo.GetByID(input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		return eventRepo.Create(event)
	})
	if err != nil {
		return "", err
	}
	return event.ID, nil
}

// TransitionOrder transiciona la orden a newStatus: bloquea la fila de la
// orden, deriva el estado actual del log (fallback: campo almacenado para
// filas legadas), valida contra la tabla de transiciones, agrega el
// STATUS_CHANGE y refresca la caché de estado, todo en una transacción.
func (uc *EventLogUseCase) TransitionOrder(ctx context.Context, orderID string, newStatus entity.OrderStatus, actor, description string) (string, error) {
	if orderID == "" {
		return "", domain.ErrInvalidInput
	}
	eventID := uuid.New().String()
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		eventRepo repository.OrderEventRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}

		current := order.Status
		if last, err := eventRepo.LastStatusChange(orderID); err != nil {
			return err
		} else if last != nil {
			if payload, ok := last.Payload.(entity.StatusChangePayload); ok {
				current = payload.NewStatus
			}
		}

		if !domainorder.CanTransition(current, newStatus) {
			return domain.ErrInvalidTransition
		}

		old := current
		event := &entity.OrderEvent{
			ID:          eventID,
			OrderID:     orderID,
			Type:        entity.EventTypeStatusChange,
			Title:       "Estado actualizado",
			Description: description,
			Actor:       actor,
			Payload:     entity.StatusChangePayload{OldStatus: &old, NewStatus: newStatus},
			CreatedAt:   time.Now().UTC(),
		}
		if err := eventRepo.Create(event); err != nil {
			return err
		}
		// La caché de estado se refresca siempre desde el log, nunca al revés.
		return orderRepo.UpdateStatus(orderID, newStatus)
	})
	if err != nil {
		return "", err
	}
	return eventID, nil
}

// ListEvents lista los eventos de la orden ascendente por (created_at, id).
func (uc *EventLogUseCase) ListEvents(ctx context.Context, orderID string) ([]*entity.OrderEvent, error) {
	return uc.eventRepo.ListByOrder(orderID)
}
