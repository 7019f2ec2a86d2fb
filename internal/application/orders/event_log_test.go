package orders_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/application/dto"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/application/orders"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/entity"
)

func newOrdersUnderTest() (*orders.EventLogUseCase, *orders.ProjectorUseCase, *fakeOrderRepo, *fakeEventRepo) {
	orderRepo := newFakeOrderRepo()
	eventRepo := &fakeEventRepo{}
	tx := &fakeOrderTx{orderRepo: orderRepo, eventRepo: eventRepo}
	return orders.NewEventLogUseCase(tx, orderRepo, eventRepo),
		orders.NewProjectorUseCase(orderRepo, eventRepo),
		orderRepo, eventRepo
}

func createOrder(t *testing.T, uc *orders.EventLogUseCase) *entity.Order {
	t.Helper()
	order, err := uc.CreateOrder(context.Background(), "vendedor")
	require.NoError(t, err)
	require.NotNil(t, order)
	return order
}

func transition(t *testing.T, uc *orders.EventLogUseCase, orderID string, to entity.OrderStatus) {
	t.Helper()
	_, err := uc.TransitionOrder(context.Background(), orderID, to, "vendedor", "")
	require.NoError(t, err, "transición a %s debe aceptarse", to)
}

func TestCreateOrder_EventoInicial(t *testing.T) {
	uc, _, _, eventRepo := newOrdersUnderTest()
	order := createOrder(t, uc)

	assert.Equal(t, entity.StatusDraft, order.Status)

	events, err := eventRepo.ListByOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, events, 1, "toda orden nueva nace con su STATUS_CHANGE inicial")
	assert.Equal(t, entity.EventTypeStatusChange, events[0].Type)

	payload, ok := events[0].Payload.(entity.StatusChangePayload)
	require.True(t, ok)
	assert.Nil(t, payload.OldStatus, "el evento inicial no tiene estado previo")
	assert.Equal(t, entity.StatusDraft, payload.NewStatus)
}

func TestTransitionOrder_CaminoFeliz(t *testing.T) {
	uc, projector, _, _ := newOrdersUnderTest()
	order := createOrder(t, uc)

	for _, status := range []entity.OrderStatus{
		entity.StatusPaid,
		entity.StatusConfirmed,
		entity.StatusPacked,
		entity.StatusDelivery,
		entity.StatusComplete,
	} {
		transition(t, uc, order.ID, status)
	}

	current, err := projector.CurrentStatus(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusComplete, current)
}

// La cadena old[i+1] == new[i] se cumple por construcción: cada transición
// deriva su old del log, nunca del request.
func TestTransitionOrder_CadenaDeEstados(t *testing.T) {
	uc, _, _, eventRepo := newOrdersUnderTest()
	order := createOrder(t, uc)
	transition(t, uc, order.ID, entity.StatusPaid)
	transition(t, uc, order.ID, entity.StatusConfirmed)

	events, err := eventRepo.ListByOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)

	var prev *entity.OrderStatus
	for i, ev := range events {
		payload, ok := ev.Payload.(entity.StatusChangePayload)
		require.True(t, ok)
		if prev == nil {
			assert.Nil(t, payload.OldStatus, "evento %d: el primero no tiene old", i)
		} else {
			require.NotNil(t, payload.OldStatus, "evento %d", i)
			assert.Equal(t, *prev, *payload.OldStatus, "evento %d: old debe encadenar con el new anterior", i)
		}
		status := payload.NewStatus
		prev = &status
	}
}

func TestTransitionOrder_SaltoIlegal(t *testing.T) {
	uc, _, _, eventRepo := newOrdersUnderTest()
	order := createOrder(t, uc)

	before := len(eventRepo.events)
	_, err := uc.TransitionOrder(context.Background(), order.ID, entity.StatusComplete, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "Draft → Complete salta estados")
	assert.Len(t, eventRepo.events, before, "una transición rechazada no escribe al log")
}

func TestTransitionOrder_DesdeTerminal(t *testing.T) {
	uc, _, _, _ := newOrdersUnderTest()
	order := createOrder(t, uc)
	transition(t, uc, order.ID, entity.StatusCancelled)

	_, err := uc.TransitionOrder(context.Background(), order.ID, entity.StatusPaid, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "los estados terminales no admiten salida")
}

func TestTransitionOrder_CancelacionDesdeCualquierNoTerminal(t *testing.T) {
	uc, projector, _, _ := newOrdersUnderTest()
	order := createOrder(t, uc)
	transition(t, uc, order.ID, entity.StatusPaid)
	transition(t, uc, order.ID, entity.StatusConfirmed)
	transition(t, uc, order.ID, entity.StatusCancelled)

	current, err := projector.CurrentStatus(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, current)
}

func TestTransitionOrder_RefrescaCampoAlmacenado(t *testing.T) {
	uc, _, orderRepo, _ := newOrdersUnderTest()
	order := createOrder(t, uc)
	transition(t, uc, order.ID, entity.StatusPaid)

	stored, err := orderRepo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, stored.Status, "el campo se refresca desde el log en la misma transacción")
}

func TestTransitionOrder_OrdenInexistente(t *testing.T) {
	uc, _, _, _ := newOrdersUnderTest()
	_, err := uc.TransitionOrder(context.Background(), "no-existe", entity.StatusPaid, "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAppendEvent_EventoDeNegocio(t *testing.T) {
	uc, _, _, eventRepo := newOrdersUnderTest()
	order := createOrder(t, uc)

	id, err := uc.AppendEvent(context.Background(), orders.AppendEventInput{
		OrderID: order.ID,
		Type:    entity.EventTypeConfirmationSent,
		Actor:   "sistema",
		Payload: entity.ConfirmationSentPayload{Channel: "email", Recipient: "cliente@example.com"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	events, err := eventRepo.ListByOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, entity.EventTypeConfirmationSent, events[1].Type)
}

// Un evento de negocio no mueve la máquina de estados.
func TestAppendEvent_NoAlteraElEstado(t *testing.T) {
	uc, projector, _, _ := newOrdersUnderTest()
	order := createOrder(t, uc)
	transition(t, uc, order.ID, entity.StatusPaid)

	_, err := uc.AppendEvent(context.Background(), orders.AppendEventInput{
		OrderID: order.ID,
		Type:    entity.EventTypeCheckoutCompleted,
		Payload: entity.CheckoutCompletedPayload{Items: 3},
	})
	require.NoError(t, err)

	current, err := projector.CurrentStatus(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, current)
}

func TestAppendEvent_TipoDesconocido(t *testing.T) {
	uc, _, _, _ := newOrdersUnderTest()
	order := createOrder(t, uc)

	_, err := uc.AppendEvent(context.Background(), orders.AppendEventInput{
		OrderID: order.ID,
		Type:    "PARCEL_LOST",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownEventType)
}

func TestAppendEvent_StatusChangeSinPayload(t *testing.T) {
	uc, _, _, _ := newOrdersUnderTest()
	order := createOrder(t, uc)

	_, err := uc.AppendEvent(context.Background(), orders.AppendEventInput{
		OrderID: order.ID,
		Type:    entity.EventTypeStatusChange,
	})
	assert.ErrorIs(t, err, domain.ErrMissingStatusPayload)
}

// Un STATUS_CHANGE vía append pasa por la misma FSM que TransitionOrder.
func TestAppendEventFromRequest_StatusChangeViaFSM(t *testing.T) {
	uc, projector, _, _ := newOrdersUnderTest()
	order := createOrder(t, uc)

	_, err := uc.AppendEventFromRequest(context.Background(), order.ID, dto.AppendEventRequest{
		Type:    entity.EventTypeStatusChange,
		Actor:   "vendedor",
		Payload: json.RawMessage(`{"new_status":"PAID"}`),
	})
	require.NoError(t, err)

	current, err := projector.CurrentStatus(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, current)

	// El mismo salto ilegal sigue siendo ilegal por esta ruta.
	_, err = uc.AppendEventFromRequest(context.Background(), order.ID, dto.AppendEventRequest{
		Type:    entity.EventTypeStatusChange,
		Payload: json.RawMessage(`{"new_status":"COMPLETE"}`),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAppendEventFromRequest_PayloadIlegible(t *testing.T) {
	uc, _, _, _ := newOrdersUnderTest()
	order := createOrder(t, uc)

	_, err := uc.AppendEventFromRequest(context.Background(), order.ID, dto.AppendEventRequest{
		Type:    entity.EventTypeStatusChange,
		Payload: json.RawMessage(`"no soy un objeto"`),
	})
	assert.ErrorIs(t, err, domain.ErrMissingStatusPayload)
}

func TestGetOrder_NoExiste(t *testing.T) {
	uc, _, _, _ := newOrdersUnderTest()
	_, err := uc.GetOrder(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
