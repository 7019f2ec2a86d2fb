package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/entity"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/order"
)

// La tabla de transiciones: sucesor inmediato del camino feliz y salidas
// terminales desde cualquier estado no terminal. Nada más.
func TestCanTransition_CaminoFeliz(t *testing.T) {
	cases := []struct {
		from, to entity.OrderStatus
	}{
		{entity.StatusDraft, entity.StatusPaid},
		{entity.StatusPaid, entity.StatusConfirmed},
		{entity.StatusConfirmed, entity.StatusPacked},
		{entity.StatusPacked, entity.StatusDelivery},
		{entity.StatusDelivery, entity.StatusComplete},
	}
	for _, c := range cases {
		assert.True(t, order.CanTransition(c.from, c.to),
			"%s → %s debe ser legal", c.from, c.to)
	}
}

func TestCanTransition_SalidasTerminales(t *testing.T) {
	nonTerminal := []entity.OrderStatus{
		entity.StatusDraft, entity.StatusPaid, entity.StatusConfirmed,
		entity.StatusPacked, entity.StatusDelivery,
	}
	for _, from := range nonTerminal {
		assert.True(t, order.CanTransition(from, entity.StatusCancelled),
			"%s → Cancelled debe ser legal", from)
		assert.True(t, order.CanTransition(from, entity.StatusRefunded),
			"%s → Refunded debe ser legal", from)
	}
}

func TestCanTransition_Ilegales(t *testing.T) {
	cases := []struct {
		name     string
		from, to entity.OrderStatus
	}{
		{"saltar estados", entity.StatusDraft, entity.StatusComplete},
		{"saltar un paso", entity.StatusPaid, entity.StatusPacked},
		{"retroceso", entity.StatusConfirmed, entity.StatusPaid},
		{"desde Complete", entity.StatusComplete, entity.StatusRefunded},
		{"desde Cancelled", entity.StatusCancelled, entity.StatusDraft},
		{"desde Refunded", entity.StatusRefunded, entity.StatusPaid},
		{"mismo estado", entity.StatusPaid, entity.StatusPaid},
		{"estado desconocido", entity.OrderStatus("SHIPPED"), entity.StatusPaid},
		{"hacia desconocido", entity.StatusPaid, entity.OrderStatus("SHIPPED")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.False(t, order.CanTransition(c.from, c.to),
				"%s → %s no debe ser legal", c.from, c.to)
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, order.IsTerminal(entity.StatusComplete))
	assert.True(t, order.IsTerminal(entity.StatusCancelled))
	assert.True(t, order.IsTerminal(entity.StatusRefunded))
	assert.False(t, order.IsTerminal(entity.StatusDraft))
	assert.False(t, order.IsTerminal(entity.StatusDelivery))
}

func TestRank_OrdenCanonico(t *testing.T) {
	assert.Equal(t, 0, order.Rank(entity.StatusDraft))
	assert.Equal(t, 5, order.Rank(entity.StatusComplete))
	assert.Less(t, order.Rank(entity.StatusPaid), order.Rank(entity.StatusConfirmed),
		"Paid debe ir antes que Confirmed")
	// Las salidas terminales no pertenecen al camino feliz.
	assert.Equal(t, -1, order.Rank(entity.StatusCancelled))
	assert.Equal(t, -1, order.Rank(entity.StatusRefunded))
}
