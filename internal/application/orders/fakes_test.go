package orders_test

import (
	"context"
	"sort"
	"time"

	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/entity"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/repository"
)

// Fakes en memoria de los puertos de órdenes. El TxRunner fake ejecuta el
// callback directo; los tests cubren la semántica del caso de uso, no el
// rollback de BD.

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.Order)}
}

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	if o, ok := r.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return r.GetByID(id)
}

func (r *fakeOrderRepo) UpdateStatus(id string, status entity.OrderStatus) error {
	if o, ok := r.orders[id]; ok {
		o.Status = status
		o.UpdatedAt = time.Now().UTC()
	}
	return nil
}

type fakeEventRepo struct {
	events []*entity.OrderEvent
}

func (r *fakeEventRepo) Create(ev *entity.OrderEvent) error {
	cp := *ev
	r.events = append(r.events, &cp)
	return nil
}

func (r *fakeEventRepo) ListByOrder(orderID string) ([]*entity.OrderEvent, error) {
	var list []*entity.OrderEvent
	for _, ev := range r.events {
		if ev.OrderID == orderID {
			cp := *ev
			list = append(list, &cp)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *fakeEventRepo) LastStatusChange(orderID string) (*entity.OrderEvent, error) {
	list, _ := r.ListByOrder(orderID)
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Type == entity.EventTypeStatusChange {
			return list[i], nil
		}
	}
	return nil, nil
}

type fakeOrderTx struct {
	orderRepo *fakeOrderRepo
	eventRepo *fakeEventRepo
}

func (r *fakeOrderTx) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	eventRepo repository.OrderEventRepository,
) error) error {
	return fn(r.orderRepo, r.eventRepo)
}
