package ledger_test

import (
	"context"
	"sort"

	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/application/dto"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/entity"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/repository"
)

func dtoPage(limit, offset int) dto.PageRequest {
	return dto.PageRequest{Limit: limit, Offset: offset}
}

// Fakes en memoria de los puertos de persistencia del kardex. Un TxRunner
// fake ejecuta el callback directo: los tests no cubren rollback de BD,
// cubren la semántica del caso de uso.

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	all, _ := r.AllByProduct(productID)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeMovementRepo) AllByProduct(productID string) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			cp := *m
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

type fakeBalanceRepo struct {
	rows map[string]*entity.StockBalance
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{rows: make(map[string]*entity.StockBalance)}
}

func (r *fakeBalanceRepo) Get(productID string) (*entity.StockBalance, error) {
	if b, ok := r.rows[productID]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeBalanceRepo) GetForUpdate(productID string) (*entity.StockBalance, error) {
	if b, ok := r.rows[productID]; ok {
		cp := *b
		return &cp, nil
	}
	return &entity.StockBalance{ProductID: productID}, nil
}

func (r *fakeBalanceRepo) Upsert(b *entity.StockBalance) error {
	cp := *b
	r.rows[b.ProductID] = &cp
	return nil
}

type fakeTxRunner struct {
	mov *fakeMovementRepo
	bal *fakeBalanceRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
) error) error {
	return fn(r.mov, r.bal)
}

type fakeCache struct {
	data        map[string]int64
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]int64)}
}

func (c *fakeCache) Get(ctx context.Context, productID string) (int64, bool) {
	qty, ok := c.data[productID]
	return qty, ok
}

func (c *fakeCache) Set(ctx context.Context, productID string, quantity int64) {
	c.data[productID] = quantity
}

func (c *fakeCache) Invalidate(ctx context.Context, productID string) {
	delete(c.data, productID)
	c.invalidated = append(c.invalidated, productID)
}
