package rediscache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/application/ledger"
)

var _ ledger.BalanceCache = (*BalanceCache)(nil)

const (
	balanceKeyPrefix = "balance:"
	balanceTTL       = 5 * time.Minute
)

// BalanceCache caché best-effort de saldos proyectados sobre Redis.
// Un Redis caído degrada a miss permanente: las lecturas siguen sirviendo
// desde el kardex y los errores solo se registran.
type BalanceCache struct {
	client *redis.Client
}

// NewBalanceCache construye el caché con el cliente Redis.
func NewBalanceCache(client *redis.Client) *BalanceCache {
	return &BalanceCache{client: client}
}

// Get devuelve el saldo cacheado del producto y si hubo hit.
func (c *BalanceCache) Get(ctx context.Context, productID string) (int64, bool) {
	qty, err := c.client.Get(ctx, balanceKeyPrefix+productID).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("product_id", productID).Msg("lectura de caché de saldo fallida")
		}
		return 0, false
	}
	return qty, true
}

// Set guarda el saldo del producto con TTL.
func (c *BalanceCache) Set(ctx context.Context, productID string, quantity int64) {
	if err := c.client.Set(ctx, balanceKeyPrefix+productID, quantity, balanceTTL).Err(); err != nil {
		log.Warn().Err(err).Str("product_id", productID).Msg("escritura de caché de saldo fallida")
	}
}

// Invalidate borra la entrada del producto; se llama tras cada commit de
// escritura del kardex.
func (c *BalanceCache) Invalidate(ctx context.Context, productID string) {
	if err := c.client.Del(ctx, balanceKeyPrefix+productID).Err(); err != nil {
		log.Warn().Err(err).Str("product_id", productID).Msg("invalidación de caché de saldo fallida")
	}
}
