package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalance es la proyección materializada del saldo de un producto
// (tabla stock_balances). Se refresca en la misma transacción que cada
// append; el kardex sigue siendo la fuente de verdad y ante desacuerdo
// el saldo se repara recalculando desde los movimientos.
type StockBalance struct {
	ProductID string
	Quantity  int64
	AvgCost   decimal.Decimal // costo promedio ponderado de las entradas
	Version   int64           // se incrementa en cada escritura; llave de caché
	UpdatedAt time.Time
}
