package repository

import (
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/entity"
)

// StockBalanceRepository define el puerto de la proyección materializada de
// saldos. GetForUpdate bloquea la fila (SELECT FOR UPDATE): todo escritor del
// kardex toma ese lock, lo que serializa el leer-luego-escribir de la
// conciliación.
type StockBalanceRepository interface {
	Get(productID string) (*entity.StockBalance, error)
	GetForUpdate(productID string) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error
}
