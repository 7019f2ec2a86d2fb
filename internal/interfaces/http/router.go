package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/application/ledger"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/application/orders"
)

// RouterDeps dependencias para el router. La autorización llega resuelta
// desde el caller externo; aquí no hay middleware de auth.
type RouterDeps struct {
	LedgerUC    *ledger.LedgerUseCase
	ReconcileUC *ledger.ReconcileUseCase
	EventLogUC  *orders.EventLogUseCase
	ProjectorUC *orders.ProjectorUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Kardex (movimientos, saldos, conciliación)
	inv := api.Group("/inventory")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.ReconcileUC)
	inv.Post("/movements", ledgerHandler.RegisterMovement)
	inv.Get("/products/:id/movements", ledgerHandler.ListMovements)
	inv.Get("/products/:id/balance", ledgerHandler.GetBalance)
	inv.Post("/products/:id/reconcile", ledgerHandler.Reconcile)

	// Órdenes (log de eventos + proyecciones)
	ordersGroup := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.EventLogUC, deps.ProjectorUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Post("/:id/transition", orderHandler.Transition)
	ordersGroup.Post("/:id/events", orderHandler.AppendEvent)
	ordersGroup.Get("/:id/status", orderHandler.GetStatus)
	ordersGroup.Get("/:id/timeline", orderHandler.GetTimeline)
}
