package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barstock-api/internal/application/usecase"
)

// RouterDeps carries the collaborators the router wires into handlers.
type RouterDeps struct {
	ItemUC   *usecase.ItemUseCase
	OrderUC  *usecase.OrderUseCase
	CSVUC    *usecase.CSVUseCase
	DedupeUC *usecase.DedupeUseCase
	DB       Pinger
	AppName  string
}

// Router registers all API routes.
func Router(app *fiber.App, deps RouterDeps) {
	health := NewHealthHandler(deps.DB, deps.AppName)
	app.Get("/health", health.Live)
	app.Get("/health/db", health.DB)

	api := app.Group("/api")

	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/facets", itemHandler.Facets)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/summary", orderHandler.Summary)
	orders.Get("/summary.xlsx", orderHandler.ExportXLSX)
	orders.Get("/summary.pdf", orderHandler.ExportPDF)

	csvHandler := NewCSVHandler(deps.CSVUC)
	api.Get("/export.csv", csvHandler.Export)
	api.Post("/import", csvHandler.Import)

	admin := api.Group("/admin")
	adminHandler := NewAdminHandler(deps.ItemUC, deps.DedupeUC)
	admin.Post("/dedupe", adminHandler.Dedupe)
	admin.Get("/metrics", adminHandler.Metrics)
}
