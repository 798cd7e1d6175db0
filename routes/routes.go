package routes

import (
	"github.com/gofiber/fiber/v2"

	"hortifruti-backend/controllers"
	"hortifruti-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then the per-request transaction (commits/rolls back with the handler)
	protected.Use(middlewares.RequestTx())

	// Clients
	protected.Post("/client", controllers.CreateClient)
	protected.Get("/clients", controllers.GetClients)
	protected.Get("/clients/search", controllers.SearchClients)

	// Products (fruits)
	protected.Post("/product", controllers.CreateFruit)
	protected.Get("/products", controllers.GetFruits)
	protected.Get("/product/:id", controllers.GetFruit)
	protected.Put("/products/:id", controllers.UpdateFruitPrice)
	protected.Post("/products/bulk-update", controllers.BulkUpdateFruitPrices)
	protected.Delete("/products/:id", controllers.DeleteFruit)

	// Orders (ledger with payments)
	protected.Post("/order", controllers.CreateOrder)
	protected.Get("/orders", controllers.GetOrders)
	protected.Get("/order/:id", controllers.GetOrder)
	protected.Get("/orders/:id/edit", controllers.EditOrder)
	protected.Put("/orders/:id", controllers.UpdateOrder)
	protected.Delete("/orders/:id", controllers.DeleteOrder)
	protected.Get("/stats", controllers.GetStats)

	// Payments
	protected.Post("/orders/:id/payments", controllers.CreatePayment)
	protected.Get("/orders/:id/payments", controllers.ListPayments)
	protected.Delete("/orders/:id/payments/:paymentId", controllers.DeletePayment)
}
