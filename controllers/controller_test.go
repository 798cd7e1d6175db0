package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"hortifruti-backend/database"
	"hortifruti-backend/middlewares"
	"hortifruti-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestApp wires the handlers against an in-memory DB, without the auth
// and idempotency layers (those guard the boundary, not the ledger).
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	// _foreign_keys in the DSN so every pooled connection enforces FKs
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Client{},
		&models.Fruit{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	))
	database.DB = db

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})

	app.Post("/api/client", CreateClient)
	app.Get("/api/clients", GetClients)
	app.Get("/api/clients/search", SearchClients)

	app.Post("/api/product", CreateFruit)
	app.Get("/api/products", GetFruits)
	app.Get("/api/product/:id", GetFruit)
	app.Put("/api/products/:id", UpdateFruitPrice)
	app.Post("/api/products/bulk-update", BulkUpdateFruitPrices)
	app.Delete("/api/products/:id", DeleteFruit)

	app.Post("/api/order", CreateOrder)
	app.Get("/api/orders", GetOrders)
	app.Get("/api/order/:id", GetOrder)
	app.Get("/api/orders/:id/edit", EditOrder)
	app.Put("/api/orders/:id", UpdateOrder)
	app.Delete("/api/orders/:id", DeleteOrder)
	app.Get("/api/stats", GetStats)

	app.Post("/api/orders/:id/payments", CreatePayment)
	app.Get("/api/orders/:id/payments", ListPayments)
	app.Delete("/api/orders/:id/payments/:paymentId", DeletePayment)

	return app
}

// doJSON performs a request flagged as a JSON caller and decodes the body.
func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && json.Valid(raw) && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func seedTestFruit(t *testing.T, name string) models.Fruit {
	t.Helper()
	fruit := models.Fruit{Name: name, PriceBox: 10, PriceKg: 4}
	require.NoError(t, database.DB.Create(&fruit).Error)
	return fruit
}
