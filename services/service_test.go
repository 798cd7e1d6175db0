package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"hortifruti-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func seedFruit(t *testing.T, db *gorm.DB, name string) models.Fruit {
	t.Helper()
	fruit := models.Fruit{Name: name, PriceBox: 10, PriceKg: 4, PriceBunch: 5}
	require.NoError(t, db.Create(&fruit).Error)
	return fruit
}

func seedClient(t *testing.T, db *gorm.DB, name string) models.Client {
	t.Helper()
	client := models.Client{Name: name, Phone: "11 99999-0000"}
	require.NoError(t, db.Create(&client).Error)
	return client
}

var seedSeq atomic.Uint64

// seedOrder creates an order with a single box line priced so the order
// total comes out to the given value.
func seedOrder(t *testing.T, db *gorm.DB, total float64) *models.Order {
	t.Helper()
	fruit := models.Fruit{Name: fmt.Sprintf("fruit-%s-%d", t.Name(), seedSeq.Add(1))}
	require.NoError(t, db.Create(&fruit).Error)

	order, err := CreateOrder(db, &OrderInput{
		ClientName: "Mercado Central",
		Date:       "2026-08-20",
		Items: []OrderItemInput{
			{ProductID: fruit.ID, Unit: "box", Qty: 1, Price: total},
		},
	})
	require.NoError(t, err)
	require.Equal(t, total, order.Total)
	return order
}
