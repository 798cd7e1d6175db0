package services

import (
	"fmt"
	"time"

	"hortifruti-backend/models"
	"hortifruti-backend/utils"

	"gorm.io/gorm"
)

// Fallback line label when a product row carries no name.
const genericProductName = "Produto"

type OrderItemInput struct {
	ProductID uint    `json:"productId" validate:"required"`
	Unit      string  `json:"unit" validate:"required,oneof=box kg bunch"`
	Qty       float64 `json:"qty"`
	Price     float64 `json:"price"`
	KgPerBox  float64 `json:"kgPerBox" validate:"omitempty,min=0"`
}

type OrderInput struct {
	ClientID   *uint            `json:"clientId"`
	ClientName string           `json:"clientName" validate:"required"`
	Date       string           `json:"date" validate:"required,datetime=2006-01-02"`
	Payment    *string          `json:"payment"`
	Items      []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// CreateOrder validates and normalizes every line first, then persists the
// order, its items and the item-total sum in one transaction. Nothing is
// written when any line fails validation.
func CreateOrder(db *gorm.DB, in *OrderInput) (*models.Order, error) {
	if err := checkClient(db, in.ClientID); err != nil {
		return nil, err
	}
	items, total, err := buildOrderItems(db, in.Items)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ClientID:   in.ClientID,
		ClientName: in.ClientName,
		Date:       in.Date,
		Payment:    in.Payment,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.Total = total
		return tx.Model(order).Update("total", total).Error
	})
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// UpdateOrder is destructive-and-replace: scalar fields are updated, all
// existing items are deleted and recreated from the input, and the total is
// recomputed. Item ids are not preserved. TotalPaid and the payments are
// untouched.
func UpdateOrder(db *gorm.DB, orderID uint, in *OrderInput) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		return nil, err
	}
	if err := checkClient(db, in.ClientID); err != nil {
		return nil, err
	}
	items, total, err := buildOrderItems(db, in.Items)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"client_id":   in.ClientID,
			"client_name": in.ClientName,
			"date":        in.Date,
			"payment":     in.Payment,
			"total":       total,
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}
	order.ClientID = in.ClientID
	order.ClientName = in.ClientName
	order.Date = in.Date
	order.Payment = in.Payment
	order.Total = total
	order.Items = items
	return &order, nil
}

// DeleteOrder removes the order row; the store cascades items and payments.
func DeleteOrder(db *gorm.DB, orderID uint) error {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		return err
	}
	return db.Delete(&order).Error
}

// GetOrder loads an order with its items, client and payments.
func GetOrder(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items").Preload("Client").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc, id desc")
		}).
		First(&order, orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderSummary is the listing projection: stored totals plus the derived
// payment fields, computed at response time.
type OrderSummary struct {
	ID                uint    `json:"id"`
	ClientName        string  `json:"client_name"`
	Total             float64 `json:"total"`
	TotalPaid         float64 `json:"total_paid"`
	Remaining         float64 `json:"remaining"`
	PaymentPercentage float64 `json:"payment_percentage"`
	PaymentStatus     string  `json:"payment_status"`
	Date              string  `json:"date"`
	ItemsCount        int64   `json:"items_count"`
}

// ListOrders returns summaries newest first.
func ListOrders(db *gorm.DB) ([]OrderSummary, error) {
	type orderRow struct {
		models.Order
		ItemsCount int64 `gorm:"column:items_count"`
	}
	var rows []orderRow
	err := db.Model(&models.Order{}).
		Select("orders.*, (SELECT COUNT(*) FROM order_items WHERE order_items.order_id = orders.id) AS items_count").
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]OrderSummary, 0, len(rows))
	for i := range rows {
		o := &rows[i].Order
		result = append(result, OrderSummary{
			ID:                o.ID,
			ClientName:        o.ClientName,
			Total:             o.Total,
			TotalPaid:         o.TotalPaid,
			Remaining:         o.RemainingBalance(),
			PaymentPercentage: o.PaymentPercentage(),
			PaymentStatus:     o.PaymentStatus(),
			Date:              o.DateString(),
			ItemsCount:        rows[i].ItemsCount,
		})
	}
	return result, nil
}

// DashboardStats aggregates the landing-page numbers: orders placed in the
// last 24 hours, their summed revenue, and distinct clients this month.
type DashboardStats struct {
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
	Clients int64   `json:"clients"`
}

func GetDashboardStats(db *gorm.DB) (*DashboardStats, error) {
	var stats DashboardStats
	since := time.Now().Add(-24 * time.Hour)

	if err := db.Model(&models.Order{}).
		Where("created_at >= ?", since).
		Count(&stats.Orders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("created_at >= ?", since).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.Revenue).Error; err != nil {
		return nil, err
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if err := db.Model(&models.Order{}).
		Where("created_at >= ?", monthStart).
		Distinct("client_name").
		Count(&stats.Clients).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// checkClient verifies the optional weak client reference before any write.
func checkClient(db *gorm.DB, clientID *uint) error {
	if clientID == nil {
		return nil
	}
	var count int64
	if err := db.Model(&models.Client{}).Where("id = ?", *clientID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &ValidationError{Field: "clientId", Message: "unknown client"}
	}
	return nil
}

// buildOrderItems resolves products, normalizes every line and accumulates
// the order total. It performs no writes: any failure rejects the whole
// operation before persistence starts.
func buildOrderItems(db *gorm.DB, inputs []OrderItemInput) ([]models.OrderItem, float64, error) {
	if len(inputs) == 0 {
		return nil, 0, &ValidationError{Field: "items", Message: "at least one item is required"}
	}

	ids := make([]uint, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ProductID)
	}
	var fruits []models.Fruit
	if err := db.Where("id IN ?", ids).Find(&fruits).Error; err != nil {
		return nil, 0, err
	}
	byID := make(map[uint]models.Fruit, len(fruits))
	for _, f := range fruits {
		byID[f.ID] = f
	}

	items := make([]models.OrderItem, 0, len(inputs))
	var total float64
	for i, in := range inputs {
		fruit, ok := byID[in.ProductID]
		if !ok {
			return nil, 0, &ValidationError{
				Field:   fmt.Sprintf("items.%d.productId", i),
				Message: "unknown product",
			}
		}

		qty, lineTotal, err := NormalizeLine(models.Unit(in.Unit), in.Qty, in.Price)
		if err != nil {
			return nil, 0, err
		}

		name := fruit.Name
		if name == "" {
			name = genericProductName
		}
		fruitID := fruit.ID
		var kgPerBox *float64
		if in.KgPerBox > 0 {
			v := in.KgPerBox
			kgPerBox = &v
		}

		total += lineTotal
		items = append(items, models.OrderItem{
			FruitID:     &fruitID,
			ProductName: name,
			Unit:        models.Unit(in.Unit),
			Price:       in.Price,
			KgPerBox:    kgPerBox,
			Qty:         qty,
			Total:       lineTotal,
		})
	}
	return items, utils.Round2(total), nil
}
