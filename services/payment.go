package services

import (
	"hortifruti-backend/models"
	"hortifruti-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddPayment records a settlement against an order. The overpayment check
// and the total_paid bump run in one transaction with the order row locked,
// so concurrent submissions against the same order cannot lose updates.
// Returns the created payment and the order with its new running balance.
func AddPayment(db *gorm.DB, orderID uint, amount float64, notes string) (*models.Payment, *models.Order, error) {
	amount = utils.Round2(amount)
	if amount < 0.01 {
		return nil, nil, &ValidationError{Field: "amount", Message: "amount must be at least 0.01"}
	}

	var payment *models.Payment
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockOrder(tx).First(&order, orderID).Error; err != nil {
			return err
		}

		newPaid := utils.Round2(order.TotalPaid + amount)
		if newPaid > order.Total {
			return &OverpaymentError{Remaining: order.RemainingBalance()}
		}

		payment = &models.Payment{
			OrderID:      order.ID,
			Amount:       amount,
			BalanceAfter: utils.Round2(order.Total - newPaid),
			Notes:        notes,
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		order.TotalPaid = newPaid
		return tx.Model(&order).Update("total_paid", newPaid).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return payment, &order, nil
}

// RemovePayment deletes one payment, decrements total_paid (floored at zero)
// and replays the remaining payments in creation order so every
// balance_after snapshot again equals order.total minus the cumulative
// amounts up to that payment. All of it is one transaction: no observer sees
// a broken chain.
func RemovePayment(db *gorm.DB, orderID, paymentID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := lockOrder(tx).First(&order, orderID).Error; err != nil {
			return err
		}

		var payment models.Payment
		if err := tx.Where("order_id = ?", orderID).First(&payment, paymentID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}

		newPaid := utils.Round2(order.TotalPaid - payment.Amount)
		if newPaid < 0 {
			newPaid = 0
		}
		if err := tx.Model(&order).Update("total_paid", newPaid).Error; err != nil {
			return err
		}

		var remaining []models.Payment
		if err := tx.Where("order_id = ?", orderID).
			Order("created_at asc, id asc").
			Find(&remaining).Error; err != nil {
			return err
		}
		var running float64
		for i := range remaining {
			running = utils.Round2(running + remaining[i].Amount)
			balance := utils.Round2(order.Total - running)
			if err := tx.Model(&remaining[i]).Update("balance_after", balance).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListPayments returns an order's payments newest first, plus the order for
// the derived balance fields.
func ListPayments(db *gorm.DB, orderID uint) ([]models.Payment, *models.Order, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		return nil, nil, err
	}
	var payments []models.Payment
	err := db.Where("order_id = ?", orderID).
		Order("created_at desc, id desc").
		Find(&payments).Error
	if err != nil {
		return nil, nil, err
	}
	return payments, &order, nil
}

// lockOrder takes a row lock on dialects that support it. SQLite has no
// FOR UPDATE; its single-writer model serializes the transaction anyway.
func lockOrder(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
