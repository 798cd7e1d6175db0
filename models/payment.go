package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is a partial or full settlement against an order. BalanceAfter is
// a snapshot of the remaining order balance immediately after this payment,
// in creation order; deleting an earlier payment replays the chain.
type Payment struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	OrderID      uint    `json:"order_id" gorm:"not null;index:idx_payments_order_created,priority:1"`
	Receipt      string  `json:"receipt" gorm:"size:36;uniqueIndex"`
	Amount       float64 `json:"amount" gorm:"type:numeric(12,2);not null"`
	BalanceAfter float64 `json:"balance_after" gorm:"type:numeric(12,2)"`
	Notes        string  `json:"notes"`

	CreatedAt time.Time `json:"created_at" gorm:"index:idx_payments_order_created,priority:2"`
}

func (payment *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	payment.Receipt = uuid.NewString()
	return
}
