package models

import (
	"time"
)

// Unit is the billing mode of an order line. It decides how raw quantities
// are rounded: box and bunch bill whole units, kg bills fractional weight.
type Unit string

const (
	UnitBox   Unit = "box"
	UnitKg    Unit = "kg"
	UnitBunch Unit = "bunch"
)

func (u Unit) Valid() bool {
	return u == UnitBox || u == UnitKg || u == UnitBunch
}

// Payment status values derived from (Total, TotalPaid).
const (
	StatusPaid    = "paid"
	StatusPartial = "partial"
	StatusUnpaid  = "unpaid"
)

// Order is a customer purchase: line items plus a running payment balance.
// ClientName is a snapshot and stays meaningful if the client row is edited
// or removed. Total is derived from the items; TotalPaid is mutated only by
// the payment ledger.
type Order struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	ClientID   *uint   `json:"client_id" gorm:"index"`
	Client     *Client `json:"client,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:SET NULL"`
	ClientName string  `json:"client_name" gorm:"not null"`
	Date       string  `json:"date" gorm:"type:date"`
	Payment    *string `json:"payment"`

	Total     float64 `json:"total" gorm:"type:numeric(12,2);default:0"`
	TotalPaid float64 `json:"total_paid" gorm:"type:numeric(12,2);default:0"`

	Items    []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments []Payment   `json:"payments,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RemainingBalance is Total minus TotalPaid, floored at zero.
// Computed on read, never stored.
func (o *Order) RemainingBalance() float64 {
	if r := o.Total - o.TotalPaid; r > 0 {
		return r
	}
	return 0
}

// PaymentPercentage is how much of the total has been settled, clamped to
// [0,100]. A zero or negative total counts as 0.
func (o *Order) PaymentPercentage() float64 {
	if o.Total <= 0 {
		return 0
	}
	p := o.TotalPaid / o.Total * 100
	if p > 100 {
		return 100
	}
	return p
}

// PaymentStatus reports "paid", "partial" or "unpaid". A payment of exactly
// the remaining balance drives the order to "paid".
func (o *Order) PaymentStatus() string {
	switch {
	case o.TotalPaid >= o.Total:
		return StatusPaid
	case o.TotalPaid > 0:
		return StatusPartial
	default:
		return StatusUnpaid
	}
}

// DateString falls back to the creation date when the order date is unset.
func (o *Order) DateString() string {
	if o.Date != "" {
		return o.Date
	}
	return o.CreatedAt.Format("2006-01-02")
}

// OrderItem is one product line. ProductName and Price are snapshots taken
// at order time; deleting the fruit later nulls FruitID but keeps the line
// historically accurate. KgPerBox is only meaningful for box lines.
type OrderItem struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	OrderID     uint     `json:"-" gorm:"index;not null"`
	FruitID     *uint    `json:"fruit_id" gorm:"index"`
	Fruit       *Fruit   `json:"-" gorm:"foreignKey:FruitID;constraint:OnDelete:SET NULL"`
	ProductName string   `json:"product_name" gorm:"not null"`
	Unit        Unit     `json:"unit" gorm:"type:varchar(10);not null;default:box"`
	Price       float64  `json:"price" gorm:"type:numeric(12,2);default:0"`
	KgPerBox    *float64 `json:"kg_per_box" gorm:"type:numeric(10,2)"`
	Qty         float64  `json:"qty" gorm:"type:numeric(12,3);default:0"`
	Total       float64  `json:"total" gorm:"type:numeric(12,2);default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
