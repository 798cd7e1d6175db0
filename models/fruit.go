package models

import "time"

// Fruit is a sellable product. Price is the legacy single "price of the day";
// the per-unit columns are what new orders snapshot from. Fruits referenced
// by order items are never hard-blocked from deletion: the store nulls the
// item's fruit_id and the snapshot name keeps the history readable.
type Fruit struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	Name       string  `json:"name" gorm:"not null;unique"`
	Price      float64 `json:"price" gorm:"type:numeric(10,2);default:0"`
	PriceBox   float64 `json:"price_box" gorm:"type:numeric(10,2);default:0"`
	PriceKg    float64 `json:"price_kg" gorm:"type:numeric(10,2);default:0"`
	PriceBunch float64 `json:"price_bunch" gorm:"type:numeric(10,2);default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
