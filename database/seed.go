package database

import (
	"log"

	"hortifruti-backend/models"
)

// SeedFruits upserts the starter catalogue so a fresh install has products
// to price. Prices stay 0 until set on the company page.
func SeedFruits() {
	names := []string{"Maçã", "Banana", "Pera", "Abacaxi"}
	for _, name := range names {
		fruit := models.Fruit{Name: name}
		if err := DB.Where("name = ?", name).FirstOrCreate(&fruit).Error; err != nil {
			log.Printf("seed fruit %q failed: %v", name, err)
		}
	}
}
