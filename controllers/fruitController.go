package controllers

import (
	"hortifruti-backend/database"
	"hortifruti-backend/middlewares"
	"hortifruti-backend/models"
	"hortifruti-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type FruitCreateDTO struct {
	Name string `json:"name" validate:"required,max=255"`
}

type FruitPriceDTO struct {
	Price *float64 `json:"price" validate:"required,min=0"`
}

// One entry of a bulk price update. Nil fields are left untouched.
type FruitPriceUpdateDTO struct {
	ID         uint     `json:"id" validate:"required"`
	PriceBox   *float64 `json:"price_box" validate:"omitempty,min=0"`
	PriceKg    *float64 `json:"price_kg" validate:"omitempty,min=0"`
	PriceBunch *float64 `json:"price_bunch" validate:"omitempty,min=0"`
}

type FruitBulkUpdateDTO struct {
	Prices []FruitPriceUpdateDTO `json:"prices" validate:"required,min=1,dive"`
}

// POST /api/product
func CreateFruit(c *fiber.Ctx) error {
	var in FruitCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db, err := database.GetDB(c)
	if err != nil {
		return err
	}

	fruit := models.Fruit{Name: in.Name}
	if err := db.Create(&fruit).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}

	if wantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "fruit": fruit})
	}
	return c.Redirect("/products/new", fiber.StatusSeeOther)
}

// GET /api/products — the company price board
func GetFruits(c *fiber.Ctx) error {
	db, err := database.GetDB(c)
	if err != nil {
		return err
	}

	var fruits []models.Fruit
	if err := db.Order("name").Find(&fruits).Error; err != nil {
		return err
	}

	if wantsJSON(c) {
		return c.JSON(fruits)
	}
	return renderPage(c, "Company", fiber.Map{"fruits": fruits})
}

// GET /api/product/:id — latest prices for one product
func GetFruit(c *fiber.Ctx) error {
	db, err := database.GetDB(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var fruit models.Fruit
	if err := db.First(&fruit, id).Error; err != nil {
		return err
	}
	return c.JSON(fruit)
}

// PUT /api/products/:id — the single "price of the day" field
func UpdateFruitPrice(c *fiber.Ctx) error {
	var in FruitPriceDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db, err := database.GetDB(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var fruit models.Fruit
	if err := db.First(&fruit, id).Error; err != nil {
		return err
	}
	if err := db.Model(&fruit).Update("price", *in.Price).Error; err != nil {
		return err
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"success": true, "fruit": fruit})
	}
	return c.Redirect("/company", fiber.StatusSeeOther)
}

// POST /api/products/bulk-update — per-unit prices, partial per entry
func BulkUpdateFruitPrices(c *fiber.Ctx) error {
	var in FruitBulkUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetDB(c)
	if err != nil {
		return err
	}

	for i := range in.Prices {
		p := &in.Prices[i]
		utils.NormalizePtrDTO(p)

		// only the non-nil price fields end up in the update map
		updates := utils.UpdatesFromPtrDTO(p, nil)
		if len(updates) == 0 {
			continue
		}
		if err := db.Model(&models.Fruit{}).Where("id = ?", p.ID).Updates(updates).Error; err != nil {
			return err
		}
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"success": true})
	}
	return c.Redirect("/company", fiber.StatusSeeOther)
}

// DELETE /api/products/:id — existing order items keep their snapshot name,
// the store nulls their fruit_id
func DeleteFruit(c *fiber.Ctx) error {
	db, err := database.GetDB(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var fruit models.Fruit
	if err := db.First(&fruit, id).Error; err != nil {
		return err
	}
	if err := db.Delete(&fruit).Error; err != nil {
		return err
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"success": true})
	}
	return c.Redirect("/company", fiber.StatusSeeOther)
}
