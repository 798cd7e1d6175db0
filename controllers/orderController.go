package controllers

import (
	"fmt"

	"hortifruti-backend/database"
	"hortifruti-backend/middlewares"
	"hortifruti-backend/models"
	"hortifruti-backend/services"
	"hortifruti-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// POST /api/order
func CreateOrder(c *fiber.Ctx) error {
	var in services.OrderInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db, err := database.GetDB(c)
	if err != nil {
		return err
	}

	order, err := services.CreateOrder(db, &in)
	if err != nil {
		return err
	}

	if wantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":  true,
			"order_id": order.ID,
		})
	}
	return c.Redirect(fmt.Sprintf("/orders/%d", order.ID), fiber.StatusSeeOther)
}

// PUT /api/orders/:id
func UpdateOrder(c *fiber.Ctx) error {
	var in services.OrderInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db, err := database.GetDB(c)
	if err != nil {
		return err
	}
	orderID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	order, err := services.UpdateOrder(db, uint(orderID), &in)
	if err != nil {
		return err
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{
			"success":  true,
			"order_id": order.ID,
		})
	}
	return c.Redirect(fmt.Sprintf("/orders/%d", order.ID), fiber.StatusSeeOther)
}

// GET /api/orders — dashboard listing with derived payment fields
func GetOrders(c *fiber.Ctx) error {
	db, err := database.GetDB(c)
	if err != nil {
		return err
	}

	summaries, err := services.ListOrders(db)
	if err != nil {
		return err
	}
	return c.JSON(summaries)
}

// GET /api/order/:id — the invoice view
func GetOrder(c *fiber.Ctx) error {
	db, err := database.GetDB(c)
	if err != nil {
		return err
	}
	orderID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	order, err := services.GetOrder(db, uint(orderID))
	if err != nil {
		return err
	}

	props := fiber.Map{
		"order": fiber.Map{
			"id":          order.ID,
			"client_name": order.ClientName,
			"date":        order.DateString(),
			"payment":     order.Payment,
			"total":       order.Total,
		},
		"client": clientProps(order.Client),
		"items":  order.Items,
	}
	if wantsJSON(c) {
		return c.JSON(props)
	}
	return renderPage(c, "Orders/Show", props)
}

// GET /api/orders/:id/edit — edit form data: current lines plus the catalogue
func EditOrder(c *fiber.Ctx) error {
	db, err := database.GetDB(c)
	if err != nil {
		return err
	}
	orderID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	order, err := services.GetOrder(db, uint(orderID))
	if err != nil {
		return err
	}
	var fruits []models.Fruit
	if err := db.Order("name").Find(&fruits).Error; err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(order.Items))
	for _, it := range order.Items {
		kgPerBox := 20.0 // form default when the line never had one
		if it.KgPerBox != nil {
			kgPerBox = *it.KgPerBox
		}
		var productID uint
		if it.FruitID != nil {
			productID = *it.FruitID
		}
		items = append(items, fiber.Map{
			"id":           it.ID,
			"productId":    productID,
			"product_name": it.ProductName,
			"unit":         it.Unit,
			"price":        it.Price,
			"kgPerBox":     kgPerBox,
			"qty":          it.Qty,
			"total":        it.Total,
		})
	}

	props := fiber.Map{
		"order": fiber.Map{
			"id":          order.ID,
			"client_name": order.ClientName,
			"date":        order.DateString(),
			"payment":     order.Payment,
			"total":       order.Total,
		},
		"items":  items,
		"fruits": fruits,
	}
	if wantsJSON(c) {
		return c.JSON(props)
	}
	return renderPage(c, "Orders/Edit", props)
}

// DELETE /api/orders/:id
func DeleteOrder(c *fiber.Ctx) error {
	db, err := database.GetDB(c)
	if err != nil {
		return err
	}
	orderID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	if err := services.DeleteOrder(db, uint(orderID)); err != nil {
		return err
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"success": true})
	}
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// GET /api/stats — dashboard numbers
func GetStats(c *fiber.Ctx) error {
	db, err := database.GetDB(c)
	if err != nil {
		return err
	}

	stats, err := services.GetDashboardStats(db)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func clientProps(client *models.Client) fiber.Map {
	if client == nil {
		return nil
	}
	return fiber.Map{
		"id":      client.ID,
		"name":    client.Name,
		"phone":   client.Phone,
		"address": client.Address,
	}
}
