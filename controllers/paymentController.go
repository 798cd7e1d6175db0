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

type PaymentCreateDTO struct {
	Amount float64 `json:"amount" validate:"gt=0"`
	Notes  string  `json:"notes" validate:"omitempty,max=500"`
}

// POST /api/orders/:id/payments
func CreatePayment(c *fiber.Ctx) error {
	var in PaymentCreateDTO
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

	payment, order, err := services.AddPayment(db, uint(orderID), in.Amount, in.Notes)
	if err != nil {
		return err
	}

	if wantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"payment": payment,
			"order": fiber.Map{
				"total_paid":         order.TotalPaid,
				"remaining_balance":  order.RemainingBalance(),
				"payment_percentage": order.PaymentPercentage(),
				"payment_status":     order.PaymentStatus(),
			},
		})
	}
	return c.Redirect(fmt.Sprintf("/orders/%d/payments", order.ID), fiber.StatusSeeOther)
}

// GET /api/orders/:id/payments — payment management view
func ListPayments(c *fiber.Ctx) error {
	db, err := database.GetDB(c)
	if err != nil {
		return err
	}
	orderID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	payments, order, err := services.ListPayments(db, uint(orderID))
	if err != nil {
		return err
	}

	props := fiber.Map{
		"order": fiber.Map{
			"id":                 order.ID,
			"client_name":        order.ClientName,
			"date":               order.DateString(),
			"total":              order.Total,
			"total_paid":         order.TotalPaid,
			"remaining_balance":  order.RemainingBalance(),
			"payment_percentage": order.PaymentPercentage(),
			"payment_status":     order.PaymentStatus(),
		},
		"payments": paymentProps(payments),
	}
	if wantsJSON(c) {
		return c.JSON(props)
	}
	return renderPage(c, "Orders/Payments", props)
}

// DELETE /api/orders/:id/payments/:paymentId
func DeletePayment(c *fiber.Ctx) error {
	db, err := database.GetDB(c)
	if err != nil {
		return err
	}
	orderID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}
	paymentID, err := c.ParamsInt("paymentId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payment id")
	}

	if err := services.RemovePayment(db, uint(orderID), uint(paymentID)); err != nil {
		return err
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"success": true})
	}
	return c.Redirect(fmt.Sprintf("/orders/%d/payments", orderID), fiber.StatusSeeOther)
}

func paymentProps(payments []models.Payment) []fiber.Map {
	out := make([]fiber.Map, 0, len(payments))
	for _, p := range payments {
		out = append(out, fiber.Map{
			"id":            p.ID,
			"receipt":       p.Receipt,
			"amount":        p.Amount,
			"balance_after": p.BalanceAfter,
			"notes":         p.Notes,
			"created_at":    p.CreatedAt.Format("02/01/2006 15:04"),
		})
	}
	return out
}
