package controllers

import (
	"hortifruti-backend/database"
	"hortifruti-backend/middlewares"
	"hortifruti-backend/models"
	"hortifruti-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ClientCreateDTO struct {
	Name    string `json:"name" validate:"required,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Address string `json:"address" validate:"omitempty"`
}

// POST /api/client
func CreateClient(c *fiber.Ctx) error {
	var in ClientCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db, err := database.GetDB(c)
	if err != nil {
		return err
	}

	client := models.Client{
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
	}
	if err := db.Create(&client).Error; err != nil {
		return err
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"success": true, "client": client})
	}
	return c.Redirect("/clients/create", fiber.StatusSeeOther)
}

// GET /api/clients
func GetClients(c *fiber.Ctx) error {
	db, err := database.GetDB(c)
	if err != nil {
		return err
	}

	var clients []models.Client
	if err := db.Order("name").Find(&clients).Error; err != nil {
		return err
	}
	return c.JSON(clients)
}

// GET /api/clients/search?q=
func SearchClients(c *fiber.Ctx) error {
	db, err := database.GetDB(c)
	if err != nil {
		return err
	}

	query := c.Query("q")
	limit := utils.ParseIntDefault(c.Query("limit"), 10)

	var clients []models.Client
	if err := db.Where("name LIKE ?", "%"+query+"%").
		Order("name").
		Limit(limit).
		Find(&clients).Error; err != nil {
		return err
	}
	return c.JSON(clients)
}
