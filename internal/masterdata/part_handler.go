package masterdata

import (
	"strconv"

	"stocktake-backend/internal/database"
	"stocktake-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UpdatePartQuantitiesRequest struct {
	QtyStd  *int    `json:"qty_std"`
	QtySisa *int    `json:"qty_sisa"`
	Remark  *string `json:"remark"`
}

// GET /api/projects/:id/parts
func ListPartsByProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid project id")
		}

		var parts []models.Part
		if err := database.DB.
			Preload("StorageLocation").
			Where("project_id = ?", projectID).
			Order("id").
			Find(&parts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list parts")
		}

		return c.JSON(parts)
	}
}

// PUT /api/parts/:id/quantities
// Partial update: only the provided fields change.
func UpdatePartQuantitiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		partID, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid part id")
		}

		var body UpdatePartQuantitiesRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var part models.Part
		if err := database.DB.First(&part, partID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Part not found")
		}

		updates := map[string]any{}
		if body.QtyStd != nil {
			if *body.QtyStd < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "qty_std cannot be negative")
			}
			updates["qty_std"] = *body.QtyStd
		}
		if body.QtySisa != nil {
			if *body.QtySisa < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "qty_sisa cannot be negative")
			}
			updates["qty_sisa"] = *body.QtySisa
		}
		if body.Remark != nil {
			updates["remark"] = *body.Remark
		}

		if len(updates) > 0 {
			if err := database.DB.Model(&part).Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not update part")
			}
		}

		return c.JSON(part)
	}
}
