package admin

import (
	"strconv"

	"stocktake-backend/internal/database"
	"stocktake-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// POST /api/admin/projects
func CreateProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProjectRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		project := models.Project{
			Name:        body.Name,
			Description: body.Description,
			IsActive:    true,
		}
		if err := database.DB.Create(&project).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create project")
		}

		return c.Status(fiber.StatusCreated).JSON(project)
	}
}

// GET /api/projects
// Active projects only; deactivated ones stay in the store but out of sight.
func ListProjectsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var projects []models.Project
		if err := database.DB.
			Where("is_active = ?", true).
			Order("id").
			Find(&projects).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list projects")
		}
		return c.JSON(projects)
	}
}

// POST /api/admin/projects/:id/deactivate
// Soft delete: the flag flips, rows never disappear.
func DeactivateProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid project id")
		}

		var project models.Project
		if err := database.DB.First(&project, projectID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Project not found")
		}

		if err := database.DB.Model(&project).Update("is_active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not deactivate project")
		}

		return c.JSON(project)
	}
}
