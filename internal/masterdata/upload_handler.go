package masterdata

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"stocktake-backend/internal/audit"
	"stocktake-backend/internal/auth"
	"stocktake-backend/internal/database"
	"stocktake-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// POST /api/projects/:id/master-data
// Multipart upload of the master-data sheet for one project.
func UploadMasterDataHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid project id")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File upload failed: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files can be uploaded")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not open file: "+err.Error())
		}
		defer file.Close()

		result := ImportMasterData(uint(projectID), file)

		log.Printf("Master data import for project %d: %d imported, %d errors", projectID, result.ImportedCount, len(result.Errors))

		if userID, err := auth.CurrentUserID(c); err == nil {
			var user models.User
			userName := ""
			if err := database.DB.First(&user, userID).Error; err == nil {
				userName = user.Username
			}
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "master_data",
				EntityID:    uint(projectID),
				Action:      models.AuditActionImport,
				Description: fmt.Sprintf("Master data import: %d rows imported, %d rows failed", result.ImportedCount, len(result.Errors)),
				After:       result,
			})
		}

		return c.JSON(result)
	}
}
