package admin

import (
	"strings"

	"stocktake-backend/internal/database"
	"stocktake-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateStorageLocationRequest struct {
	LocationCode string  `json:"location_code"`
	LocationName string  `json:"location_name"`
	QRCode       *string `json:"qr_code"`
}

// POST /api/admin/storage-locations
// Locations are immutable after creation; there is no update handler.
func CreateStorageLocationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStorageLocationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.LocationCode = strings.TrimSpace(body.LocationCode)
		body.LocationName = strings.TrimSpace(body.LocationName)
		if body.LocationCode == "" || body.LocationName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "location_code and location_name are required")
		}

		// Unique code / QR code checks up front so the caller gets a
		// conflict instead of a bare constraint error.
		var count int64
		database.DB.Model(&models.StorageLocation{}).
			Where("LOWER(location_code) = ?", strings.ToLower(body.LocationCode)).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "A storage location with this code already exists")
		}

		if body.QRCode != nil && *body.QRCode != "" {
			database.DB.Model(&models.StorageLocation{}).
				Where("qr_code = ?", *body.QRCode).
				Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusConflict, "A storage location with this QR code already exists")
			}
		}

		location := models.StorageLocation{
			LocationCode: body.LocationCode,
			LocationName: body.LocationName,
			QRCode:       body.QRCode,
		}
		if err := database.DB.Create(&location).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create storage location")
		}

		return c.Status(fiber.StatusCreated).JSON(location)
	}
}

// GET /api/storage-locations
func ListStorageLocationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var locations []models.StorageLocation
		if err := database.DB.Order("location_code").Find(&locations).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list storage locations")
		}
		return c.JSON(locations)
	}
}

// GET /api/scan?qr_code=...
// Resolves a scanned code to its storage location. An unknown code is not a
// fault; the scanner UI just shows "no match".
func ScanQRCodeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		qrCode := c.Query("qr_code")
		if qrCode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "qr_code is required")
		}

		var location models.StorageLocation
		err := database.DB.Where("qr_code = ?", qrCode).First(&location).Error
		if err != nil {
			return c.JSON(nil)
		}

		return c.JSON(location)
	}
}
