package stocktaking

import (
	"fmt"
	"time"

	"stocktake-backend/internal/database"
	"stocktake-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RecordCount stores one counted observation. The difference is computed
// against the part's standard quantity (qty_std), not the previous on-hand
// value. The part's qty_sisa is then overwritten with the counted quantity:
// last write wins, and the record table keeps the full history.
//
// Counts against COMPLETED or CANCELLED sessions are rejected: the session
// is a closed audit unit once it leaves ACTIVE.
func RecordCount(sessionID, partID uint, qtyCounted int, remark *string) (*models.StockTakingRecord, error) {
	if qtyCounted < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "qty_counted cannot be negative")
	}

	var session models.StockTakingSession
	if err := database.DB.First(&session, sessionID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Stock taking session with id %d not found", sessionID))
	}
	if session.Status != models.SessionActive {
		return nil, fiber.NewError(fiber.StatusConflict, fmt.Sprintf("Session %d is %s; counts are only accepted on active sessions", sessionID, session.Status))
	}

	var part models.Part
	if err := database.DB.First(&part, partID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Part with id %d not found", partID))
	}

	record := models.StockTakingRecord{
		SessionID:     sessionID,
		PartID:        partID,
		QtyCounted:    qtyCounted,
		QtyDifference: qtyCounted - part.QtyStd,
		Remark:        remark,
		RecordedAt:    time.Now(),
	}
	if err := database.DB.Create(&record).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not create record")
	}

	if err := database.DB.Model(&models.Part{}).
		Where("id = ?", partID).
		Update("qty_sisa", qtyCounted).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not update part quantity")
	}

	return &record, nil
}
