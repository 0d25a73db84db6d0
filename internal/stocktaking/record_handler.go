package stocktaking

import (
	"fmt"

	"stocktake-backend/internal/audit"
	"stocktake-backend/internal/auth"
	"stocktake-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RecordCountRequest struct {
	SessionID  uint    `json:"session_id"`
	PartID     uint    `json:"part_id"`
	QtyCounted int     `json:"qty_counted"`
	Remark     *string `json:"remark"`
}

type RecordResponse struct {
	ID            uint    `json:"id"`
	SessionID     uint    `json:"session_id"`
	PartID        uint    `json:"part_id"`
	QtyCounted    int     `json:"qty_counted"`
	QtyDifference int     `json:"qty_difference"`
	Remark        *string `json:"remark"`
	RecordedAt    string  `json:"recorded_at"`
}

// POST /api/records
func RecordCountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RecordCountRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.SessionID == 0 || body.PartID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "session_id and part_id are required")
		}

		record, err := RecordCount(body.SessionID, body.PartID, body.QtyCounted, body.Remark)
		if err != nil {
			return err
		}

		userID, _ := auth.CurrentUserID(c)
		username, _ := c.Locals(auth.CtxUsernameKey).(string)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    username,
			EntityType:  "stock_taking_record",
			EntityID:    record.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Count recorded: part %d, counted %d, difference %+d", record.PartID, record.QtyCounted, record.QtyDifference),
			After:       record,
		})

		return c.Status(fiber.StatusCreated).JSON(RecordResponse{
			ID:            record.ID,
			SessionID:     record.SessionID,
			PartID:        record.PartID,
			QtyCounted:    record.QtyCounted,
			QtyDifference: record.QtyDifference,
			Remark:        record.Remark,
			RecordedAt:    record.RecordedAt.Format("2006-01-02 15:04:05"),
		})
	}
}
