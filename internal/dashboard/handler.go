package dashboard

import (
	"time"

	"stocktake-backend/internal/auth"
	"stocktake-backend/internal/database"
	"stocktake-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DashboardCounts struct {
	TotalProjects  int64 `json:"total_projects"`
	ActiveSessions int64 `json:"active_sessions"`
	TotalParts     int64 `json:"total_parts"`
	RecentRecords  int64 `json:"recent_records"`
}

// GetDashboardCounts aggregates the landing-page numbers for one user:
// active projects overall, the user's own ACTIVE sessions, parts belonging to
// active projects, and records from the last 7 days.
func GetDashboardCounts(userID uint) (*DashboardCounts, error) {
	var counts DashboardCounts

	if err := database.DB.Model(&models.Project{}).
		Where("is_active = ?", true).
		Count(&counts.TotalProjects).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not count projects")
	}

	if err := database.DB.Model(&models.StockTakingSession{}).
		Where("user_id = ? AND status = ?", userID, models.SessionActive).
		Count(&counts.ActiveSessions).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not count sessions")
	}

	if err := database.DB.Model(&models.Part{}).
		Joins("INNER JOIN projects ON projects.id = parts.project_id").
		Where("projects.is_active = ?", true).
		Count(&counts.TotalParts).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not count parts")
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	if err := database.DB.Model(&models.StockTakingRecord{}).
		Where("recorded_at >= ?", weekAgo).
		Count(&counts.RecentRecords).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not count records")
	}

	return &counts, nil
}

// GET /api/dashboard
func DashboardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		counts, err := GetDashboardCounts(userID)
		if err != nil {
			return err
		}

		return c.JSON(counts)
	}
}
