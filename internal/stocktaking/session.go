package stocktaking

import (
	"fmt"
	"time"

	"stocktake-backend/internal/database"
	"stocktake-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateSession starts a new ACTIVE counting session for a user against a
// project. Both must exist and be active; deactivated ones are rejected
// separately from missing ones.
func CreateSession(userID, projectID uint, sessionName string) (*models.StockTakingSession, error) {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("User with id %d not found", userID))
	}
	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, fmt.Sprintf("User with id %d is not active", userID))
	}

	var project models.Project
	if err := database.DB.First(&project, projectID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Project with id %d not found", projectID))
	}
	if !project.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, fmt.Sprintf("Project with id %d is not active", projectID))
	}

	session := models.StockTakingSession{
		UserID:      userID,
		ProjectID:   projectID,
		SessionName: sessionName,
		Status:      models.SessionActive,
		StartedAt:   time.Now(),
	}
	if err := database.DB.Create(&session).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not create session")
	}

	return &session, nil
}

// CompleteSession moves an ACTIVE session to COMPLETED and stamps
// completed_at. Completing a session that is already terminal is a conflict;
// a terminal state never re-stamps its own timestamp.
func CompleteSession(sessionID uint) (*models.StockTakingSession, error) {
	return finishSession(sessionID, models.SessionCompleted)
}

// CancelSession moves an ACTIVE session to CANCELLED.
func CancelSession(sessionID uint) (*models.StockTakingSession, error) {
	return finishSession(sessionID, models.SessionCancelled)
}

func finishSession(sessionID uint, status models.SessionStatus) (*models.StockTakingSession, error) {
	var session models.StockTakingSession
	if err := database.DB.First(&session, sessionID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Stock taking session with id %d not found", sessionID))
	}

	if session.Status != models.SessionActive {
		return nil, fiber.NewError(fiber.StatusConflict, fmt.Sprintf("Session %d is already %s", sessionID, session.Status))
	}

	now := time.Now()
	session.Status = status
	if status == models.SessionCompleted {
		session.CompletedAt = &now
	}

	if err := database.DB.Save(&session).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not update session")
	}

	return &session, nil
}

// ListActiveSessions returns the ACTIVE sessions of one user only.
func ListActiveSessions(userID uint) ([]models.StockTakingSession, error) {
	var sessions []models.StockTakingSession
	if err := database.DB.
		Where("user_id = ? AND status = ?", userID, models.SessionActive).
		Order("started_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not list sessions")
	}
	return sessions, nil
}
