package stocktaking

import (
	"fmt"
	"strconv"

	"stocktake-backend/internal/audit"
	"stocktake-backend/internal/auth"
	"stocktake-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateSessionRequest struct {
	ProjectID   uint   `json:"project_id"`
	SessionName string `json:"session_name"`
}

type SessionResponse struct {
	ID          uint                 `json:"id"`
	UserID      uint                 `json:"user_id"`
	ProjectID   uint                 `json:"project_id"`
	SessionName string               `json:"session_name"`
	Status      models.SessionStatus `json:"status"`
	StartedAt   string               `json:"started_at"`
	CompletedAt *string              `json:"completed_at"`
}

func sessionResponse(s *models.StockTakingSession) SessionResponse {
	resp := SessionResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		ProjectID:   s.ProjectID,
		SessionName: s.SessionName,
		Status:      s.Status,
		StartedAt:   s.StartedAt.Format("2006-01-02 15:04:05"),
	}
	if s.CompletedAt != nil {
		completed := s.CompletedAt.Format("2006-01-02 15:04:05")
		resp.CompletedAt = &completed
	}
	return resp
}

// POST /api/sessions
func CreateSessionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body CreateSessionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.ProjectID == 0 || body.SessionName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "project_id and session_name are required")
		}

		session, err := CreateSession(userID, body.ProjectID, body.SessionName)
		if err != nil {
			return err
		}

		username, _ := c.Locals(auth.CtxUsernameKey).(string)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    username,
			EntityType:  "stock_taking_session",
			EntityID:    session.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Session started: %s", session.SessionName),
			After:       session,
		})

		return c.Status(fiber.StatusCreated).JSON(sessionResponse(session))
	}
}

// POST /api/sessions/:id/complete
func CompleteSessionHandler() fiber.Handler {
	return finishSessionHandler("complete", CompleteSession)
}

// POST /api/sessions/:id/cancel
func CancelSessionHandler() fiber.Handler {
	return finishSessionHandler("cancel", CancelSession)
}

func finishSessionHandler(action string, finish func(uint) (*models.StockTakingSession, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
		}

		session, err := finish(uint(sessionID))
		if err != nil {
			return err
		}

		userID, _ := auth.CurrentUserID(c)
		username, _ := c.Locals(auth.CtxUsernameKey).(string)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    username,
			EntityType:  "stock_taking_session",
			EntityID:    session.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Session %s: %s", action, session.SessionName),
			After:       session,
		})

		return c.JSON(sessionResponse(session))
	}
}

// GET /api/sessions/active
func ListActiveSessionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		sessions, err := ListActiveSessions(userID)
		if err != nil {
			return err
		}

		resp := make([]SessionResponse, 0, len(sessions))
		for i := range sessions {
			resp = append(resp, sessionResponse(&sessions[i]))
		}
		return c.JSON(resp)
	}
}
