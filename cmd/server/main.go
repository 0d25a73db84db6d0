package main

import (
	"log"
	"strings"

	"stocktake-backend/internal/admin"
	"stocktake-backend/internal/audit"
	"stocktake-backend/internal/auth"
	"stocktake-backend/internal/config"
	"stocktake-backend/internal/dashboard"
	"stocktake-backend/internal/database"
	"stocktake-backend/internal/masterdata"
	"stocktake-backend/internal/models"
	"stocktake-backend/internal/report"
	"stocktake-backend/internal/stocktaking"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Reference data
	adminRoutes.Post("/projects", admin.CreateProjectHandler())
	adminRoutes.Post("/projects/:id/deactivate", admin.DeactivateProjectHandler())
	adminRoutes.Post("/storage-locations", admin.CreateStorageLocationHandler())
	adminRoutes.Post("/users", admin.CreateUserHandler())

	// Master data import
	adminRoutes.Post("/projects/:id/master-data", masterdata.UploadMasterDataHandler())
	adminRoutes.Put("/parts/:id/quantities", masterdata.UpdatePartQuantitiesHandler())

	// Shared (any authenticated role)

	// Reference lookups
	protected.Get("/projects", admin.ListProjectsHandler())
	protected.Get("/projects/:id/parts", masterdata.ListPartsByProjectHandler())
	protected.Get("/storage-locations", admin.ListStorageLocationsHandler())
	protected.Get("/scan", admin.ScanQRCodeHandler())

	// Stock taking
	protected.Post("/sessions", stocktaking.CreateSessionHandler())
	protected.Get("/sessions/active", stocktaking.ListActiveSessionsHandler())
	protected.Post("/sessions/:id/complete", stocktaking.CompleteSessionHandler())
	protected.Post("/sessions/:id/cancel", stocktaking.CancelSessionHandler())
	protected.Post("/records", stocktaking.RecordCountHandler())

	// Reports
	protected.Get("/reports", report.BuildReportHandler())
	protected.Get("/reports/download", report.DownloadReportHandler())

	// Dashboard
	protected.Get("/dashboard", dashboard.DashboardHandler())

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
