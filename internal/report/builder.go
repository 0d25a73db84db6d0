package report

import (
	"fmt"
	"strings"
	"time"

	"stocktake-backend/internal/database"
	"stocktake-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ReportFilters struct {
	ProjectID *uint
	SessionID *uint
	Format    string // "PDF" or "XLSX"
	DateFrom  *time.Time
	DateTo    *time.Time
}

// ReportRow: one line of the audit report, flattened across
// session x user x project x record x part x location.
type ReportRow struct {
	SessionID          uint       `gorm:"column:session_id" json:"session_id"`
	SessionName        string     `gorm:"column:session_name" json:"session_name"`
	SessionStatus      string     `gorm:"column:session_status" json:"session_status"`
	SessionStartedAt   time.Time  `gorm:"column:session_started_at" json:"session_started_at"`
	SessionCompletedAt *time.Time `gorm:"column:session_completed_at" json:"session_completed_at"`
	Username           string     `gorm:"column:username" json:"username"`
	ProjectName        string     `gorm:"column:project_name" json:"project_name"`
	PartNo             string     `gorm:"column:part_no" json:"part_no"`
	PartName           string     `gorm:"column:part_name" json:"part_name"`
	PartNumber         string     `gorm:"column:part_number" json:"part_number"`
	LocationCode       string     `gorm:"column:location_code" json:"location_code"`
	LocationName       string     `gorm:"column:location_name" json:"location_name"`
	StdPack            float64    `gorm:"column:std_pack" json:"std_pack"`
	QtyStd             int        `gorm:"column:qty_std" json:"qty_std"`
	QtySisa            int        `gorm:"column:qty_sisa" json:"qty_sisa"`
	QtyCounted         int        `gorm:"column:qty_counted" json:"qty_counted"`
	QtyDifference      int        `gorm:"column:qty_difference" json:"qty_difference"`
	RecordRemark       *string    `gorm:"column:record_remark" json:"record_remark"`
	RecordedAt         time.Time  `gorm:"column:recorded_at" json:"recorded_at"`
}

type Report struct {
	Filename string      `json:"filename"`
	Dataset  []ReportRow `json:"dataset"`
}

// BuildReport assembles the joined dataset and derives the filename. All
// provided filters are ANDed; the date range bounds the session's start
// timestamp, inclusive on both ends. The join chain is inner throughout, so a
// session with no records contributes no rows, but its name is still looked
// up for the filename when session_id is given.
func BuildReport(filters ReportFilters) (*Report, error) {
	query := database.DB.
		Table("stock_taking_records").
		Select(strings.Join([]string{
			"stock_taking_sessions.id AS session_id",
			"stock_taking_sessions.session_name AS session_name",
			"stock_taking_sessions.status AS session_status",
			"stock_taking_sessions.started_at AS session_started_at",
			"stock_taking_sessions.completed_at AS session_completed_at",
			"users.username AS username",
			"projects.name AS project_name",
			"parts.no AS part_no",
			"parts.part_name AS part_name",
			"parts.part_number AS part_number",
			"storage_locations.location_code AS location_code",
			"storage_locations.location_name AS location_name",
			"parts.std_pack AS std_pack",
			"parts.qty_std AS qty_std",
			"parts.qty_sisa AS qty_sisa",
			"stock_taking_records.qty_counted AS qty_counted",
			"stock_taking_records.qty_difference AS qty_difference",
			"stock_taking_records.remark AS record_remark",
			"stock_taking_records.recorded_at AS recorded_at",
		}, ", ")).
		Joins("INNER JOIN stock_taking_sessions ON stock_taking_sessions.id = stock_taking_records.session_id").
		Joins("INNER JOIN users ON users.id = stock_taking_sessions.user_id").
		Joins("INNER JOIN projects ON projects.id = stock_taking_sessions.project_id").
		Joins("INNER JOIN parts ON parts.id = stock_taking_records.part_id").
		Joins("INNER JOIN storage_locations ON storage_locations.id = parts.storage_location_id")

	if filters.ProjectID != nil {
		query = query.Where("stock_taking_sessions.project_id = ?", *filters.ProjectID)
	}
	if filters.SessionID != nil {
		query = query.Where("stock_taking_sessions.id = ?", *filters.SessionID)
	}
	if filters.DateFrom != nil {
		query = query.Where("stock_taking_sessions.started_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("stock_taking_sessions.started_at <= ?", *filters.DateTo)
	}

	var rows []ReportRow
	if err := query.Order("stock_taking_records.recorded_at").Scan(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not build report dataset")
	}

	return &Report{
		Filename: buildFilename(filters, rows),
		Dataset:  rows,
	}, nil
}

// buildFilename: stock_report_<scope>_<timestamp> with a second-precision,
// filesystem-safe timestamp (no colons or periods).
func buildFilename(filters ReportFilters, rows []ReportRow) string {
	timestamp := time.Now().Format("2006-01-02T15-04-05")

	var name string
	switch {
	case filters.SessionID != nil:
		sessionName := ""
		if len(rows) > 0 {
			sessionName = rows[0].SessionName
		} else {
			var session models.StockTakingSession
			if err := database.DB.First(&session, *filters.SessionID).Error; err == nil {
				sessionName = session.SessionName
			}
		}
		if sessionName == "" {
			sessionName = "session"
		}
		name = fmt.Sprintf("stock_report_%s_%s", sessionName, timestamp)
	case filters.ProjectID != nil:
		projectName := ""
		if len(rows) > 0 {
			projectName = rows[0].ProjectName
		} else {
			var project models.Project
			if err := database.DB.First(&project, *filters.ProjectID).Error; err == nil {
				projectName = project.Name
			}
		}
		if projectName == "" {
			projectName = "project"
		}
		name = fmt.Sprintf("stock_report_%s_%s", strings.ReplaceAll(projectName, " ", "_"), timestamp)
	default:
		name = fmt.Sprintf("stock_report_all_%s", timestamp)
	}

	if strings.EqualFold(filters.Format, "PDF") {
		return name + ".pdf"
	}
	return name + ".xlsx"
}
