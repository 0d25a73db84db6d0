package report

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"stocktake-backend/internal/database"
	"stocktake-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("could not migrate test database: %v", err)
	}
	database.DB = db
}

type fixtures struct {
	userID    uint
	projectID uint
	sessionID uint
	partID    uint
}

func seedReportFixtures(t *testing.T, sessionName string, startedAt time.Time) fixtures {
	t.Helper()

	user := models.User{Username: "counter1", Email: "counter1@example.com", PasswordHash: "x", Role: models.RoleStockTaker, IsActive: true}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	project := models.Project{Name: "Plant 1 Annual", IsActive: true}
	if err := database.DB.Create(&project).Error; err != nil {
		t.Fatal(err)
	}
	location := models.StorageLocation{LocationCode: "WH-A-01", LocationName: "Warehouse A rack 1"}
	if err := database.DB.Create(&location).Error; err != nil {
		t.Fatal(err)
	}
	part := models.Part{
		No: "P1", Part: "Bolt", StdPack: 10, ProjectID: project.ID,
		PartName: "Bolt", PartNumber: "B1", StorageLocationID: location.ID,
		QtyStd: 100, QtySisa: 100,
	}
	if err := database.DB.Create(&part).Error; err != nil {
		t.Fatal(err)
	}
	session := models.StockTakingSession{
		UserID: user.ID, ProjectID: project.ID, SessionName: sessionName,
		Status: models.SessionActive, StartedAt: startedAt,
	}
	if err := database.DB.Create(&session).Error; err != nil {
		t.Fatal(err)
	}

	return fixtures{userID: user.ID, projectID: project.ID, sessionID: session.ID, partID: part.ID}
}

func addRecord(t *testing.T, fx fixtures, counted, difference int) {
	t.Helper()
	record := models.StockTakingRecord{
		SessionID: fx.sessionID, PartID: fx.partID,
		QtyCounted: counted, QtyDifference: difference,
		RecordedAt: time.Now(),
	}
	if err := database.DB.Create(&record).Error; err != nil {
		t.Fatal(err)
	}
}

// A session with zero records contributes zero rows, even when filtered by
// its own id, but its name still reaches the filename.
func TestBuildReport_EmptySessionStillNamesFile(t *testing.T) {
	setupTestDB(t)
	fx := seedReportFixtures(t, "Morning Count", time.Now())

	rep, err := BuildReport(ReportFilters{SessionID: &fx.sessionID, Format: "PDF"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rep.Dataset) != 0 {
		t.Errorf("expected empty dataset, got %d rows", len(rep.Dataset))
	}

	pattern := regexp.MustCompile(`^stock_report_Morning Count_\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}\.pdf$`)
	if !pattern.MatchString(rep.Filename) {
		t.Errorf("unexpected filename: %q", rep.Filename)
	}
}

func TestBuildReport_JoinedRow(t *testing.T) {
	setupTestDB(t)
	fx := seedReportFixtures(t, "Morning Count", time.Now())
	addRecord(t, fx, 85, -15)

	rep, err := BuildReport(ReportFilters{SessionID: &fx.sessionID, Format: "XLSX"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Dataset) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rep.Dataset))
	}

	row := rep.Dataset[0]
	if row.SessionName != "Morning Count" || row.Username != "counter1" || row.ProjectName != "Plant 1 Annual" {
		t.Errorf("join fields wrong: %+v", row)
	}
	if row.LocationCode != "WH-A-01" || row.PartNumber != "B1" {
		t.Errorf("part/location fields wrong: %+v", row)
	}
	if row.QtyCounted != 85 || row.QtyDifference != -15 || row.QtyStd != 100 {
		t.Errorf("quantity fields wrong: %+v", row)
	}
	if !strings.HasSuffix(rep.Filename, ".xlsx") {
		t.Errorf("expected .xlsx extension, got %q", rep.Filename)
	}
}

func TestBuildReport_ProjectFilterAndFilename(t *testing.T) {
	setupTestDB(t)
	fx := seedReportFixtures(t, "Morning Count", time.Now())
	addRecord(t, fx, 85, -15)

	// A second project with its own session and record must be filtered out.
	other := seedSecondProject(t, fx)

	rep, err := BuildReport(ReportFilters{ProjectID: &fx.projectID, Format: "XLSX"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Dataset) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rep.Dataset))
	}
	if rep.Dataset[0].SessionID == other {
		t.Error("foreign project's session leaked into the dataset")
	}

	// Project name spaces become underscores in the filename.
	if !strings.HasPrefix(rep.Filename, "stock_report_Plant_1_Annual_") {
		t.Errorf("unexpected filename: %q", rep.Filename)
	}
}

func seedSecondProject(t *testing.T, fx fixtures) uint {
	t.Helper()

	project := models.Project{Name: "Plant 2", IsActive: true}
	if err := database.DB.Create(&project).Error; err != nil {
		t.Fatal(err)
	}
	session := models.StockTakingSession{
		UserID: fx.userID, ProjectID: project.ID, SessionName: "Other",
		Status: models.SessionActive, StartedAt: time.Now(),
	}
	if err := database.DB.Create(&session).Error; err != nil {
		t.Fatal(err)
	}
	record := models.StockTakingRecord{
		SessionID: session.ID, PartID: fx.partID,
		QtyCounted: 1, QtyDifference: -99, RecordedAt: time.Now(),
	}
	if err := database.DB.Create(&record).Error; err != nil {
		t.Fatal(err)
	}
	return session.ID
}

// date_from/date_to bound the session's start timestamp, inclusive.
func TestBuildReport_DateRange(t *testing.T) {
	setupTestDB(t)

	boundary := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	fx := seedReportFixtures(t, "Boundary", boundary)
	addRecord(t, fx, 50, -50)

	from := boundary
	to := boundary
	rep, err := BuildReport(ReportFilters{DateFrom: &from, DateTo: &to, Format: "XLSX"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Dataset) != 1 {
		t.Errorf("boundary timestamp must be included, got %d rows", len(rep.Dataset))
	}

	after := boundary.Add(time.Hour)
	rep, err = BuildReport(ReportFilters{DateFrom: &after, Format: "XLSX"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Dataset) != 0 {
		t.Errorf("session before date_from must be excluded, got %d rows", len(rep.Dataset))
	}
}

func TestBuildReport_NoFilters(t *testing.T) {
	setupTestDB(t)
	fx := seedReportFixtures(t, "Morning Count", time.Now())
	addRecord(t, fx, 85, -15)
	addRecord(t, fx, 90, -10)

	rep, err := BuildReport(ReportFilters{Format: "XLSX"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Dataset) != 2 {
		t.Errorf("expected 2 rows, got %d", len(rep.Dataset))
	}
	if !strings.HasPrefix(rep.Filename, "stock_report_all_") {
		t.Errorf("unexpected filename: %q", rep.Filename)
	}
}

func TestRenderXLSX(t *testing.T) {
	setupTestDB(t)
	fx := seedReportFixtures(t, "Morning Count", time.Now())
	addRecord(t, fx, 85, -15)

	rep, err := BuildReport(ReportFilters{Format: "XLSX"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buf, err := RenderXLSX(rep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected a non-empty workbook")
	}
}
