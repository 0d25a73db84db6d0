package stocktaking

import (
	"testing"

	"stocktake-backend/internal/database"
	"stocktake-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func seedPart(t *testing.T, projectID uint, qtyStd int) uint {
	t.Helper()

	location := models.StorageLocation{LocationCode: "WH-A-01", LocationName: "Warehouse A rack 1"}
	if err := database.DB.Create(&location).Error; err != nil {
		t.Fatalf("could not seed location: %v", err)
	}

	part := models.Part{
		No:                "P1",
		Part:              "Bolt",
		StdPack:           10,
		ProjectID:         projectID,
		PartName:          "Bolt",
		PartNumber:        "B1",
		StorageLocationID: location.ID,
		QtyStd:            qtyStd,
		QtySisa:           qtyStd,
	}
	if err := database.DB.Create(&part).Error; err != nil {
		t.Fatalf("could not seed part: %v", err)
	}
	return part.ID
}

// difference = counted - qty_std (signed), and qty_sisa becomes the counted
// value. The comparison baseline is the standard quantity, never the
// previous on-hand value.
func TestRecordCount_Variance(t *testing.T) {
	setupTestDB(t)
	userID, projectID := seedUserAndProject(t, true, true)
	partID := seedPart(t, projectID, 100)
	session, _ := CreateSession(userID, projectID, "Morning Count")

	remark := "ok"
	record, err := RecordCount(session.ID, partID, 85, &remark)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.QtyDifference != -15 {
		t.Errorf("expected difference -15, got %d", record.QtyDifference)
	}
	if record.QtyCounted != 85 {
		t.Errorf("expected counted 85, got %d", record.QtyCounted)
	}

	var part models.Part
	database.DB.First(&part, partID)
	if part.QtySisa != 85 {
		t.Errorf("expected qty_sisa 85, got %d", part.QtySisa)
	}
	if part.QtyStd != 100 {
		t.Errorf("qty_std must not change, got %d", part.QtyStd)
	}
}

// A second count compares against qty_std again, not against the first
// count, and simply overwrites qty_sisa.
func TestRecordCount_RepeatedCountOverwrites(t *testing.T) {
	setupTestDB(t)
	userID, projectID := seedUserAndProject(t, true, true)
	partID := seedPart(t, projectID, 100)
	session, _ := CreateSession(userID, projectID, "Morning Count")

	if _, err := RecordCount(session.ID, partID, 85, nil); err != nil {
		t.Fatal(err)
	}
	second, err := RecordCount(session.ID, partID, 110, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.QtyDifference != 10 {
		t.Errorf("expected difference +10 against qty_std, got %d", second.QtyDifference)
	}

	var part models.Part
	database.DB.First(&part, partID)
	if part.QtySisa != 110 {
		t.Errorf("expected qty_sisa 110 after overwrite, got %d", part.QtySisa)
	}

	// History stays append-only.
	var count int64
	database.DB.Model(&models.StockTakingRecord{}).Where("part_id = ?", partID).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 records, got %d", count)
	}
}

func TestRecordCount_NegativeQuantity(t *testing.T) {
	setupTestDB(t)
	userID, projectID := seedUserAndProject(t, true, true)
	partID := seedPart(t, projectID, 100)
	session, _ := CreateSession(userID, projectID, "Morning Count")

	_, err := RecordCount(session.ID, partID, -1, nil)
	if err == nil || fiberCode(t, err) != fiber.StatusBadRequest {
		t.Errorf("expected bad request, got %v", err)
	}
}

func TestRecordCount_PartNotFound(t *testing.T) {
	setupTestDB(t)
	userID, projectID := seedUserAndProject(t, true, true)
	session, _ := CreateSession(userID, projectID, "Morning Count")

	_, err := RecordCount(session.ID, 999, 10, nil)
	if err == nil || fiberCode(t, err) != fiber.StatusNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestRecordCount_SessionNotFound(t *testing.T) {
	setupTestDB(t)
	_, projectID := seedUserAndProject(t, true, true)
	partID := seedPart(t, projectID, 100)

	_, err := RecordCount(999, partID, 10, nil)
	if err == nil || fiberCode(t, err) != fiber.StatusNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}

// Counts against a terminal session are rejected and leave no trace.
func TestRecordCount_TerminalSessionRejected(t *testing.T) {
	setupTestDB(t)
	userID, projectID := seedUserAndProject(t, true, true)
	partID := seedPart(t, projectID, 100)
	session, _ := CreateSession(userID, projectID, "Morning Count")
	if _, err := CompleteSession(session.ID); err != nil {
		t.Fatal(err)
	}

	_, err := RecordCount(session.ID, partID, 85, nil)
	if err == nil || fiberCode(t, err) != fiber.StatusConflict {
		t.Errorf("expected conflict, got %v", err)
	}

	var count int64
	database.DB.Model(&models.StockTakingRecord{}).Count(&count)
	if count != 0 {
		t.Errorf("no record may be written, found %d", count)
	}

	var part models.Part
	database.DB.First(&part, partID)
	if part.QtySisa != 100 {
		t.Errorf("qty_sisa must be untouched, got %d", part.QtySisa)
	}
}
