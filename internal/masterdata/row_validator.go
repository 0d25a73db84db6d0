package masterdata

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"stocktake-backend/internal/models"
)

// ExcelRow: one raw data row from the master-data sheet. Cells arrive as
// text; the empty string means the cell was absent.
type ExcelRow struct {
	No           string
	Part         string
	StdPack      string
	PartName     string
	PartNumber   string
	Storage      string
	SupplierCode string
	SupplierName string
	Type         string
	Image        string
	QtyStd       string
	QtySisa      string
	Remark       string
}

// BuildPartInput validates one row and resolves its storage location. Checks
// run in a fixed order and stop at the first failure, so a row with several
// problems reports only the first one. rowNumber is the display row in the
// sheet (data index + 2, header in row 1); locations maps lowercase location
// codes to ids.
func BuildPartInput(rowNumber int, row ExcelRow, locations map[string]uint) (models.Part, error) {
	var part models.Part

	if strings.TrimSpace(row.No) == "" {
		return part, fmt.Errorf("Row %d: No is required", rowNumber)
	}
	if strings.TrimSpace(row.Part) == "" {
		return part, fmt.Errorf("Row %d: PART is required", rowNumber)
	}
	if strings.TrimSpace(row.PartName) == "" {
		return part, fmt.Errorf("Row %d: part_name is required", rowNumber)
	}
	if strings.TrimSpace(row.PartNumber) == "" {
		return part, fmt.Errorf("Row %d: part_number is required", rowNumber)
	}
	if strings.TrimSpace(row.Storage) == "" {
		return part, fmt.Errorf("Row %d: storage is required", rowNumber)
	}

	stdPack, err := parsePositiveNumber(row.StdPack)
	if err != nil {
		return part, fmt.Errorf("Row %d: std_pack must be a positive number", rowNumber)
	}

	qtyStd, err := parseNonNegativeInt(row.QtyStd)
	if err != nil {
		return part, fmt.Errorf("Row %d: qty_std must be a non-negative integer", rowNumber)
	}

	qtySisa, err := parseNonNegativeInt(row.QtySisa)
	if err != nil {
		return part, fmt.Errorf("Row %d: qty_sisa must be a non-negative integer", rowNumber)
	}

	storage := strings.TrimSpace(row.Storage)
	locationID, ok := locations[strings.ToLower(storage)]
	if !ok {
		return part, fmt.Errorf("Row %d: Storage location '%s' not found", rowNumber, storage)
	}

	part = models.Part{
		No:                strings.TrimSpace(row.No),
		Part:              strings.TrimSpace(row.Part),
		StdPack:           stdPack,
		PartName:          strings.TrimSpace(row.PartName),
		PartNumber:        strings.TrimSpace(row.PartNumber),
		StorageLocationID: locationID,
		SupplierCode:      optional(row.SupplierCode),
		SupplierName:      optional(row.SupplierName),
		Type:              optional(row.Type),
		Image:             optional(row.Image),
		QtyStd:            qtyStd,
		QtySisa:           qtySisa,
		Remark:            optional(row.Remark),
	}
	return part, nil
}

// parsePositiveNumber: std_pack must be a finite number > 0. An absent cell
// counts as 0 and therefore fails.
func parsePositiveNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		s = "0"
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("not a positive number: %q", s)
	}
	return v, nil
}

// parseNonNegativeInt: quantity cells default to 0 when absent; anything
// present must be a whole number >= 0.
func parseNonNegativeInt(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative: %d", v)
	}
	return v, nil
}

func optional(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}
