package masterdata

import (
	"fmt"
	"io"
	"strings"

	"stocktake-backend/internal/database"
	"stocktake-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

type ImportResult struct {
	Success       bool     `json:"success"`
	ImportedCount int      `json:"imported_count"`
	Errors        []string `json:"errors"`
}

// Recognized header names, matched case-insensitively. Columns with other
// headers are ignored.
var columnSetters = map[string]func(*ExcelRow, string){
	"no":            func(r *ExcelRow, v string) { r.No = v },
	"part":          func(r *ExcelRow, v string) { r.Part = v },
	"std_pack":      func(r *ExcelRow, v string) { r.StdPack = v },
	"part_name":     func(r *ExcelRow, v string) { r.PartName = v },
	"part_number":   func(r *ExcelRow, v string) { r.PartNumber = v },
	"storage":       func(r *ExcelRow, v string) { r.Storage = v },
	"supplier_code": func(r *ExcelRow, v string) { r.SupplierCode = v },
	"supplier_name": func(r *ExcelRow, v string) { r.SupplierName = v },
	"type":          func(r *ExcelRow, v string) { r.Type = v },
	"image":         func(r *ExcelRow, v string) { r.Image = v },
	"qty_std":       func(r *ExcelRow, v string) { r.QtyStd = v },
	"qty_sisa":      func(r *ExcelRow, v string) { r.QtySisa = v },
	"remark":        func(r *ExcelRow, v string) { r.Remark = v },
}

// ParseExcelRows reads the first sheet of an .xlsx payload. Row 1 is the
// header; the remaining rows come back in sheet order.
func ParseExcelRows(r io.Reader) ([]ExcelRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("Invalid file format")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Invalid file format")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("Invalid file format")
	}
	if len(rows) < 2 {
		return nil, nil
	}

	// Map header positions to fields.
	setters := make(map[int]func(*ExcelRow, string))
	for i, header := range rows[0] {
		if setter, ok := columnSetters[strings.ToLower(strings.TrimSpace(header))]; ok {
			setters[i] = setter
		}
	}

	parsed := make([]ExcelRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		var row ExcelRow
		for i, cell := range cells {
			if setter, ok := setters[i]; ok {
				setter(&row, cell)
			}
		}
		parsed = append(parsed, row)
	}
	return parsed, nil
}

// ImportMasterData runs the bulk import pipeline for one project: verify the
// project, decode the sheet, resolve storage locations once, then validate
// and insert row by row. Each successful row is committed independently; a
// bad row never rolls back the good ones before it, and the Errors list tells
// the operator which rows still need attention.
func ImportMasterData(projectID uint, payload io.Reader) ImportResult {
	errs := make([]string, 0)
	importedCount := 0

	var project models.Project
	if err := database.DB.First(&project, projectID).Error; err != nil {
		return ImportResult{
			Success:       false,
			ImportedCount: 0,
			Errors:        []string{fmt.Sprintf("Project with ID %d not found", projectID)},
		}
	}

	rows, err := ParseExcelRows(payload)
	if err != nil {
		return ImportResult{Success: false, ImportedCount: 0, Errors: []string{err.Error()}}
	}
	if len(rows) == 0 {
		return ImportResult{Success: false, ImportedCount: 0, Errors: []string{"No data rows found"}}
	}

	// Single location query, reused for every row.
	var locations []models.StorageLocation
	if err := database.DB.Find(&locations).Error; err != nil {
		return ImportResult{Success: false, ImportedCount: 0, Errors: []string{"Could not load storage locations"}}
	}
	locationMap := make(map[string]uint, len(locations))
	for _, loc := range locations {
		locationMap[strings.ToLower(loc.LocationCode)] = loc.ID
	}

	for i, row := range rows {
		rowNumber := i + 2 // sheet row: data starts under the header row

		part, err := BuildPartInput(rowNumber, row, locationMap)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}

		part.ProjectID = projectID
		if err := database.DB.Create(&part).Error; err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: %v", rowNumber, err))
			continue
		}

		importedCount++
	}

	return ImportResult{
		// Partial success counts as success: the errors list still names
		// every failed row.
		Success:       len(errs) == 0 || importedCount > 0,
		ImportedCount: importedCount,
		Errors:        errs,
	}
}
