package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var reportHeader = []interface{}{
	"Session", "Status", "Started At", "Completed At", "User", "Project",
	"No", "Part Name", "Part Number", "Location Code", "Location Name",
	"Std Pack", "Qty Std", "Qty Sisa", "Qty Counted", "Difference",
	"Remark", "Recorded At",
}

// RenderXLSX writes the report dataset into a single-sheet workbook.
func RenderXLSX(rep *Report) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	if err := f.SetSheetRow(sheet, "A1", &reportHeader); err != nil {
		return nil, fmt.Errorf("could not write header row: %w", err)
	}

	for i, row := range rep.Dataset {
		completedAt := ""
		if row.SessionCompletedAt != nil {
			completedAt = row.SessionCompletedAt.Format("2006-01-02 15:04:05")
		}
		remark := ""
		if row.RecordRemark != nil {
			remark = *row.RecordRemark
		}

		cells := []interface{}{
			row.SessionName,
			row.SessionStatus,
			row.SessionStartedAt.Format("2006-01-02 15:04:05"),
			completedAt,
			row.Username,
			row.ProjectName,
			row.PartNo,
			row.PartName,
			row.PartNumber,
			row.LocationCode,
			row.LocationName,
			row.StdPack,
			row.QtyStd,
			row.QtySisa,
			row.QtyCounted,
			row.QtyDifference,
			remark,
			row.RecordedAt.Format("2006-01-02 15:04:05"),
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("could not write row %d: %w", i+2, err)
		}
	}

	return f.WriteToBuffer()
}
