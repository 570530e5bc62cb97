package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/onedayhr/crm-api/internal/entity"
)

const SheetName = "Leads"

var Headers = []string{
	"ID", "Name", "Phone", "Email", "Company", "Vacancy", "Source", "Priority", "Stage",
	"Open tasks", "Completed tasks", "Comments", "Calls", "Created", "Updated", "Notes",
}

// XLSXRenderer writes export rows into a single styled worksheet.
type XLSXRenderer struct{}

func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func (r *XLSXRenderer) Render(rows []entity.ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"3B82F6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	hdr := make([]interface{}, len(Headers))
	for i, h := range Headers {
		hdr[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &hdr); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(Headers))
	if err := f.SetCellStyle(SheetName, "A1", last+"1", header); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for i, row := range rows {
		stage := str(row.StageName)
		values := []interface{}{
			row.ID, row.Name, row.Phone, str(row.Email), str(row.Company), str(row.Vacancy),
			row.Source, string(row.Priority), stage,
			row.OpenTasks, row.CompletedTasks, row.CommentsCount, row.CallsCount,
			stamp(row.CreatedAt), stamp(row.UpdatedAt), str(row.Notes),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row.ID, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", last, 15); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "B", "B", 25); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, last, last, 40); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
