package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"workload-tracker/internal/storage"
)

// Export types accepted by the flat export endpoint.
const (
	TypeEmployees   = "employees"
	TypeProjects    = "projects"
	TypeWeeklyHours = "weekly_hours"
)

// ErrUnknownExportType rejects an unrecognized type selector.
var ErrUnknownExportType = errors.New("invalid export type")

type Storage interface {
	GetEmployees(ctx context.Context, search string) ([]storage.Employee, error)
	GetProjects(ctx context.Context, search string) ([]storage.ProjectDetails, error)
	GetWeeklyHours(ctx context.Context, filter storage.WeeklyHoursFilter) ([]storage.WeeklyHoursRow, error)
}

type Service struct {
	storage Storage
}

func New(storage Storage) *Service {
	return &Service{storage: storage}
}

// Export renders one entity table as a plain workbook. The weekly_hours sheet
// uses the same column contract the bulk importer recognizes, so an exported
// file can be imported back.
func (s *Service) Export(ctx context.Context, exportType string) ([]byte, error) {
	const op = "export.Export"

	var (
		header []string
		rows   [][]interface{}
	)

	switch exportType {
	case TypeEmployees:
		employees, err := s.storage.GetEmployees(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		header = []string{"Name", "Email", "Role"}
		for _, e := range employees {
			rows = append(rows, []interface{}{e.Name, e.Email, e.Role})
		}

	case TypeProjects:
		projects, err := s.storage.GetProjects(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		header = []string{"Project Name", "Duration (Months)", "Start Month", "Start Year", "End Month", "End Year"}
		for _, p := range projects {
			rows = append(rows, []interface{}{p.Name, p.DurationMonths, p.StartMonth, p.StartYear, p.EndMonth, p.EndYear})
		}

	case TypeWeeklyHours:
		facts, err := s.storage.GetWeeklyHours(ctx, storage.WeeklyHoursFilter{})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		header = []string{"Emp Name", "Project Name", "Function", "Week Days", "Hours"}
		for _, wh := range facts {
			rows = append(rows, []interface{}{wh.EmployeeName, wh.ProjectName, wh.FunctionName, wh.WeekStartDate, wh.HoursWorked})
		}

	default:
		return nil, ErrUnknownExportType
	}

	return renderSheet(header, rows)
}

func renderSheet(header []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, name := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	f.SetCellStyle(sheet, "A1", last, headerStyle)

	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	for i, name := range header {
		width := len(name)
		for _, row := range rows {
			if s := fmt.Sprint(row[i]); len(s) > width {
				width = len(s)
			}
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, float64(width+2))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
