package report

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Actual Hours Report"

var fixedColumns = []string{"S.No.", "Employee Name"}

// Render writes the crosstab to a workbook: a merged per-week header row, a
// Working Hours/Status sub-header row, bold body rows with tone-colored hour
// cells, auto-sized columns and frozen panes past the headers.
func Render(m *Matrix) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheetName)

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, err
	}

	// Header row 1: fixed labels, then one merged label per week.
	for i, name := range fixedColumns {
		cell := cellName(i+1, 1)
		f.SetCellValue(sheetName, cell, name)
		f.SetCellStyle(sheetName, cell, cell, styles.header)
	}
	for w, week := range m.Weeks {
		left := cellName(len(fixedColumns)+w*2+1, 1)
		right := cellName(len(fixedColumns)+w*2+2, 1)
		f.MergeCell(sheetName, left, right)
		f.SetCellValue(sheetName, left, week.Label)
		f.SetCellStyle(sheetName, left, right, styles.header)

		// Header row 2: the two sub-columns under each week.
		hoursCell := cellName(len(fixedColumns)+w*2+1, 2)
		statusCell := cellName(len(fixedColumns)+w*2+2, 2)
		f.SetCellValue(sheetName, hoursCell, "Working Hours")
		f.SetCellValue(sheetName, statusCell, "Status")
		f.SetCellStyle(sheetName, hoursCell, statusCell, styles.subHeader)
	}

	for r, row := range m.Rows {
		rowNum := r + 3

		snoCell := cellName(1, rowNum)
		f.SetCellValue(sheetName, snoCell, row.SNo)
		f.SetCellStyle(sheetName, snoCell, snoCell, styles.bold)

		nameCell := cellName(2, rowNum)
		f.SetCellValue(sheetName, nameCell, row.Employee)
		f.SetCellStyle(sheetName, nameCell, nameCell, styles.bold)

		for w, cell := range row.Cells {
			hoursCell := cellName(len(fixedColumns)+w*2+1, rowNum)
			statusCell := cellName(len(fixedColumns)+w*2+2, rowNum)

			if cell.HasValue {
				f.SetCellValue(sheetName, hoursCell, cell.Hours)
				f.SetCellValue(sheetName, statusCell, cell.Status)
			}
			f.SetCellStyle(sheetName, hoursCell, hoursCell, styles.forTone(CellTone(cell)))
			f.SetCellStyle(sheetName, statusCell, statusCell, styles.bold)
		}
	}

	applyColumnWidths(f, m)

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      len(fixedColumns),
		YSplit:      2,
		TopLeftCell: cellName(len(fixedColumns)+1, 3),
		ActivePane:  "bottomRight",
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// applyColumnWidths sizes every column to the longer of its header text and
// its content, plus padding.
func applyColumnWidths(f *excelize.File, m *Matrix) {
	widths := make([]int, len(fixedColumns)+len(m.Weeks)*2)

	widths[0] = len(fixedColumns[0])
	widths[1] = len(fixedColumns[1])
	for _, row := range m.Rows {
		widths[0] = maxInt(widths[0], len(strconv.Itoa(row.SNo)))
		widths[1] = maxInt(widths[1], len(row.Employee))
	}

	for w, week := range m.Weeks {
		hoursIdx := len(fixedColumns) + w*2
		statusIdx := hoursIdx + 1
		widths[hoursIdx] = maxInt(len(week.Label), len("Working Hours"))
		widths[statusIdx] = maxInt(len(week.Label), len("Status"))
		for _, row := range m.Rows {
			cell := row.Cells[w]
			if !cell.HasValue {
				continue
			}
			widths[hoursIdx] = maxInt(widths[hoursIdx], len(strconv.Itoa(cell.Hours)))
			widths[statusIdx] = maxInt(widths[statusIdx], len(cell.Status))
		}
	}

	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, float64(width+2))
	}
}

type styleSet struct {
	header    int
	subHeader int
	bold      int
	red       int
	orange    int
	green     int
	grey      int
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	var (
		s   styleSet
		err error
	)

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	s.subHeader, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("sub header style: %w", err)
	}

	s.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("bold style: %w", err)
	}

	fills := []struct {
		dst      *int
		bg, font string
	}{
		{&s.red, "FFC7CE", "9C0006"},
		{&s.orange, "FFEB9C", "9C6500"},
		{&s.green, "C6EFCE", "006100"},
		{&s.grey, "F2F2F2", "666666"},
	}
	for _, fill := range fills {
		*fill.dst, err = f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: fill.font},
			Fill: excelize.Fill{Type: "pattern", Color: []string{fill.bg}, Pattern: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("fill style: %w", err)
		}
	}

	return &s, nil
}

func (s *styleSet) forTone(t Tone) int {
	switch t {
	case ToneRed:
		return s.red
	case ToneOrange:
		return s.orange
	case ToneGreen:
		return s.green
	case ToneGrey:
		return s.grey
	}
	return s.bold
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
