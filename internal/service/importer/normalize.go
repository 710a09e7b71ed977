package importer

import (
	"fmt"
	"strings"
)

// rawRecord is a single spreadsheet row after role mapping and defaulting,
// ready for date and hours resolution.
type rawRecord struct {
	EmpName      string
	ProjectName  string
	FunctionName string
	WeekRaw      string
	HoursRaw     string
}

const defaultFunctionName = "General"

// normalizeRow extracts the five role-mapped cells, defaulting what is absent.
// rowNum is the 1-based spreadsheet row used for synthetic placeholders and
// notes. A row is dropped (ok=false) only when employee, project, week and
// hours are all blank at once.
func normalizeRow(t *Table, mapping map[Role]string, row []string, rowNum int) (rawRecord, bool) {
	empName := cleanCell(t.Cell(row, mapping[RoleEmployee]))
	projectName := cleanCell(t.Cell(row, mapping[RoleProject]))
	functionName := cleanCell(t.Cell(row, mapping[RoleFunction]))
	weekRaw := cleanCell(t.Cell(row, mapping[RoleWeek]))
	hoursRaw := cleanCell(t.Cell(row, mapping[RoleHours]))

	if empName == "" && projectName == "" && weekRaw == "" && hoursRaw == "" {
		return rawRecord{}, false
	}

	if empName == "" {
		empName = fmt.Sprintf("Employee_%d", rowNum)
	}
	if projectName == "" {
		projectName = fmt.Sprintf("Project_%d", rowNum)
	}
	if functionName == "" {
		functionName = defaultFunctionName
	}

	return rawRecord{
		EmpName:      empName,
		ProjectName:  projectName,
		FunctionName: functionName,
		WeekRaw:      weekRaw,
		HoursRaw:     hoursRaw,
	}, true
}

// cleanCell trims and collapses the sentinel strings spreadsheets leave in
// place of missing values.
func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "nan", "none":
		return ""
	}
	return v
}
