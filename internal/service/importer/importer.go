package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"workload-tracker/internal/storage"
)

// Data type selectors accepted by the import endpoint.
const (
	DataTypeEmployees   = "employees"
	DataTypeProjects    = "projects"
	DataTypeActualHours = "actual_hours_bulk"
)

// ErrUnknownDataType rejects a request whose selector matches no import path.
var ErrUnknownDataType = errors.New("invalid data type specified for import")

type Storage interface {
	GetEmployeeByName(ctx context.Context, name string) (*storage.Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*storage.Employee, error)
	CreateEmployee(ctx context.Context, e storage.Employee) (int64, error)
	GetProjectByName(ctx context.Context, name string) (*storage.Project, error)
	CreateProject(ctx context.Context, p storage.Project) (int64, error)
	GetAssignmentByPair(ctx context.Context, employeeID, projectID int64) (*storage.Assignment, error)
	CreateAssignment(ctx context.Context, a storage.Assignment) (int64, error)
	GetWeeklyHoursFact(ctx context.Context, assignmentID int64, weekStart time.Time, functionName string) (*storage.WeeklyHours, error)
	CreateWeeklyHours(ctx context.Context, wh storage.WeeklyHours) (int64, error)
	UpdateWeeklyHoursWorked(ctx context.Context, id int64, hoursWorked int) error
}

type Service struct {
	storage Storage
	now     func() time.Time
}

func New(storage Storage) *Service {
	return &Service{storage: storage, now: time.Now}
}

// Result is the structured outcome of one import request. Notes is the audit
// trail: one human-readable entry per anomaly, in encounter order.
type Result struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Notes    []string `json:"errors,omitempty"`
}

func (r *Result) note(format string, args ...interface{}) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// Import parses the uploaded workbook and routes it to the selected import
// path. A returned error means the whole request was rejected before any row
// processing; per-row anomalies never surface as errors.
func (s *Service) Import(ctx context.Context, file io.Reader, dataType string) (*Result, error) {
	grid, err := readSheet(file)
	if err != nil {
		return nil, err
	}
	t := NewTable(grid)

	res := &Result{Success: true}
	switch dataType {
	case DataTypeEmployees:
		s.importEmployees(ctx, t, res)
	case DataTypeProjects:
		s.importProjects(ctx, t, res)
	case DataTypeActualHours:
		s.importActualHours(ctx, t, res)
	default:
		return nil, ErrUnknownDataType
	}
	return res, nil
}

// findColumn resolves a fixed-contract column label case-insensitively.
func findColumn(t *Table, label string) string {
	for _, col := range t.Columns {
		if strings.EqualFold(col, label) {
			return col
		}
	}
	return ""
}

func (s *Service) importEmployees(ctx context.Context, t *Table, res *Result) {
	nameCol := findColumn(t, "Name")
	emailCol := findColumn(t, "Email")
	roleCol := findColumn(t, "Position")

	for i, row := range t.Rows {
		rowNum := i + 2

		name := strings.TrimSpace(t.Cell(row, nameCol))
		email := strings.TrimSpace(t.Cell(row, emailCol))
		role := strings.TrimSpace(t.Cell(row, roleCol))

		if name == "" && email == "" && role == "" {
			continue
		}
		if name == "" || email == "" || role == "" {
			res.note("Row %d (Employee): Missing Name, Email, or Position. Skipped.", rowNum)
			res.Skipped++
			continue
		}
		if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
			res.note("Row %d (Employee): Invalid email format for '%s'. Skipped.", rowNum, email)
			res.Skipped++
			continue
		}

		if _, err := s.storage.GetEmployeeByEmail(ctx, email); err == nil {
			res.note("Row %d (Employee): Employee with email '%s' already exists, skipped.", rowNum, email)
			res.Skipped++
			continue
		} else if !errors.Is(err, storage.ErrNotFound) {
			res.note("Row %d (Employee): Error importing employee '%s' (%s): %v. Skipped.", rowNum, name, email, err)
			res.Skipped++
			continue
		}

		_, err := s.storage.CreateEmployee(ctx, storage.Employee{Name: name, Email: email, Role: role})
		switch {
		case errors.Is(err, storage.ErrExists):
			res.note("Row %d (Employee): Employee '%s' (%s) already exists. Skipped.", rowNum, name, email)
			res.Skipped++
		case err != nil:
			res.note("Row %d (Employee): Error importing employee '%s' (%s): %v. Skipped.", rowNum, name, email, err)
			res.Skipped++
		default:
			res.Imported++
		}
	}

	res.Message = fmt.Sprintf("Employees import complete. Imported: %d, Skipped: %d.", res.Imported, res.Skipped)
	if len(res.Notes) > 0 {
		res.Message += " Errors encountered."
	}
}

func (s *Service) importProjects(ctx context.Context, t *Table, res *Result) {
	nameCol := findColumn(t, "Project Name")
	durationCol := findColumn(t, "Duration (Months)")
	startMonthCol := findColumn(t, "Start Month")
	startYearCol := findColumn(t, "Start Year")
	endMonthCol := findColumn(t, "End Month")
	endYearCol := findColumn(t, "End Year")

	for i, row := range t.Rows {
		rowNum := i + 2

		name := strings.TrimSpace(t.Cell(row, nameCol))
		duration := strings.TrimSpace(t.Cell(row, durationCol))
		startMonth := strings.TrimSpace(t.Cell(row, startMonthCol))
		startYear := strings.TrimSpace(t.Cell(row, startYearCol))
		endMonth := strings.TrimSpace(t.Cell(row, endMonthCol))
		endYear := strings.TrimSpace(t.Cell(row, endYearCol))

		if name == "" && duration == "" && startMonth == "" && startYear == "" && endMonth == "" && endYear == "" {
			continue
		}
		if name == "" || duration == "" || startMonth == "" || startYear == "" || endMonth == "" || endYear == "" {
			res.note("Row %d (Project): Missing project data. Skipped.", rowNum)
			res.Skipped++
			continue
		}

		if _, err := s.storage.GetProjectByName(ctx, name); err == nil {
			res.note("Row %d (Project): Project with name '%s' already exists, skipped.", rowNum, name)
			res.Skipped++
			continue
		} else if !errors.Is(err, storage.ErrNotFound) {
			res.note("Row %d (Project): Error importing project '%s': %v. Skipped.", rowNum, name, err)
			res.Skipped++
			continue
		}

		if !storage.ValidMonthName(startMonth) || !storage.ValidMonthName(endMonth) {
			res.note("Row %d (Project): Invalid month name for project '%s'. Skipped.", rowNum, name)
			res.Skipped++
			continue
		}

		durationMonths, err1 := strconv.Atoi(duration)
		startYearNum, err2 := strconv.Atoi(startYear)
		endYearNum, err3 := strconv.Atoi(endYear)
		if err1 != nil || err2 != nil || err3 != nil {
			res.note("Row %d (Project): Invalid number format for project '%s' duration/year. Skipped.", rowNum, name)
			res.Skipped++
			continue
		}

		_, err := s.storage.CreateProject(ctx, storage.Project{
			Name:           name,
			DurationMonths: durationMonths,
			StartMonth:     startMonth,
			StartYear:      startYearNum,
			EndMonth:       endMonth,
			EndYear:        endYearNum,
		})
		switch {
		case errors.Is(err, storage.ErrExists):
			res.note("Row %d (Project): Project '%s' already exists. Skipped.", rowNum, name)
			res.Skipped++
		case err != nil:
			res.note("Row %d (Project): Error importing project '%s': %v. Skipped.", rowNum, name, err)
			res.Skipped++
		default:
			res.Imported++
		}
	}

	res.Message = fmt.Sprintf("Projects import complete. Imported: %d, Skipped: %d.", res.Imported, res.Skipped)
	if len(res.Notes) > 0 {
		res.Message += " Errors encountered."
	}
}

// importActualHours is the tolerant bulk pipeline: classify columns, normalize
// and resolve every row, aggregate duplicates, then reconcile each aggregated
// tuple against master records one at a time.
func (s *Service) importActualHours(ctx context.Context, t *Table, res *Result) {
	mapping := Classify(t.Columns, t.Samples(10))

	agg := newAggregate()
	for i, row := range t.Rows {
		rowNum := i + 2

		rec, keep := normalizeRow(t, mapping, row, rowNum)
		if !keep {
			continue
		}

		week, parsed := resolveWeekDate(rec.WeekRaw, s.now())
		if !parsed {
			res.note("Row %d: Could not parse date '%s', using current date", rowNum, rec.WeekRaw)
		}

		hours, parsed := resolveHours(rec.HoursRaw)
		if !parsed {
			res.note("Row %d: Could not parse hours '%s', using default 8 hours", rowNum, rec.HoursRaw)
		}

		agg.Add(factKey{
			EmpName:      rec.EmpName,
			ProjectName:  rec.ProjectName,
			FunctionName: rec.FunctionName,
			WeekStart:    week,
		}, hours)
	}

	c := newCaches()
	for _, entry := range agg.Entries() {
		outcome, err := s.reconcile(ctx, c, entry, res)
		switch outcome {
		case tupleCreated, tupleUpdated:
			res.Imported++
		case tupleConflict:
			res.note("Integrity conflict for (%s, %s, %s, %s). Record may already exist.",
				entry.EmpName, entry.ProjectName, entry.FunctionName, entry.WeekStart.Format("2006-01-02"))
		case tupleError:
			res.note("Error during save for (%s, %s, %s, %s): %v. Continuing with next record.",
				entry.EmpName, entry.ProjectName, entry.FunctionName, entry.WeekStart.Format("2006-01-02"), err)
		}
	}

	res.Message = fmt.Sprintf("Excel import successful! Processed %d unique entries. Successfully imported/updated %d records.",
		agg.Len(), res.Imported)
	if len(res.Notes) > 0 {
		res.Message += fmt.Sprintf(" Found %d data adjustments and processing notes (details below).", len(res.Notes))
	}
}

type tupleOutcome int

const (
	tupleCreated tupleOutcome = iota
	tupleUpdated
	tupleUnchanged
	tupleConflict
	tupleError
)

// caches are request-local lookup maps keyed by natural identifiers; they are
// never shared across imports.
type caches struct {
	employees   map[string]*storage.Employee
	projects    map[string]*storage.Project
	assignments map[[2]int64]*storage.Assignment
}

func newCaches() *caches {
	return &caches{
		employees:   make(map[string]*storage.Employee),
		projects:    make(map[string]*storage.Project),
		assignments: make(map[[2]int64]*storage.Assignment),
	}
}

// reconcile maps one aggregated tuple onto existing or newly created master
// records and upserts the weekly-hours fact. Each step is committed on its
// own; a uniqueness conflict anywhere means the tuple is already recorded.
func (s *Service) reconcile(ctx context.Context, c *caches, entry factEntry, res *Result) (tupleOutcome, error) {
	employee, outcome, err := s.resolveEmployee(ctx, c, entry.EmpName, res)
	if employee == nil {
		return outcome, err
	}

	project, outcome, err := s.resolveProject(ctx, c, entry.ProjectName, res)
	if project == nil {
		return outcome, err
	}

	assignment, outcome, err := s.resolveAssignment(ctx, c, employee, project, res)
	if assignment == nil {
		return outcome, err
	}

	existing, err := s.storage.GetWeeklyHoursFact(ctx, assignment.ID, entry.WeekStart, entry.FunctionName)
	switch {
	case err == nil:
		if existing.HoursWorked == entry.Hours {
			return tupleUnchanged, nil
		}
		if err := s.storage.UpdateWeeklyHoursWorked(ctx, existing.ID, entry.Hours); err != nil {
			return tupleError, err
		}
		return tupleUpdated, nil
	case errors.Is(err, storage.ErrNotFound):
		_, err := s.storage.CreateWeeklyHours(ctx, storage.WeeklyHours{
			AssignmentID:  assignment.ID,
			WeekStartDate: entry.WeekStart,
			HoursWorked:   entry.Hours,
			FunctionName:  entry.FunctionName,
		})
		if errors.Is(err, storage.ErrExists) {
			return tupleConflict, err
		}
		if err != nil {
			return tupleError, err
		}
		return tupleCreated, nil
	default:
		return tupleError, err
	}
}

func (s *Service) resolveEmployee(ctx context.Context, c *caches, name string, res *Result) (*storage.Employee, tupleOutcome, error) {
	if e, ok := c.employees[name]; ok {
		return e, tupleUnchanged, nil
	}

	e, err := s.storage.GetEmployeeByName(ctx, name)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, tupleError, err
	}
	if e == nil {
		email, err := s.placeholderEmail(ctx, name)
		if err != nil {
			return nil, tupleError, err
		}
		id, err := s.storage.CreateEmployee(ctx, storage.Employee{Name: name, Email: email, Role: "Imported"})
		if errors.Is(err, storage.ErrExists) {
			return nil, tupleConflict, err
		}
		if err != nil {
			return nil, tupleError, err
		}
		e = &storage.Employee{ID: id, Name: name, Email: email, Role: "Imported"}
		res.note("Created new employee '%s' (temp email: %s).", name, email)
	}

	c.employees[name] = e
	return e, tupleUnchanged, nil
}

func (s *Service) resolveProject(ctx context.Context, c *caches, name string, res *Result) (*storage.Project, tupleOutcome, error) {
	if p, ok := c.projects[name]; ok {
		return p, tupleUnchanged, nil
	}

	p, err := s.storage.GetProjectByName(ctx, name)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, tupleError, err
	}
	if p == nil {
		year := s.now().Year()
		candidate := storage.Project{
			Name:           name,
			DurationMonths: 12,
			StartMonth:     "January",
			StartYear:      year,
			EndMonth:       "December",
			EndYear:        year + 1,
		}
		id, err := s.storage.CreateProject(ctx, candidate)
		if errors.Is(err, storage.ErrExists) {
			return nil, tupleConflict, err
		}
		if err != nil {
			return nil, tupleError, err
		}
		candidate.ID = id
		p = &candidate
		res.note("Created new project '%s'.", name)
	}

	c.projects[name] = p
	return p, tupleUnchanged, nil
}

func (s *Service) resolveAssignment(ctx context.Context, c *caches, employee *storage.Employee, project *storage.Project, res *Result) (*storage.Assignment, tupleOutcome, error) {
	key := [2]int64{employee.ID, project.ID}
	if a, ok := c.assignments[key]; ok {
		return a, tupleUnchanged, nil
	}

	a, err := s.storage.GetAssignmentByPair(ctx, employee.ID, project.ID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, tupleError, err
	}
	if a == nil {
		year := s.now().Year()
		candidate := storage.Assignment{
			EmployeeID:           employee.ID,
			ProjectID:            project.ID,
			AssignedHoursPerWeek: storage.NormalWeeklyHours,
			AssignedStartMonth:   "January",
			AssignedStartYear:    year,
			AssignedEndMonth:     "December",
			AssignedEndYear:      year + 1,
		}
		id, err := s.storage.CreateAssignment(ctx, candidate)
		if errors.Is(err, storage.ErrExists) {
			return nil, tupleConflict, err
		}
		if err != nil {
			return nil, tupleError, err
		}
		candidate.ID = id
		a = &candidate
		res.note("Created new assignment for '%s' on '%s'.", employee.Name, project.Name)
	}

	c.assignments[key] = a
	return a, tupleUnchanged, nil
}

// placeholderEmail builds a synthetic unique email for an employee discovered
// only through bulk import, appending a numeric suffix until it is free.
func (s *Service) placeholderEmail(ctx context.Context, name string) (string, error) {
	base := strings.ReplaceAll(strings.ToLower(name), " ", ".")

	email := base + ".temp@example.com"
	for n := 1; ; n++ {
		_, err := s.storage.GetEmployeeByEmail(ctx, email)
		if errors.Is(err, storage.ErrNotFound) {
			return email, nil
		}
		if err != nil {
			return "", err
		}
		email = fmt.Sprintf("%s%d.temp@example.com", base, n)
	}
}
