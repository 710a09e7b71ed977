package workload

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"workload-tracker/internal/storage"
)

// hoursPerMonthApprox approximates a fully loaded month as four normal weeks.
const hoursPerMonthApprox = storage.NormalWeeklyHours * 4

type Storage interface {
	GetEmployees(ctx context.Context, search string) ([]storage.Employee, error)
	GetAllAssignments(ctx context.Context) ([]storage.Assignment, error)
	GetAllWeeklyHours(ctx context.Context) ([]storage.WeeklyHours, error)
}

type Service struct {
	storage Storage
}

func New(storage Storage) *Service {
	return &Service{storage: storage}
}

type MonthLoad struct {
	MonthYear      string  `json:"month_year"`
	Load           int     `json:"load"`
	LoadPercentage float64 `json:"load_percentage"`
}

type EmployeeLoad struct {
	Employee     storage.Employee `json:"employee"`
	MonthlyLoads []MonthLoad      `json:"monthly_loads"`
}

type Overview struct {
	EmployeeMonthlyLoad []EmployeeLoad `json:"employee_monthly_load"`
	Months              []string       `json:"months"`
	NormalHours         int            `json:"normal_hours"`
}

// MonthlyOverview estimates each employee's load for a window of months:
// actual hours when any were recorded in the month, the assigned weekly hours
// times four otherwise.
func (s *Service) MonthlyOverview(ctx context.Context, startMonth, startYear, numMonths int, search string) (*Overview, error) {
	const op = "workload.MonthlyOverview"

	var (
		employees   []storage.Employee
		assignments []storage.Assignment
		facts       []storage.WeeklyHours
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.storage.GetEmployees(gctx, search)
		return err
	})
	g.Go(func() error {
		var err error
		assignments, err = s.storage.GetAllAssignments(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		facts, err = s.storage.GetAllWeeklyHours(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	factsByAssignment := make(map[int64][]storage.WeeklyHours)
	for _, f := range facts {
		factsByAssignment[f.AssignmentID] = append(factsByAssignment[f.AssignmentID], f)
	}
	assignmentsByEmployee := make(map[int64][]storage.Assignment)
	for _, a := range assignments {
		assignmentsByEmployee[a.EmployeeID] = append(assignmentsByEmployee[a.EmployeeID], a)
	}

	overview := &Overview{NormalHours: storage.NormalWeeklyHours}

	month := time.Date(startYear, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < numMonths; i++ {
		overview.Months = append(overview.Months, month.Format("Jan 2006"))
		month = month.AddDate(0, 1, 0)
	}

	for _, emp := range employees {
		load := EmployeeLoad{Employee: emp}

		month = time.Date(startYear, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < numMonths; i++ {
			monthStart := month
			monthEnd := month.AddDate(0, 1, -1)

			assigned := 0
			actual := 0
			for _, a := range assignmentsByEmployee[emp.ID] {
				if !assignmentCovers(a, monthStart, monthEnd) {
					continue
				}
				assigned += a.AssignedHoursPerWeek * 4
				for _, f := range factsByAssignment[a.ID] {
					week := dateOnly(f.WeekStartDate)
					if !week.Before(monthStart) && !week.After(monthEnd) {
						actual += f.HoursWorked
					}
				}
			}

			total := assigned
			if actual > 0 {
				total = actual
			}
			load.MonthlyLoads = append(load.MonthlyLoads, MonthLoad{
				MonthYear:      month.Format("Jan 2006"),
				Load:           total,
				LoadPercentage: float64(total) / float64(hoursPerMonthApprox) * 100,
			})

			month = month.AddDate(0, 1, 0)
		}

		overview.EmployeeMonthlyLoad = append(overview.EmployeeMonthlyLoad, load)
	}

	return overview, nil
}

// assignmentCovers reports whether the assignment's month window overlaps the
// given month.
func assignmentCovers(a storage.Assignment, monthStart, monthEnd time.Time) bool {
	startMonth := monthIndex(a.AssignedStartMonth)
	endMonth := monthIndex(a.AssignedEndMonth)
	if startMonth == 0 || endMonth == 0 {
		return false
	}

	assignedStart := time.Date(a.AssignedStartYear, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
	assignedEnd := time.Date(a.AssignedEndYear, time.Month(endMonth), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)

	return !assignedStart.After(monthEnd) && !assignedEnd.Before(monthStart)
}

func monthIndex(name string) int {
	for i, m := range storage.MonthNames {
		if m == name {
			return i + 1
		}
	}
	return 0
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
