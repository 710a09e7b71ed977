package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"workload-tracker/internal/storage"
)

// ErrNoData means there are no facts to report on.
var ErrNoData = errors.New("no data available to export")

type Storage interface {
	GetWorkloadFacts(ctx context.Context) ([]storage.WorkloadFact, error)
}

type Service struct {
	storage Storage
}

func New(storage Storage) *Service {
	return &Service{storage: storage}
}

// Generate builds the full utilization crosstab and renders it as a workbook.
func (s *Service) Generate(ctx context.Context) ([]byte, error) {
	const op = "report.Generate"

	facts, err := s.storage.GetWorkloadFacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(facts) == 0 {
		return nil, ErrNoData
	}

	data, err := Render(BuildMatrix(facts))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

// Week is one distinct week column pair in the crosstab.
type Week struct {
	Start time.Time
	Label string
}

// Cell is one employee/week total. HasValue distinguishes a genuine zero from
// a week the employee has no facts for.
type Cell struct {
	Hours    int
	HasValue bool
	Status   string
}

type Row struct {
	SNo      int
	Employee string
	Cells    []Cell // one per Matrix.Weeks entry, same order
}

// Matrix is the employee × week pivot of the weekly-hours fact table.
type Matrix struct {
	Weeks []Week
	Rows  []Row
}

// BuildMatrix pivots facts into one row per employee (sorted by name) and two
// logical columns per distinct week, summing hours across functions and
// projects within each employee/week.
func BuildMatrix(facts []storage.WorkloadFact) *Matrix {
	totals := make(map[string]map[time.Time]int)
	weekSet := make(map[time.Time]struct{})

	for _, f := range facts {
		week := f.WeekStartDate
		weekSet[week] = struct{}{}
		if totals[f.EmployeeName] == nil {
			totals[f.EmployeeName] = make(map[time.Time]int)
		}
		totals[f.EmployeeName][week] += f.HoursWorked
	}

	weeks := make([]Week, 0, len(weekSet))
	for w := range weekSet {
		weeks = append(weeks, Week{Start: w, Label: WeekLabel(w)})
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Start.Before(weeks[j].Start) })

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]Row, 0, len(names))
	for i, name := range names {
		row := Row{SNo: i + 1, Employee: name, Cells: make([]Cell, len(weeks))}
		for j, w := range weeks {
			if hours, ok := totals[name][w.Start]; ok {
				row.Cells[j] = Cell{Hours: hours, HasValue: true, Status: storage.HoursStatus(hours)}
			}
		}
		rows = append(rows, row)
	}

	return &Matrix{Weeks: weeks, Rows: rows}
}

// WeekLabel renders the merged header text for one week column pair, e.g.
// "WK25 (Jun 17 - Jun 23)".
func WeekLabel(start time.Time) string {
	_, weekNum := start.ISOWeek()
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf("WK%d (%s - %s)", weekNum, start.Format("Jan 02"), end.Format("Jan 02"))
}

// Tone is the visual bucket of one hours cell.
type Tone int

const (
	ToneNone   Tone = iota
	ToneRed         // overloaded
	ToneOrange      // under-utilized but working
	ToneGreen       // exactly a normal week
	ToneGrey        // zero or blank
)

// CellTone classifies a populated-or-blank hours cell purely from its value
// and the status already computed for it.
func CellTone(c Cell) Tone {
	if !c.HasValue {
		return ToneGrey
	}
	switch {
	case c.Status == "Overloaded":
		return ToneRed
	case c.Status == "Free" && c.Hours > 0:
		return ToneOrange
	case c.Status == "Normal" && c.Hours == storage.NormalWeeklyHours:
		return ToneGreen
	case c.Hours == 0:
		return ToneGrey
	}
	return ToneNone
}
