package storage

import "time"

// NormalWeeklyHours is the baseline against which workload status is judged.
const NormalWeeklyHours = 40

type WeeklyHours struct {
	ID            int64     `json:"id"`
	AssignmentID  int64     `json:"assignment_id"`
	WeekStartDate time.Time `json:"week_start_date"`
	HoursWorked   int       `json:"hours_worked"`
	FunctionName  string    `json:"function_name"`
}

// WeeklyHoursRow is a fact joined to its employee and project for listing.
type WeeklyHoursRow struct {
	ID            int64   `json:"id"`
	AssignmentID  int64   `json:"assignment_id"`
	EmployeeID    int64   `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	ProjectID     int64   `json:"project_id"`
	ProjectName   string  `json:"project_name"`
	WeekStartDate string  `json:"week_start_date"`
	HoursWorked   int     `json:"hours_worked"`
	FunctionName  string  `json:"function_name"`
	Percentage    float64 `json:"percentage"`
	Status        string  `json:"status"`
}

type WeeklyHoursFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
}

// WorkloadFact is the minimal projection the crosstab report pivots on.
type WorkloadFact struct {
	EmployeeName  string
	WeekStartDate time.Time
	HoursWorked   int
}

// HoursStatus classifies a weekly total against the 40-hour baseline.
func HoursStatus(hours int) string {
	switch {
	case hours > NormalWeeklyHours:
		return "Overloaded"
	case hours < NormalWeeklyHours:
		return "Free"
	default:
		return "Normal"
	}
}

// HoursPercentage is the share of a normal week the total represents.
func HoursPercentage(hours int) float64 {
	return float64(hours) / float64(NormalWeeklyHours) * 100
}
