package storage

type Project struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	DurationMonths int    `json:"duration_months"`
	StartMonth     string `json:"start_month"`
	StartYear      int    `json:"start_year"`
	EndMonth       string `json:"end_month"`
	EndYear        int    `json:"end_year"`
}

// ProjectDetails is a project together with everyone assigned to it.
type ProjectDetails struct {
	Project
	Assignments []ProjectAssignment `json:"assignments"`
}

type ProjectAssignment struct {
	EmployeeID           int64  `json:"employee_id"`
	EmployeeName         string `json:"employee_name"`
	Position             string `json:"position"`
	AssignedHoursPerWeek int    `json:"assigned_hours_per_week"`
	AssignedStartMonth   string `json:"assigned_start_month"`
	AssignedStartYear    int    `json:"assigned_start_year"`
	AssignedEndMonth     string `json:"assigned_end_month"`
	AssignedEndYear      int    `json:"assigned_end_year"`
}

var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName maps a 1-based month number to its full name.
func MonthName(n int) (string, bool) {
	if n < 1 || n > 12 {
		return "", false
	}
	return MonthNames[n-1], true
}

// ValidMonthName reports whether s is a full English month name.
func ValidMonthName(s string) bool {
	for _, m := range MonthNames {
		if m == s {
			return true
		}
	}
	return false
}
