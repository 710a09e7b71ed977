package storage

type Assignment struct {
	ID                   int64  `json:"id"`
	EmployeeID           int64  `json:"employee_id"`
	ProjectID            int64  `json:"project_id"`
	AssignedHoursPerWeek int    `json:"assigned_hours_per_week"`
	AssignedStartMonth   string `json:"assigned_start_month"`
	AssignedStartYear    int    `json:"assigned_start_year"`
	AssignedEndMonth     string `json:"assigned_end_month"`
	AssignedEndYear      int    `json:"assigned_end_year"`
}

// AssignmentDetails carries the names needed for user-facing messages.
type AssignmentDetails struct {
	Assignment
	EmployeeName string `json:"employee_name"`
	ProjectName  string `json:"project_name"`
}

// EmployeeAssignments groups one employee's project assignments.
type EmployeeAssignments struct {
	Employee Employee             `json:"employee"`
	Projects []AssignedProjectRef `json:"projects"`
}

type AssignedProjectRef struct {
	AssignmentID  int64  `json:"assignment_id"`
	ProjectID     int64  `json:"project_id"`
	ProjectName   string `json:"project_name"`
	HoursPerWeek  int    `json:"hours_per_week"`
	AssignedStart string `json:"assigned_start"`
	AssignedEnd   string `json:"assigned_end"`
}
