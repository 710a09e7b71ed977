package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"workload-tracker/internal/storage"
)

func (s *Storage) GetAssignmentByPair(ctx context.Context, employeeID, projectID int64) (*storage.Assignment, error) {
	const op = "storage.mysql.GetAssignmentByPair"

	var a storage.Assignment
	err := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, project_id, assigned_hours_per_week,
		       assigned_start_month, assigned_start_year, assigned_end_month, assigned_end_year
		FROM assignments
		WHERE employee_id = ? AND project_id = ?
		ORDER BY id ASC
		LIMIT 1`, employeeID, projectID).
		Scan(&a.ID, &a.EmployeeID, &a.ProjectID, &a.AssignedHoursPerWeek,
			&a.AssignedStartMonth, &a.AssignedStartYear, &a.AssignedEndMonth, &a.AssignedEndYear)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

func (s *Storage) GetAssignmentByID(ctx context.Context, id int64) (*storage.AssignmentDetails, error) {
	const op = "storage.mysql.GetAssignmentByID"

	var a storage.AssignmentDetails
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.employee_id, a.project_id, a.assigned_hours_per_week,
		       a.assigned_start_month, a.assigned_start_year, a.assigned_end_month, a.assigned_end_year,
		       e.name, p.name
		FROM assignments a
		JOIN employees e ON e.id = a.employee_id
		JOIN projects p ON p.id = a.project_id
		WHERE a.id = ?`, id).
		Scan(&a.ID, &a.EmployeeID, &a.ProjectID, &a.AssignedHoursPerWeek,
			&a.AssignedStartMonth, &a.AssignedStartYear, &a.AssignedEndMonth, &a.AssignedEndYear,
			&a.EmployeeName, &a.ProjectName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

func (s *Storage) CreateAssignment(ctx context.Context, a storage.Assignment) (int64, error) {
	const op = "storage.mysql.CreateAssignment"

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO assignments
		(employee_id, project_id, assigned_hours_per_week,
		 assigned_start_month, assigned_start_year, assigned_end_month, assigned_end_year)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.EmployeeID, a.ProjectID, a.AssignedHoursPerWeek,
		a.AssignedStartMonth, a.AssignedStartYear, a.AssignedEndMonth, a.AssignedEndYear)
	if err != nil {
		if translated := translateErr(err); errors.Is(translated, storage.ErrExists) {
			return 0, translated
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}
	return id, nil
}

func (s *Storage) DeleteAssignment(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteAssignment"

	var dependents int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM weekly_hours WHERE assignment_id = ?`, id).Scan(&dependents)
	if err != nil {
		return fmt.Errorf("%s: count weekly hours: %w", op, err)
	}
	if dependents > 0 {
		return &storage.DependentsError{Kind: "weekly hour", Count: dependents}
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Storage) GetAllAssignments(ctx context.Context) ([]storage.Assignment, error) {
	const op = "storage.mysql.GetAllAssignments"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, project_id, assigned_hours_per_week,
		       assigned_start_month, assigned_start_year, assigned_end_month, assigned_end_year
		FROM assignments`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var assignments []storage.Assignment
	for rows.Next() {
		var a storage.Assignment
		err := rows.Scan(&a.ID, &a.EmployeeID, &a.ProjectID, &a.AssignedHoursPerWeek,
			&a.AssignedStartMonth, &a.AssignedStartYear, &a.AssignedEndMonth, &a.AssignedEndYear)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// GetAssignmentsGrouped returns assignments grouped per employee, optionally
// filtered by employee name, project name or role.
func (s *Storage) GetAssignmentsGrouped(ctx context.Context, search string) ([]storage.EmployeeAssignments, error) {
	const op = "storage.mysql.GetAssignmentsGrouped"

	query := `
		SELECT a.id, a.assigned_hours_per_week,
		       a.assigned_start_month, a.assigned_start_year, a.assigned_end_month, a.assigned_end_year,
		       e.id, e.name, e.email, e.role,
		       p.id, p.name
		FROM assignments a
		JOIN employees e ON e.id = a.employee_id
		JOIN projects p ON p.id = a.project_id`
	var args []interface{}
	if search != "" {
		query += ` WHERE e.name LIKE ? OR p.name LIKE ? OR e.role LIKE ?`
		like := "%" + search + "%"
		args = append(args, like, like, like)
	}
	query += ` ORDER BY e.name ASC, a.id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var grouped []storage.EmployeeAssignments
	byEmployee := make(map[int64]int)

	for rows.Next() {
		var (
			ref        storage.AssignedProjectRef
			emp        storage.Employee
			startMonth string
			startYear  int
			endMonth   string
			endYear    int
		)
		err := rows.Scan(&ref.AssignmentID, &ref.HoursPerWeek,
			&startMonth, &startYear, &endMonth, &endYear,
			&emp.ID, &emp.Name, &emp.Email, &emp.Role,
			&ref.ProjectID, &ref.ProjectName)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		ref.AssignedStart = fmt.Sprintf("%s %d", startMonth, startYear)
		ref.AssignedEnd = fmt.Sprintf("%s %d", endMonth, endYear)

		idx, ok := byEmployee[emp.ID]
		if !ok {
			grouped = append(grouped, storage.EmployeeAssignments{Employee: emp})
			idx = len(grouped) - 1
			byEmployee[emp.ID] = idx
		}
		grouped[idx].Projects = append(grouped[idx].Projects, ref)
	}

	return grouped, rows.Err()
}
