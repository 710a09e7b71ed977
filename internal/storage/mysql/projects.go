package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"workload-tracker/internal/storage"
)

func (s *Storage) GetProjects(ctx context.Context, search string) ([]storage.ProjectDetails, error) {
	const op = "storage.mysql.GetProjects"

	query := `SELECT id, name, duration_months, start_month, start_year, end_month, end_year FROM projects`
	var args []interface{}
	if search != "" {
		query += ` WHERE name LIKE ?`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var projects []storage.ProjectDetails
	for rows.Next() {
		var p storage.ProjectDetails
		if err := rows.Scan(&p.ID, &p.Name, &p.DurationMonths, &p.StartMonth, &p.StartYear, &p.EndMonth, &p.EndYear); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range projects {
		assignments, err := s.projectAssignments(ctx, projects[i].ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		projects[i].Assignments = assignments
	}

	return projects, nil
}

func (s *Storage) projectAssignments(ctx context.Context, projectID int64) ([]storage.ProjectAssignment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.name, e.role,
		       a.assigned_hours_per_week,
		       a.assigned_start_month, a.assigned_start_year,
		       a.assigned_end_month, a.assigned_end_year
		FROM assignments a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.project_id = ?
		ORDER BY e.name ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []storage.ProjectAssignment
	for rows.Next() {
		var a storage.ProjectAssignment
		err := rows.Scan(&a.EmployeeID, &a.EmployeeName, &a.Position,
			&a.AssignedHoursPerWeek,
			&a.AssignedStartMonth, &a.AssignedStartYear,
			&a.AssignedEndMonth, &a.AssignedEndYear)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (s *Storage) GetProjectByID(ctx context.Context, id int64) (*storage.Project, error) {
	const op = "storage.mysql.GetProjectByID"
	return s.getProject(ctx, op,
		`SELECT id, name, duration_months, start_month, start_year, end_month, end_year FROM projects WHERE id = ?`, id)
}

func (s *Storage) GetProjectByName(ctx context.Context, name string) (*storage.Project, error) {
	const op = "storage.mysql.GetProjectByName"
	return s.getProject(ctx, op,
		`SELECT id, name, duration_months, start_month, start_year, end_month, end_year FROM projects WHERE name = ?`, name)
}

func (s *Storage) getProject(ctx context.Context, op, query string, arg interface{}) (*storage.Project, error) {
	var p storage.Project
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&p.ID, &p.Name, &p.DurationMonths, &p.StartMonth, &p.StartYear, &p.EndMonth, &p.EndYear)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func (s *Storage) CreateProject(ctx context.Context, p storage.Project) (int64, error) {
	const op = "storage.mysql.CreateProject"

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (name, duration_months, start_month, start_year, end_month, end_year)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, p.DurationMonths, p.StartMonth, p.StartYear, p.EndMonth, p.EndYear)
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

func (s *Storage) DeleteProject(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteProject"

	var dependents int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM assignments WHERE project_id = ?`, id).Scan(&dependents)
	if err != nil {
		return fmt.Errorf("%s: count assignments: %w", op, err)
	}
	if dependents > 0 {
		return &storage.DependentsError{Kind: "assignment", Count: dependents}
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
