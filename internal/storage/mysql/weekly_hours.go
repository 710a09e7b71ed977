package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"workload-tracker/internal/storage"
)

func (s *Storage) GetWeeklyHoursFact(ctx context.Context, assignmentID int64, weekStart time.Time, functionName string) (*storage.WeeklyHours, error) {
	const op = "storage.mysql.GetWeeklyHoursFact"

	var wh storage.WeeklyHours
	err := s.db.QueryRowContext(ctx, `
		SELECT id, assignment_id, week_start_date, hours_worked, function_name
		FROM weekly_hours
		WHERE assignment_id = ? AND week_start_date = ? AND function_name = ?`,
		assignmentID, weekStart.Format("2006-01-02"), functionName).
		Scan(&wh.ID, &wh.AssignmentID, &wh.WeekStartDate, &wh.HoursWorked, &wh.FunctionName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &wh, nil
}

func (s *Storage) CreateWeeklyHours(ctx context.Context, wh storage.WeeklyHours) (int64, error) {
	const op = "storage.mysql.CreateWeeklyHours"

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO weekly_hours (assignment_id, week_start_date, hours_worked, function_name)
		VALUES (?, ?, ?, ?)`,
		wh.AssignmentID, wh.WeekStartDate.Format("2006-01-02"), wh.HoursWorked, wh.FunctionName)
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

func (s *Storage) UpdateWeeklyHoursWorked(ctx context.Context, id int64, hoursWorked int) error {
	const op = "storage.mysql.UpdateWeeklyHoursWorked"

	_, err := s.db.ExecContext(ctx,
		`UPDATE weekly_hours SET hours_worked = ? WHERE id = ?`, hoursWorked, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) GetWeeklyHoursRowByID(ctx context.Context, id int64) (*storage.WeeklyHoursRow, error) {
	const op = "storage.mysql.GetWeeklyHoursRowByID"

	var (
		row  storage.WeeklyHoursRow
		week time.Time
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT wh.id, wh.assignment_id, e.id, e.name, p.id, p.name,
		       wh.week_start_date, wh.hours_worked, wh.function_name
		FROM weekly_hours wh
		JOIN assignments a ON a.id = wh.assignment_id
		JOIN employees e ON e.id = a.employee_id
		JOIN projects p ON p.id = a.project_id
		WHERE wh.id = ?`, id).
		Scan(&row.ID, &row.AssignmentID, &row.EmployeeID, &row.EmployeeName,
			&row.ProjectID, &row.ProjectName, &week, &row.HoursWorked, &row.FunctionName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row.WeekStartDate = week.Format("2006-01-02")
	row.Percentage = storage.HoursPercentage(row.HoursWorked)
	row.Status = storage.HoursStatus(row.HoursWorked)
	return &row, nil
}

func (s *Storage) DeleteWeeklyHours(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteWeeklyHours"

	res, err := s.db.ExecContext(ctx, `DELETE FROM weekly_hours WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Storage) GetWeeklyHours(ctx context.Context, filter storage.WeeklyHoursFilter) ([]storage.WeeklyHoursRow, error) {
	const op = "storage.mysql.GetWeeklyHours"

	query := `
		SELECT wh.id, wh.assignment_id, e.id, e.name, p.id, p.name,
		       wh.week_start_date, wh.hours_worked, wh.function_name
		FROM weekly_hours wh
		JOIN assignments a ON a.id = wh.assignment_id
		JOIN employees e ON e.id = a.employee_id
		JOIN projects p ON p.id = a.project_id
		WHERE 1=1`
	var args []interface{}

	if filter.StartDate != nil && filter.EndDate != nil {
		query += ` AND wh.week_start_date >= ? AND wh.week_start_date <= ?`
		args = append(args, filter.StartDate.Format("2006-01-02"), filter.EndDate.Format("2006-01-02"))
	}
	if filter.Search != "" {
		query += ` AND (e.name LIKE ? OR p.name LIKE ? OR wh.function_name LIKE ?)`
		like := "%" + filter.Search + "%"
		args = append(args, like, like, like)
	}
	query += ` ORDER BY wh.week_start_date ASC, e.name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []storage.WeeklyHoursRow
	for rows.Next() {
		var (
			row  storage.WeeklyHoursRow
			week time.Time
		)
		err := rows.Scan(&row.ID, &row.AssignmentID, &row.EmployeeID, &row.EmployeeName,
			&row.ProjectID, &row.ProjectName, &week, &row.HoursWorked, &row.FunctionName)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		row.WeekStartDate = week.Format("2006-01-02")
		row.Percentage = storage.HoursPercentage(row.HoursWorked)
		row.Status = storage.HoursStatus(row.HoursWorked)
		result = append(result, row)
	}

	return result, rows.Err()
}

func (s *Storage) GetAllWeeklyHours(ctx context.Context) ([]storage.WeeklyHours, error) {
	const op = "storage.mysql.GetAllWeeklyHours"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, assignment_id, week_start_date, hours_worked, function_name
		FROM weekly_hours`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var facts []storage.WeeklyHours
	for rows.Next() {
		var wh storage.WeeklyHours
		if err := rows.Scan(&wh.ID, &wh.AssignmentID, &wh.WeekStartDate, &wh.HoursWorked, &wh.FunctionName); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		facts = append(facts, wh)
	}
	return facts, rows.Err()
}
