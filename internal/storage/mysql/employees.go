package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"workload-tracker/internal/storage"
)

func (s *Storage) GetEmployees(ctx context.Context, search string) ([]storage.Employee, error) {
	const op = "storage.mysql.GetEmployees"

	query := `SELECT id, name, email, role FROM employees`
	var args []interface{}

	if search != "" {
		query += ` WHERE name LIKE ? OR email LIKE ? OR role LIKE ?`
		like := "%" + search + "%"
		args = append(args, like, like, like)
	}
	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var employees []storage.Employee
	for rows.Next() {
		var e storage.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Role); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func (s *Storage) GetEmployeeByID(ctx context.Context, id int64) (*storage.Employee, error) {
	const op = "storage.mysql.GetEmployeeByID"
	return s.getEmployee(ctx, op, `SELECT id, name, email, role FROM employees WHERE id = ?`, id)
}

func (s *Storage) GetEmployeeByName(ctx context.Context, name string) (*storage.Employee, error) {
	const op = "storage.mysql.GetEmployeeByName"
	return s.getEmployee(ctx, op, `SELECT id, name, email, role FROM employees WHERE name = ?`, name)
}

func (s *Storage) GetEmployeeByEmail(ctx context.Context, email string) (*storage.Employee, error) {
	const op = "storage.mysql.GetEmployeeByEmail"
	return s.getEmployee(ctx, op, `SELECT id, name, email, role FROM employees WHERE email = ?`, email)
}

func (s *Storage) getEmployee(ctx context.Context, op, query string, arg interface{}) (*storage.Employee, error) {
	var e storage.Employee
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&e.ID, &e.Name, &e.Email, &e.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &e, nil
}

func (s *Storage) CreateEmployee(ctx context.Context, e storage.Employee) (int64, error) {
	const op = "storage.mysql.CreateEmployee"

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (name, email, role) VALUES (?, ?, ?)`,
		e.Name, e.Email, e.Role)
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

// DeleteEmployee refuses to delete while the employee still has assignments.
func (s *Storage) DeleteEmployee(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteEmployee"

	var dependents int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM assignments WHERE employee_id = ?`, id).Scan(&dependents)
	if err != nil {
		return fmt.Errorf("%s: count assignments: %w", op, err)
	}
	if dependents > 0 {
		return &storage.DependentsError{Kind: "assignment", Count: dependents}
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
