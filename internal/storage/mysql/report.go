package mysql

import (
	"context"
	"fmt"
	"time"

	"workload-tracker/internal/storage"
)

// GetWorkloadFacts returns every weekly-hours fact joined to its employee,
// the projection the crosstab report pivots on.
func (s *Storage) GetWorkloadFacts(ctx context.Context) ([]storage.WorkloadFact, error) {
	const op = "storage.mysql.GetWorkloadFacts"

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.name, wh.week_start_date, wh.hours_worked
		FROM weekly_hours wh
		JOIN assignments a ON a.id = wh.assignment_id
		JOIN employees e ON e.id = a.employee_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var facts []storage.WorkloadFact
	for rows.Next() {
		var (
			f    storage.WorkloadFact
			week time.Time
		)
		if err := rows.Scan(&f.EmployeeName, &week, &f.HoursWorked); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		f.WeekStartDate = week
		facts = append(facts, f)
	}

	return facts, rows.Err()
}
