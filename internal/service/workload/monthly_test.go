package workload

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"workload-tracker/internal/storage"
)

type MockWorkloadStorage struct {
	mock.Mock
}

func (m *MockWorkloadStorage) GetEmployees(ctx context.Context, search string) ([]storage.Employee, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Employee), args.Error(1)
}

func (m *MockWorkloadStorage) GetAllAssignments(ctx context.Context) ([]storage.Assignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Assignment), args.Error(1)
}

func (m *MockWorkloadStorage) GetAllWeeklyHours(ctx context.Context) ([]storage.WeeklyHours, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.WeeklyHours), args.Error(1)
}

func TestMonthlyOverview_ActualHoursWinOverAssigned(t *testing.T) {
	ms := new(MockWorkloadStorage)

	ms.On("GetEmployees", mock.Anything, "").Return([]storage.Employee{
		{ID: 1, Name: "Alice Smith"},
	}, nil)
	ms.On("GetAllAssignments", mock.Anything).Return([]storage.Assignment{
		{
			ID:                   3,
			EmployeeID:           1,
			ProjectID:            2,
			AssignedHoursPerWeek: 20,
			AssignedStartMonth:   "January",
			AssignedStartYear:    2024,
			AssignedEndMonth:     "December",
			AssignedEndYear:      2024,
		},
	}, nil)
	ms.On("GetAllWeeklyHours", mock.Anything).Return([]storage.WeeklyHours{
		{ID: 10, AssignmentID: 3, WeekStartDate: time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC), HoursWorked: 35},
		{ID: 11, AssignmentID: 3, WeekStartDate: time.Date(2024, time.June, 24, 0, 0, 0, 0, time.UTC), HoursWorked: 40},
	}, nil)

	svc := New(ms)
	overview, err := svc.MonthlyOverview(context.Background(), 6, 2024, 2, "")

	assert.NoError(t, err)
	assert.Equal(t, []string{"Jun 2024", "Jul 2024"}, overview.Months)
	assert.Equal(t, storage.NormalWeeklyHours, overview.NormalHours)
	assert.Len(t, overview.EmployeeMonthlyLoad, 1)

	loads := overview.EmployeeMonthlyLoad[0].MonthlyLoads
	assert.Len(t, loads, 2)

	// June has recorded facts: actual hours replace the assigned estimate
	assert.Equal(t, 75, loads[0].Load)

	// July has none: assigned 20h/week times four weeks
	assert.Equal(t, 80, loads[1].Load)
	assert.InDelta(t, 50.0, loads[1].LoadPercentage, 0.01)
}

func TestMonthlyOverview_AssignmentOutsideWindow(t *testing.T) {
	ms := new(MockWorkloadStorage)

	ms.On("GetEmployees", mock.Anything, "").Return([]storage.Employee{
		{ID: 1, Name: "Alice Smith"},
	}, nil)
	ms.On("GetAllAssignments", mock.Anything).Return([]storage.Assignment{
		{
			ID:                   3,
			EmployeeID:           1,
			AssignedHoursPerWeek: 40,
			AssignedStartMonth:   "January",
			AssignedStartYear:    2023,
			AssignedEndMonth:     "March",
			AssignedEndYear:      2023,
		},
	}, nil)
	ms.On("GetAllWeeklyHours", mock.Anything).Return([]storage.WeeklyHours{}, nil)

	svc := New(ms)
	overview, err := svc.MonthlyOverview(context.Background(), 6, 2024, 1, "")

	assert.NoError(t, err)
	assert.Equal(t, 0, overview.EmployeeMonthlyLoad[0].MonthlyLoads[0].Load)
}

func TestMonthlyOverview_StorageError(t *testing.T) {
	ms := new(MockWorkloadStorage)

	ms.On("GetEmployees", mock.Anything, "").Return(nil, assert.AnError)
	ms.On("GetAllAssignments", mock.Anything).Return([]storage.Assignment{}, nil)
	ms.On("GetAllWeeklyHours", mock.Anything).Return([]storage.WeeklyHours{}, nil)

	svc := New(ms)
	overview, err := svc.MonthlyOverview(context.Background(), 6, 2024, 1, "")

	assert.Nil(t, overview)
	assert.Error(t, err)
}
