package importer

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"

	"workload-tracker/internal/storage"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetEmployeeByName(ctx context.Context, name string) (*storage.Employee, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Employee), args.Error(1)
}

func (m *MockStorage) GetEmployeeByEmail(ctx context.Context, email string) (*storage.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Employee), args.Error(1)
}

func (m *MockStorage) CreateEmployee(ctx context.Context, e storage.Employee) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) GetProjectByName(ctx context.Context, name string) (*storage.Project, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Project), args.Error(1)
}

func (m *MockStorage) CreateProject(ctx context.Context, p storage.Project) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) GetAssignmentByPair(ctx context.Context, employeeID, projectID int64) (*storage.Assignment, error) {
	args := m.Called(ctx, employeeID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Assignment), args.Error(1)
}

func (m *MockStorage) CreateAssignment(ctx context.Context, a storage.Assignment) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) GetWeeklyHoursFact(ctx context.Context, assignmentID int64, weekStart time.Time, functionName string) (*storage.WeeklyHours, error) {
	args := m.Called(ctx, assignmentID, weekStart, functionName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.WeeklyHours), args.Error(1)
}

func (m *MockStorage) CreateWeeklyHours(ctx context.Context, wh storage.WeeklyHours) (int64, error) {
	args := m.Called(ctx, wh)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) UpdateWeeklyHoursWorked(ctx context.Context, id int64, hoursWorked int) error {
	args := m.Called(ctx, id, hoursWorked)
	return args.Error(0)
}

func workbook(t *testing.T, rows [][]interface{}) io.Reader {
	t.Helper()

	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		assert.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	assert.NoError(t, f.Write(&buf))
	return &buf
}

func TestImport_UnknownDataType(t *testing.T) {
	ms := new(MockStorage)
	svc := New(ms)

	file := workbook(t, [][]interface{}{{"Name"}})

	res, err := svc.Import(context.Background(), file, "bogus")

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrUnknownDataType)
}

func TestImport_ActualHours_AggregatesDuplicateRows(t *testing.T) {
	ms := new(MockStorage)
	svc := New(ms)

	week := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)

	ms.On("GetEmployeeByName", mock.Anything, "Alice Smith").
		Return(&storage.Employee{ID: 1, Name: "Alice Smith"}, nil)
	ms.On("GetProjectByName", mock.Anything, "Website").
		Return(&storage.Project{ID: 2, Name: "Website"}, nil)
	ms.On("GetAssignmentByPair", mock.Anything, int64(1), int64(2)).
		Return(&storage.Assignment{ID: 3, EmployeeID: 1, ProjectID: 2}, nil)
	ms.On("GetWeeklyHoursFact", mock.Anything, int64(3), week, "Development").
		Return(nil, storage.ErrNotFound)
	ms.On("CreateWeeklyHours", mock.Anything, storage.WeeklyHours{
		AssignmentID:  3,
		WeekStartDate: week,
		HoursWorked:   8,
		FunctionName:  "Development",
	}).Return(int64(10), nil)

	file := workbook(t, [][]interface{}{
		{"Emp Name", "Project Name", "Function", "Week Days", "Hours"},
		{"Alice Smith", "Website", "Development", "2024-06-17", "5"},
		{"Alice Smith", "Website", "Development", "2024-06-17", "3"},
	})

	res, err := svc.Import(context.Background(), file, DataTypeActualHours)

	assert.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Imported)
	assert.Contains(t, res.Message, "Processed 1 unique entries")
	assert.Empty(t, res.Notes)

	ms.AssertExpectations(t)
	ms.AssertNumberOfCalls(t, "CreateWeeklyHours", 1)
}

func TestImport_ActualHours_CreatesMissingMasters(t *testing.T) {
	ms := new(MockStorage)
	svc := New(ms)
	svc.now = func() time.Time {
		return time.Date(2024, time.June, 20, 10, 0, 0, 0, time.UTC)
	}

	week := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)

	ms.On("GetEmployeeByName", mock.Anything, "Bob Jones").
		Return(nil, storage.ErrNotFound)
	ms.On("GetEmployeeByEmail", mock.Anything, "bob.jones.temp@example.com").
		Return(nil, storage.ErrNotFound)
	ms.On("CreateEmployee", mock.Anything, storage.Employee{
		Name:  "Bob Jones",
		Email: "bob.jones.temp@example.com",
		Role:  "Imported",
	}).Return(int64(7), nil)

	ms.On("GetProjectByName", mock.Anything, "New Portal").
		Return(nil, storage.ErrNotFound)
	ms.On("CreateProject", mock.Anything, storage.Project{
		Name:           "New Portal",
		DurationMonths: 12,
		StartMonth:     "January",
		StartYear:      2024,
		EndMonth:       "December",
		EndYear:        2025,
	}).Return(int64(8), nil)

	ms.On("GetAssignmentByPair", mock.Anything, int64(7), int64(8)).
		Return(nil, storage.ErrNotFound)
	ms.On("CreateAssignment", mock.Anything, storage.Assignment{
		EmployeeID:           7,
		ProjectID:            8,
		AssignedHoursPerWeek: 40,
		AssignedStartMonth:   "January",
		AssignedStartYear:    2024,
		AssignedEndMonth:     "December",
		AssignedEndYear:      2025,
	}).Return(int64(9), nil)

	ms.On("GetWeeklyHoursFact", mock.Anything, int64(9), week, "General").
		Return(nil, storage.ErrNotFound)
	ms.On("CreateWeeklyHours", mock.Anything, storage.WeeklyHours{
		AssignmentID:  9,
		WeekStartDate: week,
		HoursWorked:   8,
		FunctionName:  "General",
	}).Return(int64(11), nil)

	file := workbook(t, [][]interface{}{
		{"Emp Name", "Project Name", "Function", "Week Days", "Hours"},
		{"Bob Jones", "New Portal", "", "2024-06-17", "abc"},
	})

	res, err := svc.Import(context.Background(), file, DataTypeActualHours)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Contains(t, res.Notes, "Row 2: Could not parse hours 'abc', using default 8 hours")
	assert.Contains(t, res.Notes, "Created new employee 'Bob Jones' (temp email: bob.jones.temp@example.com).")
	assert.Contains(t, res.Notes, "Created new project 'New Portal'.")
	assert.Contains(t, res.Notes, "Created new assignment for 'Bob Jones' on 'New Portal'.")

	ms.AssertExpectations(t)
}

func TestImport_ActualHours_UnchangedFactIsNotRewritten(t *testing.T) {
	ms := new(MockStorage)
	svc := New(ms)

	week := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)

	ms.On("GetEmployeeByName", mock.Anything, "Alice Smith").
		Return(&storage.Employee{ID: 1, Name: "Alice Smith"}, nil)
	ms.On("GetProjectByName", mock.Anything, "Website").
		Return(&storage.Project{ID: 2, Name: "Website"}, nil)
	ms.On("GetAssignmentByPair", mock.Anything, int64(1), int64(2)).
		Return(&storage.Assignment{ID: 3}, nil)
	ms.On("GetWeeklyHoursFact", mock.Anything, int64(3), week, "Development").
		Return(&storage.WeeklyHours{ID: 10, AssignmentID: 3, WeekStartDate: week, HoursWorked: 8, FunctionName: "Development"}, nil)

	file := workbook(t, [][]interface{}{
		{"Emp Name", "Project Name", "Function", "Week Days", "Hours"},
		{"Alice Smith", "Website", "Development", "2024-06-17", "8"},
	})

	res, err := svc.Import(context.Background(), file, DataTypeActualHours)

	assert.NoError(t, err)
	assert.Equal(t, 0, res.Imported)
	assert.Contains(t, res.Message, "Processed 1 unique entries")

	ms.AssertNotCalled(t, "UpdateWeeklyHoursWorked")
	ms.AssertNotCalled(t, "CreateWeeklyHours")
}

func TestImport_ActualHours_UpdatesChangedFact(t *testing.T) {
	ms := new(MockStorage)
	svc := New(ms)

	week := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)

	ms.On("GetEmployeeByName", mock.Anything, "Alice Smith").
		Return(&storage.Employee{ID: 1, Name: "Alice Smith"}, nil)
	ms.On("GetProjectByName", mock.Anything, "Website").
		Return(&storage.Project{ID: 2, Name: "Website"}, nil)
	ms.On("GetAssignmentByPair", mock.Anything, int64(1), int64(2)).
		Return(&storage.Assignment{ID: 3}, nil)
	ms.On("GetWeeklyHoursFact", mock.Anything, int64(3), week, "Development").
		Return(&storage.WeeklyHours{ID: 10, AssignmentID: 3, WeekStartDate: week, HoursWorked: 5, FunctionName: "Development"}, nil)
	ms.On("UpdateWeeklyHoursWorked", mock.Anything, int64(10), 40).Return(nil)

	file := workbook(t, [][]interface{}{
		{"Emp Name", "Project Name", "Function", "Week Days", "Hours"},
		{"Alice Smith", "Website", "Development", "2024-06-17", "40"},
	})

	res, err := svc.Import(context.Background(), file, DataTypeActualHours)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Imported)

	ms.AssertExpectations(t)
}

func TestImport_Employees(t *testing.T) {
	ms := new(MockStorage)
	svc := New(ms)

	ms.On("GetEmployeeByEmail", mock.Anything, "alice@example.com").
		Return(nil, storage.ErrNotFound)
	ms.On("CreateEmployee", mock.Anything, storage.Employee{
		Name:  "Alice Smith",
		Email: "alice@example.com",
		Role:  "Engineer",
	}).Return(int64(1), nil)

	file := workbook(t, [][]interface{}{
		{"Name", "Email", "Position"},
		{"Alice Smith", "alice@example.com", "Engineer"},
		{"Bob Jones", "bob-at-example", "Engineer"},
	})

	res, err := svc.Import(context.Background(), file, DataTypeEmployees)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	assert.Contains(t, res.Notes, "Row 3 (Employee): Invalid email format for 'bob-at-example'. Skipped.")

	ms.AssertExpectations(t)
}

func TestImport_Projects(t *testing.T) {
	ms := new(MockStorage)
	svc := New(ms)

	ms.On("GetProjectByName", mock.Anything, "Website").
		Return(nil, storage.ErrNotFound)
	ms.On("GetProjectByName", mock.Anything, "Mystery").
		Return(nil, storage.ErrNotFound)
	ms.On("CreateProject", mock.Anything, storage.Project{
		Name:           "Website",
		DurationMonths: 12,
		StartMonth:     "January",
		StartYear:      2024,
		EndMonth:       "December",
		EndYear:        2024,
	}).Return(int64(1), nil)

	file := workbook(t, [][]interface{}{
		{"Project Name", "Duration (Months)", "Start Month", "Start Year", "End Month", "End Year"},
		{"Website", "12", "January", "2024", "December", "2024"},
		{"Mystery", "12", "Janvier", "2024", "December", "2024"},
	})

	res, err := svc.Import(context.Background(), file, DataTypeProjects)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	assert.Contains(t, res.Notes, "Row 3 (Project): Invalid month name for project 'Mystery'. Skipped.")

	ms.AssertExpectations(t)
}
