package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"

	"workload-tracker/internal/storage"
)

type MockReportStorage struct {
	mock.Mock
}

func (m *MockReportStorage) GetWorkloadFacts(ctx context.Context) ([]storage.WorkloadFact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.WorkloadFact), args.Error(1)
}

func week(day int) time.Time {
	return time.Date(2024, time.June, day, 0, 0, 0, 0, time.UTC)
}

func TestBuildMatrix_PivotsAndSums(t *testing.T) {
	facts := []storage.WorkloadFact{
		{EmployeeName: "Bob Jones", WeekStartDate: week(17), HoursWorked: 25},
		{EmployeeName: "Alice Smith", WeekStartDate: week(17), HoursWorked: 30},
		{EmployeeName: "Alice Smith", WeekStartDate: week(17), HoursWorked: 15},
		{EmployeeName: "Alice Smith", WeekStartDate: week(24), HoursWorked: 40},
	}

	m := BuildMatrix(facts)

	assert.Len(t, m.Weeks, 2)
	assert.True(t, m.Weeks[0].Start.Before(m.Weeks[1].Start))

	assert.Len(t, m.Rows, 2)
	assert.Equal(t, "Alice Smith", m.Rows[0].Employee)
	assert.Equal(t, 1, m.Rows[0].SNo)
	assert.Equal(t, "Bob Jones", m.Rows[1].Employee)

	// cross-function hours are summed per week
	assert.Equal(t, Cell{Hours: 45, HasValue: true, Status: "Overloaded"}, m.Rows[0].Cells[0])
	assert.Equal(t, Cell{Hours: 40, HasValue: true, Status: "Normal"}, m.Rows[0].Cells[1])

	// Bob has no facts in the second week
	assert.Equal(t, Cell{Hours: 25, HasValue: true, Status: "Free"}, m.Rows[1].Cells[0])
	assert.False(t, m.Rows[1].Cells[1].HasValue)
}

func TestWeekLabel(t *testing.T) {
	assert.Equal(t, "WK25 (Jun 17 - Jun 23)", WeekLabel(week(17)))
	assert.Equal(t, "WK1 (Jan 01 - Jan 07)", WeekLabel(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCellTone(t *testing.T) {
	cases := []struct {
		cell Cell
		tone Tone
	}{
		{Cell{Hours: 45, HasValue: true, Status: "Overloaded"}, ToneRed},
		{Cell{Hours: 20, HasValue: true, Status: "Free"}, ToneOrange},
		{Cell{Hours: 40, HasValue: true, Status: "Normal"}, ToneGreen},
		{Cell{Hours: 0, HasValue: true, Status: "Free"}, ToneGrey},
		{Cell{}, ToneGrey},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.tone, CellTone(tc.cell), "cell %+v", tc.cell)
	}
}

func TestGenerate_NoData(t *testing.T) {
	ms := new(MockReportStorage)
	ms.On("GetWorkloadFacts", mock.Anything).Return([]storage.WorkloadFact{}, nil)

	svc := New(ms)
	data, err := svc.Generate(context.Background())

	assert.Nil(t, data)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestGenerate_RendersWorkbook(t *testing.T) {
	ms := new(MockReportStorage)
	ms.On("GetWorkloadFacts", mock.Anything).Return([]storage.WorkloadFact{
		{EmployeeName: "Alice Smith", WeekStartDate: week(17), HoursWorked: 45},
		{EmployeeName: "Bob Jones", WeekStartDate: week(17), HoursWorked: 40},
	}, nil)

	svc := New(ms)
	data, err := svc.Generate(context.Background())

	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Actual Hours Report")
	assert.NoError(t, err)

	// row 1: merged week header, row 2: sub-headers, then one row per employee
	assert.GreaterOrEqual(t, len(rows), 4)
	assert.Equal(t, "S.No.", rows[0][0])
	assert.Equal(t, "WK25 (Jun 17 - Jun 23)", rows[0][2])
	assert.Equal(t, "Working Hours", rows[1][2])
	assert.Equal(t, "Status", rows[1][3])

	assert.Equal(t, "Alice Smith", rows[2][1])
	assert.Equal(t, "45", rows[2][2])
	assert.Equal(t, "Overloaded", rows[2][3])
	assert.Equal(t, "Bob Jones", rows[3][1])
	assert.Equal(t, "40", rows[3][2])
	assert.Equal(t, "Normal", rows[3][3])
}
