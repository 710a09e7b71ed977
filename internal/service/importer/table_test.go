package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTable_ReliableHeader(t *testing.T) {
	grid := [][]string{
		{"Emp Name", "Project Name", "Hours"},
		{"Alice Smith", "Website", "8"},
		{"Bob Jones", "Mobile App", "6"},
	}

	table := NewTable(grid)

	assert.Equal(t, []string{"Emp Name", "Project Name", "Hours"}, table.Columns)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, "Alice Smith", table.Cell(table.Rows[0], "Emp Name"))
	assert.Equal(t, "6", table.Cell(table.Rows[1], "Hours"))
}

func TestNewTable_PromotesTextRowWhenHeaderUnreliable(t *testing.T) {
	// blank label in the first row makes it untrustworthy
	grid := [][]string{
		{"", "123", ""},
		{"Emp Name", "Project Name", "Hours"},
		{"Alice Smith", "Website", "8"},
	}

	table := NewTable(grid)

	assert.Equal(t, []string{"Emp Name", "Project Name", "Hours"}, table.Columns)
	assert.Len(t, table.Rows, 1)
	assert.Equal(t, "Alice Smith", table.Cell(table.Rows[0], "Emp Name"))
}

func TestNewTable_BlankCellsInPromotedHeaderGetPlaceholders(t *testing.T) {
	grid := [][]string{
		{"1", "2", "3"},
		{"Emp Name", "", "Hours"},
		{"Alice Smith", "Website", "8"},
	}

	table := NewTable(grid)

	assert.Equal(t, []string{"Emp Name", "Column_1", "Hours"}, table.Columns)
	assert.Equal(t, "Website", table.Cell(table.Rows[0], "Column_1"))
}

func TestNewTable_FallsBackToPositionalNames(t *testing.T) {
	grid := [][]string{
		{"1", "2"},
		{"", ""},
		{"", ""},
	}

	table := NewTable(grid)

	assert.Equal(t, []string{"Column_0", "Column_1"}, table.Columns)
	assert.Len(t, table.Rows, 2)
}

func TestTable_CellOnRaggedRow(t *testing.T) {
	grid := [][]string{
		{"Emp Name", "Project Name", "Hours"},
		{"Alice Smith"},
	}

	table := NewTable(grid)

	assert.Equal(t, "Alice Smith", table.Cell(table.Rows[0], "Emp Name"))
	assert.Equal(t, "", table.Cell(table.Rows[0], "Hours"))
	assert.Equal(t, "", table.Cell(table.Rows[0], "No Such Column"))
}

func TestTable_SamplesSkipBlanksAndHonorLimit(t *testing.T) {
	grid := [][]string{
		{"Emp Name"},
		{""},
		{"Alice Smith"},
		{"Bob Jones"},
		{"Carol White"},
	}

	table := NewTable(grid)
	samples := table.Samples(2)

	assert.Equal(t, []string{"Alice Smith", "Bob Jones"}, samples["Emp Name"])
}
