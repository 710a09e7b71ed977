package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_SumsDuplicateKeys(t *testing.T) {
	week := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)
	key := factKey{EmpName: "Alice Smith", ProjectName: "Website", FunctionName: "Development", WeekStart: week}

	agg := newAggregate()
	agg.Add(key, 5)
	agg.Add(key, 3)

	assert.Equal(t, 1, agg.Len())
	entries := agg.Entries()
	assert.Equal(t, 8, entries[0].Hours)
}

func TestAggregate_PreservesFirstOccurrenceOrder(t *testing.T) {
	week := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)
	a := factKey{EmpName: "Alice Smith", ProjectName: "Website", FunctionName: "General", WeekStart: week}
	b := factKey{EmpName: "Bob Jones", ProjectName: "Mobile App", FunctionName: "General", WeekStart: week}
	c := factKey{EmpName: "Carol White", ProjectName: "Website", FunctionName: "QA", WeekStart: week}

	agg := newAggregate()
	agg.Add(a, 4)
	agg.Add(b, 6)
	agg.Add(c, 2)
	agg.Add(a, 4)

	entries := agg.Entries()
	assert.Equal(t, 3, agg.Len())
	assert.Equal(t, "Alice Smith", entries[0].EmpName)
	assert.Equal(t, 8, entries[0].Hours)
	assert.Equal(t, "Bob Jones", entries[1].EmpName)
	assert.Equal(t, "Carol White", entries[2].EmpName)
}

func TestAggregate_DifferentFunctionsStaySeparate(t *testing.T) {
	week := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)
	dev := factKey{EmpName: "Alice Smith", ProjectName: "Website", FunctionName: "Development", WeekStart: week}
	qa := factKey{EmpName: "Alice Smith", ProjectName: "Website", FunctionName: "QA", WeekStart: week}

	agg := newAggregate()
	agg.Add(dev, 30)
	agg.Add(qa, 10)

	assert.Equal(t, 2, agg.Len())
}
