package importer

import "time"

// factKey identifies one weekly-hours fact before master records exist.
type factKey struct {
	EmpName      string
	ProjectName  string
	FunctionName string
	WeekStart    time.Time
}

type factEntry struct {
	factKey
	Hours int
}

// aggregate sums hours per fact key while preserving the insertion order of
// first occurrence, so persistence sees one write per distinct key in a
// deterministic order.
type aggregate struct {
	order  []factKey
	totals map[factKey]int
}

func newAggregate() *aggregate {
	return &aggregate{totals: make(map[factKey]int)}
}

func (a *aggregate) Add(key factKey, hours int) {
	if _, seen := a.totals[key]; !seen {
		a.order = append(a.order, key)
	}
	a.totals[key] += hours
}

func (a *aggregate) Entries() []factEntry {
	entries := make([]factEntry, 0, len(a.order))
	for _, key := range a.order {
		entries = append(entries, factEntry{factKey: key, Hours: a.totals[key]})
	}
	return entries
}

func (a *aggregate) Len() int {
	return len(a.order)
}
