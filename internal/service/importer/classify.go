package importer

import (
	"strings"
)

// Role is one of the five semantic columns the bulk importer needs to find.
type Role string

const (
	RoleEmployee Role = "emp_name"
	RoleProject  Role = "project_name"
	RoleFunction Role = "function_name"
	RoleWeek     Role = "week_days"
	RoleHours    Role = "hours"
)

// roleOrder is also the assumed physical column order for the positional
// fallback.
var roleOrder = []Role{RoleEmployee, RoleProject, RoleFunction, RoleWeek, RoleHours}

var roleKeywords = map[Role][]string{
	RoleEmployee: {"emp", "employee", "name", "person", "staff"},
	RoleProject:  {"project", "proj", "job", "task", "work"},
	RoleFunction: {"function", "role", "position", "job", "title", "dept", "department"},
	RoleWeek:     {"week", "date", "day", "time", "period"},
	RoleHours:    {"hour", "hrs", "time", "duration"},
}

// Classify maps each semantic role to a column name. Columns are considered
// in order; for each column the roles are tried in a fixed order and the first
// match claims the column. Name keywords are tried before content shape, and
// any role still open afterwards is filled positionally.
func Classify(columns []string, samples map[string][]string) map[Role]string {
	mapping := make(map[Role]string, len(roleOrder))

	for _, col := range columns {
		lower := strings.ToLower(strings.TrimSpace(col))
		values := samples[col]

		if _, done := mapping[RoleEmployee]; !done {
			if matchesKeyword(lower, roleKeywords[RoleEmployee]) && !strings.Contains(lower, "project") {
				mapping[RoleEmployee] = col
				continue
			}
			if shareOf(values, looksLikeFullName) >= 0.5 {
				mapping[RoleEmployee] = col
				continue
			}
		}

		if _, done := mapping[RoleProject]; !done {
			if matchesKeyword(lower, roleKeywords[RoleProject]) {
				mapping[RoleProject] = col
				continue
			}
		}

		if _, done := mapping[RoleFunction]; !done {
			if matchesKeyword(lower, roleKeywords[RoleFunction]) {
				mapping[RoleFunction] = col
				continue
			}
		}

		if _, done := mapping[RoleWeek]; !done {
			if matchesKeyword(lower, roleKeywords[RoleWeek]) {
				mapping[RoleWeek] = col
				continue
			}
			if shareOf(values, looksLikeDate) >= 0.5 {
				mapping[RoleWeek] = col
				continue
			}
		}

		if _, done := mapping[RoleHours]; !done {
			if matchesKeyword(lower, roleKeywords[RoleHours]) {
				mapping[RoleHours] = col
				continue
			}
			if shareOf(values, looksLikeNumber) >= 0.7 {
				mapping[RoleHours] = col
				continue
			}
		}
	}

	if len(mapping) < len(roleOrder) {
		for i, role := range roleOrder {
			if _, ok := mapping[role]; !ok && i < len(columns) {
				mapping[role] = columns[i]
			}
		}
	}

	return mapping
}

func matchesKeyword(column string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(column, kw) {
			return true
		}
	}
	return false
}

func shareOf(values []string, pred func(string) bool) float64 {
	if len(values) == 0 {
		return 0
	}
	hits := 0
	for _, v := range values {
		if pred(v) {
			hits++
		}
	}
	return float64(hits) / float64(len(values))
}

func looksLikeFullName(v string) bool {
	if looksLikeNumber(v) {
		return false
	}
	return len(strings.Fields(v)) >= 2
}

func looksLikeDate(v string) bool {
	_, ok := parseDateText(v)
	return ok
}
