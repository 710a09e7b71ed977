package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrExists   = errors.New("record already exists")
)

// DependentsError blocks deletion while referencing records exist.
type DependentsError struct {
	Kind  string // what is still referencing the record
	Count int
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("%d dependent %s record(s)", e.Count, e.Kind)
}
