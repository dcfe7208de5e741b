// Package storage defines the Storage interface, a contract that every
// record backend must satisfy to work with the console.
//
// The console handlers only know about this interface. The default backend
// is an ordered slice (storage/memory); storage/sqlite keeps the same
// records in an in-memory SQLite database. Both are exercised by the shared
// suite in storage/storagetest.
package storage

import (
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/go-playground/validator/v10"
)

// Sentinel errors. Backends wrap them with the offending id so callers can
// both print a useful message and match with errors.Is.
var (
	ErrNotFound         = errors.New("student not found")
	ErrDuplicateID      = errors.New("student id already exists")
	ErrCapacityExceeded = errors.New("student store is full")
	ErrInvalidRecord    = errors.New("invalid student record")
)

// Storage is the record store contract.
type Storage interface {
	// Add appends a fully validated student. On any failure the store is
	// left untouched.
	Add(student types.Student) error

	// FindByID returns the zero-based position of the student in insertion
	// order, or ErrNotFound.
	FindByID(id int) (int, error)

	// GetByID returns the student with the given id, or ErrNotFound.
	GetByID(id int) (types.Student, error)

	// DeleteByID removes the student and keeps the relative order of the
	// remaining records.
	DeleteByID(id int) error

	// ListByGroup returns every student in the group, in insertion order.
	// The slice is never nil.
	ListByGroup(group types.Group) ([]types.Student, error)

	// Count returns how many students are stored.
	Count() (int, error)

	// Capacity returns the maximum number of students the store accepts.
	Capacity() int
}

// ListAll returns the grouped listing: every Downtown student followed by
// every Burnaby student.
func ListAll(s Storage) ([]types.Student, error) {
	all := make([]types.Student, 0)
	for _, group := range types.Groups {
		students, err := s.ListByGroup(group)
		if err != nil {
			return nil, fmt.Errorf("ListAll: %s: %w", group, err)
		}
		all = append(all, students...)
	}
	return all, nil
}

var validate = validator.New()

// ValidateStudent checks the struct tags on types.Student. The returned
// error wraps both ErrInvalidRecord and the validator.ValidationErrors, so
// callers can errors.As into the field list.
func ValidateStudent(student types.Student) error {
	if err := validate.Struct(student); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return nil
}
