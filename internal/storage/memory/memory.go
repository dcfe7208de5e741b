// Package memory provides the default storage.Storage implementation: an
// ordered, capacity-bounded slice of students held in process memory.
//
// The store is owned by the single console loop, so it carries no lock.
package memory

import (
	"fmt"
	"slices"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

// Memory is the slice-backed implementation of storage.Storage.
type Memory struct {
	capacity int
	students []types.Student
}

// New returns an empty store that accepts at most capacity students.
func New(capacity int) *Memory {
	return &Memory{
		capacity: capacity,
		students: make([]types.Student, 0, capacity),
	}
}

// Add validates the record, then checks capacity and id uniqueness before
// appending. Nothing is written unless every check passes.
func (m *Memory) Add(student types.Student) error {
	if err := storage.ValidateStudent(student); err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	if len(m.students) >= m.capacity {
		return fmt.Errorf("Add: %w (capacity %d)", storage.ErrCapacityExceeded, m.capacity)
	}
	if _, err := m.FindByID(student.ID); err == nil {
		return fmt.Errorf("Add: %w: %d", storage.ErrDuplicateID, student.ID)
	}

	m.students = append(m.students, student)
	return nil
}

// FindByID scans the records in insertion order. Ids are unique, so the
// first match is the only one.
func (m *Memory) FindByID(id int) (int, error) {
	for i, s := range m.students {
		if s.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
}

func (m *Memory) GetByID(id int) (types.Student, error) {
	i, err := m.FindByID(id)
	if err != nil {
		return types.Student{}, err
	}
	return m.students[i], nil
}

// DeleteByID removes the record and shifts every later record one slot
// earlier. slices.Delete zeroes the vacated tail element, so no stale copy
// stays reachable through the backing array.
func (m *Memory) DeleteByID(id int) error {
	i, err := m.FindByID(id)
	if err != nil {
		return err
	}
	m.students = slices.Delete(m.students, i, i+1)
	return nil
}

func (m *Memory) ListByGroup(group types.Group) ([]types.Student, error) {
	students := make([]types.Student, 0)
	for _, s := range m.students {
		if s.Group == group {
			students = append(students, s)
		}
	}
	return students, nil
}

func (m *Memory) Count() (int, error) { return len(m.students), nil }

func (m *Memory) Capacity() int { return m.capacity }
