// Package storagetest holds the behaviour suite every storage.Storage
// backend must pass. Backends call Run from their own _test.go file.
package storagetest

import (
	"fmt"
	"testing"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store bounded by capacity.
type Factory func(t *testing.T, capacity int) storage.Storage

// Student returns a valid record with the given id and group.
func Student(id int, group types.Group) types.Student {
	return types.Student{
		ID:      id,
		Name:    "Ann",
		Age:     20,
		Program: "CS",
		GPA:     3.98,
		Group:   group,
	}
}

func ids(students []types.Student) []int {
	out := make([]int, 0, len(students))
	for _, s := range students {
		out = append(out, s.ID)
	}
	return out
}

func count(t *testing.T, s storage.Storage) int {
	t.Helper()
	n, err := s.Count()
	require.NoError(t, err)
	return n
}

// Run executes the suite against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("AddAndFind", func(t *testing.T) {
		s := newStore(t, 50)
		for i := 1; i <= 10; i++ {
			group := types.GroupDowntown
			if i%2 == 0 {
				group = types.GroupBurnaby
			}
			require.NoError(t, s.Add(Student(i*7, group)))
		}

		assert.Equal(t, 10, count(t, s))
		for i := 1; i <= 10; i++ {
			pos, err := s.FindByID(i * 7)
			require.NoError(t, err)
			assert.Equal(t, i-1, pos)

			got, err := s.GetByID(i * 7)
			require.NoError(t, err)
			assert.Equal(t, i*7, got.ID)
		}
	})

	t.Run("FindMissing", func(t *testing.T) {
		s := newStore(t, 50)
		_, err := s.FindByID(1)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = s.GetByID(1)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("DuplicateID", func(t *testing.T) {
		s := newStore(t, 50)
		require.NoError(t, s.Add(Student(2, types.GroupDowntown)))

		dup := Student(2, types.GroupBurnaby)
		dup.Name = "Bob"
		err := s.Add(dup)
		assert.ErrorIs(t, err, storage.ErrDuplicateID)

		assert.Equal(t, 1, count(t, s))
		got, err := s.GetByID(2)
		require.NoError(t, err)
		assert.Equal(t, Student(2, types.GroupDowntown), got)
	})

	t.Run("Capacity", func(t *testing.T) {
		s := newStore(t, 50)
		assert.Equal(t, 50, s.Capacity())
		for i := 1; i <= 50; i++ {
			require.NoError(t, s.Add(Student(i, types.GroupDowntown)), "add #%d", i)
		}

		err := s.Add(Student(51, types.GroupDowntown))
		assert.ErrorIs(t, err, storage.ErrCapacityExceeded)
		assert.Equal(t, 50, count(t, s))

		_, err = s.FindByID(51)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("CapacityAfterDelete", func(t *testing.T) {
		s := newStore(t, 2)
		require.NoError(t, s.Add(Student(1, types.GroupDowntown)))
		require.NoError(t, s.Add(Student(2, types.GroupDowntown)))
		require.ErrorIs(t, s.Add(Student(3, types.GroupDowntown)), storage.ErrCapacityExceeded)

		require.NoError(t, s.DeleteByID(1))
		assert.NoError(t, s.Add(Student(3, types.GroupDowntown)))
	})

	t.Run("InvalidRecord", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*types.Student)
		}{
			{"zero id", func(s *types.Student) { s.ID = 0 }},
			{"empty name", func(s *types.Student) { s.Name = "" }},
			{"digits in program", func(s *types.Student) { s.Program = "CS101" }},
			{"age 18", func(s *types.Student) { s.Age = 18 }},
			{"gpa above 5", func(s *types.Student) { s.GPA = 5.01 }},
			{"negative gpa", func(s *types.Student) { s.GPA = -0.5 }},
			{"unknown group", func(s *types.Student) { s.Group = "Surrey" }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := newStore(t, 50)
				student := Student(1, types.GroupDowntown)
				tt.mutate(&student)

				err := s.Add(student)
				assert.ErrorIs(t, err, storage.ErrInvalidRecord)
				assert.Equal(t, 0, count(t, s))
			})
		}
	})

	t.Run("DeleteKeepsOrder", func(t *testing.T) {
		s := newStore(t, 50)
		for _, id := range []int{1, 2, 3, 4, 5} {
			require.NoError(t, s.Add(Student(id, types.GroupDowntown)))
		}

		require.NoError(t, s.DeleteByID(3))
		assert.Equal(t, 4, count(t, s))

		all, err := storage.ListAll(s)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 4, 5}, ids(all))

		pos, err := s.FindByID(4)
		require.NoError(t, err)
		assert.Equal(t, 2, pos)

		_, err = s.FindByID(3)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("DeleteLastThenAdd", func(t *testing.T) {
		s := newStore(t, 50)
		require.NoError(t, s.Add(Student(1, types.GroupDowntown)))
		require.NoError(t, s.Add(Student(2, types.GroupDowntown)))
		require.NoError(t, s.DeleteByID(2))
		require.NoError(t, s.Add(Student(9, types.GroupDowntown)))

		all, err := storage.ListAll(s)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 9}, ids(all))
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		s := newStore(t, 50)
		require.NoError(t, s.Add(Student(1, types.GroupDowntown)))

		err := s.DeleteByID(2)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.Equal(t, 1, count(t, s))
	})

	t.Run("ListByGroupPartitions", func(t *testing.T) {
		s := newStore(t, 50)
		groups := map[int]types.Group{}
		for i := 1; i <= 12; i++ {
			group := types.GroupDowntown
			if i%3 == 0 {
				group = types.GroupBurnaby
			}
			groups[i] = group
			require.NoError(t, s.Add(Student(i, group)))
		}

		downtown, err := s.ListByGroup(types.GroupDowntown)
		require.NoError(t, err)
		burnaby, err := s.ListByGroup(types.GroupBurnaby)
		require.NoError(t, err)

		assert.Equal(t, []int{1, 2, 4, 5, 7, 8, 10, 11}, ids(downtown))
		assert.Equal(t, []int{3, 6, 9, 12}, ids(burnaby))
		for _, st := range downtown {
			assert.Equal(t, groups[st.ID], st.Group, fmt.Sprintf("student %d", st.ID))
		}

		all, err := storage.ListAll(s)
		require.NoError(t, err)
		assert.Equal(t, append(ids(downtown), ids(burnaby)...), ids(all))

		again, err := s.ListByGroup(types.GroupDowntown)
		require.NoError(t, err)
		assert.Equal(t, downtown, again)
	})

	t.Run("ListEmpty", func(t *testing.T) {
		s := newStore(t, 50)
		require.NoError(t, s.Add(Student(1, types.GroupDowntown)))

		burnaby, err := s.ListByGroup(types.GroupBurnaby)
		require.NoError(t, err)
		assert.NotNil(t, burnaby)
		assert.Empty(t, burnaby)
	})

	t.Run("AddDeleteScenario", func(t *testing.T) {
		s := newStore(t, 50)
		ann := types.Student{ID: 1, Name: "Ann", Age: 20, Program: "CS", GPA: 3.98, Group: types.GroupDowntown}
		require.NoError(t, s.Add(ann))
		assert.Equal(t, 1, count(t, s))

		got, err := s.GetByID(1)
		require.NoError(t, err)
		assert.Equal(t, ann, got)

		require.NoError(t, s.DeleteByID(1))
		_, err = s.FindByID(1)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.Equal(t, 0, count(t, s))
	})
}
