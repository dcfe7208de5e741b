package student

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aanand-mishra/student-records/internal/console"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/storage/storagetest"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run feeds lines to a registered mux and returns everything printed.
func run(t *testing.T, store *memory.Memory, lines ...string) string {
	t.Helper()
	mux := console.NewMux()
	Register(mux, store)

	var out bytes.Buffer
	input := strings.Join(lines, "\n") + "\n"
	require.NoError(t, mux.Serve(console.New(strings.NewReader(input), &out)))
	return out.String()
}

func count(t *testing.T, store *memory.Memory) int {
	t.Helper()
	n, err := store.Count()
	require.NoError(t, err)
	return n
}

func TestAddThenSearchThenDelete(t *testing.T) {
	store := memory.New(50)

	out := run(t, store,
		"add", "1", "Ann", "20", "CS", "3.987", "d",
		"search", "1",
		"exit",
	)
	assert.Contains(t, out, "student 1 added to Downtown")
	assert.Contains(t, out, "student 1 is in group Downtown")
	assert.Contains(t, out, "3.98")

	got, err := store.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: 1, Name: "Ann", Age: 20, Program: "CS", GPA: 3.98, Group: types.GroupDowntown}, got)

	out = run(t, store, "delete", "1", "search", "1", "exit")
	assert.Contains(t, out, "student 1 deleted")
	assert.Contains(t, out, "student not found: id 1")
	assert.Zero(t, count(t, store))
}

func TestAddRepromptsInvalidFields(t *testing.T) {
	store := memory.New(50)

	out := run(t, store,
		"ADD",
		"x1", "0", "5",
		"", "Ann5", "Ann",
		"18", "twenty", "30",
		"C S", "Math",
		"5.5", "4.2z", "4.219",
		"surrey", "B",
		"exit",
	)

	for _, msg := range []string{
		"id must be a number",
		"id is out of range",
		"name must not be empty",
		"name must contain letters only",
		"age must be older than 18",
		"age must be a number",
		"program must contain letters only",
		"gpa is out of range",
		"gpa must be a number",
		"group must start with 'd' (Downtown) or 'b' (Burnaby)",
	} {
		assert.Contains(t, out, msg)
	}

	got, err := store.GetByID(5)
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: 5, Name: "Ann", Age: 30, Program: "Math", GPA: 4.21, Group: types.GroupBurnaby}, got)
}

func TestAddDuplicateIDReprompts(t *testing.T) {
	store := memory.New(50)
	require.NoError(t, store.Add(storagetest.Student(2, types.GroupDowntown)))

	out := run(t, store, "add", "2", "3", "Bob", "22", "Art", "2.5", "b", "exit")
	assert.Contains(t, out, "id student id already exists")
	assert.Equal(t, 2, count(t, store))
}

func TestAddWhenFull(t *testing.T) {
	store := memory.New(1)
	require.NoError(t, store.Add(storagetest.Student(1, types.GroupDowntown)))

	// With the store full, "2" is read as a command, not as an id.
	out := run(t, store, "add", "2", "exit")
	assert.Contains(t, out, "student store is full")
	assert.Contains(t, out, `Invalid command "2"`)
	assert.NotContains(t, out, "id: ")
	assert.Equal(t, 1, count(t, store))
}

func TestDeleteMissing(t *testing.T) {
	store := memory.New(50)
	require.NoError(t, store.Add(storagetest.Student(1, types.GroupDowntown)))

	out := run(t, store, "delete", "abc", "9", "exit")
	assert.Contains(t, out, "id must be a number")
	assert.Contains(t, out, "student not found: id 9")
	assert.Equal(t, 1, count(t, store))
}

func TestDisplayAndList(t *testing.T) {
	store := memory.New(50)
	require.NoError(t, store.Add(storagetest.Student(101, types.GroupBurnaby)))
	require.NoError(t, store.Add(storagetest.Student(202, types.GroupDowntown)))
	require.NoError(t, store.Add(storagetest.Student(303, types.GroupBurnaby)))

	out := run(t, store, "display", "exit")
	i202 := strings.Index(out, "  202 ")
	i101 := strings.Index(out, "  101 ")
	i303 := strings.Index(out, "  303 ")
	require.True(t, i202 >= 0 && i101 >= 0 && i303 >= 0, out)
	assert.Less(t, i202, i101)
	assert.Less(t, i101, i303)

	out = run(t, store, "list", "", "burnaby", "exit")
	assert.Contains(t, out, "group must not be empty")
	assert.Contains(t, out, "  101 ")
	assert.Contains(t, out, "  303 ")
	assert.NotContains(t, out, "  202 ")
}

func TestListEmptyGroup(t *testing.T) {
	store := memory.New(50)
	out := run(t, store, "list", "d", "display", "exit")
	assert.Equal(t, 2, strings.Count(out, "(none)"))
}

func TestInvalidCommandLeavesStore(t *testing.T) {
	store := memory.New(50)
	require.NoError(t, store.Add(storagetest.Student(1, types.GroupDowntown)))

	out := run(t, store, "foo", "exit")
	assert.Contains(t, out, `Invalid command "foo"`)
	assert.Equal(t, 1, count(t, store))
}
