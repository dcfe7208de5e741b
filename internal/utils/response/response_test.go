package response

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Write(&out, OK("student %d added", 4)))
	require.NoError(t, Write(&out, GeneralError(errors.New("student not found: id 9"))))

	assert.Contains(t, out.String(), "ok:")
	assert.Contains(t, out.String(), "student 4 added")
	assert.Contains(t, out.String(), "error:")
	assert.Contains(t, out.String(), "student not found: id 9")
}

func TestGeneralErrorExpandsValidation(t *testing.T) {
	err := validator.New().Struct(types.Student{ID: 1, Name: "Ann", Age: 18, Program: "CS", GPA: 6, Group: "X"})
	require.Error(t, err)

	r := GeneralError(fmt.Errorf("Add: %w", err))
	assert.Equal(t, StatusError, r.Status)
	assert.Contains(t, r.Message, "field Age must be greater than 18")
	assert.Contains(t, r.Message, "field GPA is invalid")
	assert.Contains(t, r.Message, "field Group must be one of Downtown Burnaby")
}

func TestWriteStudents(t *testing.T) {
	var out bytes.Buffer
	students := []types.Student{
		{ID: 1, Name: "Ann", Age: 20, Program: "CS", GPA: 3.98, Group: types.GroupDowntown},
		{ID: 12, Name: "Bartholomew", Age: 44, Program: "History", GPA: 2.5, Group: types.GroupBurnaby},
	}
	require.NoError(t, WriteStudents(&out, "All students", students))

	s := out.String()
	assert.Contains(t, s, "All students")
	assert.Contains(t, s, "ID")
	assert.Contains(t, s, "Bartholomew")
	assert.Contains(t, s, "3.98")
	assert.Contains(t, s, "2.50")
	assert.NotContains(t, s, "(none)")

	out.Reset()
	require.NoError(t, WriteStudents(&out, "Burnaby", nil))
	assert.Contains(t, out.String(), "(none)")
}
