// Package validate turns raw console input into typed student fields.
//
// Each function is a pure check for one field: it returns the parsed value
// or a *FieldError naming the reason. None of them retry; re-prompting is
// the caller's job (see console.Ask).
//
// Character-class and range checks go through the same go-playground
// validator tags used on types.Student, so a value accepted here is also
// accepted by storage.ValidateStudent.
package validate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/go-playground/validator/v10"
)

// Failure reasons. A duplicate id is reported with storage.ErrDuplicateID.
var (
	ErrEmpty        = errors.New("must not be empty")
	ErrInvalidChars = errors.New("must contain letters only")
	ErrNotNumeric   = errors.New("must be a number")
	ErrTooYoung     = errors.New("must be older than 18")
	ErrOutOfRange   = errors.New("is out of range")
	ErrInvalidGroup = errors.New("must start with 'd' (Downtown) or 'b' (Burnaby)")
)

// FieldError reports which field failed and why.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return fmt.Sprintf("%s %s", e.Field, e.Err) }

func (e *FieldError) Unwrap() error { return e.Err }

var v = validator.New()

func fail(field string, err error) *FieldError {
	return &FieldError{Field: field, Err: err}
}

// ID parses a new student id. taken reports whether an id is already stored.
func ID(raw string, taken func(id int) bool) (int, error) {
	id, err := LookupID(raw)
	if err != nil {
		return 0, err
	}
	if taken(id) {
		return 0, fail("id", storage.ErrDuplicateID)
	}
	return id, nil
}

// LookupID parses an id used to find an existing student.
func LookupID(raw string) (int, error) {
	id, err := digits(raw)
	if err != nil {
		return 0, fail("id", err)
	}
	if id <= 0 {
		return 0, fail("id", ErrOutOfRange)
	}
	return id, nil
}

func Name(raw string) (string, error) { return letters("name", raw) }

func Program(raw string) (string, error) { return letters("program", raw) }

// Age accepts whole numbers only; "19.5" and "-20" are not numeric.
func Age(raw string) (int, error) {
	age, err := digits(raw)
	if err != nil {
		return 0, fail("age", err)
	}
	if v.Var(age, "gt=18") != nil {
		return 0, fail("age", ErrTooYoung)
	}
	return age, nil
}

// GPA parses the whole string as a float, checks 0 <= gpa <= 5 and
// truncates to two decimals. NaN and infinities fail the range check.
func GPA(raw string) (float64, error) {
	gpa, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fail("gpa", ErrNotNumeric)
	}
	if v.Var(gpa, "gte=0,lte=5") != nil {
		return 0, fail("gpa", ErrOutOfRange)
	}
	return TruncateGPA(gpa), nil
}

// TruncateGPA drops everything past the second decimal: 3.456 becomes 3.45.
func TruncateGPA(gpa float64) float64 {
	return math.Trunc(gpa*100) / 100
}

// Group maps the first letter of raw, in either case, to a group.
func Group(raw string) (types.Group, error) {
	if raw == "" {
		return "", fail("group", ErrEmpty)
	}
	first, _ := utf8.DecodeRuneInString(raw)
	switch unicode.ToLower(first) {
	case 'd':
		return types.GroupDowntown, nil
	case 'b':
		return types.GroupBurnaby, nil
	default:
		return "", fail("group", ErrInvalidGroup)
	}
}

func letters(field, raw string) (string, error) {
	if v.Var(raw, "required") != nil {
		return "", fail(field, ErrEmpty)
	}
	if v.Var(raw, "alpha") != nil {
		return "", fail(field, ErrInvalidChars)
	}
	return raw, nil
}

// digits accepts only [0-9]+ that fits in an int.
func digits(raw string) (int, error) {
	if v.Var(raw, "number") != nil {
		return 0, ErrNotNumeric
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrNotNumeric
	}
	return n, nil
}
