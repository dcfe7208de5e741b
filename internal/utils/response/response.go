// Package response provides helpers for writing consistent console output.
//
// Every command workflow reports back to the user. Rather than formatting
// status lines and record tables by hand in each handler, we centralise
// them here so success and failure messages always look the same.
package response

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"
)

// Response is the status envelope printed after a command.
//
//	ok: student 1 added
//	error: id must be a number
type Response struct {
	Status  string
	Message string
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

var (
	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))
)

// Write prints a single status line. Styling is dropped automatically when
// the output is not a terminal.
func Write(w io.Writer, r Response) error {
	style := okStyle
	if r.Status == StatusError {
		style = errorStyle
	}
	_, err := fmt.Fprintln(w, style.Render(r.Status+":")+" "+r.Message)
	return err
}

// OK builds a success response from a format string.
func OK(format string, args ...any) Response {
	return Response{Status: StatusOK, Message: fmt.Sprintf(format, args...)}
}

// GeneralError wraps any Go error into our standard Response shape. Record
// validation failures are expanded into one sentence per field.
func GeneralError(err error) Response {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return ValidationError(verrs)
	}
	return Response{Status: StatusError, Message: err.Error()}
}

// ValidationError converts the validator's field errors into a single
// human-readable Response:
//
//	error: field Age must be greater than 18, field GPA is invalid
func ValidationError(errs validator.ValidationErrors) Response {
	var msgs []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		case "alpha":
			msgs = append(msgs, fmt.Sprintf("field %s must contain letters only", e.Field()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("field %s must be greater than %s", e.Field(), e.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of %s", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{Status: StatusError, Message: strings.Join(msgs, ", ")}
}

// WriteStudents prints a titled, column-aligned table of students. An empty
// slice prints the title followed by "(none)".
func WriteStudents(w io.Writer, title string, students []types.Student) error {
	if _, err := fmt.Fprintln(w, headerStyle.Render(title)); err != nil {
		return err
	}
	if len(students) == 0 {
		_, err := fmt.Fprintln(w, "  (none)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tNAME\tAGE\tPROGRAM\tGPA\tGROUP")
	for _, s := range students {
		fmt.Fprintf(tw, "  %d\t%s\t%d\t%s\t%.2f\t%s\n",
			s.ID, s.Name, s.Age, s.Program, s.GPA, s.Group)
	}
	return tw.Flush()
}
