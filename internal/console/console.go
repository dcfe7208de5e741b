// Package console runs the line-oriented command loop.
//
// A Console wraps the input and output streams. Ask is the single retry
// loop every prompt goes through: read a line, parse it, report the reason
// on failure, read again. Mux maps command tokens to handlers the same way
// an http.ServeMux maps routes, and Serve drives it until "exit" or EOF.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aanand-mishra/student-records/internal/utils/response"
)

// Console reads one line per prompt from in and writes prompts and
// results to out.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// Out is where handlers write their results.
func (c *Console) Out() io.Writer { return c.out }

// ReadLine prints "label: " and returns the next input line with
// surrounding whitespace removed. It returns io.EOF once input is exhausted.
func (c *Console) ReadLine(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)

	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read %s: %w", label, err)
		}
		fmt.Fprintln(c.out)
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// Ask prompts for label until parse accepts the input. Each rejection is
// printed before prompting again. The only error Ask returns is a read
// error, io.EOF included.
func Ask[T any](c *Console, label string, parse func(raw string) (T, error)) (T, error) {
	for {
		raw, err := c.ReadLine(label)
		if err != nil {
			var zero T
			return zero, err
		}

		value, err := parse(raw)
		if err == nil {
			return value, nil
		}
		response.Write(c.out, response.GeneralError(err))
	}
}
