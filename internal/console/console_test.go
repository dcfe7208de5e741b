package console

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positive(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if n <= 0 {
		return 0, errors.New("not positive")
	}
	return n, nil
}

func TestReadLineTrims(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("  add \r\n"), &out)

	line, err := c.ReadLine("enter a command")
	require.NoError(t, err)
	assert.Equal(t, "add", line)
	assert.Equal(t, "enter a command: ", out.String())

	_, err = c.ReadLine("enter a command")
	assert.ErrorIs(t, err, io.EOF)
}

func TestAskRetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("abc\n-4\n12\n"), &out)

	n, err := Ask(c, "age", positive)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	assert.Equal(t, 3, strings.Count(out.String(), "age: "))
	assert.Contains(t, out.String(), "not a number")
	assert.Contains(t, out.String(), "not positive")
}

func TestAskStopsAtEOF(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("abc\n"), &out)

	n, err := Ask(c, "age", positive)
	assert.ErrorIs(t, err, io.EOF)
	assert.Zero(t, n)
}

func TestDispatch(t *testing.T) {
	var (
		out   bytes.Buffer
		calls []string
	)
	mux := NewMux()
	mux.HandleFunc("add", func(*Console) error { calls = append(calls, "add"); return nil })
	mux.HandleFunc("LIST", func(*Console) error { calls = append(calls, "list"); return nil })
	c := New(strings.NewReader(""), &out)

	require.NoError(t, mux.Dispatch(c, "ADD"))
	require.NoError(t, mux.Dispatch(c, "list"))
	assert.Equal(t, []string{"add", "list"}, calls)
	assert.Equal(t, []string{"add", "list"}, mux.Commands())

	err := mux.Dispatch(c, "foo")
	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.Contains(t, out.String(), `Invalid command "foo"`)
	assert.Len(t, calls, 2)
}

func TestServe(t *testing.T) {
	var (
		out   bytes.Buffer
		calls int
	)
	mux := NewMux()
	mux.HandleFunc("ping", func(c *Console) error { calls++; return nil })
	mux.HandleFunc("fail", func(*Console) error { return errors.New("boom") })
	mux.HandleFunc("exit", Exit)

	input := "ping\n\nfoo\nfail\nPING\nexit\nping\n"
	err := mux.Serve(New(strings.NewReader(input), &out))
	require.NoError(t, err)

	// The ping after exit is never read.
	assert.Equal(t, 2, calls)
	assert.Contains(t, out.String(), `Invalid command "foo"`)
}

func TestServeEndsAtEOF(t *testing.T) {
	mux := NewMux()
	mux.HandleFunc("ask", func(c *Console) error {
		_, err := Ask(c, "id", positive)
		return err
	})

	var out bytes.Buffer
	err := mux.Serve(New(strings.NewReader("ask\n"), &out))
	assert.NoError(t, err)
}
