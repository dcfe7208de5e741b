package console

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aanand-mishra/student-records/internal/utils/response"
)

var (
	// ErrExit is returned by the exit handler to stop Serve.
	ErrExit = errors.New("exit requested")

	ErrInvalidCommand = errors.New("invalid command")
)

// HandlerFunc runs one command workflow. Returning an error is reserved for
// I/O failures and ErrExit; domain failures are reported to the user by the
// handler itself.
type HandlerFunc func(c *Console) error

// Mux is the command table.
type Mux struct {
	handlers map[string]HandlerFunc
	commands []string
}

func NewMux() *Mux {
	return &Mux{handlers: make(map[string]HandlerFunc)}
}

// HandleFunc registers h for the command token, matched case-insensitively.
func (m *Mux) HandleFunc(command string, h HandlerFunc) {
	command = strings.ToLower(command)
	if _, ok := m.handlers[command]; !ok {
		m.commands = append(m.commands, command)
	}
	m.handlers[command] = h
}

// Commands returns the registered tokens in registration order.
func (m *Mux) Commands() []string {
	return append([]string(nil), m.commands...)
}

// Dispatch folds raw to lower case and runs the matching handler. Unknown
// tokens print a diagnostic and return ErrInvalidCommand; no handler runs.
func (m *Mux) Dispatch(c *Console, raw string) error {
	h, ok := m.handlers[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		response.Write(c.out, response.Response{
			Status:  response.StatusError,
			Message: fmt.Sprintf("Invalid command %q (commands: %s)", raw, strings.Join(m.commands, ", ")),
		})
		return fmt.Errorf("%w: %q", ErrInvalidCommand, raw)
	}
	return h(c)
}

// Serve prompts for commands until a handler returns ErrExit or input ends.
// Each command runs to completion before the next one is read.
func (m *Mux) Serve(c *Console) error {
	for {
		command, err := c.ReadLine("enter a command")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if command == "" {
			continue
		}

		err = m.Dispatch(c, command)
		switch {
		case err == nil, errors.Is(err, ErrInvalidCommand):
		case errors.Is(err, ErrExit), errors.Is(err, io.EOF):
			return nil
		default:
			slog.Error("command failed",
				slog.String("command", command),
				slog.String("error", err.Error()))
		}
	}
}

// Exit is the handler for the exit command.
func Exit(*Console) error { return ErrExit }
