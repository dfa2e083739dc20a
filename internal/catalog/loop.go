// internal/catalog/loop.go
package catalog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"libracatalog/internal/logging"
)

const (
	// Greeting is printed once when the loop starts.
	Greeting = "Welcome to Library management system! Enter /help to get available commands.\n"
	// Prompt precedes every input line.
	Prompt = "~ "
)

// State is the interpreter state.
type State int

const (
	StateRunning State = iota
	StateExited
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Loop reads command lines and feeds them to a Handler until /exit or the
// end of input.
type Loop struct {
	handler *Handler
	in      *bufio.Reader
	out     io.Writer
	state   State
}

// NewLoop creates a loop reading from in and writing prompts to out.
func NewLoop(handler *Handler, in io.Reader, out io.Writer) *Loop {
	return &Loop{
		handler: handler,
		in:      bufio.NewReader(in),
		out:     out,
		state:   StateRunning,
	}
}

// State returns the current state.
func (l *Loop) State() State {
	return l.state
}

// Run drives the loop. Every command error is reported and the loop carries
// on; only /exit, end of input or a cancelled context stop it.
func (l *Loop) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	fmt.Fprint(l.out, Greeting+"\n")

	for l.state == StateRunning {
		if err := ctx.Err(); err != nil {
			l.exit()
			return err
		}

		fmt.Fprint(l.out, Prompt)
		line, readErr := l.in.ReadString('\n')
		if readErr != nil && line == "" {
			if !errors.Is(readErr, io.EOF) {
				log.Warn().Err(readErr).Msg("input stream failed")
			}
			l.exit()
			break
		}

		line = strings.TrimRight(line, "\r\n")
		err := l.handler.Handle(ctx, Tokenize(line))
		switch {
		case errors.Is(err, errExit):
			l.exit()
		case err != nil:
			l.handler.Report(ctx, err)
		}
	}

	return nil
}

func (l *Loop) exit() {
	fmt.Fprintln(l.out, "Exiting...")
	l.state = StateExited
}
