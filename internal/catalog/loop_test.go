// internal/catalog/loop_test.go
package catalog_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libracatalog/internal/catalog"
	"libracatalog/internal/display"
	"libracatalog/internal/storage"
)

var addedID = regexp.MustCompile(`UUID: ([0-9a-f-]{36})`)

type session struct {
	t       *testing.T
	handler *catalog.Handler
	out     *bytes.Buffer
	path    string
}

func newSession(t *testing.T) *session {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.json")
	out := &bytes.Buffer{}
	svc := catalog.NewService(storage.NewFileGateway(path))
	return &session{
		t:       t,
		handler: catalog.NewHandler(svc, display.NewPrinter(), out),
		out:     out,
		path:    path,
	}
}

// run feeds one line through the handler and returns what it printed.
func (s *session) run(line string) string {
	s.t.Helper()
	s.out.Reset()
	ctx := context.Background()
	if err := s.handler.Handle(ctx, catalog.Tokenize(line)); err != nil {
		s.handler.Report(ctx, err)
	}
	return s.out.String()
}

func TestScenarioAddListRemove(t *testing.T) {
	s := newSession(t)

	out := s.run(`/add "The Great Gatsby" 'F. Scott Fitzgerald' 1925`)
	require.Contains(t, out, "SUCCESS. Book The Great Gatsby added. UUID: ")
	m := addedID.FindStringSubmatch(out)
	require.Len(t, m, 2)
	id := m[1]

	out = s.run(`/list`)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "The Great Gatsby")
	assert.Contains(t, out, "F. Scott Fitzgerald")
	assert.Contains(t, out, "1925")
	assert.Contains(t, out, "available")
	assert.Contains(t, out, "Found 1 items")

	out = s.run(`/remove ` + id)
	assert.Equal(t, "SUCCESS. Book "+id+" removed.\n", out)

	out = s.run(`/list 0`)
	assert.Equal(t, display.EmptyMessage+"\n", out)
}

func TestAddStripsAngleBrackets(t *testing.T) {
	s := newSession(t)

	out := s.run(`/add "<Brave New World>" <Huxley,_Aldous> 1932`)
	require.Contains(t, out, "SUCCESS. Book Brave New World added.")

	out = s.run(`/search author <huxley>`)
	assert.Contains(t, out, "Huxley,_Aldous")
	assert.Contains(t, out, "Found 1 items")
}

func TestUpdateStatusFlow(t *testing.T) {
	s := newSession(t)
	id := addedID.FindStringSubmatch(s.run(`/add "Moby Dick, or The Whale" "Herman Melville" 1851`))
	require.Nil(t, id, "year 1851 is out of range")

	out := s.run(`/add "Moby Dick, or The Whale" "Herman Melville" 1951`)
	m := addedID.FindStringSubmatch(out)
	require.Len(t, m, 2)

	out = s.run(`/update_status ` + m[1] + ` issued`)
	assert.Equal(t, "SUCCESS. Book status updated. Current status: issued.\n", out)

	out = s.run(`/update_status ` + m[1] + ` lost`)
	assert.Equal(t, "ERROR. Received invalid book status: lost.\n", out)

	out = s.run(`/search title moby`)
	assert.Contains(t, out, "issued")
}

func TestErrorMessages(t *testing.T) {
	s := newSession(t)
	const (
		usage      = "ERROR. Wrong command usage. Type /help to get list of available commands.\n"
		validation = "ERROR. Invalid parameters entered. Fix entered data and try again.\n"
		missingID  = "0b8f1f44-8d5c-4f7e-9a51-0c1d2e3f4a5b"
	)

	tests := []struct {
		line string
		want string
	}{
		{``, usage},
		{`/list 1 2 3 4`, usage},
		{`/add only two`, usage},
		{`/remove`, usage},
		{`/update_status ` + missingID, usage},
		{`/search title`, usage},
		{`/list 1 2`, usage},
		{`/help me`, usage},
		{`/exit now`, usage},
		{`/unknown`, validation},
		{`hello`, validation},
		{`/add "Valid title" "Valid author" nineteen`, validation},
		{`/add short "Valid author" 1999`, validation},
		{`/add "Valid title" "Valid author" 2101`, validation},
		{`/remove not-a-uuid`, validation},
		{`/update_status 12345 issued`, validation},
		{`/list many`, validation},
		{`/search title harry x`, validation},
		{`/remove ` + missingID, "ERROR. Book with id: " + missingID + " not found.\n"},
		{`/update_status ` + missingID + ` issued`, "ERROR. Book with id: " + missingID + " not found.\n"},
		{`/search isbn 123`, "ERROR. Received invalid book field: isbn doesn't exist.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, s.run(tt.line))
		})
	}
}

func TestHelp(t *testing.T) {
	s := newSession(t)
	out := s.run(`/help`)
	for _, cmd := range []catalog.Command{
		catalog.CommandHelp, catalog.CommandAdd, catalog.CommandRemove, catalog.CommandUpdateStatus,
		catalog.CommandSearch, catalog.CommandList, catalog.CommandExit,
	} {
		assert.Contains(t, out, string(cmd))
	}
}

func TestFailedAddPersistsNothing(t *testing.T) {
	s := newSession(t)
	s.run(`/list`)

	s.run(`/add "Valid title" "x" 1999`)

	data, err := os.ReadFile(s.path)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestLoopRunsUntilExit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	out := &bytes.Buffer{}
	handler := catalog.NewHandler(catalog.NewService(storage.NewFileGateway(path)), display.NewPrinter(), out)

	in := strings.NewReader(strings.Join([]string{
		`/list`,
		`/bogus`,
		`/add "Pride and Prejudice" "Jane Austen" 1913`,
		`/exit`,
		`/list`,
	}, "\n") + "\n")

	loop := catalog.NewLoop(handler, in, out)
	assert.Equal(t, catalog.StateRunning, loop.State())
	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, catalog.StateExited, loop.State())

	got := out.String()
	assert.True(t, strings.HasPrefix(got, catalog.Greeting))
	assert.Contains(t, got, display.EmptyMessage)
	assert.Contains(t, got, "ERROR. Invalid parameters entered.")
	assert.Contains(t, got, "SUCCESS. Book Pride and Prejudice added.")
	assert.Equal(t, 1, strings.Count(got, display.EmptyMessage), "commands after /exit must not run")
	assert.True(t, strings.HasSuffix(got, "Exiting...\n"))
}

func TestLoopTreatsEndOfInputAsExit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	out := &bytes.Buffer{}
	handler := catalog.NewHandler(catalog.NewService(storage.NewFileGateway(path)), display.NewPrinter(), out)

	// The last line has no newline and must still run.
	loop := catalog.NewLoop(handler, strings.NewReader("/list\n/list"), out)
	require.NoError(t, loop.Run(context.Background()))

	assert.Equal(t, catalog.StateExited, loop.State())
	assert.Equal(t, 2, strings.Count(out.String(), display.EmptyMessage))
	assert.True(t, strings.HasSuffix(out.String(), "Exiting...\n"))
}

func TestLoopStopsOnCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	out := &bytes.Buffer{}
	handler := catalog.NewHandler(catalog.NewService(storage.NewFileGateway(path)), display.NewPrinter(), out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loop := catalog.NewLoop(handler, strings.NewReader("/list\n"), out)
	assert.ErrorIs(t, loop.Run(ctx), context.Canceled)
	assert.Equal(t, catalog.StateExited, loop.State())
	assert.NotContains(t, out.String(), display.EmptyMessage)
}
