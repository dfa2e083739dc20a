// internal/catalog/handler.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"libracatalog/internal/logging"
)

// Command is a keyword understood by the interpreter.
type Command string

const (
	CommandHelp         Command = "/help"
	CommandAdd          Command = "/add"
	CommandRemove       Command = "/remove"
	CommandUpdateStatus Command = "/update_status"
	CommandSearch       Command = "/search"
	CommandList         Command = "/list"
	CommandExit         Command = "/exit"
)

// Token count bounds for a command line, keyword included.
const (
	MinTokens = 1
	MaxTokens = 4
)

// wrapChars are trimmed from both ends of free-text arguments so that
// "<The Hobbit>" and "The Hobbit" mean the same thing.
const wrapChars = "<>"

const helpText = `Available commands:

/help - shows available commands
/add <title> <author> <year> - adds new book
/remove <book_id> - removes book
/update_status <book_id> <status> - updates book status
/search <field> <value> [limit] - searches books by field and value
/list [limit] - shows list of all books
/exit - exits program

* limit - optional parameter (if negative get books from end of list. Example: -5: shows last 5 books). By default limit not set
`

// errExit is returned by Handle when the command ends the session.
var errExit = errors.New("exit requested")

// Printer renders an ordered sequence of books.
type Printer interface {
	PrintBooks(w io.Writer, books []*Book) error
}

// Handler maps command lines to catalog operations and writes the results.
type Handler struct {
	service Service
	printer Printer
	out     io.Writer
	success lipgloss.Style
	failure lipgloss.Style
}

// NewHandler creates a handler writing to out.
func NewHandler(service Service, printer Printer, out io.Writer) *Handler {
	r := lipgloss.NewRenderer(out)
	return &Handler{
		service: service,
		printer: printer,
		out:     out,
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// Handle runs one tokenized command line. It returns errExit for /exit and
// the operation's error otherwise.
func (h *Handler) Handle(ctx context.Context, tokens []string) error {
	if len(tokens) < MinTokens || len(tokens) > MaxTokens {
		return ErrInvalidCommand
	}

	ctx = logging.WithField(ctx, "command", tokens[0])
	args := tokens[1:]

	switch Command(tokens[0]) {
	case CommandHelp:
		if len(args) != 0 {
			return ErrInvalidCommand
		}
		fmt.Fprint(h.out, helpText+"\n")
		return nil
	case CommandAdd:
		if len(args) != 3 {
			return ErrInvalidCommand
		}
		return h.handleAddBook(ctx, strings.Trim(args[0], wrapChars), strings.Trim(args[1], wrapChars), args[2])
	case CommandRemove:
		if len(args) != 1 {
			return ErrInvalidCommand
		}
		return h.handleRemoveBook(ctx, args[0])
	case CommandUpdateStatus:
		if len(args) != 2 {
			return ErrInvalidCommand
		}
		return h.handleUpdateBookStatus(ctx, args[0], args[1])
	case CommandSearch:
		if len(args) < 2 {
			return ErrInvalidCommand
		}
		limit := "0"
		if len(args) == 3 {
			limit = args[2]
		}
		return h.handleSearch(ctx, args[0], strings.Trim(args[1], wrapChars), limit)
	case CommandList:
		if len(args) > 1 {
			return ErrInvalidCommand
		}
		limit := "0"
		if len(args) == 1 {
			limit = args[0]
		}
		return h.handleList(ctx, limit)
	case CommandExit:
		if len(args) != 0 {
			return ErrInvalidCommand
		}
		return errExit
	default:
		return NewValidationError("command", tokens[0], "unknown command")
	}
}

func (h *Handler) handleAddBook(ctx context.Context, title, author, rawYear string) error {
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return NewValidationError(string(FieldYear), rawYear, "must be an integer")
	}

	book, err := NewBook(title, author, year)
	if err != nil {
		return err
	}

	if err := h.service.AddBook(ctx, book); err != nil {
		return err
	}

	h.succeed(fmt.Sprintf("SUCCESS. Book %s added. UUID: %s", book.Title, book.ID))
	return nil
}

func (h *Handler) handleRemoveBook(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	if err := h.service.RemoveBook(ctx, id); err != nil {
		return err
	}

	h.succeed(fmt.Sprintf("SUCCESS. Book %s removed.", id))
	return nil
}

func (h *Handler) handleUpdateBookStatus(ctx context.Context, rawID, status string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	if err := h.service.UpdateBookStatus(ctx, id, status); err != nil {
		return err
	}

	h.succeed(fmt.Sprintf("SUCCESS. Book status updated. Current status: %s.", status))
	return nil
}

func (h *Handler) handleSearch(ctx context.Context, field, value, rawLimit string) error {
	limit, err := parseLimit(rawLimit)
	if err != nil {
		return err
	}

	books, err := h.service.SearchBooks(ctx, field, value, limit)
	if err != nil {
		return err
	}
	return h.printer.PrintBooks(h.out, books)
}

func (h *Handler) handleList(ctx context.Context, rawLimit string) error {
	limit, err := parseLimit(rawLimit)
	if err != nil {
		return err
	}

	books, err := h.service.ListBooks(ctx, limit)
	if err != nil {
		return err
	}
	return h.printer.PrintBooks(h.out, books)
}

// Report renders err as a one-line user message.
func (h *Handler) Report(ctx context.Context, err error) {
	var (
		notFound      *NotFoundError
		invalidStatus *InvalidStatusError
		invalidField  *InvalidFieldError
	)

	switch {
	case errors.As(err, &notFound):
		h.fail(fmt.Sprintf("ERROR. Book with id: %s not found.", notFound.ID))
	case errors.As(err, &invalidStatus):
		h.fail(fmt.Sprintf("ERROR. Received invalid book status: %s.", invalidStatus.Status))
	case errors.As(err, &invalidField):
		h.fail(fmt.Sprintf("ERROR. Received invalid book field: %s doesn't exist.", invalidField.Field))
	case errors.Is(err, ErrInvalidCommand):
		h.fail("ERROR. Wrong command usage. Type /help to get list of available commands.")
	case errors.Is(err, ErrValidation):
		logging.FromContext(ctx).Debug().Err(err).Msg("rejected input")
		h.fail("ERROR. Invalid parameters entered. Fix entered data and try again.")
	default:
		logging.FromContext(ctx).Error().Err(err).Msg("command failed")
		h.fail(fmt.Sprintf("ERROR. %s", err))
	}
}

func (h *Handler) succeed(msg string) {
	fmt.Fprintln(h.out, h.success.Render(msg))
}

func (h *Handler) fail(msg string) {
	fmt.Fprintln(h.out, h.failure.Render(msg))
}

// parseID checks that raw is UUID-shaped and returns its canonical form.
func parseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", NewValidationError("id", raw, "must be a UUID")
	}
	return id.String(), nil
}

func parseLimit(raw string) (int, error) {
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewValidationError("limit", raw, "must be an integer")
	}
	return limit, nil
}
