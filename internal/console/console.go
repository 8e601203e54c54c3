// Package console implements the interactive menu surface. Every failure
// kind from the service and storage layers is recovered here: the operation
// is aborted, a one-line message is shown, and the menu loop continues.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shelfledger/librarian-go/internal/core"
	"github.com/shelfledger/librarian-go/internal/library"
)

// Store is the persistence surface the console drives explicitly via the
// save/load menu entries.
type Store interface {
	Save(state *library.State) error
	Load() (*library.State, error)
}

// Console runs the menu loop against a library service and a store.
type Console struct {
	in       *bufio.Scanner
	out      io.Writer
	service  *library.Service
	store    Store
	validate *validator.Validate
	logger   *slog.Logger
	handlers map[Command]func() error
}

// New creates a Console reading selections from in and writing to out.
func New(in io.Reader, out io.Writer, service *library.Service, store Store, logger *slog.Logger) *Console {
	c := &Console{
		in:       bufio.NewScanner(in),
		out:      out,
		service:  service,
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}

	c.handlers = map[Command]func() error{
		CommandAddBook:    c.handleAddBook,
		CommandRemoveBook: c.handleRemoveBook,
		CommandAddUser:    c.handleAddUser,
		CommandRemoveUser: c.handleRemoveUser,
		CommandIssueBook:  c.handleIssueBook,
		CommandReturnBook: c.handleReturnBook,
		CommandView:       c.handleView,
		CommandSaveData:   c.handleSaveData,
		CommandLoadData:   c.handleLoadData,
	}

	return c
}

// Run drives the menu until the user exits or input ends. It only returns
// an error for unrecoverable output failures; every operation failure is
// rendered and the loop continues.
func (c *Console) Run() error {
	for {
		c.printMenu()

		line, err := c.prompt("Select option: ")
		if err != nil {
			return nil // input ended, leave quietly
		}

		selection, err := strconv.Atoi(line)
		command := Command(selection)

		if err != nil || !command.IsValid() {
			c.println("Unknown option.")

			continue
		}

		if command == CommandExit {
			c.println("Goodbye.")

			return nil
		}

		if err = c.handlers[command](); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			c.renderError(err)
		}
	}
}

func (c *Console) printMenu() {
	c.println("")
	c.println("Library Manager")

	for _, line := range menu {
		c.println(line)
	}
}

func (c *Console) println(line string) {
	_, _ = fmt.Fprintln(c.out, line)
}

// prompt prints a label and reads one trimmed line. Returns io.EOF when the
// input is exhausted.
func (c *Console) prompt(label string) (string, error) {
	_, _ = fmt.Fprint(c.out, label)

	if !c.in.Scan() {
		return "", io.EOF
	}

	return strings.TrimSpace(c.in.Text()), nil
}

// promptInt re-requests the value until it parses; malformed input is never
// fatal at the prompt.
func (c *Console) promptInt(label string) (int, error) {
	for {
		line, err := c.prompt(label)
		if err != nil {
			return 0, err
		}

		value, err := strconv.Atoi(line)
		if err != nil {
			c.println("Please enter a number.")

			continue
		}

		return value, nil
	}
}

// renderError maps a failure kind to its one-line message.
func (c *Console) renderError(err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		c.println("Not found.")
	case errors.Is(err, core.ErrDuplicateKey):
		c.println("Already exists.")
	case errors.Is(err, core.ErrOutOfStock):
		c.println("No copies available.")
	case errors.Is(err, core.ErrNotBorrowed):
		c.println("User did not borrow this book.")
	case errors.Is(err, core.ErrInUse):
		c.println("Still in use, cannot remove.")
	case errors.Is(err, core.ErrFileNotFound):
		c.println("No data file.")
	case errors.Is(err, core.ErrCorruptData):
		c.println("Data file is corrupt.")
	case errors.Is(err, core.ErrInvalidInput):
		c.println("Invalid input.")
	default:
		c.logger.Error("operation failed", "error", err)
		c.println("Operation failed, you may retry.")
	}
}

type addBookInput struct {
	Title    string `validate:"required"`
	Author   string `validate:"required"`
	Genre    string `validate:"required"`
	Quantity int    `validate:"gte=0"`
}

func (c *Console) handleAddBook() error {
	var (
		in  addBookInput
		err error
	)

	if in.Title, err = c.prompt("Title: "); err != nil {
		return err
	}

	if in.Author, err = c.prompt("Author: "); err != nil {
		return err
	}

	if in.Genre, err = c.prompt("Genre: "); err != nil {
		return err
	}

	if in.Quantity, err = c.promptInt("Quantity: "); err != nil {
		return err
	}

	if err = c.validate.Struct(in); err != nil {
		return fmt.Errorf("add book: %w: %w", core.ErrInvalidInput, err)
	}

	if err = c.service.AddBook(in.Title, in.Author, in.Genre, in.Quantity); err != nil {
		return err
	}

	c.println("Book added.")

	return nil
}

func (c *Console) handleRemoveBook() error {
	title, err := c.prompt("Title to remove: ")
	if err != nil {
		return err
	}

	if err = c.service.RemoveBook(title); err != nil {
		return err
	}

	c.println("Removed.")

	return nil
}

type addUserInput struct {
	Name    string `validate:"required"`
	Contact string
}

func (c *Console) handleAddUser() error {
	var (
		in  addUserInput
		err error
	)

	if in.Name, err = c.prompt("Name: "); err != nil {
		return err
	}

	if in.Contact, err = c.prompt("Contact info: "); err != nil {
		return err
	}

	if err = c.validate.Struct(in); err != nil {
		return fmt.Errorf("add user: %w: %w", core.ErrInvalidInput, err)
	}

	if err = c.service.AddUser(in.Name, in.Contact); err != nil {
		return err
	}

	c.println("User added.")

	return nil
}

func (c *Console) handleRemoveUser() error {
	name, err := c.prompt("Name to remove: ")
	if err != nil {
		return err
	}

	if err = c.service.RemoveUser(name); err != nil {
		return err
	}

	c.println("Removed.")

	return nil
}

func (c *Console) handleIssueBook() error {
	name, err := c.prompt("User name: ")
	if err != nil {
		return err
	}

	title, err := c.prompt("Book title: ")
	if err != nil {
		return err
	}

	if err = c.service.IssueBook(name, title); err != nil {
		return err
	}

	c.println("Issued.")

	return nil
}

func (c *Console) handleReturnBook() error {
	name, err := c.prompt("User name: ")
	if err != nil {
		return err
	}

	title, err := c.prompt("Book title: ")
	if err != nil {
		return err
	}

	if err = c.service.ReturnBook(name, title); err != nil {
		return err
	}

	c.println("Returned.")

	return nil
}

func (c *Console) handleView() error {
	overview := c.service.Overview()

	c.println("Books:")

	for _, line := range overview.Books {
		c.println(fmt.Sprintf(" - %s by %s [%d of %d copies available] (issued %d times)",
			line.Book.Title, line.Book.Author, line.Book.Quantity, line.Book.TotalStock, line.TimesIssued))
	}

	c.println("Users:")

	for _, user := range overview.Users {
		titles := make([]string, 0, len(user.Borrowed))
		for title := range user.Borrowed {
			titles = append(titles, title)
		}

		slices.Sort(titles)

		held := make([]string, 0, len(titles))
		for _, title := range titles {
			if count := user.Borrowed[title]; count == 1 {
				held = append(held, title)
			} else {
				held = append(held, fmt.Sprintf("%s x%d", title, count))
			}
		}

		c.println(fmt.Sprintf(" - %s (%s) borrowed: [%s]", user.Name, user.Contact, strings.Join(held, ", ")))
	}

	return nil
}

func (c *Console) handleSaveData() error {
	if err := c.store.Save(c.service.State()); err != nil {
		return err
	}

	c.println("Saved.")

	return nil
}

func (c *Console) handleLoadData() error {
	state, err := c.store.Load()
	if err != nil {
		return err
	}

	c.service.ReplaceState(state)
	c.println("Loaded.")

	return nil
}
