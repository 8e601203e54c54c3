// Package library orchestrates the catalog, directory and ledger behind a
// single service surface: validated add/remove/update operations, the
// issue/return workflow, and the report projections.
package library

import (
	"log/slog"
	"time"

	"github.com/shelfledger/librarian-go/internal/catalog"
	"github.com/shelfledger/librarian-go/internal/core"
	"github.com/shelfledger/librarian-go/internal/directory"
)

// Service executes library operations against its State. All access is
// single-threaded by construction; if concurrent callers ever appear, a
// single coarse lock around these methods is the intended extension point.
type Service struct {
	state  *State
	logger *slog.Logger
	clock  func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets a custom time source, used by tests for deterministic
// transaction timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// NewService creates a Service owning the given state.
func NewService(state *State, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		state:  state,
		logger: logger,
		clock:  time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// State returns the aggregate the service currently operates on.
func (s *Service) State() *State {
	return s.state
}

// ReplaceState swaps in a different aggregate, e.g. after loading from disk.
func (s *Service) ReplaceState(state *State) {
	s.state = state
}

// AddBook creates a catalog record with all copies available.
func (s *Service) AddBook(title core.TitleString, author string, genre string, quantity int) error {
	if err := s.state.Catalog.Add(title, author, genre, quantity); err != nil {
		return err
	}

	s.logger.Info("book added", "title", title, "quantity", quantity)

	return nil
}

// RemoveBook deletes a catalog record, refusing while copies are on loan.
func (s *Service) RemoveBook(title core.TitleString) error {
	if err := s.state.Catalog.Remove(title); err != nil {
		return err
	}

	s.logger.Info("book removed", "title", title)

	return nil
}

// UpdateBook applies a partial update to a catalog record.
func (s *Service) UpdateBook(title core.TitleString, fields catalog.Update) error {
	return s.state.Catalog.Update(title, fields)
}

// FindBook returns a catalog record.
func (s *Service) FindBook(title core.TitleString) (core.Book, error) {
	return s.state.Catalog.Find(title)
}

// AddUser creates a directory record.
func (s *Service) AddUser(name core.NameString, contact string) error {
	if err := s.state.Directory.Add(name, contact); err != nil {
		return err
	}

	s.logger.Info("user added", "name", name)

	return nil
}

// RemoveUser deletes a directory record, refusing while books are held.
func (s *Service) RemoveUser(name core.NameString) error {
	if err := s.state.Directory.Remove(name); err != nil {
		return err
	}

	s.logger.Info("user removed", "name", name)

	return nil
}

// UpdateUser applies a partial update to a directory record.
func (s *Service) UpdateUser(name core.NameString, fields directory.Update) error {
	return s.state.Directory.Update(name, fields)
}

// FindUser returns a directory record.
func (s *Service) FindUser(name core.NameString) (core.User, error) {
	return s.state.Directory.Find(name)
}

// IssueBook lends one copy of a book to a user: the available quantity goes
// down by one, the title joins the user's borrowed multiset, and an Issue
// entry is appended to the ledger. The workflow is lookup -> pure decision
// -> apply, so a failed precondition leaves every component untouched.
func (s *Service) IssueBook(userName core.NameString, bookTitle core.TitleString) error {
	user, err := s.state.Directory.Find(userName)
	if err != nil {
		return err
	}

	book, err := s.state.Catalog.Find(bookTitle)
	if err != nil {
		return err
	}

	tx, err := core.DecideIssue(book, user, s.clock())
	if err != nil {
		return err
	}

	// Apply phase. The decision validated every precondition and nothing
	// else mutates the state between these calls, so they cannot fail.
	if err = s.state.Catalog.LendCopy(bookTitle); err != nil {
		return err
	}

	if err = s.state.Directory.BorrowCopy(userName, bookTitle); err != nil {
		return err
	}

	entry := s.state.Ledger.Record(tx)

	s.logger.Info("book issued",
		"user", userName,
		"book", bookTitle,
		"seq", entry.Seq,
		"message_id", entry.Metadata.MessageID,
	)

	return nil
}

// ReturnBook takes one copy of a book back from a user: the available
// quantity goes up by one, one instance leaves the borrowed multiset, and a
// Return entry is appended to the ledger. Same no-partial-state contract as
// IssueBook.
func (s *Service) ReturnBook(userName core.NameString, bookTitle core.TitleString) error {
	user, err := s.state.Directory.Find(userName)
	if err != nil {
		return err
	}

	book, err := s.state.Catalog.Find(bookTitle)
	if err != nil {
		return err
	}

	tx, err := core.DecideReturn(book, user, s.clock())
	if err != nil {
		return err
	}

	if err = s.state.Catalog.AcceptReturn(bookTitle); err != nil {
		return err
	}

	if err = s.state.Directory.ReturnCopy(userName, bookTitle); err != nil {
		return err
	}

	entry := s.state.Ledger.Record(tx)

	s.logger.Info("book returned",
		"user", userName,
		"book", bookTitle,
		"seq", entry.Seq,
		"message_id", entry.Metadata.MessageID,
	)

	return nil
}
