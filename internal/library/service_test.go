package library_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfledger/librarian-go/internal/core"
	"github.com/shelfledger/librarian-go/internal/ledger"
	"github.com/shelfledger/librarian-go/internal/library"
)

func newTestService(t *testing.T) *library.Service {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return library.NewService(library.NewState(), logger,
		library.WithClock(func() time.Time {
			return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		}),
	)
}

func givenBookInCatalog(t *testing.T, s *library.Service, title string, quantity int) {
	t.Helper()
	require.NoError(t, s.AddBook(title, "George Orwell", "Dystopia", quantity))
}

func givenUserInDirectory(t *testing.T, s *library.Service, name string) {
	t.Helper()
	require.NoError(t, s.AddUser(name, name+"@example.com"))
}

func ledgerKinds(s *library.Service) []core.TransactionKind {
	var kinds []core.TransactionKind
	for entry := range s.State().Ledger.History(ledger.BuildFilter().MatchingAnyEntry()) {
		kinds = append(kinds, entry.Transaction.Kind)
	}

	return kinds
}

func Test_IssueBook_Success(t *testing.T) {
	// arrange
	s := newTestService(t)
	givenBookInCatalog(t, s, "1984", 3)
	givenUserInDirectory(t, s, "John Smith")

	// act
	err := s.IssueBook("John Smith", "1984")

	// assert
	require.NoError(t, err)

	book, err := s.FindBook("1984")
	require.NoError(t, err)
	assert.Equal(t, 2, book.Quantity)

	user, err := s.FindUser("John Smith")
	require.NoError(t, err)
	assert.Equal(t, 1, user.Borrowed["1984"])

	assert.Equal(t, []core.TransactionKind{core.KindIssue}, ledgerKinds(s))
}

func Test_IssueThenReturn_RestoresQuantityAndClearsBorrowed(t *testing.T) {
	// arrange
	s := newTestService(t)
	givenBookInCatalog(t, s, "1984", 3)
	givenUserInDirectory(t, s, "John Smith")
	require.NoError(t, s.IssueBook("John Smith", "1984"))

	// act
	err := s.ReturnBook("John Smith", "1984")

	// assert
	require.NoError(t, err)

	book, err := s.FindBook("1984")
	require.NoError(t, err)
	assert.Equal(t, 3, book.Quantity)

	user, err := s.FindUser("John Smith")
	require.NoError(t, err)
	assert.Empty(t, user.Borrowed)

	assert.Equal(t, []core.TransactionKind{core.KindIssue, core.KindReturn}, ledgerKinds(s))
}

func Test_IssueBook_ExhaustStock_FourthIssueFailsOutOfStock(t *testing.T) {
	// arrange
	s := newTestService(t)
	givenBookInCatalog(t, s, "1984", 3)
	givenUserInDirectory(t, s, "John Smith")
	givenUserInDirectory(t, s, "Jane Doe")
	givenUserInDirectory(t, s, "Bob Brown")
	givenUserInDirectory(t, s, "Alice Green")

	require.NoError(t, s.IssueBook("John Smith", "1984"))
	require.NoError(t, s.IssueBook("Jane Doe", "1984"))
	require.NoError(t, s.IssueBook("Bob Brown", "1984"))

	// act
	err := s.IssueBook("Alice Green", "1984")

	// assert
	assert.ErrorIs(t, err, core.ErrOutOfStock)

	book, findErr := s.FindBook("1984")
	require.NoError(t, findErr)
	assert.Equal(t, 0, book.Quantity) // never negative

	// the failed attempt left no trace
	user, findErr := s.FindUser("Alice Green")
	require.NoError(t, findErr)
	assert.Empty(t, user.Borrowed)
	assert.Len(t, ledgerKinds(s), 3)
}

func Test_IssueBook_Error_WhenUserMissing(t *testing.T) {
	// arrange
	s := newTestService(t)
	givenBookInCatalog(t, s, "1984", 3)

	// act
	err := s.IssueBook("John Smith", "1984")

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)

	book, findErr := s.FindBook("1984")
	require.NoError(t, findErr)
	assert.Equal(t, 3, book.Quantity) // state unchanged
	assert.Empty(t, ledgerKinds(s))
}

func Test_IssueBook_Error_WhenBookMissing(t *testing.T) {
	// arrange
	s := newTestService(t)
	givenUserInDirectory(t, s, "John Smith")

	// act
	err := s.IssueBook("John Smith", "1984")

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, ledgerKinds(s))
}

func Test_IssueBook_SameTitleTwiceToOneUser_DecrementsQuantityEachTime(t *testing.T) {
	// arrange
	s := newTestService(t)
	givenBookInCatalog(t, s, "1984", 3)
	givenUserInDirectory(t, s, "John Smith")

	// act
	require.NoError(t, s.IssueBook("John Smith", "1984"))
	require.NoError(t, s.IssueBook("John Smith", "1984"))

	// assert
	book, err := s.FindBook("1984")
	require.NoError(t, err)
	assert.Equal(t, 1, book.Quantity)

	user, err := s.FindUser("John Smith")
	require.NoError(t, err)
	assert.Equal(t, 2, user.Borrowed["1984"])
}

func Test_ReturnBook_Error_WhenNotBorrowed_StateUnchanged(t *testing.T) {
	// arrange
	s := newTestService(t)
	givenBookInCatalog(t, s, "1984", 3)
	givenUserInDirectory(t, s, "John Smith")

	// act
	err := s.ReturnBook("John Smith", "1984")

	// assert
	assert.ErrorIs(t, err, core.ErrNotBorrowed)

	book, findErr := s.FindBook("1984")
	require.NoError(t, findErr)
	assert.Equal(t, 3, book.Quantity)
	assert.Empty(t, ledgerKinds(s))
}

func Test_RemoveBook_Error_WhenCopiesOutstanding(t *testing.T) {
	// arrange
	s := newTestService(t)
	givenBookInCatalog(t, s, "1984", 3)
	givenUserInDirectory(t, s, "John Smith")
	require.NoError(t, s.IssueBook("John Smith", "1984"))

	// act
	err := s.RemoveBook("1984")

	// assert
	assert.ErrorIs(t, err, core.ErrInUse)
}

func Test_RemoveBook_Success_AfterAllCopiesReturned(t *testing.T) {
	// arrange
	s := newTestService(t)
	givenBookInCatalog(t, s, "1984", 3)
	givenUserInDirectory(t, s, "John Smith")
	require.NoError(t, s.IssueBook("John Smith", "1984"))
	require.NoError(t, s.ReturnBook("John Smith", "1984"))

	// act
	err := s.RemoveBook("1984")

	// assert
	require.NoError(t, err)

	_, err = s.FindBook("1984")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func Test_RemoveUser_Error_WhenBooksOutstanding(t *testing.T) {
	// arrange
	s := newTestService(t)
	givenBookInCatalog(t, s, "1984", 3)
	givenUserInDirectory(t, s, "John Smith")
	require.NoError(t, s.IssueBook("John Smith", "1984"))

	// act
	err := s.RemoveUser("John Smith")

	// assert
	assert.ErrorIs(t, err, core.ErrInUse)
}

func Test_StockInvariant_OutstandingPlusAvailableEqualsTotal(t *testing.T) {
	// arrange
	s := newTestService(t)
	givenBookInCatalog(t, s, "1984", 3)
	givenUserInDirectory(t, s, "John Smith")
	givenUserInDirectory(t, s, "Jane Doe")

	// act - an arbitrary sequence of issues and returns
	require.NoError(t, s.IssueBook("John Smith", "1984"))
	require.NoError(t, s.IssueBook("Jane Doe", "1984"))
	require.NoError(t, s.ReturnBook("John Smith", "1984"))
	require.NoError(t, s.IssueBook("John Smith", "1984"))

	// assert
	book, err := s.FindBook("1984")
	require.NoError(t, err)
	assert.Equal(t, book.TotalStock, book.Quantity+book.OnLoan())
	assert.Equal(t, 3, book.TotalStock)
	assert.Equal(t, 1, book.Quantity)
	assert.Equal(t, 2, book.OnLoan())
}

func Test_ReplaceState_SwapsTheAggregate(t *testing.T) {
	// arrange
	s := newTestService(t)
	givenBookInCatalog(t, s, "1984", 3)

	// act
	s.ReplaceState(library.NewState())

	// assert
	_, err := s.FindBook("1984")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
