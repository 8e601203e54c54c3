package storage

import (
	"fmt"
	"slices"
	"time"

	"github.com/shelfledger/librarian-go/internal/catalog"
	"github.com/shelfledger/librarian-go/internal/core"
	"github.com/shelfledger/librarian-go/internal/directory"
	"github.com/shelfledger/librarian-go/internal/ledger"
	"github.com/shelfledger/librarian-go/internal/library"
)

// Document is the persisted shape of the whole library state: three named
// sections, each an ordered sequence of flat records. Books and users are
// ordered by their identity key, transactions by insertion order.
type Document struct {
	Books        []BookRecord        `json:"books"`
	Users        []UserRecord        `json:"users"`
	Transactions []TransactionRecord `json:"transactions"`
}

// BookRecord is a flat catalog record. The total stock is not persisted;
// it is derived on load from the quantity plus the outstanding issues in
// the transactions section.
type BookRecord struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Genre    string `json:"genre"`
	Quantity int    `json:"quantity"`
}

// UserRecord is a flat directory record. Borrowed lists one element per
// held copy, so a user holding two copies of a title lists it twice.
type UserRecord struct {
	Name     string   `json:"name"`
	Contact  string   `json:"contact"`
	Borrowed []string `json:"borrowed"`
}

// TransactionRecord is a flat ledger record. Sequence numbers are not
// persisted; they are reassigned positionally on load.
type TransactionRecord struct {
	User      string    `json:"user"`
	Book      string    `json:"book"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

// DocumentFrom serializes a State into its persisted shape.
func DocumentFrom(state *library.State) Document {
	books := state.Catalog.All()
	bookRecords := make([]BookRecord, 0, len(books))

	for _, book := range books {
		bookRecords = append(bookRecords, BookRecord{
			Title:    book.Title,
			Author:   book.Author,
			Genre:    book.Genre,
			Quantity: book.Quantity,
		})
	}

	users := state.Directory.All()
	userRecords := make([]UserRecord, 0, len(users))

	for _, user := range users {
		userRecords = append(userRecords, UserRecord{
			Name:     user.Name,
			Contact:  user.Contact,
			Borrowed: expandBorrowed(user.Borrowed),
		})
	}

	entries := state.Ledger.Snapshot()
	txRecords := make([]TransactionRecord, 0, len(entries))

	for _, entry := range entries {
		txRecords = append(txRecords, TransactionRecord{
			User:      entry.Transaction.User,
			Book:      entry.Transaction.Book,
			Kind:      string(entry.Transaction.Kind),
			Timestamp: entry.Transaction.OccurredAt,
		})
	}

	return Document{
		Books:        bookRecords,
		Users:        userRecords,
		Transactions: txRecords,
	}
}

// StateFrom parses a Document back into a State. It returns
// core.ErrCorruptData when records are malformed or when the sections
// contradict each other: a borrowed copy without a matching outstanding
// issue in the transactions section, or the other way around.
func StateFrom(doc Document) (*library.State, error) {
	transactions := make([]core.Transaction, 0, len(doc.Transactions))
	for _, record := range doc.Transactions {
		transactions = append(transactions, core.Transaction{
			User:       record.User,
			Book:       record.Book,
			Kind:       core.TransactionKind(record.Kind),
			OccurredAt: record.Timestamp,
		})
	}

	ledg, err := ledger.Restore(transactions)
	if err != nil {
		return nil, err
	}

	outstanding, err := replayOutstanding(transactions)
	if err != nil {
		return nil, err
	}

	books := make([]core.Book, 0, len(doc.Books))
	onLoanPerBook := make(map[core.TitleString]int)

	for _, held := range outstanding {
		for title, count := range held {
			onLoanPerBook[title] += count
		}
	}

	for _, record := range doc.Books {
		book := core.BuildBook(record.Title, record.Author, record.Genre, record.Quantity)
		book.TotalStock = record.Quantity + onLoanPerBook[record.Title]
		books = append(books, book)
	}

	cat, err := catalog.Restore(books)
	if err != nil {
		return nil, err
	}

	users := make([]core.User, 0, len(doc.Users))
	for _, record := range doc.Users {
		user := core.BuildUser(record.Name, record.Contact)
		for _, title := range record.Borrowed {
			user.Borrowed[title]++
		}

		users = append(users, user)
	}

	dir, err := directory.Restore(users)
	if err != nil {
		return nil, err
	}

	if err = verifyBorrowedMatchesLedger(users, cat, outstanding); err != nil {
		return nil, err
	}

	return library.BuildState(cat, dir, ledg), nil
}

// expandBorrowed flattens a borrowed multiset into the persisted list form,
// titles sorted for a deterministic document, one element per copy.
func expandBorrowed(borrowed map[core.TitleString]int) []string {
	titles := make([]string, 0, len(borrowed))
	for title := range borrowed {
		titles = append(titles, title)
	}

	slices.Sort(titles)

	expanded := make([]string, 0, len(titles))
	for _, title := range titles {
		for range borrowed[title] {
			expanded = append(expanded, title)
		}
	}

	return expanded
}

// replayOutstanding derives the currently-held copies per user and book
// from the transactions section. A return without a preceding issue makes
// the document corrupt.
func replayOutstanding(transactions []core.Transaction) (map[core.NameString]map[core.TitleString]int, error) {
	outstanding := make(map[core.NameString]map[core.TitleString]int)

	for i, tx := range transactions {
		if outstanding[tx.User] == nil {
			outstanding[tx.User] = make(map[core.TitleString]int)
		}

		switch tx.Kind {
		case core.KindIssue:
			outstanding[tx.User][tx.Book]++
		case core.KindReturn:
			outstanding[tx.User][tx.Book]--
			if outstanding[tx.User][tx.Book] < 0 {
				return nil, fmt.Errorf("transaction %d: return of %q by %q without a matching issue: %w",
					i+1, tx.Book, tx.User, core.ErrCorruptData)
			}
		}
	}

	return outstanding, nil
}

// verifyBorrowedMatchesLedger cross-checks the users section against the
// outstanding issues derived from the transactions section; they describe
// the same facts and must agree. Borrowed titles must also exist in the
// books section, which is guaranteed when they agree because removal is
// blocked while copies are on loan.
func verifyBorrowedMatchesLedger(
	users []core.User,
	cat *catalog.Catalog,
	outstanding map[core.NameString]map[core.TitleString]int,
) error {

	borrowedByUser := make(map[core.NameString]map[core.TitleString]int)
	for _, user := range users {
		borrowedByUser[user.Name] = user.Borrowed
	}

	for userName, held := range outstanding {
		for title, count := range held {
			if count == 0 {
				continue
			}

			if borrowedByUser[userName][title] != count {
				return fmt.Errorf("user %q holds %d copies of %q per transactions but %d per users section: %w",
					userName, count, title, borrowedByUser[userName][title], core.ErrCorruptData)
			}
		}
	}

	for _, user := range users {
		for title, count := range user.Borrowed {
			if outstanding[user.Name][title] != count {
				return fmt.Errorf("user %q holds %d copies of %q per users section but %d per transactions: %w",
					user.Name, count, title, outstanding[user.Name][title], core.ErrCorruptData)
			}

			if _, err := cat.Find(title); err != nil {
				return fmt.Errorf("user %q borrowed unknown book %q: %w", user.Name, title, core.ErrCorruptData)
			}
		}
	}

	return nil
}
