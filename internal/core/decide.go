package core

import (
	"fmt"
	"time"
)

// DecideIssue implements the business rules for lending one copy of a book
// to a user. This is a pure function with no side effects - it takes the
// current records and returns the transaction that should be recorded, or
// the failure kind if a rule is violated. Callers apply the state changes
// only after a successful decision, so a failed issue leaves no partial
// state behind.
//
// Business Rules:
//
//	GIVEN: An existing book and an existing user
//	WHEN: An issue is requested
//	THEN: An Issue transaction is produced
//	ERROR: ErrOutOfStock if no copies are available
//
// Multiple copies of the same title may be held by one user; each issue
// decrements the available quantity by one.
func DecideIssue(book Book, user User, occurredAt time.Time) (Transaction, error) {
	if book.Quantity == 0 {
		return Transaction{}, fmt.Errorf("issuing %q to %q: %w", book.Title, user.Name, ErrOutOfStock)
	}

	return BuildIssueTransaction(user.Name, book.Title, occurredAt), nil
}

// DecideReturn implements the business rules for taking one copy of a book
// back from a user. Pure function, same contract as DecideIssue.
//
// Business Rules:
//
//	GIVEN: An existing book and an existing user
//	WHEN: A return is requested
//	THEN: A Return transaction is produced
//	ERROR: ErrNotBorrowed if the user holds no copy of the book
func DecideReturn(book Book, user User, occurredAt time.Time) (Transaction, error) {
	if !user.HoldsCopy(book.Title) {
		return Transaction{}, fmt.Errorf("returning %q from %q: %w", book.Title, user.Name, ErrNotBorrowed)
	}

	return BuildReturnTransaction(user.Name, book.Title, occurredAt), nil
}
