package core

import "time"

// TransactionKind discriminates ledger entries.
type TransactionKind string

const (
	// KindIssue records one copy being lent to a user.
	KindIssue TransactionKind = "issue"

	// KindReturn records one copy coming back from a user.
	KindReturn TransactionKind = "return"
)

// IsValid reports whether the kind is one of the known discriminators.
func (k TransactionKind) IsValid() bool {
	return k == KindIssue || k == KindReturn
}

// Transaction is a single issue or return event. Once recorded in the ledger
// it is immutable; corrections are made with a compensating entry, never an
// edit.
type Transaction struct {
	User       NameString
	Book       TitleString
	Kind       TransactionKind
	OccurredAt time.Time
}

// BuildIssueTransaction creates a Transaction recording an issue.
func BuildIssueTransaction(user NameString, book TitleString, occurredAt time.Time) Transaction {
	return Transaction{
		User:       user,
		Book:       book,
		Kind:       KindIssue,
		OccurredAt: occurredAt.UTC(),
	}
}

// BuildReturnTransaction creates a Transaction recording a return.
func BuildReturnTransaction(user NameString, book TitleString, occurredAt time.Time) Transaction {
	return Transaction{
		User:       user,
		Book:       book,
		Kind:       KindReturn,
		OccurredAt: occurredAt.UTC(),
	}
}
