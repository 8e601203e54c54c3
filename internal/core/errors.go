package core

import "errors"

// Failure kinds signaled by the catalog, directory, ledger, service and
// storage layers. The console boundary maps each kind to a message and keeps
// the menu loop running; nothing here is fatal.
var (
	// ErrNotFound is returned when a book or user lookup misses.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when adding a record whose key already exists.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrOutOfStock is returned when issuing a book with no available copies.
	ErrOutOfStock = errors.New("out of stock")

	// ErrNotBorrowed is returned when returning a book the user does not hold.
	ErrNotBorrowed = errors.New("not borrowed")

	// ErrInUse is returned when removing a record with outstanding loans.
	ErrInUse = errors.New("in use")

	// ErrCorruptData is returned when a persisted document fails shape validation.
	ErrCorruptData = errors.New("corrupt data")

	// ErrFileNotFound is returned when no prior save exists; callers start
	// from an empty state instead of surfacing this to the end user.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidInput is returned for malformed values (empty keys, negative
	// quantities, unparsable console entries).
	ErrInvalidInput = errors.New("invalid input")
)
