// Package core holds the domain records (Book, User, Transaction), the
// failure kinds, and the pure decision functions for issuing and returning
// copies. Nothing in this package performs I/O or holds mutable state; the
// stateful components live in the catalog, directory and ledger packages.
package core
