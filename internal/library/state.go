package library

import (
	"github.com/shelfledger/librarian-go/internal/catalog"
	"github.com/shelfledger/librarian-go/internal/directory"
	"github.com/shelfledger/librarian-go/internal/ledger"
)

// State is the aggregate the service operates on: the book catalog, the
// user directory, and the transaction ledger. It is an explicit object
// owned by its Service, not a process-wide singleton; loading persisted
// data swaps in a whole new State.
type State struct {
	Catalog   *catalog.Catalog
	Directory *directory.Directory
	Ledger    *ledger.Ledger
}

// NewState creates an empty State.
func NewState() *State {
	return &State{
		Catalog:   catalog.New(),
		Directory: directory.New(),
		Ledger:    ledger.New(),
	}
}

// BuildState creates a State from restored components.
func BuildState(c *catalog.Catalog, d *directory.Directory, l *ledger.Ledger) *State {
	return &State{
		Catalog:   c,
		Directory: d,
		Ledger:    l,
	}
}
