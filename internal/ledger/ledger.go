// Package ledger implements the append-only transaction history of the
// library. Entries get a sequential identifier when recorded and are never
// mutated or deleted afterwards; corrections happen through compensating
// entries. History exposes the entries as a lazy, restartable iterator over
// an optional filter.
package ledger

import (
	"fmt"
	"iter"

	"github.com/shelfledger/librarian-go/internal/core"
)

// SeqUint is an alias type for the sequential entry identifier, 1-based.
type SeqUint = uint

// Entries is an alias type for a slice of Entry.
type Entries = []Entry

// Entry is a recorded transaction together with its assigned sequence
// number and tracking metadata.
type Entry struct {
	Seq         SeqUint
	Transaction core.Transaction
	Metadata    EntryMetadata
}

// Ledger is the in-memory append-only transaction history.
type Ledger struct {
	entries Entries
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{entries: make(Entries, 0)}
}

// Restore creates a Ledger from transactions loaded from disk, assigning
// sequence numbers in insertion order and fresh metadata. It returns
// core.ErrCorruptData if a transaction has empty references, an unknown
// kind, or a zero timestamp.
func Restore(transactions []core.Transaction) (*Ledger, error) {
	l := New()

	for i, tx := range transactions {
		if tx.User == "" || tx.Book == "" {
			return nil, fmt.Errorf("restoring ledger entry %d: empty reference: %w", i+1, core.ErrCorruptData)
		}

		if !tx.Kind.IsValid() {
			return nil, fmt.Errorf("restoring ledger entry %d: unknown kind %q: %w", i+1, tx.Kind, core.ErrCorruptData)
		}

		if tx.OccurredAt.IsZero() {
			return nil, fmt.Errorf("restoring ledger entry %d: zero timestamp: %w", i+1, core.ErrCorruptData)
		}

		l.Record(tx)
	}

	return l, nil
}

// Record appends a transaction, assigns the next sequential identifier and
// fresh metadata, and returns the stored entry. Prior entries are never
// touched.
func (l *Ledger) Record(tx core.Transaction) Entry {
	entry := Entry{
		Seq:         SeqUint(len(l.entries)) + 1,
		Transaction: tx,
		Metadata:    NewEntryMetadata(),
	}

	l.entries = append(l.entries, entry)

	return entry
}

// History returns a lazy, finite, restartable iterator over the entries
// matching the filter, in insertion order. Ranging over it twice replays
// it from the start.
func (l *Ledger) History(filter Filter) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, entry := range l.entries {
			if !filter.matches(entry.Transaction) {
				continue
			}

			if !yield(entry) {
				return
			}
		}
	}
}

// Len returns the number of recorded entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Snapshot returns a copy of all entries in insertion order.
func (l *Ledger) Snapshot() Entries {
	snapshot := make(Entries, len(l.entries))
	copy(snapshot, l.entries)

	return snapshot
}
