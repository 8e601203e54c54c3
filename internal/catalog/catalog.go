// Package catalog holds the book records of the library and enforces their
// invariants: unique titles, non-negative quantities, and no removal while
// copies are out on loan.
package catalog

import (
	"fmt"
	"slices"

	"github.com/shelfledger/librarian-go/internal/core"
)

// Catalog is the in-memory book catalog, keyed by title.
type Catalog struct {
	books map[core.TitleString]core.Book
}

// New creates an empty Catalog.
func New() *Catalog {
	return &Catalog{books: make(map[core.TitleString]core.Book)}
}

// Restore creates a Catalog from existing records, e.g. loaded from disk.
// It returns core.ErrCorruptData if records have empty or duplicate titles,
// or a negative quantity or stock.
func Restore(books []core.Book) (*Catalog, error) {
	c := New()

	for _, book := range books {
		if book.Title == "" {
			return nil, fmt.Errorf("restoring catalog: empty title: %w", core.ErrCorruptData)
		}

		if book.Quantity < 0 || book.TotalStock < book.Quantity {
			return nil, fmt.Errorf("restoring catalog: book %q has invalid stock: %w", book.Title, core.ErrCorruptData)
		}

		if _, exists := c.books[book.Title]; exists {
			return nil, fmt.Errorf("restoring catalog: duplicate title %q: %w", book.Title, core.ErrCorruptData)
		}

		c.books[book.Title] = book
	}

	return c, nil
}

// Add creates a new record with all copies available.
// Returns core.ErrDuplicateKey if the title already exists and
// core.ErrInvalidInput for an empty title or negative quantity.
func (c *Catalog) Add(title core.TitleString, author string, genre string, quantity int) error {
	if title == "" {
		return fmt.Errorf("adding book: empty title: %w", core.ErrInvalidInput)
	}

	if quantity < 0 {
		return fmt.Errorf("adding book %q: negative quantity: %w", title, core.ErrInvalidInput)
	}

	if _, exists := c.books[title]; exists {
		return fmt.Errorf("adding book %q: %w", title, core.ErrDuplicateKey)
	}

	c.books[title] = core.BuildBook(title, author, genre, quantity)

	return nil
}

// Remove deletes a record. Returns core.ErrNotFound if the title is absent
// and core.ErrInUse while any copy is out on loan.
func (c *Catalog) Remove(title core.TitleString) error {
	book, exists := c.books[title]
	if !exists {
		return fmt.Errorf("removing book %q: %w", title, core.ErrNotFound)
	}

	if book.OnLoan() > 0 {
		return fmt.Errorf("removing book %q: %d copies on loan: %w", title, book.OnLoan(), core.ErrInUse)
	}

	delete(c.books, title)

	return nil
}

// Update is a partial update of a book record; nil fields are left unchanged.
// A quantity update sets the available copies and shifts the total stock by
// the same amount, so the copies on loan stay accounted for.
type Update struct {
	Author   *string
	Genre    *string
	Quantity *int
}

// Update applies a partial update. Returns core.ErrNotFound if the title is
// absent and core.ErrInvalidInput for a negative quantity.
func (c *Catalog) Update(title core.TitleString, fields Update) error {
	book, exists := c.books[title]
	if !exists {
		return fmt.Errorf("updating book %q: %w", title, core.ErrNotFound)
	}

	if fields.Quantity != nil && *fields.Quantity < 0 {
		return fmt.Errorf("updating book %q: negative quantity: %w", title, core.ErrInvalidInput)
	}

	if fields.Author != nil {
		book.Author = *fields.Author
	}

	if fields.Genre != nil {
		book.Genre = *fields.Genre
	}

	if fields.Quantity != nil {
		book.TotalStock += *fields.Quantity - book.Quantity
		book.Quantity = *fields.Quantity
	}

	c.books[title] = book

	return nil
}

// Find returns the record for a title or core.ErrNotFound.
func (c *Catalog) Find(title core.TitleString) (core.Book, error) {
	book, exists := c.books[title]
	if !exists {
		return core.Book{}, fmt.Errorf("finding book %q: %w", title, core.ErrNotFound)
	}

	return book, nil
}

// All returns all records sorted by title.
func (c *Catalog) All() []core.Book {
	books := make([]core.Book, 0, len(c.books))
	for _, book := range c.books {
		books = append(books, book)
	}

	slices.SortFunc(books, func(a, b core.Book) int {
		if a.Title > b.Title {
			return 1
		}

		if a.Title < b.Title {
			return -1
		}

		return 0
	})

	return books
}

// LendCopy takes one available copy off the shelf.
// Returns core.ErrNotFound or core.ErrOutOfStock.
func (c *Catalog) LendCopy(title core.TitleString) error {
	book, exists := c.books[title]
	if !exists {
		return fmt.Errorf("lending copy of %q: %w", title, core.ErrNotFound)
	}

	if book.Quantity == 0 {
		return fmt.Errorf("lending copy of %q: %w", title, core.ErrOutOfStock)
	}

	book.Quantity--
	c.books[title] = book

	return nil
}

// AcceptReturn puts one lent copy back on the shelf.
// Returns core.ErrNotFound, or core.ErrNotBorrowed if no copy is out on loan.
func (c *Catalog) AcceptReturn(title core.TitleString) error {
	book, exists := c.books[title]
	if !exists {
		return fmt.Errorf("accepting return of %q: %w", title, core.ErrNotFound)
	}

	if book.OnLoan() == 0 {
		return fmt.Errorf("accepting return of %q: no copies on loan: %w", title, core.ErrNotBorrowed)
	}

	book.Quantity++
	c.books[title] = book

	return nil
}
