// Package directory holds the user records of the library. It mirrors the
// catalog: unique names, and no removal while a user still holds books.
package directory

import (
	"fmt"
	"maps"
	"slices"

	"github.com/shelfledger/librarian-go/internal/core"
)

// Directory is the in-memory user directory, keyed by name.
type Directory struct {
	users map[core.NameString]core.User
}

// New creates an empty Directory.
func New() *Directory {
	return &Directory{users: make(map[core.NameString]core.User)}
}

// Restore creates a Directory from existing records, e.g. loaded from disk.
// It returns core.ErrCorruptData if records have empty or duplicate names,
// or a borrowed multiset with non-positive copy counts.
func Restore(users []core.User) (*Directory, error) {
	d := New()

	for _, user := range users {
		if user.Name == "" {
			return nil, fmt.Errorf("restoring directory: empty name: %w", core.ErrCorruptData)
		}

		if _, exists := d.users[user.Name]; exists {
			return nil, fmt.Errorf("restoring directory: duplicate name %q: %w", user.Name, core.ErrCorruptData)
		}

		for title, count := range user.Borrowed {
			if title == "" || count <= 0 {
				return nil, fmt.Errorf("restoring directory: user %q has invalid borrowed entry: %w", user.Name, core.ErrCorruptData)
			}
		}

		if user.Borrowed == nil {
			user.Borrowed = make(map[core.TitleString]int)
		}

		d.users[user.Name] = user
	}

	return d, nil
}

// Add creates a new record with an empty borrowed multiset.
// Returns core.ErrDuplicateKey if the name already exists and
// core.ErrInvalidInput for an empty name.
func (d *Directory) Add(name core.NameString, contact string) error {
	if name == "" {
		return fmt.Errorf("adding user: empty name: %w", core.ErrInvalidInput)
	}

	if _, exists := d.users[name]; exists {
		return fmt.Errorf("adding user %q: %w", name, core.ErrDuplicateKey)
	}

	d.users[name] = core.BuildUser(name, contact)

	return nil
}

// Remove deletes a record. Returns core.ErrNotFound if the name is absent
// and core.ErrInUse while the user still holds books.
func (d *Directory) Remove(name core.NameString) error {
	user, exists := d.users[name]
	if !exists {
		return fmt.Errorf("removing user %q: %w", name, core.ErrNotFound)
	}

	if user.CopiesHeld() > 0 {
		return fmt.Errorf("removing user %q: %d copies still held: %w", name, user.CopiesHeld(), core.ErrInUse)
	}

	delete(d.users, name)

	return nil
}

// Update is a partial update of a user record; nil fields are left unchanged.
type Update struct {
	Contact *string
}

// Update applies a partial update. Returns core.ErrNotFound if the name is absent.
func (d *Directory) Update(name core.NameString, fields Update) error {
	user, exists := d.users[name]
	if !exists {
		return fmt.Errorf("updating user %q: %w", name, core.ErrNotFound)
	}

	if fields.Contact != nil {
		user.Contact = *fields.Contact
	}

	d.users[name] = user

	return nil
}

// Find returns the record for a name or core.ErrNotFound. The borrowed
// multiset is a copy; mutating it does not change the directory.
func (d *Directory) Find(name core.NameString) (core.User, error) {
	user, exists := d.users[name]
	if !exists {
		return core.User{}, fmt.Errorf("finding user %q: %w", name, core.ErrNotFound)
	}

	user.Borrowed = maps.Clone(user.Borrowed)

	return user, nil
}

// All returns all records sorted by name, with copied borrowed multisets.
func (d *Directory) All() []core.User {
	users := make([]core.User, 0, len(d.users))
	for _, user := range d.users {
		user.Borrowed = maps.Clone(user.Borrowed)
		users = append(users, user)
	}

	slices.SortFunc(users, func(a, b core.User) int {
		if a.Name > b.Name {
			return 1
		}

		if a.Name < b.Name {
			return -1
		}

		return 0
	})

	return users
}

// BorrowCopy adds one copy of a title to the user's borrowed multiset.
// Returns core.ErrNotFound if the name is absent.
func (d *Directory) BorrowCopy(name core.NameString, title core.TitleString) error {
	user, exists := d.users[name]
	if !exists {
		return fmt.Errorf("borrowing copy for %q: %w", name, core.ErrNotFound)
	}

	user.Borrowed[title]++

	return nil
}

// ReturnCopy removes one copy of a title from the user's borrowed multiset.
// Returns core.ErrNotFound if the name is absent and core.ErrNotBorrowed if
// the user holds no copy of the title.
func (d *Directory) ReturnCopy(name core.NameString, title core.TitleString) error {
	user, exists := d.users[name]
	if !exists {
		return fmt.Errorf("returning copy for %q: %w", name, core.ErrNotFound)
	}

	if user.Borrowed[title] == 0 {
		return fmt.Errorf("returning copy for %q: %q: %w", name, title, core.ErrNotBorrowed)
	}

	user.Borrowed[title]--
	if user.Borrowed[title] == 0 {
		delete(user.Borrowed, title)
	}

	return nil
}
