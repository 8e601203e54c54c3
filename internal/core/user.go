package core

// NameString is an alias type for user names, the directory identity key.
type NameString = string

// User is a directory record.
//
// Borrowed is a multiset of book titles currently held (title -> copy count);
// a user may hold several copies of the same title, each one the result of a
// separate issue.
type User struct {
	Name     NameString
	Contact  string
	Borrowed map[TitleString]int
}

// BuildUser creates a new User with an empty borrowed multiset.
func BuildUser(name NameString, contact string) User {
	return User{
		Name:     name,
		Contact:  contact,
		Borrowed: make(map[TitleString]int),
	}
}

// HoldsCopy returns true if the user currently holds at least one copy of the title.
func (u User) HoldsCopy(title TitleString) bool {
	return u.Borrowed[title] > 0
}

// CopiesHeld returns the total number of copies the user currently holds.
func (u User) CopiesHeld() int {
	total := 0
	for _, count := range u.Borrowed {
		total += count
	}

	return total
}
