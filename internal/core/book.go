package core

// TitleString is an alias type for book titles, the catalog identity key.
type TitleString = string

// Book is a catalog record.
//
// Quantity counts the copies currently available to lend, not the copies
// ever owned; TotalStock counts those. The difference is the number of
// copies currently out on loan, so TotalStock >= Quantity >= 0 holds at
// all times.
type Book struct {
	Title      TitleString
	Author     string
	Genre      string
	Quantity   int
	TotalStock int
}

// BuildBook creates a new Book with all copies available.
func BuildBook(title TitleString, author string, genre string, quantity int) Book {
	return Book{
		Title:      title,
		Author:     author,
		Genre:      genre,
		Quantity:   quantity,
		TotalStock: quantity,
	}
}

// OnLoan returns the number of copies currently lent out.
func (b Book) OnLoan() int {
	return b.TotalStock - b.Quantity
}
