package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfledger/librarian-go/internal/catalog"
	"github.com/shelfledger/librarian-go/internal/core"
)

func Test_Add_Success(t *testing.T) {
	// arrange
	c := catalog.New()

	// act
	err := c.Add("1984", "George Orwell", "Dystopia", 3)

	// assert
	require.NoError(t, err)

	book, err := c.Find("1984")
	require.NoError(t, err)
	assert.Equal(t, 3, book.Quantity)
	assert.Equal(t, 3, book.TotalStock)
	assert.Equal(t, 0, book.OnLoan())
}

func Test_Add_Error_WhenTitleAlreadyExists(t *testing.T) {
	// arrange
	c := catalog.New()
	require.NoError(t, c.Add("1984", "George Orwell", "Dystopia", 3))

	// act
	err := c.Add("1984", "G. Orwell", "Fiction", 1)

	// assert
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func Test_Add_InvalidInput(t *testing.T) {
	c := catalog.New()

	testCases := []struct {
		name     string
		title    string
		quantity int
	}{
		{name: "empty title", title: "", quantity: 1},
		{name: "negative quantity", title: "1984", quantity: -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := c.Add(tc.title, "George Orwell", "Dystopia", tc.quantity)
			assert.ErrorIs(t, err, core.ErrInvalidInput)
		})
	}
}

func Test_Remove_Success_AndAbsentFromSubsequentLookups(t *testing.T) {
	// arrange
	c := catalog.New()
	require.NoError(t, c.Add("1984", "George Orwell", "Dystopia", 3))

	// act
	err := c.Remove("1984")

	// assert
	require.NoError(t, err)

	_, err = c.Find("1984")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func Test_Remove_Error_WhenTitleAbsent(t *testing.T) {
	// arrange
	c := catalog.New()

	// act
	err := c.Remove("1984")

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func Test_Remove_Error_WhenCopiesOnLoan(t *testing.T) {
	// arrange
	c := catalog.New()
	require.NoError(t, c.Add("1984", "George Orwell", "Dystopia", 3))
	require.NoError(t, c.LendCopy("1984"))

	// act
	err := c.Remove("1984")

	// assert
	assert.ErrorIs(t, err, core.ErrInUse)

	// the record is still there
	_, findErr := c.Find("1984")
	assert.NoError(t, findErr)
}

func Test_Update_Success_PartialFields(t *testing.T) {
	// arrange
	c := catalog.New()
	require.NoError(t, c.Add("1984", "Orwell", "Fiction", 3))

	author := "George Orwell"
	genre := "Dystopia"

	// act
	err := c.Update("1984", catalog.Update{Author: &author, Genre: &genre})

	// assert
	require.NoError(t, err)

	book, err := c.Find("1984")
	require.NoError(t, err)
	assert.Equal(t, "George Orwell", book.Author)
	assert.Equal(t, "Dystopia", book.Genre)
	assert.Equal(t, 3, book.Quantity) // untouched
}

func Test_Update_QuantityShiftsTotalStock_KeepingCopiesOnLoanAccounted(t *testing.T) {
	// arrange
	c := catalog.New()
	require.NoError(t, c.Add("1984", "George Orwell", "Dystopia", 3))
	require.NoError(t, c.LendCopy("1984")) // 2 available, 1 on loan

	newQuantity := 5

	// act
	err := c.Update("1984", catalog.Update{Quantity: &newQuantity})

	// assert
	require.NoError(t, err)

	book, err := c.Find("1984")
	require.NoError(t, err)
	assert.Equal(t, 5, book.Quantity)
	assert.Equal(t, 1, book.OnLoan())
	assert.Equal(t, 6, book.TotalStock)
}

func Test_Update_Error_WhenTitleAbsent(t *testing.T) {
	// arrange
	c := catalog.New()
	author := "George Orwell"

	// act
	err := c.Update("1984", catalog.Update{Author: &author})

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func Test_LendCopy_Error_WhenOutOfStock(t *testing.T) {
	// arrange
	c := catalog.New()
	require.NoError(t, c.Add("1984", "George Orwell", "Dystopia", 1))
	require.NoError(t, c.LendCopy("1984"))

	// act
	err := c.LendCopy("1984")

	// assert
	assert.ErrorIs(t, err, core.ErrOutOfStock)

	book, findErr := c.Find("1984")
	require.NoError(t, findErr)
	assert.Equal(t, 0, book.Quantity) // never negative
}

func Test_AcceptReturn_Error_WhenNoCopiesOnLoan(t *testing.T) {
	// arrange
	c := catalog.New()
	require.NoError(t, c.Add("1984", "George Orwell", "Dystopia", 3))

	// act
	err := c.AcceptReturn("1984")

	// assert
	assert.ErrorIs(t, err, core.ErrNotBorrowed)
}

func Test_All_SortedByTitle(t *testing.T) {
	// arrange
	c := catalog.New()
	require.NoError(t, c.Add("Brave New World", "Aldous Huxley", "Dystopia", 1))
	require.NoError(t, c.Add("1984", "George Orwell", "Dystopia", 3))
	require.NoError(t, c.Add("Animal Farm", "George Orwell", "Satire", 2))

	// act
	books := c.All()

	// assert
	require.Len(t, books, 3)
	assert.Equal(t, "1984", books[0].Title)
	assert.Equal(t, "Animal Farm", books[1].Title)
	assert.Equal(t, "Brave New World", books[2].Title)
}

func Test_Restore_Error_OnCorruptRecords(t *testing.T) {
	testCases := []struct {
		name  string
		books []core.Book
	}{
		{
			name:  "empty title",
			books: []core.Book{{Title: "", Quantity: 1, TotalStock: 1}},
		},
		{
			name:  "negative quantity",
			books: []core.Book{{Title: "1984", Quantity: -1, TotalStock: 0}},
		},
		{
			name:  "stock below quantity",
			books: []core.Book{{Title: "1984", Quantity: 3, TotalStock: 1}},
		},
		{
			name: "duplicate title",
			books: []core.Book{
				{Title: "1984", Quantity: 1, TotalStock: 1},
				{Title: "1984", Quantity: 2, TotalStock: 2},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalog.Restore(tc.books)
			assert.ErrorIs(t, err, core.ErrCorruptData)
		})
	}
}
