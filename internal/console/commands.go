package console

// Command enumerates the menu surface. The numeric values are the menu
// digits the user types, so the mapping to handlers is an explicit table
// instead of string dispatch.
type Command int

const (
	CommandExit Command = iota
	CommandAddBook
	CommandRemoveBook
	CommandAddUser
	CommandRemoveUser
	CommandIssueBook
	CommandReturnBook
	CommandView
	CommandSaveData
	CommandLoadData
)

// IsValid reports whether the command is within the menu surface.
func (c Command) IsValid() bool {
	return c >= CommandExit && c <= CommandLoadData
}

// menu is rendered before every prompt, in the order the digits are typed.
var menu = []string{
	"1 - Add book",
	"2 - Remove book",
	"3 - Add user",
	"4 - Remove user",
	"5 - Issue book",
	"6 - Return book",
	"7 - View books and users",
	"8 - Save data",
	"9 - Load data",
	"0 - Exit",
}
