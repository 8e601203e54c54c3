package library

import (
	"fmt"
	"slices"

	"github.com/shelfledger/librarian-go/internal/core"
	"github.com/shelfledger/librarian-go/internal/ledger"
)

// ReportKind selects a report variant.
type ReportKind string

const (
	// ReportAvailableVsBorrowed lists, per book, the copies available on the
	// shelf and the copies currently on loan.
	ReportAvailableVsBorrowed ReportKind = "available_vs_borrowed"

	// ReportMostPopular ranks books by total historical issue count,
	// descending, ties broken by title ascending.
	ReportMostPopular ReportKind = "most_popular"

	// ReportOverdueUsers would list users holding books past their due date.
	// The data model has no due-date concept, so this variant is not
	// implemented and always yields an empty result.
	ReportOverdueUsers ReportKind = "overdue_users"
)

// StockLine is one book in an AvailableVsBorrowed report.
type StockLine struct {
	Title     core.TitleString
	Available int
	OnLoan    int
}

// PopularityLine is one book in a MostPopular report.
type PopularityLine struct {
	Title      core.TitleString
	IssueCount int
}

// OverdueLine is one user/book pair in an OverdueUsers report.
type OverdueLine struct {
	User core.NameString
	Book core.TitleString
}

// Report is the polymorphic report result; only the section for its Kind is
// populated. NotImplemented marks variants the data model cannot support.
type Report struct {
	Kind           ReportKind
	Stock          []StockLine
	Popularity     []PopularityLine
	Overdue        []OverdueLine
	NotImplemented bool
}

// Report produces the requested report variant by projecting the ledger.
// Returns core.ErrInvalidInput for an unknown kind.
func (s *Service) Report(kind ReportKind) (Report, error) {
	switch kind {
	case ReportAvailableVsBorrowed:
		return Report{
			Kind:  kind,
			Stock: projectAvailableVsBorrowed(s.state),
		}, nil

	case ReportMostPopular:
		return Report{
			Kind:       kind,
			Popularity: projectMostPopular(s.state),
		}, nil

	case ReportOverdueUsers:
		return Report{
			Kind:           kind,
			Overdue:        []OverdueLine{},
			NotImplemented: true,
		}, nil

	default:
		return Report{}, fmt.Errorf("generating report: unknown kind %q: %w", kind, core.ErrInvalidInput)
	}
}

// projectAvailableVsBorrowed replays issue and return entries to derive the
// copies on loan per book, pairing them with the catalog's available
// quantities. Pure projection over the ledger, no state is mutated.
func projectAvailableVsBorrowed(state *State) []StockLine {
	onLoan := make(map[core.TitleString]int)

	for entry := range state.Ledger.History(ledger.BuildFilter().MatchingAnyEntry()) {
		switch entry.Transaction.Kind {
		case core.KindIssue:
			onLoan[entry.Transaction.Book]++
		case core.KindReturn:
			onLoan[entry.Transaction.Book]--
		}
	}

	books := state.Catalog.All()
	lines := make([]StockLine, 0, len(books))

	for _, book := range books {
		lines = append(lines, StockLine{
			Title:     book.Title,
			Available: book.Quantity,
			OnLoan:    onLoan[book.Title],
		})
	}

	return lines
}

// projectMostPopular counts historical Issue entries per book. Books still
// in the catalog appear even with zero issues; books that only exist in the
// ledger history appear as well.
func projectMostPopular(state *State) []PopularityLine {
	counts := make(map[core.TitleString]int)

	for _, book := range state.Catalog.All() {
		counts[book.Title] = 0
	}

	issuesOnly := ledger.BuildFilter().
		Matching().
		AnyKindOf(core.KindIssue).
		Finalize()

	for entry := range state.Ledger.History(issuesOnly) {
		counts[entry.Transaction.Book]++
	}

	lines := make([]PopularityLine, 0, len(counts))
	for title, count := range counts {
		lines = append(lines, PopularityLine{Title: title, IssueCount: count})
	}

	slices.SortFunc(lines, func(a, b PopularityLine) int {
		if a.IssueCount != b.IssueCount {
			return b.IssueCount - a.IssueCount
		}

		if a.Title > b.Title {
			return 1
		}

		if a.Title < b.Title {
			return -1
		}

		return 0
	})

	return lines
}

// Overview is the "view books and users" listing: all books with their
// stock and historical issue counts, all users with their borrowed copies.
type Overview struct {
	Books []OverviewBook
	Users []core.User
}

// OverviewBook is one book in the Overview listing.
type OverviewBook struct {
	Book        core.Book
	TimesIssued int
}

// Overview lists the whole catalog and directory for display.
func (s *Service) Overview() Overview {
	issueCounts := make(map[core.TitleString]int)

	issuesOnly := ledger.BuildFilter().
		Matching().
		AnyKindOf(core.KindIssue).
		Finalize()

	for entry := range s.state.Ledger.History(issuesOnly) {
		issueCounts[entry.Transaction.Book]++
	}

	books := s.state.Catalog.All()
	overviewBooks := make([]OverviewBook, 0, len(books))

	for _, book := range books {
		overviewBooks = append(overviewBooks, OverviewBook{
			Book:        book,
			TimesIssued: issueCounts[book.Title],
		})
	}

	return Overview{
		Books: overviewBooks,
		Users: s.state.Directory.All(),
	}
}
