package ledger

import (
	"slices"
	"time"

	"github.com/shelfledger/librarian-go/internal/core"
)

// FilterKeyString is an alias type for predicate keys.
type FilterKeyString = string

// FilterValString is an alias type for predicate values.
type FilterValString = string

// Predicate keys understood by the history matcher.
const (
	FilterKeyUser FilterKeyString = "user"
	FilterKeyBook FilterKeyString = "book"
)

/***** Filter *****/

// Filter selects ledger entries for History. An empty filter matches every
// entry; a filter with items matches entries matching ANY item, further
// restricted by the optional occurred-at time range.
type Filter struct {
	items         []FilterItem
	occurredFrom  time.Time
	occurredUntil time.Time
}

func (f Filter) Items() []FilterItem {
	return f.items
}

func (f Filter) OccurredFrom() time.Time {
	return f.occurredFrom
}

func (f Filter) OccurredUntil() time.Time {
	return f.occurredUntil
}

// matches reports whether a transaction passes the filter.
func (f Filter) matches(tx core.Transaction) bool {
	if !f.occurredFrom.IsZero() && tx.OccurredAt.Before(f.occurredFrom) {
		return false
	}

	if !f.occurredUntil.IsZero() && tx.OccurredAt.After(f.occurredUntil) {
		return false
	}

	if len(f.items) == 0 {
		return true
	}

	for _, item := range f.items {
		if item.matches(tx) {
			return true
		}
	}

	return false
}

/***** FilterItem *****/

// FilterItem matches a transaction when its kind is one of (possibly empty)
// kinds AND its predicates match - ANY of them by default, ALL of them when
// allPredicatesMustMatch is set.
type FilterItem struct {
	kinds                  []core.TransactionKind
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) Kinds() []core.TransactionKind {
	return fi.kinds
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

func (fi FilterItem) matches(tx core.Transaction) bool {
	if len(fi.kinds) > 0 && !slices.Contains(fi.kinds, tx.Kind) {
		return false
	}

	if len(fi.predicates) == 0 {
		return true
	}

	if fi.allPredicatesMustMatch {
		for _, p := range fi.predicates {
			if !p.matches(tx) {
				return false
			}
		}

		return true
	}

	for _, p := range fi.predicates {
		if p.matches(tx) {
			return true
		}
	}

	return false
}

/***** FilterPredicate *****/

// FilterPredicate matches a transaction attribute (user or book) against a value.
type FilterPredicate struct {
	key FilterKeyString
	val FilterValString
}

// P builds a FilterPredicate.
func P(key FilterKeyString, val FilterValString) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() FilterValString {
	return fp.val
}

func (fp FilterPredicate) matches(tx core.Transaction) bool {
	switch fp.key {
	case FilterKeyUser:
		return tx.User == fp.val
	case FilterKeyBook:
		return tx.Book == fp.val
	default:
		return false
	}
}

/***** FilterBuilder *****/

// FilterBuilder builds a ledger history filter. It is designed to only allow
// "useful" filter combinations:
//
//   - empty filter
//   - (kind OR kind...)
//   - (predicate OR predicate...)
//   - (predicate AND predicate...)
//   - ((kind OR kind...) AND (predicate OR predicate...))
//   - ((kind OR kind...) AND (predicate AND predicate...))
//   - ((kind AND predicate) OR (kind AND predicate)...) -> multiple FilterItem(s)
//   - any of the above restricted to an occurred-at time range
type FilterBuilder interface {
	// Matching starts a new FilterItem.
	Matching() EmptyFilterItemBuilder

	// MatchingAnyEntry directly creates an empty Filter.
	MatchingAnyEntry() Filter

	// OccurredFrom restricts the filter to entries at or after the given time.
	OccurredFrom(from time.Time) CompletedFilterBuilder

	// OccurredUntil restricts the filter to entries at or before the given time.
	OccurredUntil(until time.Time) CompletedFilterBuilder
}

type EmptyFilterItemBuilder interface {
	// AnyKindOf adds one or multiple TransactionKinds to the current FilterItem.
	//
	// It sanitizes the input:
	//	- removing invalid kinds
	//	- sorting the kinds
	//	- removing duplicate kinds
	AnyKindOf(kind core.TransactionKind, kinds ...core.TransactionKind) FilterItemBuilderLackingPredicates

	// AnyPredicateOf adds one or multiple FilterPredicate(s) to the current
	// FilterItem, expecting ANY of them to match.
	//
	// It sanitizes the input:
	//	- removing empty/partial FilterPredicate(s) (key or val is "")
	//	- sorting the FilterPredicate(s)
	//	- removing duplicate FilterPredicate(s)
	AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingKinds

	// AllPredicatesOf is AnyPredicateOf with ALL predicates required to match.
	AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingKinds
}

type FilterItemBuilderLackingPredicates interface {
	// AndAnyPredicateOf adds one or multiple FilterPredicate(s) to the
	// current FilterItem, expecting ANY of them to match.
	AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder

	// AndAllPredicatesOf is AndAnyPredicateOf with ALL predicates required to match.
	AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder

	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// AndOccurredFrom restricts the filter to entries at or after the given time.
	AndOccurredFrom(from time.Time) CompletedFilterBuilder

	// AndOccurredUntil restricts the filter to entries at or before the given time.
	AndOccurredUntil(until time.Time) CompletedFilterBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

type FilterItemBuilderLackingKinds interface {
	// AndAnyKindOf adds one or multiple TransactionKinds to the current FilterItem.
	AndAnyKindOf(kind core.TransactionKind, kinds ...core.TransactionKind) CompletedFilterItemBuilder

	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// AndOccurredFrom restricts the filter to entries at or after the given time.
	AndOccurredFrom(from time.Time) CompletedFilterBuilder

	// AndOccurredUntil restricts the filter to entries at or before the given time.
	AndOccurredUntil(until time.Time) CompletedFilterBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

type CompletedFilterItemBuilder interface {
	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// AndOccurredFrom restricts the filter to entries at or after the given time.
	AndOccurredFrom(from time.Time) CompletedFilterBuilder

	// AndOccurredUntil restricts the filter to entries at or before the given time.
	AndOccurredUntil(until time.Time) CompletedFilterBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

type CompletedFilterBuilder interface {
	// AndOccurredFrom restricts the filter to entries at or after the given time.
	AndOccurredFrom(from time.Time) CompletedFilterBuilder

	// AndOccurredUntil restricts the filter to entries at or before the given time.
	AndOccurredUntil(until time.Time) CompletedFilterBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

// filterBuilder implements all the interfaces of FilterBuilder.
type filterBuilder struct {
	filter            Filter
	currentFilterItem FilterItem
}

// BuildFilter creates a FilterBuilder which must eventually be finalized
// with Finalize() or MatchingAnyEntry().
func BuildFilter() FilterBuilder {
	return filterBuilder{}
}

// Matching starts a new FilterItem.
func (fb filterBuilder) Matching() EmptyFilterItemBuilder {
	fb.currentFilterItem = FilterItem{}

	return fb
}

// MatchingAnyEntry directly creates an empty Filter.
func (fb filterBuilder) MatchingAnyEntry() Filter {
	return fb.filter
}

// AnyKindOf adds one or multiple TransactionKinds to the current FilterItem.
func (fb filterBuilder) AnyKindOf(
	kind core.TransactionKind,
	kinds ...core.TransactionKind,
) FilterItemBuilderLackingPredicates {

	fb.currentFilterItem.kinds = append(
		fb.currentFilterItem.kinds,
		fb.sanitizeKinds(kind, kinds...)...,
	)

	return fb
}

// AndAnyKindOf adds one or multiple TransactionKinds to the current FilterItem.
func (fb filterBuilder) AndAnyKindOf(
	kind core.TransactionKind,
	kinds ...core.TransactionKind,
) CompletedFilterItemBuilder {

	return fb.AnyKindOf(kind, kinds...)
}

func (fb filterBuilder) sanitizeKinds(
	kind core.TransactionKind,
	kinds ...core.TransactionKind,
) []core.TransactionKind {

	allKinds := append([]core.TransactionKind{kind}, kinds...)
	allKinds = slices.DeleteFunc(
		allKinds,
		func(k core.TransactionKind) bool {
			return !k.IsValid()
		})
	slices.Sort(allKinds)
	allKinds = slices.Compact(allKinds)
	allKinds = slices.Clip(allKinds)

	return allKinds
}

// AnyPredicateOf adds one or multiple FilterPredicate(s) to the current
// FilterItem expecting ANY predicate to match.
func (fb filterBuilder) AnyPredicateOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) FilterItemBuilderLackingKinds {

	fb.currentFilterItem.predicates = append(
		fb.currentFilterItem.predicates,
		fb.sanitizePredicates(predicate, predicates...)...,
	)

	return fb
}

// AndAnyPredicateOf adds one or multiple FilterPredicate(s) to the current
// FilterItem expecting ANY predicate to match.
func (fb filterBuilder) AndAnyPredicateOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) CompletedFilterItemBuilder {

	return fb.AnyPredicateOf(predicate, predicates...)
}

// AllPredicatesOf adds one or multiple FilterPredicate(s) to the current
// FilterItem expecting ALL predicates to match.
func (fb filterBuilder) AllPredicatesOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) FilterItemBuilderLackingKinds {

	fb.currentFilterItem.allPredicatesMustMatch = true

	return fb.AnyPredicateOf(predicate, predicates...)
}

// AndAllPredicatesOf adds one or multiple FilterPredicate(s) to the current
// FilterItem expecting ALL predicates to match.
func (fb filterBuilder) AndAllPredicatesOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) CompletedFilterItemBuilder {

	return fb.AllPredicatesOf(predicate, predicates...)
}

func (fb filterBuilder) sanitizePredicates(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) []FilterPredicate {

	allPredicates := append([]FilterPredicate{predicate}, predicates...)
	allPredicates = slices.DeleteFunc(allPredicates, func(p FilterPredicate) bool {
		return len(p.key) == 0 || len(p.val) == 0
	})
	slices.SortFunc(
		allPredicates,
		func(a, b FilterPredicate) int {
			if a.key != b.key {
				if a.key > b.key {
					return 1
				}

				return -1
			}

			if a.val > b.val {
				return 1
			}

			if a.val < b.val {
				return -1
			}

			return 0
		})

	allPredicates = slices.Compact(allPredicates)
	allPredicates = slices.Clip(allPredicates)

	return allPredicates
}

// OrMatching finalizes the current FilterItem and starts a new one.
func (fb filterBuilder) OrMatching() EmptyFilterItemBuilder {
	fb.filter.items = append(fb.filter.items, fb.currentFilterItem)
	fb.currentFilterItem = FilterItem{}

	return fb
}

// OccurredFrom restricts the filter to entries at or after the given time.
func (fb filterBuilder) OccurredFrom(from time.Time) CompletedFilterBuilder {
	fb.filter.occurredFrom = from

	return fb
}

// AndOccurredFrom restricts the filter to entries at or after the given time.
func (fb filterBuilder) AndOccurredFrom(from time.Time) CompletedFilterBuilder {
	return fb.OccurredFrom(from)
}

// OccurredUntil restricts the filter to entries at or before the given time.
func (fb filterBuilder) OccurredUntil(until time.Time) CompletedFilterBuilder {
	fb.filter.occurredUntil = until

	return fb
}

// AndOccurredUntil restricts the filter to entries at or before the given time.
func (fb filterBuilder) AndOccurredUntil(until time.Time) CompletedFilterBuilder {
	return fb.OccurredUntil(until)
}

// Finalize returns the Filter. A FilterItem with neither kinds nor
// predicates (everything was sanitized away) matches any entry, which keeps
// time-range-only filters expressible.
func (fb filterBuilder) Finalize() Filter {
	fb.filter.items = append(fb.filter.items, fb.currentFilterItem)

	return fb.filter
}
