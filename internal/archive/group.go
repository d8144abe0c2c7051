package archive

import (
	"time"

	"github.com/lambdalog/lambdalog/internal/blog"
)

// Item is one row of a listing: an entry, its resolved canonical URL and
// the tag list to display inline (the renderer may have filtered the
// active tag out already).
type Item struct {
	Entry blog.Entry
	URL   string
	Tags  []blog.Tag
}

// MonthGroup holds the items of one calendar month, in input order.
// Every group produced by Group is non-empty by construction; the
// renderer relies on that and does not re-check.
type MonthGroup struct {
	Year  int
	Month time.Month
	Items []Item
}

// YearGroup holds the months of one calendar year, descending.
type YearGroup struct {
	Year   int
	Months []MonthGroup
}

// Listing is the grouped form of an archive query result.
// An empty Listing renders as a "no entries found" state.
type Listing []YearGroup

// NewItem builds an Item from an entry, resolving its canonical URL.
func NewItem(e blog.Entry) Item {
	return Item{Entry: e, URL: e.URL(), Tags: e.Tags}
}

// Group partitions a chronologically descending item sequence into
// years and months in a single forward pass. A new year group opens
// whenever the year differs from the previous item's; a new month group
// whenever the (year, month) pair differs. Input order is preserved
// inside every month.
//
// Preconditions, validated on every call: each item is published, and
// posting times never increase. Violations return a *ContractError.
func Group(items []Item) (Listing, error) {
	var grouped Listing
	var prev time.Time

	for i, item := range items {
		if !item.Entry.Published() {
			return nil, newUnpostedError(item.Entry.Slug, i)
		}
		at := *item.Entry.PostedAt
		if i > 0 && at.After(prev) {
			return nil, newOutOfOrderError(item.Entry.Slug, i)
		}
		prev = at

		year, month := at.Year(), at.Month()
		if len(grouped) == 0 || grouped[len(grouped)-1].Year != year {
			grouped = append(grouped, YearGroup{Year: year})
		}
		yg := &grouped[len(grouped)-1]
		if len(yg.Months) == 0 || yg.Months[len(yg.Months)-1].Month != month {
			yg.Months = append(yg.Months, MonthGroup{Year: year, Month: month})
		}
		mg := &yg.Months[len(yg.Months)-1]
		mg.Items = append(mg.Items, item)
	}

	return grouped, nil
}

// Flatten concatenates all months within all years in order, recovering
// the original input sequence. Group then Flatten is the identity on any
// valid input.
func Flatten(l Listing) []Item {
	var items []Item
	for _, yg := range l {
		for _, mg := range yg.Months {
			items = append(items, mg.Items...)
		}
	}
	return items
}

// Len returns the total number of items across all groups.
func (l Listing) Len() int {
	n := 0
	for _, yg := range l {
		for _, mg := range yg.Months {
			n += len(mg.Items)
		}
	}
	return n
}
