package render

import (
	"fmt"
	"html/template"

	"github.com/lambdalog/lambdalog/internal/archive"
	"github.com/lambdalog/lambdalog/internal/blog"
)

// archiveData drives the archive template. Shape selects the nesting
// depth: "years" (full 3-level), "months" (2-level) or "flat".
type archiveData struct {
	Shape    string
	Title    string
	Subtitle string
	Empty    bool
	Back     *Link
	Years    []yearData
	Months   []monthData
	Items    []itemData
}

type yearData struct {
	Year   int
	Months []monthData
}

type monthData struct {
	Name  string
	Items []itemData
}

// BackLink returns the navigation target one level up from an archive
// view. The full archive has no level above it.
func BackLink(view blog.ViewArchive) (Link, bool) {
	switch view.Kind {
	case blog.ViewAll:
		return Link{}, false
	case blog.ViewYear:
		return Link{Href: "/entries", Text: "All entries"}, true
	case blog.ViewMonth:
		return Link{
			Href: fmt.Sprintf("/entries/in/%d", view.Year),
			Text: fmt.Sprintf("Entries from %d", view.Year),
		}, true
	case blog.ViewTag:
		return Link{Href: "/tags", Text: "All tags"}, true
	case blog.ViewCategory:
		return Link{Href: "/categories", Text: "All categories"}, true
	case blog.ViewSeries:
		return Link{Href: "/series", Text: "All series"}, true
	}
	panic(fmt.Sprintf("render: unknown view kind %q", view.Kind))
}

// ViewTitle returns the page title for an archive view.
func ViewTitle(view blog.ViewArchive) string {
	switch view.Kind {
	case blog.ViewAll:
		return "All entries"
	case blog.ViewYear:
		return fmt.Sprintf("Entries from %d", view.Year)
	case blog.ViewMonth:
		return fmt.Sprintf("Entries from %s %d", view.Month, view.Year)
	case blog.ViewTag:
		return fmt.Sprintf("Entries tagged %s", view.Tag)
	case blog.ViewCategory:
		return fmt.Sprintf("Entries in category %s", view.Tag)
	case blog.ViewSeries:
		return fmt.Sprintf("The %s series", view.Tag)
	}
	panic(fmt.Sprintf("render: unknown view kind %q", view.Kind))
}

// Archive renders a grouped listing for an archive view. active is the
// view's tag for Tag/Category/Series views and nil otherwise; it supplies
// the subtitle and is omitted from each row's inline tag list.
//
// Precondition: listing was produced by archive.Group, so every bucket
// is non-empty.
func (r *Renderer) Archive(view blog.ViewArchive, listing archive.Listing, active *blog.Tag) (template.HTML, error) {
	data := archiveData{
		Title: ViewTitle(view),
		Empty: len(listing) == 0,
	}
	if back, ok := BackLink(view); ok {
		data.Back = &back
	}
	if active != nil {
		data.Subtitle = active.Description
	}

	switch view.Kind {
	case blog.ViewAll:
		data.Shape = "years"
		for _, yg := range listing {
			data.Years = append(data.Years, yearData{
				Year:   yg.Year,
				Months: monthGroups(yg.Months, active),
			})
		}
	case blog.ViewYear:
		data.Shape = "months"
		for _, yg := range listing {
			data.Months = append(data.Months, monthGroups(yg.Months, active)...)
		}
	case blog.ViewMonth, blog.ViewTag, blog.ViewCategory, blog.ViewSeries:
		data.Shape = "flat"
		for _, item := range archive.Flatten(listing) {
			data.Items = append(data.Items, entryItem(item.Entry, item.URL, item.Tags, active))
		}
	default:
		return "", fmt.Errorf("render: unknown view kind %q", view.Kind)
	}

	return r.exec("archive", data)
}

func monthGroups(groups []archive.MonthGroup, active *blog.Tag) []monthData {
	out := make([]monthData, 0, len(groups))
	for _, mg := range groups {
		md := monthData{Name: mg.Month.String()}
		for _, item := range mg.Items {
			md.Items = append(md.Items, entryItem(item.Entry, item.URL, item.Tags, active))
		}
		out = append(out, md)
	}
	return out
}
